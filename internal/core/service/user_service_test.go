package service

import (
	"context"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/accounthub/accounts-api/internal/core/domain"
	"github.com/accounthub/accounts-api/internal/core/ports"
)

type stubUserRepo struct {
	byID  map[string]*domain.User
	order []string
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{byID: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.byID {
		if u.Email == user.Email {
			return nil, domain.ErrEmailTaken
		}
	}
	r.byID[user.ID] = cloneUser(user)
	r.order = append(r.order, user.ID)
	return cloneUser(user), nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.byID {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) List(_ context.Context) ([]domain.User, error) {
	users := make([]domain.User, 0, len(r.order))
	for _, id := range r.order {
		users = append(users, *r.byID[id])
	}
	return users, nil
}

func (r *stubUserRepo) Update(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, ok := r.byID[user.ID]; !ok {
		return nil, domain.ErrUserNotFound
	}
	r.byID[user.ID] = cloneUser(user)
	return cloneUser(user), nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.byID, id)
	return nil
}

func newTestService(t *testing.T) (*UserService, *stubUserRepo, *TokenService) {
	t.Helper()
	repo := newStubUserRepo()
	hasher := NewBcryptHasher(1, bcrypt.MinCost)
	t.Cleanup(hasher.Close)
	tokens := NewTokenService("secret", time.Hour)
	return NewUserService(repo, hasher, tokens), repo, tokens
}

func TestUserService_Register_Success(t *testing.T) {
	svc, _, _ := newTestService(t)

	user, err := svc.Register(context.Background(), ports.RegisterInput{
		Name: "alice", Email: "alice@example.com", Password: "pass123",
	})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user.ID == "" {
		t.Fatalf("expected generated id")
	}
	if user.PasswordHash == "pass123" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("pass123")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
	if user.CreatedAt.IsZero() || user.UpdatedAt.IsZero() {
		t.Fatalf("expected both timestamps set, got %v / %v", user.CreatedAt, user.UpdatedAt)
	}
}

func TestUserService_Register_DuplicateEmail(t *testing.T) {
	svc, repo, _ := newTestService(t)

	if _, err := svc.Register(context.Background(), ports.RegisterInput{Name: "bob", Email: "bob@example.com", Password: "pw"}); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	if _, err := svc.Register(context.Background(), ports.RegisterInput{Name: "bob2", Email: "bob@example.com", Password: "pw2"}); err != domain.ErrEmailTaken {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
	if len(repo.byID) != 1 {
		t.Fatalf("store grew on duplicate registration: %d records", len(repo.byID))
	}
}

func TestUserService_Login_Success(t *testing.T) {
	svc, _, tokens := newTestService(t)

	created, err := svc.Register(context.Background(), ports.RegisterInput{
		Name: "carol", Email: "carol@example.com", Password: "s3cret", IsAdmin: true,
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	token, err := svc.Login(context.Background(), "carol@example.com", "s3cret")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	claims, err := tokens.Verify(token)
	if err != nil {
		t.Fatalf("issued token did not verify: %v", err)
	}
	if claims.UserID != created.ID {
		t.Fatalf("claim id = %q, want %q", claims.UserID, created.ID)
	}
	if claims.Email != "carol@example.com" {
		t.Fatalf("claim email = %q", claims.Email)
	}
	if !claims.IsAdmin {
		t.Fatalf("expected admin claim")
	}
}

func TestUserService_Login_IndistinguishableFailures(t *testing.T) {
	svc, _, _ := newTestService(t)

	if _, err := svc.Register(context.Background(), ports.RegisterInput{Name: "dave", Email: "dave@example.com", Password: "goodpass"}); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	_, errWrongPass := svc.Login(context.Background(), "dave@example.com", "badpass")
	_, errNoUser := svc.Login(context.Background(), "ghost@example.com", "whatever")

	if errWrongPass != domain.ErrInvalidCredentials {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", errWrongPass)
	}
	if errNoUser != domain.ErrInvalidCredentials {
		t.Fatalf("unknown email: expected ErrInvalidCredentials, got %v", errNoUser)
	}
	if errWrongPass.Error() != errNoUser.Error() {
		t.Fatalf("login failures must be indistinguishable: %q vs %q", errWrongPass, errNoUser)
	}
}

func TestUserService_Profile(t *testing.T) {
	svc, _, _ := newTestService(t)

	created, _ := svc.Register(context.Background(), ports.RegisterInput{Name: "erin", Email: "erin@example.com", Password: "pw"})

	got, err := svc.Profile(context.Background(), "erin@example.com")
	if err != nil {
		t.Fatalf("profile failed: %v", err)
	}
	if got.ID != created.ID {
		t.Fatalf("profile id = %q, want %q", got.ID, created.ID)
	}

	if _, err := svc.Profile(context.Background(), "nobody@example.com"); err != domain.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserService_Update_PasswordRehash(t *testing.T) {
	svc, _, _ := newTestService(t)

	created, err := svc.Register(context.Background(), ports.RegisterInput{
		Name: "frank", Email: "frank@example.com", Password: "oldpass", IsAdmin: true,
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	newPass := "newpass"
	updated, err := svc.Update(context.Background(), created.ID, ports.UpdateInput{Password: &newPass})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}

	// The incoming plaintext must be hashed, not the stored hash.
	if err := bcrypt.CompareHashAndPassword([]byte(updated.PasswordHash), []byte("newpass")); err != nil {
		t.Fatalf("new password does not match stored hash: %v", err)
	}
	if updated.PasswordHash == created.PasswordHash {
		t.Fatalf("hash unchanged after password update")
	}
	if updated.Name != "frank" || updated.Email != "frank@example.com" || !updated.IsAdmin {
		t.Fatalf("unrelated fields mutated: %+v", updated)
	}
	if updated.ID != created.ID || !updated.CreatedAt.Equal(created.CreatedAt) {
		t.Fatalf("id or created_at mutated")
	}
	if updated.UpdatedAt.Before(created.UpdatedAt) {
		t.Fatalf("updated_at not refreshed")
	}

	if _, err := svc.Login(context.Background(), "frank@example.com", "oldpass"); err != domain.ErrInvalidCredentials {
		t.Fatalf("old password still accepted: %v", err)
	}
	if _, err := svc.Login(context.Background(), "frank@example.com", "newpass"); err != nil {
		t.Fatalf("new password rejected: %v", err)
	}
}

func TestUserService_Update_PartialMerge(t *testing.T) {
	svc, _, _ := newTestService(t)

	created, _ := svc.Register(context.Background(), ports.RegisterInput{Name: "gina", Email: "gina@example.com", Password: "pw"})

	name := "Gina R."
	updated, err := svc.Update(context.Background(), created.ID, ports.UpdateInput{Name: &name})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Name != "Gina R." {
		t.Fatalf("name not updated: %q", updated.Name)
	}
	if updated.Email != "gina@example.com" {
		t.Fatalf("email mutated: %q", updated.Email)
	}
	if updated.PasswordHash != created.PasswordHash {
		t.Fatalf("hash mutated without password in input")
	}
}

func TestUserService_Update_NotFound(t *testing.T) {
	svc, _, _ := newTestService(t)

	name := "x"
	if _, err := svc.Update(context.Background(), "missing-id", ports.UpdateInput{Name: &name}); err != domain.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserService_Delete(t *testing.T) {
	svc, repo, _ := newTestService(t)

	created, _ := svc.Register(context.Background(), ports.RegisterInput{Name: "hank", Email: "hank@example.com", Password: "pw"})

	if err := svc.Delete(context.Background(), created.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, ok := repo.byID[created.ID]; ok {
		t.Fatalf("record still in store after delete")
	}
	if err := svc.Delete(context.Background(), created.ID); err != domain.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
