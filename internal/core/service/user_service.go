package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/accounthub/accounts-api/internal/metrics"
	"github.com/accounthub/accounts-api/internal/core/domain"
	"github.com/accounthub/accounts-api/internal/core/ports"
)

// UserService implements registration, login and user CRUD.
type UserService struct {
	repo   ports.UserRepository
	hasher ports.PasswordHasher
	tokens ports.TokenIssuer
}

func NewUserService(repo ports.UserRepository, hasher ports.PasswordHasher, tokens ports.TokenIssuer) *UserService {
	return &UserService{repo: repo, hasher: hasher, tokens: tokens}
}

// Register creates a new account. The repository enforces email
// uniqueness at creation time and reports domain.ErrEmailTaken.
func (s *UserService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	hash, err := s.hasher.Hash(ctx, in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &domain.User{
		ID:           uuid.NewString(),
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: hash,
		IsAdmin:      in.IsAdmin,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	metrics.UsersCreatedTotal.WithLabelValues(fmt.Sprintf("%t", created.IsAdmin)).Inc()
	return created, nil
}

// List returns every account in insertion order.
func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	return s.repo.List(ctx)
}

// Login authenticates by email and password and returns a signed access
// token. Unknown email and wrong password both fail with
// domain.ErrInvalidCredentials so callers cannot enumerate accounts.
func (s *UserService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return "", domain.ErrInvalidCredentials
	}

	if s.hasher.Compare(user.PasswordHash, password) != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return "", domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return token, nil
}

// Profile returns the account matching the authenticated caller's email
// claim.
func (s *UserService) Profile(ctx context.Context, email string) (*domain.User, error) {
	return s.repo.FindByEmail(ctx, email)
}

// Update merges the provided fields over the stored record. ID,
// CreatedAt and IsAdmin are preserved unconditionally; a supplied
// password is hashed from the incoming plaintext and UpdatedAt is
// refreshed.
func (s *UserService) Update(ctx context.Context, id string, in ports.UpdateInput) (*domain.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		user.Name = *in.Name
	}
	if in.Email != nil {
		user.Email = *in.Email
	}
	if in.Password != nil {
		hash, err := s.hasher.Hash(ctx, *in.Password)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		user.PasswordHash = hash
	}
	user.UpdatedAt = time.Now().UTC()

	return s.repo.Update(ctx, user)
}

// Delete removes the account matching id. Ownership and admin checks
// happen in the authorization middleware before this call.
func (s *UserService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
