// Package memory provides a process-memory UserRepository. State lives
// for the lifetime of the process only; there is no persistence.
package memory

import (
	"context"
	"sync"

	"github.com/accounthub/accounts-api/internal/core/domain"
)

// UserRepository keeps users in a mutex-guarded map keyed by id, with a
// secondary email index and an insertion-order slice so List returns
// records in registration order.
type UserRepository struct {
	mu      sync.RWMutex
	byID    map[string]*domain.User
	byEmail map[string]string
	order   []string
}

func NewUserRepository() *UserRepository {
	return &UserRepository{
		byID:    make(map[string]*domain.User),
		byEmail: make(map[string]string),
	}
}

func cloneUser(u *domain.User) *domain.User {
	clone := *u
	return &clone
}

// Create stores a new user. Email uniqueness is enforced here, at
// creation time only; Update deliberately does not re-check it.
func (r *UserRepository) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byEmail[user.Email]; exists {
		return nil, domain.ErrEmailTaken
	}

	stored := cloneUser(user)
	r.byID[stored.ID] = stored
	r.byEmail[stored.Email] = stored.ID
	r.order = append(r.order, stored.ID)
	return cloneUser(stored), nil
}

func (r *UserRepository) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(user), nil
}

// FindByEmail looks a user up by exact, case-sensitive email.
func (r *UserRepository) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(r.byID[id]), nil
}

func (r *UserRepository) List(_ context.Context) ([]domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	users := make([]domain.User, 0, len(r.order))
	for _, id := range r.order {
		users = append(users, *r.byID[id])
	}
	return users, nil
}

// Update replaces the record matching user.ID in place, keeping its
// position in the insertion order. A changed email moves the index
// entry. Uniqueness is not re-checked here: an update may take over an
// email held by another user, and from then on the index resolves that
// email to the updater (last writer wins). The guards below keep the
// takeover from corrupting entries that already point elsewhere.
func (r *UserRepository) Update(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.byID[user.ID]
	if !ok {
		return nil, domain.ErrUserNotFound
	}

	if current.Email != user.Email {
		if r.byEmail[current.Email] == user.ID {
			delete(r.byEmail, current.Email)
		}
		r.byEmail[user.Email] = user.ID
	}

	stored := cloneUser(user)
	r.byID[stored.ID] = stored
	return cloneUser(stored), nil
}

func (r *UserRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.byID[id]
	if !ok {
		return domain.ErrUserNotFound
	}

	delete(r.byID, id)
	// The index entry may have been taken over by an update on another
	// user; only remove it when it still points at the deleted record.
	if r.byEmail[user.Email] == id {
		delete(r.byEmail, user.Email)
	}
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}
