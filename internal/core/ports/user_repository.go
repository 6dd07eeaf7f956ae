package ports

import (
	"context"

	"github.com/accounthub/accounts-api/internal/core/domain"
)

// UserRepository defines the interface for user record storage.
type UserRepository interface {
	// Create stores a new user. Returns domain.ErrEmailTaken when another
	// record already holds the same email (case-sensitive).
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// List returns all users in insertion order.
	List(ctx context.Context) ([]domain.User, error)
	// Update replaces the record matching user.ID. Returns
	// domain.ErrUserNotFound when no record matches.
	Update(ctx context.Context, user *domain.User) (*domain.User, error)
	// Delete removes the record matching id. Returns
	// domain.ErrUserNotFound when no record matches.
	Delete(ctx context.Context, id string) error
}
