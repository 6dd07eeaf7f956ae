package ports

import (
	"context"

	"github.com/accounthub/accounts-api/internal/core/domain"
)

// RegisterInput carries the fields accepted at account creation.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	IsAdmin  bool
}

// UpdateInput carries a partial update. Nil fields keep their stored
// value; IsAdmin is deliberately absent so the endpoint can never be
// used for privilege escalation.
type UpdateInput struct {
	Name     *string
	Email    *string
	Password *string
}

type UserService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	Login(ctx context.Context, email, password string) (string, error)
	Profile(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, id string, in UpdateInput) (*domain.User, error)
	Delete(ctx context.Context, id string) error
}
