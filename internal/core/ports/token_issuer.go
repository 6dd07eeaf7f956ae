package ports

import "github.com/accounthub/accounts-api/internal/core/domain"

// TokenIssuer mints signed access tokens for authenticated users.
type TokenIssuer interface {
	Issue(user *domain.User) (string, error)
}
