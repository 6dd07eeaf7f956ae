package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/accounthub/accounts-api/internal/core/service"
)

// Context keys populated by Auth and read by the authorization gates and
// handlers.
const (
	CtxUserID  = "user_id"
	CtxEmail   = "user_email"
	CtxIsAdmin = "is_admin"
)

// TokenVerifier validates a raw bearer token and returns its claims.
type TokenVerifier interface {
	Verify(raw string) (*service.TokenClaims, error)
}

// Auth validates the bearer token and injects its claims into context.
// It must be composed before any authorization gate: an unauthenticated
// caller has no identity to authorize against.
func Auth(verifier TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			claims, err := verifier.Verify(parts[1])
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			c.Set(CtxUserID, claims.UserID)
			c.Set(CtxEmail, claims.Email)
			c.Set(CtxIsAdmin, claims.IsAdmin)

			return next(c)
		}
	}
}
