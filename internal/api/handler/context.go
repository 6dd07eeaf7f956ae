package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/accounthub/accounts-api/internal/api/middleware"
)

// ctxEmail extracts the email claim injected by the Auth middleware and
// performs a fast-fail check before any service call: a non-empty email
// proves the middleware ran.
func ctxEmail(c echo.Context) (string, error) {
	email, _ := c.Get(middleware.CtxEmail).(string)
	if email == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return email, nil
}
