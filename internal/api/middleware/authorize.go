package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// AdminOnly allows only callers whose token carries the admin flag.
// Absent claims fail with 401 rather than 403, so a route that was
// composed without Auth still cannot authorize anyone.
func AdminOnly() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			isAdmin, ok := c.Get(CtxIsAdmin).(bool)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
			}
			if !isAdmin {
				return echo.NewHTTPError(http.StatusForbidden, "missing admin permissions")
			}
			return next(c)
		}
	}
}

// OwnerOrAdmin allows callers acting on their own :id path parameter, or
// any admin.
func OwnerOrAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userID, ok := c.Get(CtxUserID).(string)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
			}
			isAdmin, _ := c.Get(CtxIsAdmin).(bool)

			if isAdmin || c.Param("id") == userID {
				return next(c)
			}
			return echo.NewHTTPError(http.StatusForbidden, "you must be the account owner or admin")
		}
	}
}
