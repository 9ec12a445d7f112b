package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bookhaven/bookstore-api/internal/core/domain"
)

// RequireSignIn rejects anonymous requests. The Auth middleware lets them
// through so that optional-auth routes work; protected routes gate here.
func RequireSignIn() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if userID, _ := c.Get(CtxUserID).(string); userID == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, domain.ErrNotSignedIn.Error())
			}
			return next(c)
		}
	}
}

// RequireRoles enforces role-based access control on top of RequireSignIn.
func RequireRoles(allowedRoles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get(CtxRole).(string)
			if _, ok := allowed[role]; !ok {
				return echo.NewHTTPError(http.StatusForbidden, "admin access required")
			}
			return next(c)
		}
	}
}
