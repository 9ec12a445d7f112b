package handler

import (
	"time"

	"github.com/labstack/echo/v4"

	"github.com/bookhaven/bookstore-api/internal/api/middleware"
)

// callerID extracts the authenticated user id set by the Auth middleware.
// Empty means the request is anonymous; protected routes never reach a
// handler in that state, optional-auth routes branch on it.
func callerID(c echo.Context) string {
	id, _ := c.Get(middleware.CtxUserID).(string)
	return id
}

// tokenClaims extracts the revocation identity of the presented token.
func tokenClaims(c echo.Context) (jti string, exp time.Time) {
	jti, _ = c.Get(middleware.CtxTokenJTI).(string)
	exp, _ = c.Get(middleware.CtxTokenExp).(time.Time)
	return jti, exp
}
