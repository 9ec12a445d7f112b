package middleware

import (
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/bookhaven/bookstore-api/internal/core/ports"
)

// Context keys set by Auth on authenticated requests.
const (
	CtxUserID   = "user_id"
	CtxEmail    = "email"
	CtxRole     = "role"
	CtxTokenJTI = "token_jti"
	CtxTokenExp = "token_exp"
)

// Auth resolves the request's credential into an identity. A missing token
// is a valid anonymous state: the request proceeds with no identity keys
// set. A present token that fails signature, expiry, or revocation checks
// is rejected outright, with messages that stay distinguishable from the
// "not signed in" a protected route produces for anonymous callers.
//
// Token lookup precedence: form body field, query parameter, cookie,
// x-access-token header.
func Auth(jwtSecret string, revoker ports.TokenRevoker) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := extractToken(c)
			if raw == "" {
				return next(c)
			}

			claims := jwt.MapClaims{}
			tkn, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
				if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
					return nil, jwt.ErrTokenSignatureInvalid
				}
				return []byte(jwtSecret), nil
			})
			if err != nil || !tkn.Valid {
				if errors.Is(err, jwt.ErrTokenExpired) {
					return echo.NewHTTPError(http.StatusUnauthorized, "token expired")
				}
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			jti, _ := claims["jti"].(string)
			if revoker != nil && jti != "" {
				// A revocation store outage is treated as not revoked.
				if revoked, err := revoker.IsRevoked(c.Request().Context(), jti); err == nil && revoked {
					return echo.NewHTTPError(http.StatusUnauthorized, "token revoked")
				}
			}

			c.Set(CtxUserID, claims["sub"])
			c.Set(CtxEmail, claims["email"])
			c.Set(CtxRole, claims["role"])
			c.Set(CtxTokenJTI, jti)
			if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
				c.Set(CtxTokenExp, exp.Time)
			} else {
				c.Set(CtxTokenExp, time.Time{})
			}

			return next(c)
		}
	}
}

func extractToken(c echo.Context) string {
	if tok := c.FormValue("token"); tok != "" {
		return tok
	}
	if tok := c.QueryParam("token"); tok != "" {
		return tok
	}
	if cookie, err := c.Cookie("token"); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	return c.Request().Header.Get("x-access-token")
}
