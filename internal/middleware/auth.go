// Package middleware contains reusable HTTP middleware: the token auth gate,
// a Redis-backed rate limiter and a feed response cache.
package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/social-feed-api/internal/utils"
)

// TokenHeader is the request header carrying the auth token. The API has
// always used x-auth-token rather than an Authorization bearer scheme, and
// existing clients depend on it.
const TokenHeader = "x-auth-token"

// TokenAuth returns an Echo middleware that guards protected routes. A
// request without a token is rejected immediately; a present token is
// verified (signature, expiry, shape) and on success the embedded user ID is
// stored in the context under "user_id" for handlers to read. Rejection
// happens before any handler or database work runs.
func TokenAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := c.Request().Header.Get(TokenHeader)
			if raw == "" {
				return c.JSON(http.StatusUnauthorized, echo.Map{"msg": "No token, authorization denied"})
			}
			userID, err := utils.VerifyAuthToken(secret, raw)
			if err != nil {
				// Malformed, tampered and expired tokens all read the same
				// to the caller.
				return c.JSON(http.StatusUnauthorized, echo.Map{"msg": "Token is not valid"})
			}
			c.Set("user_id", userID)
			return next(c)
		}
	}
}
