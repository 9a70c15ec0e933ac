package middleware

import (
	"strings"

	"github.com/anonto42/synapse-forum/backend/internal/apperr"
	"github.com/anonto42/synapse-forum/backend/internal/auth"
	"github.com/labstack/echo/v4"
)

const identityKey = "identity"

// Authenticator verifies a raw bearer token
type Authenticator interface {
	Authenticate(token string) (*auth.Identity, error)
}

// Authenticate requires a valid "Authorization: Bearer <token>" header and stores the
// caller's identity in the echo context.
func Authenticate(authenticator Authenticator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				return apperr.Unauthenticated()
			}

			// Expecting "Bearer <token>"
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return apperr.Unauthenticated()
			}

			identity, err := authenticator.Authenticate(strings.TrimSpace(parts[1]))
			if err != nil {
				return err
			}

			c.Set(identityKey, identity)
			return next(c)
		}
	}
}

// IdentityFrom returns the identity stored by Authenticate, or nil on unguarded routes
func IdentityFrom(c echo.Context) *auth.Identity {
	identity, _ := c.Get(identityKey).(*auth.Identity)
	return identity
}
