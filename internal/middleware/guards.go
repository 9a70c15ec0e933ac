package middleware

import (
	"context"

	"github.com/anonto42/synapse-forum/backend/internal/apperr"
	"github.com/anonto42/synapse-forum/backend/internal/auth"
	"github.com/labstack/echo/v4"
)

// RequireSelf allows the request only when the path parameter param equals the
// authenticated email. It must run after Authenticate.
func RequireSelf(param string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identity := IdentityFrom(c)
			if identity == nil {
				return apperr.Unauthenticated()
			}
			resourceEmail, err := PathParam(c, param)
			if err != nil {
				return err
			}
			if !auth.AuthorizeSelf(identity, resourceEmail) {
				return apperr.Forbidden()
			}
			return next(c)
		}
	}
}

// AdminChecker decides whether an identity holds the admin role
type AdminChecker interface {
	AuthorizeAdmin(ctx context.Context, identity *auth.Identity) (bool, error)
}

// RequireAdmin allows the request only for stored admins. It must run after Authenticate.
func RequireAdmin(checker AdminChecker) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identity := IdentityFrom(c)
			if identity == nil {
				return apperr.Unauthenticated()
			}
			ok, err := checker.AuthorizeAdmin(c.Request().Context(), identity)
			if err != nil {
				return apperr.Upstream("failed to verify role", err)
			}
			if !ok {
				return apperr.Forbidden()
			}
			return next(c)
		}
	}
}
