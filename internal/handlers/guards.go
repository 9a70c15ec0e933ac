package handlers

import (
	"github.com/anonto42/synapse-forum/backend/internal/middleware"
	"github.com/labstack/echo/v4"
)

// Guards holds the access checks that individual routes opt into
type Guards struct {
	Authenticate echo.MiddlewareFunc
	Admin        echo.MiddlewareFunc
}

// self requires a token whose email matches the :email path parameter
func (g Guards) self() []echo.MiddlewareFunc {
	return []echo.MiddlewareFunc{g.Authenticate, middleware.RequireSelf("email")}
}

func (g Guards) admin() []echo.MiddlewareFunc {
	return []echo.MiddlewareFunc{g.Authenticate, g.Admin}
}
