package middleware

import (
	"net/url"

	"github.com/anonto42/synapse-forum/backend/internal/apperr"
	"github.com/labstack/echo/v4"
)

// PathParam returns the named path parameter percent-decoded. echo matches on the raw
// path when the request escapes characters such as '@', leaving params encoded; otherwise
// they are already decoded and returned as is.
func PathParam(c echo.Context, name string) (string, error) {
	value := c.Param(name)
	if c.Request().URL.RawPath == "" {
		return value, nil
	}
	decoded, err := url.PathUnescape(value)
	if err != nil {
		return "", apperr.Validation("invalid "+name+" in path", err)
	}
	return decoded, nil
}
