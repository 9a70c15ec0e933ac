package handlers

import (
	"github.com/anonto42/synapse-forum/backend/internal/apperr"
	"github.com/labstack/echo/v4"
)

// storeError passes classified repository errors through and turns anything else into an
// upstream failure carrying the route's fixed message.
func storeError(err error, message string) error {
	if apperr.KindOf(err) != "" {
		return err
	}
	return apperr.Upstream(message, err)
}

// bindAndValidate decodes the request body into req and runs its validation tags
func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return apperr.Validation("Invalid request payload", err)
	}
	if c.Echo().Validator == nil {
		return nil
	}
	return c.Validate(req)
}
