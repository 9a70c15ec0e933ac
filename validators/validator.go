package validators

import (
	"github.com/anonto42/synapse-forum/backend/internal/apperr"
	"github.com/go-playground/validator/v10"
)

// CustomValidator adapts go-playground/validator to echo.Validator
type CustomValidator struct {
	validator *validator.Validate
}

func NewValidator() *CustomValidator {
	return &CustomValidator{validator: validator.New()}
}

// Validate checks the struct tags of i and reports failures as validation errors
func (cv *CustomValidator) Validate(i interface{}) error {
	if err := cv.validator.Struct(i); err != nil {
		return apperr.Validation(err.Error(), err)
	}
	return nil
}
