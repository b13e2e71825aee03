// Package validator adapts go-playground/validator to echo.Validator.
package validator

import (
	"strings"

	domainerrors "polystore/internal/domain/errors"
	"polystore/internal/errors"

	"github.com/go-playground/validator/v10"
)

// RequestValidator validates bound request structs using their `validate` tags.
type RequestValidator struct {
	validate *validator.Validate
}

// New builds a RequestValidator.
func New() *RequestValidator {
	return &RequestValidator{
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Validate implements echo.Validator. Field failures become ErrValidationFailed with the
// offending fields listed in the details.
func (v *RequestValidator) Validate(i any) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return errors.WithStack(err)
	}

	failures := make([]string, 0, len(fieldErrs))
	for _, fieldErr := range fieldErrs {
		failures = append(failures, fieldErr.Field()+": "+fieldErr.Tag())
	}

	return domainerrors.ErrValidationFailed.WithDetails(strings.Join(failures, ", "))
}
