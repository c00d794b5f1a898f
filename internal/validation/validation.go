// Package validation binds request data and reduces validation failures to
// 422 errors with per-field detail.
package validation

import (
	"fmt"
	"net/http"
	"reflect"

	"github.com/deppfellow/skillhub/internal/errs"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// Validatable is implemented by request payload types.
type Validatable interface {
	Validate() error
}

// BindAndValidate binds path parameters, query parameters, and the body
// into payload, then validates it.
func BindAndValidate(c echo.Context, payload Validatable) error {
	if err := c.Bind(payload); err != nil {
		return bindError(err)
	}

	if err := payload.Validate(); err != nil {
		return errs.NewValidationError("Validation failed", extractValidationError(err))
	}

	return nil
}

func bindError(err error) error {
	var echoErr *echo.HTTPError
	if errors.As(err, &echoErr) {
		if echoErr.Code == http.StatusUnsupportedMediaType {
			return errs.NewValidationError("Unsupported content type", nil)
		}
		if msg, ok := echoErr.Message.(string); ok {
			return errs.NewValidationError(msg, nil)
		}
	}
	return errs.NewValidationError("Invalid request payload", nil)
}

func extractValidationError(err error) []errs.FieldError {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return []errs.FieldError{{Field: "request", Error: err.Error()}}
	}

	fieldErrors := make([]errs.FieldError, 0, len(validationErrors))
	for _, err := range validationErrors {
		fieldErrors = append(fieldErrors, errs.FieldError{
			Field: err.Field(),
			Error: fieldMessage(err),
		})
	}
	return fieldErrors
}

func fieldMessage(err validator.FieldError) string {
	isString := err.Type().Kind() == reflect.String

	switch err.Tag() {
	case "required":
		return "is required"
	case "min":
		if isString {
			return fmt.Sprintf("must be at least %s characters", err.Param())
		}
		return fmt.Sprintf("must be at least %s", err.Param())
	case "max":
		if isString {
			return fmt.Sprintf("must not exceed %s characters", err.Param())
		}
		return fmt.Sprintf("must not exceed %s", err.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", err.Param())
	case "gte":
		return fmt.Sprintf("must be at least %s", err.Param())
	case "lte":
		return fmt.Sprintf("must not exceed %s", err.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", err.Param())
	case "email":
		return "must be a valid email address"
	case "uuid":
		return "must be a valid UUID"
	}

	if err.Param() != "" {
		return fmt.Sprintf("%s:%s", err.Tag(), err.Param())
	}
	return err.Tag()
}
