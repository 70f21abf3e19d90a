package service

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	apperrors "entity-tracker-backend/internal/errors"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

// NewValidator returns a validator that reports fields by their JSON name.
// notblank rejects whitespace-only strings, matching the update path.
func NewValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("notblank", validators.NotBlank)
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validateStruct runs v over req and converts the first failure to a ValidationError
func validateStruct(v *validator.Validate, req interface{}) error {
	err := v.Struct(req)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return fmt.Errorf("validation failed: %w", err)
	}

	fe := fieldErrs[0]
	var message string
	switch fe.Tag() {
	case "required", "notblank":
		message = "is required"
	case "max":
		message = fmt.Sprintf("must be at most %s characters", fe.Param())
	case "min", "gte":
		if fe.Kind() == reflect.Float64 || fe.Kind() == reflect.Float32 {
			message = fmt.Sprintf("must be at least %s", fe.Param())
		} else {
			message = fmt.Sprintf("must be at least %s characters", fe.Param())
		}
	default:
		message = fmt.Sprintf("failed %s validation", fe.Tag())
	}
	return apperrors.NewValidationError(fe.Field(), message)
}
