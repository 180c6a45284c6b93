package validation

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/hakunamatata40/ZEVABA-YAN/internal/pkg/apperrors"
)

// Length limits shared by request DTOs
const (
	ContentMaxLength = 5000
	ReasonMaxLength  = 1000
	NameMinLength    = 2
	NameMaxLength    = 100
)

var (
	once     sync.Once
	instance *validator.Validate
)

func validate() *validator.Validate {
	once.Do(func() {
		instance = validator.New(validator.WithRequiredStructEnabled())
		_ = instance.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
			return strings.TrimSpace(fl.Field().String()) != ""
		})
	})
	return instance
}

// Struct validates a request struct against its `validate` tags. Failures are
// returned as an apperrors validation error carrying one entry per field.
func Struct(obj interface{}) error {
	err := validate().Struct(obj)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("validating request: %w", err)
	}

	details := make(map[string]interface{}, len(fieldErrs))
	messages := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msg := FormatFieldError(fe)
		details[fe.Field()] = msg
		messages = append(messages, msg)
	}

	return apperrors.NewCustomError(apperrors.ErrValidationFailed, strings.Join(messages, "; ")).
		WithCode("INVALID_REQUEST").
		WithDetails(details)
}

// FormatFieldError creates a human-readable validation error message
func FormatFieldError(e validator.FieldError) string {
	switch e.Tag() {
	case "required", "notblank":
		return e.Field() + " is required"
	case "min":
		return e.Field() + " must be at least " + e.Param()
	case "max":
		return e.Field() + " must be at most " + e.Param()
	case "gt":
		return e.Field() + " must be greater than " + e.Param()
	case "oneof":
		return e.Field() + " must be one of: " + e.Param()
	default:
		return e.Field() + " validation failed: " + e.Tag()
	}
}
