package validation

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/rahmadiangg/attendance-management/internal"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Struct validates a DTO against its `validate` tags and converts failures
// into a single 400 AppError listing the offending fields.
func Struct(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fieldMessage(fe))
	}
	return internal.NewValidationError(strings.Join(msgs, "; "), internal.ErrCodeValidationFailed)
}

// Var validates a single value, used for path and query parameters.
func Var(value interface{}, tag, name string) error {
	if err := validate.Var(value, tag); err != nil {
		return internal.NewValidationError(fmt.Sprintf("%s is invalid", name), internal.ErrCodeValidationFailed)
	}
	return nil
}

func fieldMessage(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
