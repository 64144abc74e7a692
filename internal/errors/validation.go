package errors

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// ValidationError describes one rejected request field.
type ValidationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
	Rule    string      `json:"rule,omitempty"`
}

type ValidationErrors []ValidationError

func (ve ValidationErrors) Error() string {
	switch len(ve) {
	case 0:
		return "validation failed"
	case 1:
		return fmt.Sprintf("validation failed: %s %s", ve[0].Field, ve[0].Message)
	default:
		return fmt.Sprintf("validation failed: %d field errors", len(ve))
	}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
}

func NewValidationError(field, message string, value interface{}) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
		Value:   value,
	}
}

func NewValidationErrorWithRule(field, message, rule string, value interface{}) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
		Value:   value,
		Rule:    rule,
	}
}

// ToValidationErrors converts go-playground field errors. Any other error
// yields an empty slice.
func ToValidationErrors(err error) ValidationErrors {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return nil
	}

	out := make(ValidationErrors, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		out = append(out, ValidationError{
			Field:   fe.Field(),
			Message: messageFor(fe),
			Value:   fe.Value(),
			Rule:    fe.Tag(),
		})
	}
	return out
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must be less than or equal to %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	case "progress_percent":
		return "must be between 0 and 100"
	case "user_role":
		return "must be a valid user role (student, admin)"
	default:
		return fmt.Sprintf("validation failed for rule '%s'", fe.Tag())
	}
}
