package validator

import (
	"github.com/SAP-F-2025/course-progress-service/internal/errors"
)

type ValidationError = errors.ValidationError
type ValidationErrors = errors.ValidationErrors

func ToValidationErrors(err error) ValidationErrors {
	return errors.ToValidationErrors(err)
}
