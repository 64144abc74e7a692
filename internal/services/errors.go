package services

import (
	"errors"
	"fmt"

	apperrors "github.com/SAP-F-2025/course-progress-service/internal/errors"
)

// ===== COMMON SERVICE ERRORS =====

var (
	ErrNotFound         = errors.New("resource not found")
	ErrForbidden        = errors.New("forbidden - insufficient permissions")
	ErrValidationFailed = errors.New("validation failed")
	ErrConflict         = errors.New("resource conflict")

	// Catalog
	ErrCourseNotFound = errors.New("course not found")
	ErrLevelNotFound  = errors.New("level not found")
	ErrVideoNotFound  = errors.New("video not found")
	ErrQuizNotFound   = errors.New("quiz not found")
	ErrExamNotFound   = errors.New("exam not found")

	// Enrollment
	ErrNotEnrolled      = errors.New("not enrolled in course")
	ErrAlreadyEnrolled  = errors.New("already enrolled in course")
	ErrInsufficientRole = errors.New("insufficient role permissions")
)

// ===== CUSTOM ERROR TYPES =====

type ValidationError = apperrors.ValidationError
type ValidationErrors = apperrors.ValidationErrors

// PermissionError records which gate refused the caller. It unwraps to the
// sentinel describing the reason.
type PermissionError struct {
	UserID     string `json:"user_id"`
	ResourceID uint   `json:"resource_id"`
	Resource   string `json:"resource"`
	Action     string `json:"action"`
	Reason     error  `json:"-"`
}

func (pe *PermissionError) Error() string {
	return fmt.Sprintf("permission denied: user %s cannot %s %s %d - %v",
		pe.UserID, pe.Action, pe.Resource, pe.ResourceID, pe.Reason)
}

func (pe *PermissionError) Unwrap() error {
	return pe.Reason
}

// ===== ERROR HELPERS =====

func NewValidationError(field, message string, value interface{}) *ValidationError {
	return apperrors.NewValidationError(field, message, value)
}

func NewPermissionError(userID string, resourceID uint, resource, action string, reason error) *PermissionError {
	return &PermissionError{
		UserID:     userID,
		ResourceID: resourceID,
		Resource:   resource,
		Action:     action,
		Reason:     reason,
	}
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrCourseNotFound) ||
		errors.Is(err, ErrLevelNotFound) ||
		errors.Is(err, ErrVideoNotFound) ||
		errors.Is(err, ErrQuizNotFound) ||
		errors.Is(err, ErrExamNotFound)
}

func IsUnauthorized(err error) bool {
	var pe *PermissionError
	return errors.As(err, &pe) ||
		errors.Is(err, ErrForbidden) ||
		errors.Is(err, ErrNotEnrolled) ||
		errors.Is(err, ErrInsufficientRole)
}

func IsValidation(err error) bool {
	if errors.Is(err, ErrValidationFailed) {
		return true
	}
	var ve apperrors.ValidationErrors
	return errors.As(err, &ve)
}

func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict) ||
		errors.Is(err, ErrAlreadyEnrolled)
}
