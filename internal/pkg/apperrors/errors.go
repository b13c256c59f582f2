package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrCourseNotFound     = errors.New("course not found")
	ErrLectureNotFound    = errors.New("lecture not found")
	ErrInstructorNotFound = errors.New("instructor not found")
	ErrUserNotFound       = errors.New("user not found")

	// Scheduling errors
	ErrSchedulingConflict = errors.New("instructor already has a lecture on this date")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")

	// Validation errors
	ErrValidationFailed   = errors.New("validation failed")
	ErrEmailAlreadyExists = errors.New("email already exists")
)

// NewNotFoundError creates a custom error wrapping the given not-found
// sentinel with a message.
func NewNotFoundError(sentinel error, message string) error {
	return &CustomError{
		Err:     sentinel,
		Message: message,
	}
}

// NewSchedulingConflictError creates a conflict error carrying the conflicting
// lecture's title and date for user display.
func NewSchedulingConflictError(message string, details map[string]interface{}) error {
	return &CustomError{
		Err:     ErrSchedulingConflict,
		Message: message,
		Details: details,
	}
}

// NewValidationError creates a validation error with a message.
func NewValidationError(message string) error {
	return &CustomError{
		Err:     ErrValidationFailed,
		Message: message,
	}
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
	Details map[string]interface{}
}

// Error implements the error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap
func (e *CustomError) Unwrap() error {
	return e.Err
}

// WithDetails adds context details to the error
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}
