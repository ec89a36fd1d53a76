package domain

import (
	"errors"
	"fmt"
)

// Common domain errors used across the application.
var (
	// ErrValidation is returned when input fails validation.
	// It is usually wrapped by a ValidationError naming the offending field.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidID is returned when an identifier is not a positive integer.
	ErrInvalidID = errors.New("invalid ID")

	// ErrUnsupportedLanguage is returned for a language tag outside the supported set.
	ErrUnsupportedLanguage = errors.New("unsupported language")

	// ErrInvalidSetName is returned when a set name contains characters other
	// than letters, digits, space, hyphen and underscore.
	ErrInvalidSetName = errors.New("invalid set name")

	// ErrEmptyContent is returned when a required field is empty.
	ErrEmptyContent = errors.New("content cannot be empty")

	// ErrUnauthorized is returned when credentials do not match.
	ErrUnauthorized = errors.New("unauthorized operation")
)

// ValidationError describes a rejected input field.
// It always wraps ErrValidation so callers can test with errors.Is.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// NewValidationError creates a ValidationError for field. err is the more
// specific cause (for example ErrUnsupportedLanguage); it may be nil.
func NewValidationError(field, message string, err error) *ValidationError {
	return &ValidationError{Field: field, Message: message, Err: err}
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Err != nil && !errors.Is(e.Err, ErrValidation) {
		return fmt.Sprintf("%s: %s %s: %v", ErrValidation, e.Field, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s %s", ErrValidation, e.Field, e.Message)
}

// Unwrap exposes both ErrValidation and the specific cause.
func (e *ValidationError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrValidation}
	}
	if errors.Is(e.Err, ErrValidation) {
		return []error{e.Err}
	}
	return []error{ErrValidation, e.Err}
}

// IsValidationError reports whether err is, or wraps, a validation failure.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrValidation)
}
