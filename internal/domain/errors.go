// Package domain defines the core business entities and errors.
package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is the base error for every entity validation failure.
	// Entity-specific errors wrap it so callers can classify with errors.Is
	// without enumerating each field error.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidID is returned when an ID is malformed or invalid.
	ErrInvalidID = errors.New("invalid ID")

	// ErrUnauthorized is returned when an operation is not permitted for
	// the requesting user.
	ErrUnauthorized = errors.New("unauthorized operation")
)

// IsValidationError reports whether err is or wraps a validation error.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrValidation)
}
