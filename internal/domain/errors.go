// Package domain defines the core business entities and errors.
package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidID is returned when an ID is malformed or invalid.
	ErrInvalidID = errors.New("invalid ID")

	// ErrInvalidPage is returned when a list query asks for a page below 1.
	// Out-of-range pages are rejected, never clamped.
	ErrInvalidPage = errors.New("page must be an integer greater than 0")

	// ErrInvalidLimit is returned when a list query asks for a page size
	// outside the [1, 100] range.
	ErrInvalidLimit = errors.New("limit must be between 1 and 100")

	// ErrInvalidDueDate is returned when a due date is not a valid timestamp.
	ErrInvalidDueDate = errors.New("due date must be a valid timestamp")

	// ErrUnauthorized is returned when an operation is not permitted.
	ErrUnauthorized = errors.New("unauthorized operation")
)

// IsValidationError reports whether err represents rejected user input.
// The API layer maps these to 400 responses.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrValidation) ||
		errors.Is(err, ErrInvalidID) ||
		errors.Is(err, ErrInvalidPage) ||
		errors.Is(err, ErrInvalidLimit) ||
		errors.Is(err, ErrInvalidDueDate)
}
