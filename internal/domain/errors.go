// Package domain defines the core business entities and errors.
package domain

import (
	"errors"
	"fmt"
)

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is usually wrapped in a ValidationError naming the offending field.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidFormat is returned when data is not in the expected format.
	ErrInvalidFormat = errors.New("invalid format")

	// ErrInvalidID is returned when an ID is malformed or invalid.
	ErrInvalidID = errors.New("invalid ID")
)

// Field-level validation errors.
var (
	ErrEmptyUserID      = errors.New("user ID cannot be empty")
	ErrEmptyUsername    = errors.New("username cannot be empty")
	ErrEmptyExerciseID  = errors.New("exercise ID cannot be empty")
	ErrEmptyDescription = errors.New("description cannot be empty")
	ErrInvalidDuration  = errors.New("duration must be a number")
	ErrInvalidDate      = errors.New("date must be a calendar date")
	ErrEmptyDate        = errors.New("date cannot be empty")
)

// ValidationError describes a single field that failed validation.
// It wraps one of the sentinel errors above so callers can use errors.Is.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Message)
}

// Unwrap exposes the wrapped sentinel error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Is reports every ValidationError as ErrValidation, in addition to the
// wrapped sentinel.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// NewValidationError creates a ValidationError for the given field.
func NewValidationError(field, message string, err error) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
		Err:     err,
	}
}
