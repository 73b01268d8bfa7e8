package service

import (
	"errors"
	"fmt"

	"github.com/phrazzld/exercise-tracker/internal/store"
)

// Service sentinel errors, checked by callers with errors.Is.
var (
	// ErrUserNotFound indicates the referenced user does not exist, either
	// because no row matches or because the id is not a valid identifier.
	ErrUserNotFound = errors.New("user not found")
)

// ServiceError wraps unexpected failures with the operation that produced them.
type ServiceError struct {
	// Service is the failing service, e.g. "exercise"
	Service string
	// Operation is the failing operation, e.g. "add_exercise"
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error
	Err error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s service %s failed: %s: %v", e.Service, e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("%s service %s failed: %s", e.Service, e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewServiceError wraps err for the given service operation.
// Missing users are reported as ErrUserNotFound without wrapping.
func NewServiceError(service, operation, message string, err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, ErrUserNotFound) || errors.Is(err, store.ErrUserNotFound) {
		return ErrUserNotFound
	}

	return &ServiceError{
		Service:   service,
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
