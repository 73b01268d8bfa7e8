package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/exercise-tracker/internal/api/shared"
	"github.com/phrazzld/exercise-tracker/internal/domain"
	"github.com/phrazzld/exercise-tracker/internal/service"
	"github.com/phrazzld/exercise-tracker/internal/store"
)

// userNotFoundMessage is the body returned for unknown users on both routes.
const userNotFoundMessage = "User not found"

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	var validationErrs validator.ValidationErrors

	switch {
	case errors.Is(err, service.ErrUserNotFound),
		store.IsNotFoundError(err):
		return http.StatusNotFound

	case errors.Is(err, domain.ErrValidation),
		errors.As(err, &validationErrs),
		errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest

	case errors.Is(err, shared.ErrUnsupportedMediaType):
		return http.StatusUnsupportedMediaType

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	var validationErr *domain.ValidationError
	var validationErrs validator.ValidationErrors

	switch {
	case errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, store.ErrUserNotFound):
		return userNotFoundMessage

	case errors.As(err, &validationErr):
		// built from field names and fixed messages only
		return validationErr.Error()

	case errors.As(err, &validationErrs):
		return SanitizeValidationError(validationErrs)

	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid entity data"

	case errors.Is(err, shared.ErrUnsupportedMediaType):
		return "Unsupported content type"

	default:
		return "An unexpected error occurred"
	}
}

// SanitizeValidationError turns validator errors into "<field> <problem>"
// messages.
func SanitizeValidationError(errs validator.ValidationErrors) string {
	if len(errs) == 0 {
		return "Validation error"
	}

	messages := make([]string, 0, len(errs))
	for _, fe := range errs {
		messages = append(messages, fmt.Sprintf("%s %s", fe.Field(), getValidationTagMessage(fe.Tag())))
	}
	return strings.Join(messages, "; ")
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "is required"
	case "numeric":
		return "must be a number"
	default:
		return "is invalid"
	}
}
