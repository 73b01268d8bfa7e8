package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/exercise-tracker/internal/api/shared"
)

// UserIDParam is the chi path parameter holding the user id.
const UserIDParam = "_id"

// userIDFromPath returns the raw user id path parameter. Parsing is left to
// the service so a malformed id is reported like an unknown user.
func userIDFromPath(r *http.Request) string {
	return chi.URLParam(r, UserIDParam)
}

// decodeAndValidate fills req from the request body and validates it.
// On failure it writes the error response and returns false.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, req shared.FormDecoder) bool {
	if err := shared.DecodeRequest(w, r, req); err != nil {
		if errors.Is(err, shared.ErrUnsupportedMediaType) {
			shared.RespondWithErrorAndLog(w, r, http.StatusUnsupportedMediaType, GetSafeErrorMessage(err), err)
			return false
		}
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request format", err)
		return false
	}

	if err := shared.ValidateRequest(req); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(validationErrs), err)
			return false
		}
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Validation error", err)
		return false
	}

	return true
}

// handleServiceError writes the mapped status and safe message for err.
func handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
}
