package api

import (
	"errors"
	"net/http"

	"github.com/phrazzld/exercise-tracker/internal/api/shared"
	"github.com/phrazzld/exercise-tracker/internal/platform/logger"
	"github.com/phrazzld/exercise-tracker/internal/service"
)

// ExerciseHandler handles exercise log requests.
type ExerciseHandler struct {
	exerciseService service.ExerciseService
}

// NewExerciseHandler creates a new ExerciseHandler
func NewExerciseHandler(exerciseService service.ExerciseService) *ExerciseHandler {
	return &ExerciseHandler{exerciseService: exerciseService}
}

// AddExercise handles POST /api/users/{_id}/exercises requests.
// An unknown user yields 400 with the JSON string "User not found".
func (h *ExerciseHandler) AddExercise(w http.ResponseWriter, r *http.Request) {
	var req AddExerciseRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	entry, err := h.exerciseService.AddExercise(r.Context(), service.AddExerciseInput{
		UserID:      userIDFromPath(r),
		Description: req.Description,
		Duration:    string(req.Duration),
		Date:        string(req.Date),
	})
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			logger.FromContext(r.Context()).Debug("exercise for unknown user", "user_id", userIDFromPath(r))
			shared.RespondWithJSON(w, r, http.StatusBadRequest, userNotFoundMessage)
			return
		}
		handleServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, entryToResponse(entry))
}

// GetLog handles GET /api/users/{_id}/logs requests.
// An unknown user yields 404 with the plain-text body "User not found".
func (h *ExerciseHandler) GetLog(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	log, err := h.exerciseService.GetLog(r.Context(), service.LogQuery{
		UserID: userIDFromPath(r),
		From:   query.Get("from"),
		To:     query.Get("to"),
		Limit:  query.Get("limit"),
	})
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			shared.RespondWithText(w, r, http.StatusNotFound, userNotFoundMessage)
			return
		}
		handleServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, logToResponse(log))
}
