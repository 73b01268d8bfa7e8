package api

import (
	"net/http"

	"github.com/phrazzld/exercise-tracker/internal/api/shared"
	"github.com/phrazzld/exercise-tracker/internal/service"
)

// UserHandler handles user directory requests.
type UserHandler struct {
	userService service.UserService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// CreateUser handles POST /api/users requests
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	user, err := h.userService.CreateUser(r.Context(), req.Username)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, userToResponse(user))
}

// ListUsers handles GET /api/users requests
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.ListUsers(r.Context())
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	response := make([]UserResponse, 0, len(users))
	for i := range users {
		response = append(response, userToResponse(&users[i]))
	}

	shared.RespondWithJSON(w, r, http.StatusOK, response)
}
