package api

import (
	"bytes"
	"encoding/json"

	"github.com/phrazzld/exercise-tracker/internal/domain"
	"github.com/phrazzld/exercise-tracker/internal/service"
)

// flexString accepts a JSON string or number, so JSON clients may send
// "duration": 30 as well as "duration": "30".
type flexString string

// UnmarshalJSON implements json.Unmarshaler.
func (f *flexString) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = flexString(n.String())
	return nil
}

// CreateUserRequest is the payload of POST /api/users.
type CreateUserRequest struct {
	Username string `json:"username" validate:"required"`
}

// DecodeForm implements shared.FormDecoder.
func (req *CreateUserRequest) DecodeForm(get func(string) string) {
	req.Username = get("username")
}

// AddExerciseRequest is the payload of POST /api/users/{_id}/exercises.
// Date is optional; Duration must be numeric.
type AddExerciseRequest struct {
	Description string     `json:"description" validate:"required"`
	Duration    flexString `json:"duration"    validate:"required,numeric"`
	Date        flexString `json:"date"`
}

// DecodeForm implements shared.FormDecoder.
func (req *AddExerciseRequest) DecodeForm(get func(string) string) {
	req.Description = get("description")
	req.Duration = flexString(get("duration"))
	req.Date = flexString(get("date"))
}

// UserResponse is the public projection of a user.
type UserResponse struct {
	Username string `json:"username"`
	ID       string `json:"_id"`
}

// ExerciseResponse is returned after logging an exercise. ID is the
// owning user's id.
type ExerciseResponse struct {
	Username    string `json:"username"`
	Description string `json:"description"`
	Duration    int    `json:"duration"`
	Date        string `json:"date"`
	ID          string `json:"_id"`
}

// LogEntry is one exercise in a log response.
type LogEntry struct {
	Description string `json:"description"`
	Duration    int    `json:"duration"`
	Date        string `json:"date"`
}

// LogResponse is returned by GET /api/users/{_id}/logs.
type LogResponse struct {
	Username string     `json:"username"`
	Count    int        `json:"count"`
	ID       string     `json:"_id"`
	Log      []LogEntry `json:"log"`
}

func userToResponse(user *domain.User) UserResponse {
	return UserResponse{
		Username: user.Username,
		ID:       user.ID.String(),
	}
}

func entryToResponse(entry *service.ExerciseEntry) ExerciseResponse {
	return ExerciseResponse{
		Username:    entry.User.Username,
		Description: entry.Exercise.Description,
		Duration:    entry.Exercise.Duration,
		Date:        entry.Exercise.FormattedDate(),
		ID:          entry.User.ID.String(),
	}
}

func logToResponse(log *service.ExerciseLog) LogResponse {
	entries := make([]LogEntry, 0, len(log.Exercises))
	for _, e := range log.Exercises {
		entries = append(entries, LogEntry{
			Description: e.Description,
			Duration:    e.Duration,
			Date:        e.FormattedDate(),
		})
	}

	return LogResponse{
		Username: log.User.Username,
		Count:    log.Count,
		ID:       log.User.ID.String(),
		Log:      entries,
	}
}
