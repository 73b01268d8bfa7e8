package api_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/phrazzld/exercise-tracker/internal/api"
	"github.com/phrazzld/exercise-tracker/internal/api/shared"
	"github.com/phrazzld/exercise-tracker/internal/domain"
	"github.com/phrazzld/exercise-tracker/internal/mocks"
	"github.com/phrazzld/exercise-tracker/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newRouter(users service.UserService, exercises service.ExerciseService) http.Handler {
	userHandler := api.NewUserHandler(users)
	exerciseHandler := api.NewExerciseHandler(exercises)

	r := chi.NewRouter()
	r.Post("/api/users", userHandler.CreateUser)
	r.Get("/api/users", userHandler.ListUsers)
	r.Post("/api/users/{_id}/exercises", exerciseHandler.AddExercise)
	r.Get("/api/users/{_id}/logs", exerciseHandler.GetLog)
	return r
}

func postForm(path string, values url.Values) *http.Request {
	r := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return r
}

func serve(h http.Handler, r *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, r)
	return rec
}

func mustUser(t *testing.T, name string) *domain.User {
	t.Helper()
	u, err := domain.NewUser(name)
	require.NoError(t, err)
	return u
}

func TestCreateUser(t *testing.T) {
	t.Run("form body", func(t *testing.T) {
		users := &mocks.TestifyMockUserService{}
		user := mustUser(t, "fcc_test")
		users.On("CreateUser", mock.Anything, "fcc_test").Return(user, nil)

		rec := serve(newRouter(users, nil), postForm("/api/users", url.Values{"username": {"fcc_test"}}))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"username":"fcc_test","_id":"`+user.ID.String()+`"}`, rec.Body.String())
		users.AssertExpectations(t)
	})

	t.Run("json body", func(t *testing.T) {
		users := &mocks.TestifyMockUserService{}
		user := mustUser(t, "json_user")
		users.On("CreateUser", mock.Anything, "json_user").Return(user, nil)

		r := httptest.NewRequest(http.MethodPost, "/api/users", strings.NewReader(`{"username":"json_user"}`))
		r.Header.Set("Content-Type", "application/json")
		rec := serve(newRouter(users, nil), r)

		assert.Equal(t, http.StatusOK, rec.Code)
		users.AssertExpectations(t)
	})

	t.Run("missing username", func(t *testing.T) {
		users := &mocks.TestifyMockUserService{}

		rec := serve(newRouter(users, nil), postForm("/api/users", url.Values{}))

		require.Equal(t, http.StatusBadRequest, rec.Code)
		var body shared.ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "username is required", body.Error)
		users.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything)
	})

	t.Run("blank username rejected by domain", func(t *testing.T) {
		users := &mocks.TestifyMockUserService{}
		users.On("CreateUser", mock.Anything, "   ").
			Return(nil, domain.NewValidationError("username", "is required", domain.ErrEmptyUsername))

		rec := serve(newRouter(users, nil), postForm("/api/users", url.Values{"username": {"   "}}))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "username is required")
	})

	t.Run("store failure is sanitized", func(t *testing.T) {
		users := &mocks.TestifyMockUserService{}
		users.On("CreateUser", mock.Anything, "alice").
			Return(nil, errors.New("dial tcp 10.0.0.1:5432: connection refused"))

		rec := serve(newRouter(users, nil), postForm("/api/users", url.Values{"username": {"alice"}}))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Contains(t, rec.Body.String(), "An unexpected error occurred")
		assert.NotContains(t, rec.Body.String(), "5432")
	})
}

func TestListUsers(t *testing.T) {
	u1, u2 := mustUser(t, "u1"), mustUser(t, "u2")

	users := &mocks.TestifyMockUserService{}
	users.On("ListUsers", mock.Anything).Return([]domain.User{*u1, *u2}, nil)

	rec := serve(newRouter(users, nil), httptest.NewRequest(http.MethodGet, "/api/users", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var body []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body, 2)
	assert.Equal(t, map[string]any{"username": "u1", "_id": u1.ID.String()}, body[0])
	assert.Equal(t, map[string]any{"username": "u2", "_id": u2.ID.String()}, body[1])

	empty := &mocks.TestifyMockUserService{}
	empty.On("ListUsers", mock.Anything).Return([]domain.User{}, nil)
	rec = serve(newRouter(empty, nil), httptest.NewRequest(http.MethodGet, "/api/users", nil))
	assert.Equal(t, "[]\n", rec.Body.String())
}

func TestAddExercise(t *testing.T) {
	user := mustUser(t, "fcc_test")
	path := "/api/users/" + user.ID.String() + "/exercises"

	t.Run("success", func(t *testing.T) {
		exercise, err := domain.NewExercise(user.ID, "run", 30, time.Date(2023, 1, 15, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)

		exercises := &mocks.TestifyMockExerciseService{}
		exercises.On("AddExercise", mock.Anything, service.AddExerciseInput{
			UserID:      user.ID.String(),
			Description: "run",
			Duration:    "30",
			Date:        "2023-01-15",
		}).Return(&service.ExerciseEntry{User: *user, Exercise: *exercise}, nil)

		rec := serve(newRouter(nil, exercises), postForm(path, url.Values{
			"description": {"run"},
			"duration":    {"30"},
			"date":        {"2023-01-15"},
		}))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{
			"username": "fcc_test",
			"description": "run",
			"duration": 30,
			"date": "Sun Jan 15 2023",
			"_id": "`+user.ID.String()+`"
		}`, rec.Body.String())
		exercises.AssertExpectations(t)
	})

	t.Run("json numbers are accepted", func(t *testing.T) {
		exercise, err := domain.NewExercise(user.ID, "swim", 45, time.Time{})
		require.NoError(t, err)

		exercises := &mocks.TestifyMockExerciseService{}
		exercises.On("AddExercise", mock.Anything, mock.MatchedBy(func(in service.AddExerciseInput) bool {
			return in.Duration == "45" && in.Date == ""
		})).Return(&service.ExerciseEntry{User: *user, Exercise: *exercise}, nil)

		r := httptest.NewRequest(http.MethodPost, path, strings.NewReader(`{"description":"swim","duration":45}`))
		r.Header.Set("Content-Type", "application/json")
		rec := serve(newRouter(nil, exercises), r)

		assert.Equal(t, http.StatusOK, rec.Code)
		exercises.AssertExpectations(t)
	})

	t.Run("unknown user", func(t *testing.T) {
		exercises := &mocks.TestifyMockExerciseService{}
		exercises.On("AddExercise", mock.Anything, mock.Anything).Return(nil, service.ErrUserNotFound)

		rec := serve(newRouter(nil, exercises), postForm("/api/users/"+uuid.NewString()+"/exercises", url.Values{
			"description": {"run"},
			"duration":    {"30"},
		}))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "\"User not found\"\n", rec.Body.String())
	})

	t.Run("validation", func(t *testing.T) {
		tests := []struct {
			name    string
			values  url.Values
			message string
		}{
			{"missing description", url.Values{"duration": {"30"}}, "description is required"},
			{"missing duration", url.Values{"description": {"run"}}, "duration is required"},
			{"non-numeric duration", url.Values{"description": {"run"}, "duration": {"long"}}, "duration must be a number"},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				exercises := &mocks.TestifyMockExerciseService{}

				rec := serve(newRouter(nil, exercises), postForm(path, tt.values))

				require.Equal(t, http.StatusBadRequest, rec.Code)
				var body shared.ErrorResponse
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
				assert.Equal(t, tt.message, body.Error)
				exercises.AssertNotCalled(t, "AddExercise", mock.Anything, mock.Anything)
			})
		}
	})

	t.Run("duration out of range", func(t *testing.T) {
		_, rangeErr := domain.ParseDuration("3000000000")
		require.Error(t, rangeErr)

		exercises := &mocks.TestifyMockExerciseService{}
		exercises.On("AddExercise", mock.Anything, mock.Anything).Return(nil, rangeErr)

		rec := serve(newRouter(nil, exercises), postForm(path, url.Values{
			"description": {"run"},
			"duration":    {"3000000000"},
		}))

		require.Equal(t, http.StatusBadRequest, rec.Code)
		var body shared.ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "duration must be a number", body.Error)
	})

	t.Run("unsupported content type", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, path, strings.NewReader("<x/>"))
		r.Header.Set("Content-Type", "text/xml")

		rec := serve(newRouter(nil, &mocks.TestifyMockExerciseService{}), r)
		assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
	})
}

func TestGetLog(t *testing.T) {
	user := mustUser(t, "fcc_test")
	path := "/api/users/" + user.ID.String() + "/logs"

	t.Run("success passes query through", func(t *testing.T) {
		jan15, err := domain.NewExercise(user.ID, "run", 30, time.Date(2023, 1, 15, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)

		exercises := &mocks.TestifyMockExerciseService{}
		exercises.On("GetLog", mock.Anything, service.LogQuery{
			UserID: user.ID.String(),
			From:   "2023-01-10",
			To:     "2023-01-31",
			Limit:  "5",
		}).Return(&service.ExerciseLog{User: *user, Count: 1, Exercises: []domain.Exercise{*jan15}}, nil)

		rec := serve(newRouter(nil, exercises), httptest.NewRequest(http.MethodGet,
			path+"?from=2023-01-10&to=2023-01-31&limit=5", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{
			"username": "fcc_test",
			"count": 1,
			"_id": "`+user.ID.String()+`",
			"log": [{"description": "run", "duration": 30, "date": "Sun Jan 15 2023"}]
		}`, rec.Body.String())
	})

	t.Run("empty log is an empty array", func(t *testing.T) {
		exercises := &mocks.TestifyMockExerciseService{}
		exercises.On("GetLog", mock.Anything, mock.Anything).
			Return(&service.ExerciseLog{User: *user}, nil)

		rec := serve(newRouter(nil, exercises), httptest.NewRequest(http.MethodGet, path, nil))
		assert.Contains(t, rec.Body.String(), `"log":[]`)
		assert.Contains(t, rec.Body.String(), `"count":0`)
	})

	t.Run("unknown user", func(t *testing.T) {
		exercises := &mocks.TestifyMockExerciseService{}
		exercises.On("GetLog", mock.Anything, mock.Anything).Return(nil, service.ErrUserNotFound)

		rec := serve(newRouter(nil, exercises), httptest.NewRequest(http.MethodGet, "/api/users/nope/logs", nil))

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "text/plain; charset=utf-8", rec.Header().Get("Content-Type"))
		assert.Equal(t, "User not found", rec.Body.String())
	})

	t.Run("invalid bound", func(t *testing.T) {
		exercises := &mocks.TestifyMockExerciseService{}
		exercises.On("GetLog", mock.Anything, mock.Anything).
			Return(nil, domain.NewValidationError("from", "has invalid format", domain.ErrInvalidDate))

		rec := serve(newRouter(nil, exercises), httptest.NewRequest(http.MethodGet, path+"?from=soon", nil))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "from has invalid format")
	})
}
