package observability

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBusinessCounters(t *testing.T) {
	m := NewMetrics()

	m.UserCreated()
	m.UserCreated()
	m.ExerciseLogged(30)
	m.ExerciseLogged(-5)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.usersCreated))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.exercises))
	assert.Equal(t, 30.0, testutil.ToFloat64(m.minutesLogged))
}

func TestEventPublished(t *testing.T) {
	m := NewMetrics()

	m.EventPublished("user.created", nil)
	m.EventPublished("user.created", errors.New("broker down"))
	m.EventPublished("user.created", nil)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.eventsSent.WithLabelValues("user.created", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.eventsSent.WithLabelValues("user.created", "error")))
}

func TestObserveRequest(t *testing.T) {
	m := NewMetrics()

	m.ObserveRequest("/api/users", http.MethodPost, http.StatusOK, 20*time.Millisecond)
	m.ObserveRequest("/api/users", http.MethodPost, http.StatusBadRequest, 5*time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("/api/users", "POST", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("/api/users", "POST", "400")))

	families, err := m.Registry().Gather()
	require.NoError(t, err)

	var histogram *dto.Histogram
	for _, family := range families {
		if family.GetName() == "exercise_tracker_http_request_duration_seconds" {
			require.Len(t, family.GetMetric(), 1)
			histogram = family.GetMetric()[0].GetHistogram()
		}
	}
	require.NotNil(t, histogram, "latency histogram should be registered")
	assert.Equal(t, uint64(2), histogram.GetSampleCount())
}

func TestHandlerServesExposition(t *testing.T) {
	m := NewMetrics()
	m.UserCreated()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "exercise_tracker_users_created_total 1")
	assert.Contains(t, string(body), "go_goroutines")
}
