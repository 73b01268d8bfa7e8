package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "exercise_tracker"

// Metrics holds the tracker's Prometheus collectors.
type Metrics struct {
	registry *prometheus.Registry

	httpRequests  *prometheus.CounterVec
	httpDuration  *prometheus.HistogramVec
	usersCreated  prometheus.Counter
	exercises     prometheus.Counter
	minutesLogged prometheus.Counter
	eventsSent    *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them, together with the
// Go runtime and process collectors, on a dedicated registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Number of HTTP requests by route, method and status code.",
		}, []string{"route", "method", "code"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by route and method.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method"}),
		usersCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "users",
			Name:      "created_total",
			Help:      "Number of users created.",
		}),
		exercises: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "exercises",
			Name:      "logged_total",
			Help:      "Number of exercises logged.",
		}),
		minutesLogged: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "exercises",
			Name:      "minutes_logged_total",
			Help:      "Sum of logged exercise durations in minutes.",
		}),
		eventsSent: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "events",
			Name:      "published_total",
			Help:      "Number of domain events handed to Kafka by type and result.",
		}, []string{"event_type", "result"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.httpRequests,
		m.httpDuration,
		m.usersCreated,
		m.exercises,
		m.minutesLogged,
		m.eventsSent,
	)
	return m
}

// Registry exposes the underlying registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// ObserveRequest records one finished HTTP request.
func (m *Metrics) ObserveRequest(route, method string, status int, elapsed time.Duration) {
	m.httpRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(route, method).Observe(elapsed.Seconds())
}

// UserCreated increments the created users counter.
func (m *Metrics) UserCreated() {
	m.usersCreated.Inc()
}

// ExerciseLogged counts one exercise and its duration.
// Negative durations are counted but not added to the minutes total.
func (m *Metrics) ExerciseLogged(durationMinutes int) {
	m.exercises.Inc()
	if durationMinutes > 0 {
		m.minutesLogged.Add(float64(durationMinutes))
	}
}

// EventPublished records the outcome of a Kafka publish.
func (m *Metrics) EventPublished(eventType string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.eventsSent.WithLabelValues(eventType, result).Inc()
}
