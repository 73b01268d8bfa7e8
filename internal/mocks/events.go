package mocks

import (
	"context"
	"sync"

	"github.com/phrazzld/exercise-tracker/internal/events"
)

// MockEventEmitter implements events.EventEmitter and records emitted events.
type MockEventEmitter struct {
	EmitEventFn func(ctx context.Context, event *events.Event) error

	mu     sync.Mutex
	Events []*events.Event
}

// EmitEvent implements the EventEmitter interface
func (m *MockEventEmitter) EmitEvent(ctx context.Context, event *events.Event) error {
	m.mu.Lock()
	m.Events = append(m.Events, event)
	m.mu.Unlock()

	if m.EmitEventFn != nil {
		return m.EmitEventFn(ctx, event)
	}
	return nil
}

// Types returns the types of the recorded events in order.
func (m *MockEventEmitter) Types() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	types := make([]string, 0, len(m.Events))
	for _, e := range m.Events {
		types = append(types, e.Type)
	}
	return types
}

// MockMetricsRecorder counts business metric calls.
type MockMetricsRecorder struct {
	mu              sync.Mutex
	UsersCreated    int
	ExercisesLogged int
	MinutesLogged   int
}

// UserCreated implements service.MetricsRecorder
func (m *MockMetricsRecorder) UserCreated() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UsersCreated++
}

// ExerciseLogged implements service.MetricsRecorder
func (m *MockMetricsRecorder) ExerciseLogged(durationMinutes int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ExercisesLogged++
	m.MinutesLogged += durationMinutes
}
