package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Event types published by the tracker.
const (
	TypeUserCreated    = "user.created"
	TypeExerciseLogged = "exercise.logged"
)

// Event is a domain notification published after a successful write.
// Key is used as the partition key by transports that support one.
type Event struct {
	ID        uuid.UUID       `json:"id"`
	Type      string          `json:"type"`
	Key       string          `json:"key"`
	Payload   json.RawMessage `json:"payload"`
	CreatedAt time.Time       `json:"created_at"`
}

// UserCreatedPayload is the payload of a user.created event.
type UserCreatedPayload struct {
	UserID   uuid.UUID `json:"user_id"`
	Username string    `json:"username"`
}

// ExerciseLoggedPayload is the payload of an exercise.logged event.
type ExerciseLoggedPayload struct {
	ExerciseID  uuid.UUID `json:"exercise_id"`
	UserID      uuid.UUID `json:"user_id"`
	Description string    `json:"description"`
	Duration    int       `json:"duration"`
	Date        string    `json:"date"`
}

// UnmarshalPayload decodes the event payload into v.
func (e *Event) UnmarshalPayload(v any) error {
	return json.Unmarshal(e.Payload, v)
}

// NewEvent creates an event of the given type with a JSON-encoded payload.
func NewEvent(eventType, key string, payload any) (*Event, error) {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	return &Event{
		ID:        uuid.New(),
		Type:      eventType,
		Key:       key,
		Payload:   payloadBytes,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// EventHandler processes published events.
type EventHandler interface {
	HandleEvent(ctx context.Context, event *Event) error
}

// EventEmitter publishes events to whatever handlers are registered.
type EventEmitter interface {
	// EmitEvent delivers event to every handler and returns the first
	// handler error, if any.
	EmitEvent(ctx context.Context, event *Event) error
}

// HandlerFunc adapts a function to the EventHandler interface.
type HandlerFunc func(ctx context.Context, event *Event) error

// HandleEvent calls f(ctx, event).
func (f HandlerFunc) HandleEvent(ctx context.Context, event *Event) error {
	return f(ctx, event)
}
