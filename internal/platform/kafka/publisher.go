package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/exercise-tracker/internal/events"
	"github.com/phrazzld/exercise-tracker/internal/platform/logger"
	kafkago "github.com/segmentio/kafka-go"
)

// Header names set on every published record.
const (
	HeaderEventType = "event_type"
	HeaderEventID   = "event_id"
)

// MessageWriter is the subset of Producer the publisher needs.
type MessageWriter interface {
	WriteMessages(ctx context.Context, topic string, msgs ...kafkago.Message) error
}

// Publisher forwards tracker events to a Kafka topic. It is registered on
// the in-memory emitter as an events.EventHandler.
type Publisher struct {
	writer  MessageWriter
	topic   string
	timeout time.Duration
	logger  *slog.Logger
}

// NewPublisher creates a Publisher writing to topic through writer.
// Each publish is bounded by timeout and detached from the caller's
// cancellation; a timeout of zero leaves it unbounded.
func NewPublisher(writer MessageWriter, topic string, timeout time.Duration, logger *slog.Logger) *Publisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Publisher{
		writer:  writer,
		topic:   topic,
		timeout: timeout,
		logger:  logger.With(slog.String("component", "kafka_publisher")),
	}
}

var _ events.EventHandler = (*Publisher)(nil)

// HandleEvent encodes event as JSON and writes it keyed by event.Key.
func (p *Publisher) HandleEvent(ctx context.Context, event *events.Event) error {
	log := logger.FromContextOrDefault(ctx, p.logger)

	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode event %s: %w", event.ID, err)
	}

	msg := kafkago.Message{
		Key:   []byte(event.Key),
		Value: value,
		Time:  time.Now().UTC(),
		Headers: []kafkago.Header{
			{Key: HeaderEventType, Value: []byte(event.Type)},
			{Key: HeaderEventID, Value: []byte(event.ID.String())},
		},
	}

	writeCtx := context.WithoutCancel(ctx)
	if p.timeout > 0 {
		var cancel context.CancelFunc
		writeCtx, cancel = context.WithTimeout(writeCtx, p.timeout)
		defer cancel()
	}

	if err := p.writer.WriteMessages(writeCtx, p.topic, msg); err != nil {
		log.Error("failed to publish event",
			slog.String("error", err.Error()),
			slog.String("event_id", event.ID.String()),
			slog.String("event_type", event.Type),
			slog.String("topic", p.topic))
		return fmt.Errorf("failed to publish event %s to %s: %w", event.ID, p.topic, err)
	}

	log.Debug("published event",
		slog.String("event_id", event.ID.String()),
		slog.String("event_type", event.Type),
		slog.String("topic", p.topic))
	return nil
}
