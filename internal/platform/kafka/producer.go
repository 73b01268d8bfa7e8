package kafka

import (
	"context"
	"sync"
	"time"

	kafkago "github.com/segmentio/kafka-go"
)

// writerBatchTimeout caps how long a partially filled batch waits before
// it is flushed. Publishes are synchronous and single-message.
const writerBatchTimeout = 10 * time.Millisecond

// Producer writes messages to Kafka, keeping one writer per topic.
type Producer struct {
	brokers      []string
	writeTimeout time.Duration

	mu      sync.Mutex
	writers map[string]*kafkago.Writer
}

// NewProducer creates a Producer for the given brokers.
func NewProducer(brokers []string, writeTimeout time.Duration) *Producer {
	return &Producer{
		brokers:      brokers,
		writeTimeout: writeTimeout,
		writers:      make(map[string]*kafkago.Writer),
	}
}

// WriteMessages writes messages to topic, creating its writer on first use.
func (p *Producer) WriteMessages(ctx context.Context, topic string, msgs ...kafkago.Message) error {
	return p.writerForTopic(topic).WriteMessages(ctx, msgs...)
}

func (p *Producer) writerForTopic(topic string) *kafkago.Writer {
	p.mu.Lock()
	defer p.mu.Unlock()

	if writer, ok := p.writers[topic]; ok {
		return writer
	}

	writer := &kafkago.Writer{
		Addr:                   kafkago.TCP(p.brokers...),
		Topic:                  topic,
		Balancer:               &kafkago.Hash{},
		RequiredAcks:           kafkago.RequireAll,
		Compression:            kafkago.Snappy,
		BatchSize:              1,
		BatchTimeout:           writerBatchTimeout,
		WriteTimeout:           p.writeTimeout,
		AllowAutoTopicCreation: true,
	}
	p.writers[topic] = writer
	return writer
}

// Close flushes and releases all writers.
func (p *Producer) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	var firstErr error
	for topic, writer := range p.writers {
		if err := writer.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		delete(p.writers, topic)
	}
	return firstErr
}
