// Package events carries the notifications the tracker publishes after
// users are created and exercises are logged.
//
// Services emit through the EventEmitter interface and never know which
// handlers are attached. The in-memory emitter fans out synchronously; the
// Kafka publisher in internal/platform/kafka is registered as one handler
// when brokers are configured.
package events
