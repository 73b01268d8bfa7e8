// Package kafka publishes tracker events to Apache Kafka using
// segmentio/kafka-go.
package kafka
