// Package events publishes generation run events to the shipping topic.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"github.com/jblick1327/shipping/internal/domain"
	"github.com/jblick1327/shipping/pkg/logging"
	"github.com/jblick1327/shipping/pkg/metrics"
)

// Config holds the publisher settings
type Config struct {
	Brokers      []string
	Topic        string
	BatchTimeout time.Duration
}

// KafkaPublisher writes domain events to a single shipping topic. The
// events are advisory: downstream reporting consumes them, the
// generation pipeline never depends on a publish succeeding.
type KafkaPublisher struct {
	writer  *kafka.Writer
	topic   string
	logger  *logging.Logger
	metrics *metrics.Metrics
}

// NewKafkaPublisher creates a publisher for the configured topic
func NewKafkaPublisher(config Config, logger *logging.Logger, m *metrics.Metrics) *KafkaPublisher {
	batchTimeout := config.BatchTimeout
	if batchTimeout <= 0 {
		batchTimeout = 10 * time.Millisecond
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(config.Brokers...),
		Topic:        config.Topic,
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: batchTimeout,
		RequiredAcks: kafka.RequireAll,
		Async:        false,
	}

	return &KafkaPublisher{
		writer:  writer,
		topic:   config.Topic,
		logger:  logger.WithComponent("kafka-publisher"),
		metrics: m,
	}
}

// Publish sends one domain event keyed by the shipment identifier
func (p *KafkaPublisher) Publish(ctx context.Context, key string, event domain.DomainEvent) error {
	msg, err := buildMessage(key, event)
	if err != nil {
		return err
	}

	start := time.Now()
	err = p.writer.WriteMessages(ctx, msg)
	duration := time.Since(start)

	p.metrics.RecordKafkaPublish(p.topic, event.EventType(), err == nil, duration)
	p.logger.KafkaPublish(ctx, p.topic, event.EventType(), err == nil, duration)

	if err != nil {
		return fmt.Errorf("failed to publish %s: %w", event.EventType(), err)
	}
	return nil
}

// Close flushes and closes the underlying writer
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// buildMessage wraps the event payload with its type and identity
// headers so consumers can route without decoding the body
func buildMessage(key string, event domain.DomainEvent) (kafka.Message, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("failed to marshal %s: %w", event.EventType(), err)
	}

	return kafka.Message{
		Key:   []byte(key),
		Value: data,
		Time:  event.OccurredAt(),
		Headers: []kafka.Header{
			{Key: "event-type", Value: []byte(event.EventType())},
			{Key: "event-id", Value: []byte(uuid.New().String())},
			{Key: "content-type", Value: []byte("application/json")},
			{Key: "occurred-at", Value: []byte(event.OccurredAt().Format(time.RFC3339))},
		},
	}, nil
}

// NopPublisher drops events. Used when no brokers are configured, so
// the pipeline wiring stays identical with and without a bus.
type NopPublisher struct{}

// Publish discards the event
func (NopPublisher) Publish(ctx context.Context, key string, event domain.DomainEvent) error {
	return nil
}

// Close is a no-op
func (NopPublisher) Close() error {
	return nil
}
