// Package kafka publishes search analytics events to a Kafka topic.
package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/kailas-cloud/prodsearch/internal/domain/search/event"
)

// Config holds producer settings.
type Config struct {
	Brokers []string
	Topic   string
}

// writer is the subset of *kafka.Writer the producer uses.
type writer interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Producer writes JSON-encoded search events.
type Producer struct {
	writer writer
	logger *zap.Logger
}

// NewProducer creates a producer for cfg.Topic.
func NewProducer(cfg Config, logger *zap.Logger) (*Producer, error) {
	if len(cfg.Brokers) == 0 {
		return nil, errors.New("kafka: at least one broker is required")
	}
	if cfg.Topic == "" {
		return nil, errors.New("kafka: topic is required")
	}
	w := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.Hash{},
		BatchSize:    100,
		BatchTimeout: 10 * time.Millisecond,
		RequiredAcks: kafka.RequireOne,
	}
	return newProducer(w, logger.With(zap.String("topic", cfg.Topic))), nil
}

func newProducer(w writer, logger *zap.Logger) *Producer {
	return &Producer{writer: w, logger: logger}
}

// Publish writes one event keyed by its query text.
func (p *Producer) Publish(ctx context.Context, e event.Search) error {
	value, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshal search event: %w", err)
	}
	msg := kafka.Message{
		Key:   []byte(e.Query),
		Value: value,
		Time:  e.At,
	}
	if err = p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("publish search event: %w", err)
	}
	p.logger.Debug("Search event published", zap.Int("value_size", len(value)))
	return nil
}

// Close flushes pending writes and closes the writer.
func (p *Producer) Close() error {
	return p.writer.Close()
}
