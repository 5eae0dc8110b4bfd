// Package kafka publishes sync lifecycle events for downstream consumers
// (budget recalculation, notifications). Publishing is best-effort: the
// sync pass has already committed by the time an event goes out.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/segmentio/kafka-go"

	"multibank/internal/domain/sync"
)

// DefaultTopic is used when no topic is configured.
const DefaultTopic = "sync_completed"

// Publisher implements sync.Publisher on a Kafka topic. Events for the
// same connection share a key so they stay ordered within a partition.
type Publisher struct {
	writer *kafka.Writer
}

func NewPublisher(brokers []string, topic string) *Publisher {
	if topic == "" {
		topic = DefaultTopic
	}
	return &Publisher{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Topic:    topic,
			Balancer: &kafka.LeastBytes{},
		},
	}
}

func (p *Publisher) PublishSyncCompleted(ctx context.Context, event sync.CompletedEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal sync event: %w", err)
	}

	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(strconv.FormatInt(event.ConnectionID, 10)),
		Value: data,
	})
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}
