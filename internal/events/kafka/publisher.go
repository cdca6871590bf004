package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/Dan9191/tax-ledger/internal/events"
)

// Publisher writes JSON encoded events to Kafka
type Publisher struct {
	writer *kafka.Writer
}

// batchTimeout bounds how long a synchronous write waits for its batch to fill
const batchTimeout = 10 * time.Millisecond

// NewPublisher creates a publisher for the given brokers. The topic is chosen per message.
// Messages with the same key always land on the same partition.
func NewPublisher(brokers []string) *Publisher {
	return &Publisher{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Balancer:               &kafka.Hash{},
			BatchTimeout:           batchTimeout,
			AllowAutoTopicCreation: true,
		},
	}
}

// Publish encodes event as JSON and writes it to topic. Keyed events carry their key.
func (p *Publisher) Publish(ctx context.Context, topic string, event any) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode event: %w", err)
	}

	msg := kafka.Message{Topic: topic, Value: data}
	if k, ok := event.(Keyed); ok {
		msg.Key = []byte(k.EventKey())
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", topic, err)
	}
	return nil
}

// Close flushes pending writes and releases the connection
func (p *Publisher) Close() error {
	return p.writer.Close()
}

// Keyed events are partitioned by their key
type Keyed interface {
	EventKey() string
}

var _ events.Publisher = (*Publisher)(nil)
