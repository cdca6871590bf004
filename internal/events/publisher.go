package events

import "context"

// Publisher delivers domain events to a topic
type Publisher interface {
	Publish(ctx context.Context, topic string, event any) error
}

// NopPublisher discards every event. Used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(ctx context.Context, topic string, event any) error {
	return nil
}
