// Package messaging adapts the Kafka producer and consumer to the domain
// ports.
package messaging

import (
	"context"
	"fmt"

	"github.com/cartwise/payments/pkg/events"
	"github.com/cartwise/payments/pkg/kafka"
)

// EventPublisher publishes domain events to Kafka, keyed by aggregate id so
// events for one transaction stay ordered within a partition.
type EventPublisher struct {
	producer *kafka.Producer
}

// NewEventPublisher creates the publisher over a Kafka producer.
func NewEventPublisher(producer *kafka.Producer) *EventPublisher {
	return &EventPublisher{producer: producer}
}

// Publish sends the events to the topic.
func (p *EventPublisher) Publish(ctx context.Context, topic string, evts ...events.DomainEvent) error {
	if len(evts) == 0 {
		return nil
	}

	messages := make([]kafka.Message, 0, len(evts))
	for _, e := range evts {
		messages = append(messages, kafka.Message{
			Key:   []byte(e.AggregateID().String()),
			Value: e.Payload(),
			Headers: map[string]string{
				"event_id":       e.EventID().String(),
				"event_type":     e.EventType(),
				"aggregate_type": e.AggregateType(),
			},
		})
	}

	if err := p.producer.Publish(ctx, topic, messages...); err != nil {
		return fmt.Errorf("publishing %d events to %s: %w", len(evts), topic, err)
	}
	return nil
}

// Close releases the underlying producer.
func (p *EventPublisher) Close() error {
	return p.producer.Close()
}
