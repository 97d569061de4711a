// Package rabbitmq publishes domain events to a RabbitMQ topic exchange, one
// persistent JSON message per event, routed by event name.
package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"logistics/internal/core/domain/model/kernel"

	amqp "github.com/rabbitmq/amqp091-go"
)

const publishTimeout = 5 * time.Second

// Channel is the part of *amqp.Channel the publisher uses.
type Channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// Envelope is the message body: event metadata plus the event itself.
type Envelope struct {
	EventID    kernel.UUID        `json:"event_id"`
	EventName  string             `json:"event_name"`
	OccurredAt time.Time          `json:"occurred_at"`
	Payload    kernel.DomainEvent `json:"payload"`
}

// Publisher implements ports.EventPublisher.
type Publisher struct {
	mu       sync.Mutex
	conn     *amqp.Connection
	ch       Channel
	exchange string
}

// Dial connects to url and declares exchange as a durable topic exchange.
func Dial(url, exchange string) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open rabbitmq channel: %w", err)
	}
	err = ch.ExchangeDeclare(
		exchange, // name
		amqp.ExchangeTopic,
		true,  // durable
		false, // auto-deleted
		false, // internal
		false, // no-wait
		nil,
	)
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("declare exchange %q: %w", exchange, err)
	}

	p := NewPublisher(ch, exchange)
	p.conn = conn
	return p, nil
}

// NewPublisher publishes on an already open channel.
func NewPublisher(ch Channel, exchange string) *Publisher {
	return &Publisher{ch: ch, exchange: exchange}
}

func (p *Publisher) Publish(ctx context.Context, event kernel.DomainEvent) error {
	body, err := json.Marshal(Envelope{
		EventID:    event.EventID(),
		EventName:  event.EventName(),
		OccurredAt: event.OccurredAt(),
		Payload:    event,
	})
	if err != nil {
		return fmt.Errorf("marshal %s: %w", event.EventName(), err)
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	p.mu.Lock()
	defer p.mu.Unlock()
	return p.ch.PublishWithContext(ctx,
		p.exchange,        // exchange
		event.EventName(), // routing key
		false,             // mandatory
		false,             // immediate
		amqp.Publishing{
			DeliveryMode: amqp.Persistent,
			ContentType:  "application/json",
			MessageId:    event.EventID().String(),
			Type:         event.EventName(),
			Timestamp:    event.OccurredAt(),
			Body:         body,
		})
}

// Close closes the channel and, when the publisher dialed it, the connection.
func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	err := p.ch.Close()
	if p.conn != nil {
		if connErr := p.conn.Close(); err == nil {
			err = connErr
		}
	}
	return err
}

// NopPublisher drops every event. It stands in when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, kernel.DomainEvent) error { return nil }
