package event

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"lms-quiz/internal/domain"
	"lms-quiz/internal/logger"

	"github.com/streadway/amqp"
	"go.uber.org/zap"
)

// Envelope is the JSON body of every published message.
type Envelope struct {
	Type       string      `json:"type"`
	OccurredAt time.Time   `json:"occurred_at"`
	Payload    interface{} `json:"payload"`
}

// amqpChannel is the part of *amqp.Channel the publisher uses.
type amqpChannel interface {
	Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// AMQPPublisher publishes events to a topic exchange, using the event type as
// the routing key.
type AMQPPublisher struct {
	conn     *amqp.Connection
	channel  amqpChannel
	exchange string
	now      func() time.Time
}

// NewAMQPPublisher dials the broker and declares a durable topic exchange.
func NewAMQPPublisher(amqpURL, exchange string) (*AMQPPublisher, error) {
	conn, err := amqp.Dial(amqpURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to AMQP broker: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to open AMQP channel: %w", err)
	}
	err = ch.ExchangeDeclare(
		exchange,
		"topic",
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("failed to declare exchange %s: %w", exchange, err)
	}
	return &AMQPPublisher{conn: conn, channel: ch, exchange: exchange, now: time.Now}, nil
}

func newPublisherWithChannel(ch amqpChannel, exchange string, now func() time.Time) *AMQPPublisher {
	return &AMQPPublisher{channel: ch, exchange: exchange, now: now}
}

// Publish implements domain.EventPublisher
func (p *AMQPPublisher) Publish(ctx context.Context, eventType string, payload interface{}) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	body, err := json.Marshal(Envelope{
		Type:       eventType,
		OccurredAt: p.now().UTC(),
		Payload:    payload,
	})
	if err != nil {
		return fmt.Errorf("failed to encode event %s: %w", eventType, err)
	}

	err = p.channel.Publish(
		p.exchange,
		eventType,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    p.now(),
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish event %s: %w", eventType, err)
	}
	logger.Get().Debug("Event published", zap.String("type", eventType), zap.String("exchange", p.exchange))
	return nil
}

// Close implements domain.EventPublisher
func (p *AMQPPublisher) Close() error {
	var firstErr error
	if p.channel != nil {
		if err := p.channel.Close(); err != nil {
			firstErr = err
		}
	}
	if p.conn != nil {
		if err := p.conn.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// NoopPublisher logs events instead of sending them. It is used when no broker
// is configured.
type NoopPublisher struct{}

func NewNoopPublisher() domain.EventPublisher {
	return NoopPublisher{}
}

func (NoopPublisher) Publish(_ context.Context, eventType string, _ interface{}) error {
	logger.Get().Debug("Event dropped, no broker configured", zap.String("type", eventType))
	return nil
}

func (NoopPublisher) Close() error { return nil }
