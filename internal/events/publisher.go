package events

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"restaurant-pos/internal/config"
	"restaurant-pos/internal/model"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
)

// Publisher publishes order lifecycle events.
type Publisher interface {
	// Publish sends one event. The call is bounded by ctx.
	Publish(ctx context.Context, event model.OrderEvent) error

	// Close releases the broker resources.
	Close() error
}

// Channel is the subset of *amqp.Channel used by the publisher.
type Channel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

const (
	dialAttempts = 5
	dialBackoff  = 2 * time.Second
)

type amqpPublisher struct {
	conn     *amqp.Connection
	ch       Channel
	exchange string
	mu       sync.Mutex
	logger   zerolog.Logger
}

// Dial connects to RabbitMQ and returns a publisher bound to the configured
// fanout exchange. Connection attempts are retried until ctx is done.
func Dial(ctx context.Context, cfg config.RabbitMQConfig, logger zerolog.Logger) (Publisher, error) {
	var (
		conn *amqp.Connection
		err  error
	)
	for attempt := 1; attempt <= dialAttempts; attempt++ {
		conn, err = amqp.Dial(cfg.URL())
		if err == nil {
			break
		}
		logger.Warn().
			Err(err).
			Int("attempt", attempt).
			Str("host", cfg.Host).
			Msg("failed to connect to RabbitMQ")

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", ctx.Err())
		case <-time.After(dialBackoff * time.Duration(attempt)):
		}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	p, err := newPublisher(ch, cfg.Exchange, logger)
	if err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, err
	}
	p.conn = conn

	logger.Info().
		Str("host", cfg.Host).
		Str("exchange", cfg.Exchange).
		Msg("connected to RabbitMQ")

	return p, nil
}

// NewPublisher declares the exchange on ch and returns a publisher using it.
func NewPublisher(ch Channel, exchange string, logger zerolog.Logger) (Publisher, error) {
	return newPublisher(ch, exchange, logger)
}

func newPublisher(ch Channel, exchange string, logger zerolog.Logger) (*amqpPublisher, error) {
	if err := ch.ExchangeDeclare(exchange, amqp.ExchangeFanout, true, false, false, false, nil); err != nil {
		return nil, fmt.Errorf("failed to declare exchange: %w", err)
	}
	return &amqpPublisher{
		ch:       ch,
		exchange: exchange,
		logger:   logger.With().Str("component", "event_publisher").Logger(),
	}, nil
}

// Publish marshals the event and sends it with the event type as routing key.
func (p *amqpPublisher) Publish(ctx context.Context, event model.OrderEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    event.ID.String(),
		Type:         string(event.Type),
		Timestamp:    event.OccurredAt,
		Body:         body,
	}

	// amqp channels are not safe for concurrent publishing.
	p.mu.Lock()
	err = p.ch.PublishWithContext(ctx, p.exchange, string(event.Type), false, false, msg)
	p.mu.Unlock()
	if err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	p.logger.Debug().
		Str("event_id", event.ID.String()).
		Str("type", string(event.Type)).
		Int64("guest_id", event.GuestID).
		Msg("event published")

	return nil
}

// Close closes the channel and, when owned, the connection.
func (p *amqpPublisher) Close() error {
	err := p.ch.Close()
	if p.conn != nil && !p.conn.IsClosed() {
		if cerr := p.conn.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}

// NopPublisher discards events. It is used when the broker is disabled.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, model.OrderEvent) error { return nil }

func (NopPublisher) Close() error { return nil }
