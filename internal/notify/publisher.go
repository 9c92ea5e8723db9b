// Package notify publishes guest-notification messages to RabbitMQ.
// Publishing is best-effort: errors are logged and returned so callers can
// ignore failures without interrupting the main request flow.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog/log"

	"github.com/eventify/eventify-api/internal/model"
)

// Publisher publishes booking notifications to a durable queue. A consumer
// downstream turns them into guest emails; this service never waits on that.
type Publisher struct {
	url   string
	queue string
}

// NewPublisher creates a Publisher for the given broker URL and queue name.
func NewPublisher(url, queue string) *Publisher {
	return &Publisher{url: url, queue: queue}
}

// BookingReceived publishes a booking-received message. The connection is
// established per publish so a broker outage never holds resources inside
// the request path. Messages are marked persistent.
func (p *Publisher) BookingReceived(ctx context.Context, n model.BookingNotification) error {
	conn, err := amqp.Dial(p.url)
	if err != nil {
		log.Warn().Err(err).Str("queue", p.queue).Msg("notify: broker dial failed")
		return fmt.Errorf("dial broker: %w", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		log.Warn().Err(err).Str("queue", p.queue).Msg("notify: channel open failed")
		return fmt.Errorf("open channel: %w", err)
	}
	defer func() { _ = ch.Close() }()

	// Idempotent declare; durable so messages survive broker restarts.
	if _, err := ch.QueueDeclare(p.queue, true, false, false, false, nil); err != nil {
		log.Warn().Err(err).Str("queue", p.queue).Msg("notify: queue declare failed")
		return fmt.Errorf("declare queue: %w", err)
	}

	body, err := json.Marshal(n)
	if err != nil {
		log.Warn().Err(err).Str("queue", p.queue).Msg("notify: marshal failed")
		return fmt.Errorf("marshal notification: %w", err)
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}

	if err := ch.PublishWithContext(ctx, "", p.queue, false, false, pub); err != nil {
		log.Warn().Err(err).Str("queue", p.queue).Msg("notify: publish failed")
		return fmt.Errorf("publish notification: %w", err)
	}

	log.Debug().
		Str("queue", p.queue).
		Str("booking_id", n.BookingID).
		Str("email", n.Email).
		Msg("booking notification published")
	return nil
}
