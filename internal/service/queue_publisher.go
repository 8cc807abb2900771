package service

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/pkg/errors"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/iliyamo/geobites/internal/queue"
)

// EventPublisher delivers domain events to the broker.  Callers treat a
// failure as non-fatal.
type EventPublisher interface {
	PublishOrderPlaced(ctx context.Context, ev queue.OrderPlacedEvent) error
}

// NopPublisher drops every event.  It is used when the queue is disabled.
type NopPublisher struct{}

func (NopPublisher) PublishOrderPlaced(context.Context, queue.OrderPlacedEvent) error { return nil }

// AMQPPublisher publishes to RabbitMQ, dialing per message so a broker
// outage never holds a connection open across requests.
type AMQPPublisher struct {
	URL string
}

// PublishOrderPlaced publishes ev to the durable order.placed queue as a
// persistent JSON message.
func (p AMQPPublisher) PublishOrderPlaced(ctx context.Context, ev queue.OrderPlacedEvent) error {
	conn, err := amqp.Dial(p.URL)
	if err != nil {
		return errors.Wrap(err, "rabbitmq dial")
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		return errors.Wrap(err, "rabbitmq channel")
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(
		queue.OrderQueueName, // name
		true,                 // durable
		false,                // autoDelete
		false,                // exclusive
		false,                // noWait
		nil,                  // args
	); err != nil {
		return errors.Wrap(err, "rabbitmq queue declare")
	}

	body, err := json.Marshal(ev)
	if err != nil {
		return errors.Wrap(err, "marshal event")
	}
	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		MessageId:    ev.OrderID,
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx, "", queue.OrderQueueName, false, false, pub); err != nil {
		return errors.Wrap(err, "rabbitmq publish")
	}
	slog.Debug("order event published", "order_id", ev.OrderID)
	return nil
}
