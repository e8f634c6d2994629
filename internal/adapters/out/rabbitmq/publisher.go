// Package rabbitmq implements the order event publisher port on top of a
// RabbitMQ topic exchange. Downstream consumers (notifications, analytics,
// settlement audit) bind with routing-key patterns per status.
package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"logistics/internal/core/ports"

	amqp "github.com/rabbitmq/amqp091-go"
)

const exchangeName = "orders_topic"

// Publisher broadcasts order transitions as persistent JSON messages.
type Publisher struct {
	conn *amqp.Connection
	ch   *amqp.Channel
}

// Dial connects to the broker, declares the topic exchange and returns a
// ready publisher.
func Dial(url string) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("connect to broker: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	if err = ch.ExchangeDeclare(exchangeName, "topic", true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}

	return &Publisher{conn: conn, ch: ch}, nil
}

// Publish sends the event to the topic exchange, routed by the order's new
// status so consumers can subscribe to e.g. "orders.delivered" only.
func (p *Publisher) Publish(ctx context.Context, event ports.OrderEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return p.ch.PublishWithContext(ctx, exchangeName, RoutingKey(event), false, false, amqp.Publishing{
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		ContentType:  "application/json",
		Body:         body,
	})
}

// Close releases the channel and the connection.
func (p *Publisher) Close() {
	if p == nil {
		return
	}
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		_ = p.conn.Close()
	}
}

// RoutingKey derives the topic routing key from the event's status, for
// example "orders.picked_up".
func RoutingKey(event ports.OrderEvent) string {
	return "orders." + strings.ToLower(event.Status)
}
