// Package amqp provides the RabbitMQ connection and the notification
// publisher. One connection and one confirm-mode channel serve the whole
// process; publishes are serialized and wait for the broker's ack.
package amqp

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	amqp091 "github.com/rabbitmq/amqp091-go"
)

// Config holds the broker connection settings.
type Config struct {
	Host     string
	Port     int
	User     string
	Password string
	VHost    string
}

// Client wraps a RabbitMQ connection with publisher confirms enabled.
type Client struct {
	conn *amqp091.Connection
	ch   *amqp091.Channel

	acks <-chan amqp091.Confirmation
	mu   sync.Mutex
}

// Dial connects to the broker and opens a confirm-mode channel.
func Dial(cfg Config) (*Client, error) {
	if cfg.VHost == "" {
		cfg.VHost = "/"
	}

	url := fmt.Sprintf("amqp://%s:%s@%s:%d/%s",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.VHost)

	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, err
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, err
	}

	if err = ch.Confirm(false); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, err
	}
	acks := ch.NotifyPublish(make(chan amqp091.Confirmation, 1))

	return &Client{conn: conn, ch: ch, acks: acks}, nil
}

// Channel exposes the underlying channel for consumers.
func (c *Client) Channel() *amqp091.Channel { return c.ch }

// Close releases the channel and the connection.
func (c *Client) Close() {
	if c.ch != nil {
		_ = c.ch.Close()
	}
	if c.conn != nil {
		_ = c.conn.Close()
	}
}

// Ping reports whether the connection is still open.
func (c *Client) Ping() error {
	if c.conn == nil || c.conn.IsClosed() {
		return errors.New("rabbitmq connection is closed")
	}
	return nil
}

// BindingKeyOrderStatus matches every order status event on the topic
// exchange.
const BindingKeyOrderStatus = "order.status.#"

// DeclareTopology declares the event exchange and the inbound order queue,
// bound to all order status events. Declarations are idempotent, so every
// process declares on startup.
func (c *Client) DeclareTopology(exchange, inboxQueue string) error {
	if err := c.ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		return err
	}
	if _, err := c.ch.QueueDeclare(inboxQueue, true, false, false, false, nil); err != nil {
		return err
	}
	return c.ch.QueueBind(inboxQueue, BindingKeyOrderStatus, exchange, false, nil)
}

// Consume starts consuming the queue with manual acks.
func (c *Client) Consume(queue, consumer string, prefetch int) (<-chan amqp091.Delivery, error) {
	if err := c.ch.Qos(prefetch, 0, false); err != nil {
		return nil, err
	}
	return c.ch.Consume(queue, consumer, false, false, false, false, nil)
}

// Publish sends one persistent message and waits for the broker's confirm.
// Safe for concurrent use; publishes are serialized so confirms match.
func (c *Client) Publish(ctx context.Context, exchange, key, messageID string, body []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	err := c.ch.PublishWithContext(
		ctx,
		exchange,
		key,
		false,
		false,
		amqp091.Publishing{
			DeliveryMode: amqp091.Persistent,
			ContentType:  "application/json",
			MessageId:    messageID,
			Timestamp:    time.Now(),
			Body:         body,
		},
	)
	if err != nil {
		return err
	}

	select {
	case conf := <-c.acks:
		if conf.Ack {
			return nil
		}
		return errors.New("publish NACK from broker")
	case <-ctx.Done():
		return ctx.Err()
	}
}
