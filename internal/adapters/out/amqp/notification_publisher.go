package amqp

import (
	"context"
	"encoding/json"

	"runners/internal/core/ports"

	"github.com/google/uuid"
)

const (
	// RoutingKeyRunnerAssignment carries aggregated post-dispatch batches.
	RoutingKeyRunnerAssignment = "runner.assignment"

	// RoutingKeyOrderReady carries single-order collection notices.
	RoutingKeyOrderReady = "runner.order.ready"
)

// messagePublisher is the slice of Client the publisher needs.
type messagePublisher interface {
	Publish(ctx context.Context, exchange, key, messageID string, body []byte) error
}

// NotificationPublisher implements ports.NotificationPublisher over the event
// exchange. The email service downstream consumes both routing keys.
type NotificationPublisher struct {
	client   messagePublisher
	exchange string
}

// NewNotificationPublisher creates a publisher bound to an exchange.
func NewNotificationPublisher(client messagePublisher, exchange string) *NotificationPublisher {
	return &NotificationPublisher{
		client:   client,
		exchange: exchange,
	}
}

// PublishRunnerAssignment publishes one aggregated assignment batch.
func (p *NotificationPublisher) PublishRunnerAssignment(
	ctx context.Context, notification ports.RunnerAssignmentNotification,
) error {
	body, err := json.Marshal(notification)
	if err != nil {
		return err
	}

	return p.client.Publish(ctx, p.exchange, RoutingKeyRunnerAssignment, uuid.NewString(), body)
}

// PublishCollectionReady publishes one collection-ready notice.
func (p *NotificationPublisher) PublishCollectionReady(
	ctx context.Context, notification ports.CollectionReadyNotification,
) error {
	body, err := json.Marshal(notification)
	if err != nil {
		return err
	}

	return p.client.Publish(ctx, p.exchange, RoutingKeyOrderReady, uuid.NewString(), body)
}
