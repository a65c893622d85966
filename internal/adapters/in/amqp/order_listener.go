// Package amqp consumes order lifecycle events from the message bus and turns
// them into application commands.
package amqp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	amqp091 "github.com/rabbitmq/amqp091-go"

	"runners/internal/core/application/usecases/commands"
	"runners/internal/core/domain/model/pendingorder"
	"runners/internal/core/domain/model/timeslot"
)

const (
	statusPaymentVerified    = "payment_verified"
	statusReadyForCollection = "ready_for_collection"

	consumerTag     = "runner-assignment-service"
	consumePrefetch = 8

	deliveryTimeLayout = "2006-01-02T15:04:05"
)

type orderSubmitter interface {
	Handle(ctx context.Context, cmd commands.SubmitPendingOrderCommand) error
}

type collectionNotifier interface {
	Handle(ctx context.Context, cmd commands.NotifyCollectionReadyCommand) error
}

type messageConsumer interface {
	Consume(queue, consumer string, prefetch int) (<-chan amqp091.Delivery, error)
}

type orderEnvelope struct {
	Order orderMessage `json:"order"`
}

type orderAmounts struct {
	FoodAmountCents  int64 `json:"food_amount_cents"`
	DeliveryFeeCents int64 `json:"delivery_fee_cents"`
	TotalAmountCents int64 `json:"total_amount_cents"`
}

type orderMessage struct {
	OrderID       int64               `json:"order_id"`
	OrderStatus   string              `json:"order_status"`
	DeliveryTime  string              `json:"delivery_time"`
	Building      string              `json:"building"`
	RoomType      string              `json:"room_type"`
	RoomNumber    string              `json:"room_number"`
	MerchantID    int64               `json:"merchant_id"`
	CustomerEmail string              `json:"customer_email"`
	Amounts       orderAmounts        `json:"amounts"`
	Items         []pendingorder.Item `json:"items"`
}

// OrderListener consumes the order inbox queue and routes status changes to
// the submit and collection-ready handlers. Every message is acked exactly
// once; processing failures are logged, never redelivered.
type OrderListener struct {
	client messageConsumer
	queue  string
	submit orderSubmitter
	notify collectionNotifier
	logger *slog.Logger
}

// NewOrderListener creates a listener bound to the given inbox queue.
func NewOrderListener(
	client messageConsumer,
	queue string,
	submit orderSubmitter,
	notify collectionNotifier,
	logger *slog.Logger,
) (*OrderListener, error) {
	if client == nil {
		return nil, errors.New("client is required")
	}
	if queue == "" {
		return nil, errors.New("queue is required")
	}
	if submit == nil {
		return nil, errors.New("submit handler is required")
	}
	if notify == nil {
		return nil, errors.New("notify handler is required")
	}
	if logger == nil {
		return nil, errors.New("logger is required")
	}

	return &OrderListener{
		client: client,
		queue:  queue,
		submit: submit,
		notify: notify,
		logger: logger,
	}, nil
}

// Start consumes the inbox queue until the context is canceled or the
// delivery channel closes. It never returns a per-message error.
func (l *OrderListener) Start(ctx context.Context) error {
	deliveries, err := l.client.Consume(l.queue, consumerTag, consumePrefetch)
	if err != nil {
		return fmt.Errorf("consume %s: %w", l.queue, err)
	}

	l.logger.Info("order listener started", "queue", l.queue)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case delivery, ok := <-deliveries:
			if !ok {
				return errors.New("delivery channel closed")
			}
			if err := l.HandleMessage(ctx, delivery.Body); err != nil {
				l.logger.Error("order event processing failed",
					"message_id", delivery.MessageId, "error", err)
			}
			if err := delivery.Ack(false); err != nil {
				l.logger.Error("ack failed", "message_id", delivery.MessageId, "error", err)
			}
		}
	}
}

// HandleMessage processes a single raw order event. Business outcomes that
// are expected in normal operation (unclassifiable delivery times, events
// for orders that were never assigned) are logged and absorbed here so the
// consumer loop never nacks.
func (l *OrderListener) HandleMessage(ctx context.Context, body []byte) error {
	var envelope orderEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return fmt.Errorf("decode order event: %w", err)
	}
	message := envelope.Order

	switch strings.ToLower(strings.TrimSpace(message.OrderStatus)) {
	case statusPaymentVerified:
		return l.handlePaymentVerified(ctx, message)
	case statusReadyForCollection:
		return l.handleReadyForCollection(ctx, message)
	default:
		l.logger.Debug("ignoring order event",
			"order_id", message.OrderID, "order_status", message.OrderStatus)
		return nil
	}
}

func (l *OrderListener) handlePaymentVerified(ctx context.Context, message orderMessage) error {
	deliveryTime, err := l.parseDeliveryTime(message.DeliveryTime)
	if err != nil {
		return fmt.Errorf("order %d: %w", message.OrderID, err)
	}

	cmd, err := commands.NewSubmitPendingOrderCommand(
		message.OrderID,
		deliveryTime,
		message.Building,
		message.RoomType,
		message.RoomNumber,
		message.MerchantID,
		message.CustomerEmail,
		message.Amounts.DeliveryFeeCents,
		message.Amounts.TotalAmountCents,
		message.Items,
	)
	if err != nil {
		return fmt.Errorf("order %d: %w", message.OrderID, err)
	}

	err = l.submit.Handle(ctx, cmd)
	if errors.Is(err, timeslot.ErrUnclassifiableTime) {
		l.logger.Warn("order outside all delivery windows, skipping",
			"order_id", message.OrderID, "delivery_time", message.DeliveryTime)
		return nil
	}
	return err
}

func (l *OrderListener) handleReadyForCollection(ctx context.Context, message orderMessage) error {
	deliveryTime, err := l.parseDeliveryTime(message.DeliveryTime)
	if err != nil {
		return fmt.Errorf("order %d: %w", message.OrderID, err)
	}

	cmd, err := commands.NewNotifyCollectionReadyCommand(
		message.OrderID,
		deliveryTime,
		message.Building,
		message.RoomType,
		message.RoomNumber,
	)
	if err != nil {
		return fmt.Errorf("order %d: %w", message.OrderID, err)
	}

	err = l.notify.Handle(ctx, cmd)
	if errors.Is(err, commands.ErrAssignmentIntegrity) {
		l.logger.Warn("ready order has no assignment on record",
			"order_id", message.OrderID, "error", err)
		return nil
	}
	return err
}

// parseDeliveryTime accepts the upstream naked timestamp format, which
// carries UTC instants; the command handlers convert to the delivery
// timezone before classifying. Falls back to RFC 3339 for producers that
// send an explicit offset.
func (l *OrderListener) parseDeliveryTime(value string) (time.Time, error) {
	if parsed, err := time.ParseInLocation(deliveryTimeLayout, value, time.UTC); err == nil {
		return parsed, nil
	}
	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse delivery time %q: %w", value, err)
	}
	return parsed, nil
}
