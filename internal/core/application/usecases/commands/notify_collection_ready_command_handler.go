package commands

import (
	"context"
	"errors"
	"fmt"

	"runners/internal/core/domain/model/kernel"
	"runners/internal/core/ports"
	"runners/internal/pkg/errs"
)

// ErrAssignmentIntegrity signals a ready-for-collection event arrived for an
// order that holds no ledger row. Either dispatch never ran for the slot or
// the ledger was reset after the order was assigned.
var ErrAssignmentIntegrity = errors.New("order is ready for collection but has no assignment")

const (
	collectionReadySubject  = "Order Ready for Collection"
	collectionReadyTemplate = "order_ready_template"
)

// NotifyCollectionReadyCommandHandler resolves which runner an order was
// assigned to and emails them that the merchant has the order ready.
//
// Example:
//
//	handler := NewNotifyCollectionReadyCommandHandler(uowFactory, publisher, clock)
//	cmd, _ := NewNotifyCollectionReadyCommand(orderID, deliveryTime, building, roomType, roomNumber)
//	err := handler.Handle(ctx, cmd)
//	if errors.Is(err, ErrAssignmentIntegrity) {
//	    // the order was never dispatched; surface for investigation
//	}
type NotifyCollectionReadyCommandHandler struct {
	uowFactory UoWFactory
	publisher  ports.NotificationPublisher
	clock      ports.Clock
}

// NewNotifyCollectionReadyCommandHandler creates a handler for collection
// readiness notifications.
func NewNotifyCollectionReadyCommandHandler(
	uowFactory UoWFactory, publisher ports.NotificationPublisher, clock ports.Clock,
) NotifyCollectionReadyCommandHandler {
	return NotifyCollectionReadyCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		clock:      clock,
	}
}

// Handle processes the collection-ready command.
// Looks up the order's ledger row, resolves the runner's email from their
// availability registration on the delivery date and publishes the templated
// notification. Returns ErrAssignmentIntegrity when no ledger row exists.
func (h NotifyCollectionReadyCommandHandler) Handle(ctx context.Context, cmd NotifyCollectionReadyCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	localDeliveryTime := cmd.DeliveryTime().In(h.clock.Location())
	deliveryDate := kernel.DateFromTime(localDeliveryTime)

	uow := h.uowFactory.Create()

	record, err := uow.AssignmentRepository().GetByOrderID(ctx, cmd.OrderID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return fmt.Errorf("order %d: %w", cmd.OrderID(), ErrAssignmentIntegrity)
	}
	if err != nil {
		return err
	}

	email, err := uow.AvailabilityRepository().GetEmail(ctx, record.RunnerID(), deliveryDate)
	if err != nil {
		return err
	}

	notification := ports.CollectionReadyNotification{
		To:       email,
		Subject:  collectionReadySubject,
		Template: collectionReadyTemplate,
		Variables: ports.CollectionReadyVariables{
			OrderID:      cmd.OrderID(),
			Building:     cmd.Building(),
			RoomType:     cmd.RoomType(),
			RoomNumber:   cmd.RoomNumber(),
			DeliveryTime: localDeliveryTime.Format(deliveryTimeLayout),
		},
	}

	return h.publisher.PublishCollectionReady(ctx, notification)
}
