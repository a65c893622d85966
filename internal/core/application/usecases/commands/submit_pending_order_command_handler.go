package commands

import (
	"context"

	"runners/internal/core/domain/model/pendingorder"
	"runners/internal/core/ports"
)

// SubmitPendingOrderCommandHandler records payment-verified orders so they can
// be picked up by the next dispatch for their timeslot.
//
// Example:
//
//	handler := NewSubmitPendingOrderCommandHandler(uowFactory, clock)
//	cmd, _ := NewSubmitPendingOrderCommand(orderID, deliveryTime, building,
//	    roomType, roomNumber, merchantID, email, fee, total, items)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("order submission failed: %w", err)
//	}
type SubmitPendingOrderCommandHandler struct {
	uowFactory PendingOrderUoWFactory
	clock      ports.Clock
}

// NewSubmitPendingOrderCommandHandler creates a handler for pending order submissions.
func NewSubmitPendingOrderCommandHandler(
	uowFactory PendingOrderUoWFactory, clock ports.Clock,
) SubmitPendingOrderCommandHandler {
	return SubmitPendingOrderCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

// Handle processes the submit command.
// Converts the delivery time to the delivery timezone, classifies it into a
// timeslot and upserts the pending order. A delivery time outside every
// timeslot window fails with timeslot.ErrUnclassifiableTime wrapped in the
// returned error, so the caller can reject the event permanently.
func (h SubmitPendingOrderCommandHandler) Handle(ctx context.Context, cmd SubmitPendingOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	localDeliveryTime := cmd.DeliveryTime().In(h.clock.Location())

	order, err := pendingorder.NewPendingOrder(
		cmd.OrderID(),
		localDeliveryTime,
		cmd.Building(),
		cmd.RoomType(),
		cmd.RoomNumber(),
		cmd.MerchantID(),
		cmd.CustomerEmail(),
		cmd.DeliveryFeeCents(),
		cmd.TotalAmountCents(),
		cmd.Items(),
	)
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.PendingOrderRepository().Upsert(ctx, order); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
