package commands

import (
	"errors"
	"fmt"
	"time"

	"runners/internal/core/domain/model/pendingorder"
	"runners/internal/pkg/errs"
	"runners/internal/pkg/guard"
)

var ErrSubmitPendingOrderCommandIsNotConstructed = errors.New(
	"SubmitPendingOrderCommand must be created via NewSubmitPendingOrderCommand constructor",
)

// SubmitPendingOrderCommand registers a payment-verified order as pending
// dispatch. The delivery time is carried as received from the upstream event
// (UTC); the handler converts it to local delivery time before classification.
type SubmitPendingOrderCommand struct {
	orderID          int64
	deliveryTime     time.Time
	building         string
	roomType         string
	roomNumber       string
	merchantID       int64
	customerEmail    string
	deliveryFeeCents int64
	totalAmountCents int64
	items            []pendingorder.Item

	guard guard.ConstructorGuard
}

// NewSubmitPendingOrderCommand creates a validated submit command.
func NewSubmitPendingOrderCommand(
	orderID int64,
	deliveryTime time.Time,
	building, roomType, roomNumber string,
	merchantID int64,
	customerEmail string,
	deliveryFeeCents, totalAmountCents int64,
	items []pendingorder.Item,
) (SubmitPendingOrderCommand, error) {
	if orderID <= 0 {
		return SubmitPendingOrderCommand{}, errs.NewValueIsInvalidErrorWithCause("orderId",
			fmt.Errorf("%d is not a positive order id", orderID))
	}
	if deliveryTime.IsZero() {
		return SubmitPendingOrderCommand{}, errs.NewValueIsRequiredError("deliveryTime")
	}
	if customerEmail == "" {
		return SubmitPendingOrderCommand{}, errs.NewValueIsRequiredError("customerEmail")
	}

	return SubmitPendingOrderCommand{
		orderID:          orderID,
		deliveryTime:     deliveryTime,
		building:         building,
		roomType:         roomType,
		roomNumber:       roomNumber,
		merchantID:       merchantID,
		customerEmail:    customerEmail,
		deliveryFeeCents: deliveryFeeCents,
		totalAmountCents: totalAmountCents,
		items:            append([]pendingorder.Item(nil), items...),
		guard:            guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c SubmitPendingOrderCommand) Validate() error {
	return c.guard.Validate(ErrSubmitPendingOrderCommandIsNotConstructed)
}

// OrderID returns the upstream order identifier.
func (c SubmitPendingOrderCommand) OrderID() int64 { return c.orderID }

// DeliveryTime returns the delivery time as received from upstream.
func (c SubmitPendingOrderCommand) DeliveryTime() time.Time { return c.deliveryTime }

// Building returns the delivery building.
func (c SubmitPendingOrderCommand) Building() string { return c.building }

// RoomType returns the delivery room type.
func (c SubmitPendingOrderCommand) RoomType() string { return c.roomType }

// RoomNumber returns the delivery room number.
func (c SubmitPendingOrderCommand) RoomNumber() string { return c.roomNumber }

// MerchantID returns the merchant the order was placed with.
func (c SubmitPendingOrderCommand) MerchantID() int64 { return c.merchantID }

// CustomerEmail returns the ordering customer's email.
func (c SubmitPendingOrderCommand) CustomerEmail() string { return c.customerEmail }

// DeliveryFeeCents returns the delivery fee in minor currency units.
func (c SubmitPendingOrderCommand) DeliveryFeeCents() int64 { return c.deliveryFeeCents }

// TotalAmountCents returns the order total in minor currency units.
func (c SubmitPendingOrderCommand) TotalAmountCents() int64 { return c.totalAmountCents }

// Items returns a copy of the order's line items.
func (c SubmitPendingOrderCommand) Items() []pendingorder.Item {
	return append([]pendingorder.Item(nil), c.items...)
}
