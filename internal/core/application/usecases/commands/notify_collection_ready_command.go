package commands

import (
	"errors"
	"fmt"
	"time"

	"runners/internal/pkg/errs"
	"runners/internal/pkg/guard"
)

var ErrNotifyCollectionReadyCommandIsNotConstructed = errors.New(
	"NotifyCollectionReadyCommand must be created via NewNotifyCollectionReadyCommand constructor",
)

// NotifyCollectionReadyCommand tells the assigned runner that an order is
// ready for collection at the merchant.
type NotifyCollectionReadyCommand struct {
	orderID      int64
	deliveryTime time.Time
	building     string
	roomType     string
	roomNumber   string

	guard guard.ConstructorGuard
}

// NewNotifyCollectionReadyCommand creates a validated collection-ready command.
func NewNotifyCollectionReadyCommand(
	orderID int64,
	deliveryTime time.Time,
	building, roomType, roomNumber string,
) (NotifyCollectionReadyCommand, error) {
	if orderID <= 0 {
		return NotifyCollectionReadyCommand{}, errs.NewValueIsInvalidErrorWithCause("orderId",
			fmt.Errorf("%d is not a positive order id", orderID))
	}
	if deliveryTime.IsZero() {
		return NotifyCollectionReadyCommand{}, errs.NewValueIsRequiredError("deliveryTime")
	}

	return NotifyCollectionReadyCommand{
		orderID:      orderID,
		deliveryTime: deliveryTime,
		building:     building,
		roomType:     roomType,
		roomNumber:   roomNumber,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c NotifyCollectionReadyCommand) Validate() error {
	return c.guard.Validate(ErrNotifyCollectionReadyCommandIsNotConstructed)
}

// OrderID returns the order that is ready for collection.
func (c NotifyCollectionReadyCommand) OrderID() int64 { return c.orderID }

// DeliveryTime returns the order's delivery time as received from upstream.
func (c NotifyCollectionReadyCommand) DeliveryTime() time.Time { return c.deliveryTime }

// Building returns the delivery building.
func (c NotifyCollectionReadyCommand) Building() string { return c.building }

// RoomType returns the delivery room type.
func (c NotifyCollectionReadyCommand) RoomType() string { return c.roomType }

// RoomNumber returns the delivery room number.
func (c NotifyCollectionReadyCommand) RoomNumber() string { return c.roomNumber }
