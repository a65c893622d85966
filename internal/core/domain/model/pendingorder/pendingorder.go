package pendingorder

import (
	"errors"
	"fmt"
	"time"

	"runners/internal/core/domain/model/timeslot"
	"runners/internal/pkg/errs"
)

var (
	// ErrPendingOrderIsNotConstructed is returned when a PendingOrder instance
	// was not created through NewPendingOrder or RestorePendingOrder.
	ErrPendingOrderIsNotConstructed = errors.New(
		"PendingOrder must be created via NewPendingOrder or RestorePendingOrder",
	)

	// ErrOrderAlreadyAssigned is returned when marking an order assigned twice.
	// The dispatcher only reads unassigned orders, so hitting this indicates a
	// missing mutual-exclusion boundary upstream.
	ErrOrderAlreadyAssigned = errors.New("pending order is already assigned")
)

// Item is one line item of a pending order. Items are carried as a typed
// structure throughout the domain; the JSON tags define both the inbound event
// form and the persisted encoding.
type Item struct {
	Qty            int    `json:"qty"`
	Name           string `json:"name"`
	MenuItemID     int64  `json:"menuItemId"`
	UnitPriceCents int64  `json:"unitPriceCents"`
}

// PendingOrder is an order awaiting dispatch to a runner. It is created when
// the upstream order service reports payment verification, carries the derived
// delivery timeslot, and is flipped to assigned by the dispatcher, always
// together with the matching assignment ledger row in one transaction.
//
// Invariants:
//   - orderID is positive and unique
//   - deliveryTime is local delivery time and classifies into a valid timeslot
//   - assigned=true corresponds 1:1 with an assignment ledger row
//   - only construction via NewPendingOrder / RestorePendingOrder is valid
type PendingOrder struct {
	orderID          int64
	deliveryTime     time.Time
	slot             timeslot.Timeslot
	building         string
	roomType         string
	roomNumber       string
	merchantID       int64
	customerEmail    string
	deliveryFeeCents int64
	totalAmountCents int64
	items            []Item
	assigned         bool

	isConstructed bool
}

// NewPendingOrder creates a PendingOrder from a payment-verified order event.
// The delivery time must already be in local delivery time; it is classified
// into a timeslot here, and times outside every delivery window are rejected
// with timeslot.ErrUnclassifiableTime. New orders start unassigned.
func NewPendingOrder(
	orderID int64,
	deliveryTime time.Time,
	building, roomType, roomNumber string,
	merchantID int64,
	customerEmail string,
	deliveryFeeCents, totalAmountCents int64,
	items []Item,
) (*PendingOrder, error) {
	slot, err := timeslot.Classify(deliveryTime)
	if err != nil {
		return nil, fmt.Errorf("order %d at %s: %w", orderID, deliveryTime.Format("15:04"), err)
	}

	order := &PendingOrder{
		deliveryTime:     deliveryTime,
		slot:             slot,
		building:         building,
		roomType:         roomType,
		roomNumber:       roomNumber,
		merchantID:       merchantID,
		deliveryFeeCents: deliveryFeeCents,
		totalAmountCents: totalAmountCents,
		items:            append([]Item(nil), items...),
		isConstructed:    true,
	}

	if err := errors.Join(
		order.setOrderID(orderID),
		order.setCustomerEmail(customerEmail),
	); err != nil {
		return nil, err
	}

	return order, nil
}

// RestorePendingOrder reconstructs a PendingOrder from persistence, including
// its stored timeslot and assigned flag. The slot is trusted as stored and not
// re-derived, so historical rows survive window-table changes.
func RestorePendingOrder(
	orderID int64,
	deliveryTime time.Time,
	slot timeslot.Timeslot,
	building, roomType, roomNumber string,
	merchantID int64,
	customerEmail string,
	deliveryFeeCents, totalAmountCents int64,
	items []Item,
	assigned bool,
) (*PendingOrder, error) {
	if err := slot.Validate(); err != nil {
		return nil, err
	}

	order := &PendingOrder{
		deliveryTime:     deliveryTime,
		slot:             slot,
		building:         building,
		roomType:         roomType,
		roomNumber:       roomNumber,
		merchantID:       merchantID,
		deliveryFeeCents: deliveryFeeCents,
		totalAmountCents: totalAmountCents,
		items:            append([]Item(nil), items...),
		assigned:         assigned,
		isConstructed:    true,
	}

	if err := errors.Join(
		order.setOrderID(orderID),
		order.setCustomerEmail(customerEmail),
	); err != nil {
		return nil, err
	}

	return order, nil
}

// Validate ensures the PendingOrder was properly constructed.
func (o *PendingOrder) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrPendingOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two pending orders by order id.
func (o *PendingOrder) IsEqual(other *PendingOrder) bool {
	return other != nil && o.orderID == other.orderID
}

// OrderID returns the upstream order identifier.
func (o *PendingOrder) OrderID() int64 {
	return o.orderID
}

// DeliveryTime returns the local delivery time.
func (o *PendingOrder) DeliveryTime() time.Time {
	return o.deliveryTime
}

// Slot returns the delivery timeslot derived from the delivery time.
func (o *PendingOrder) Slot() timeslot.Timeslot {
	return o.slot
}

// Building returns the delivery building.
func (o *PendingOrder) Building() string {
	return o.building
}

// RoomType returns the delivery room type.
func (o *PendingOrder) RoomType() string {
	return o.roomType
}

// RoomNumber returns the delivery room number.
func (o *PendingOrder) RoomNumber() string {
	return o.roomNumber
}

// MerchantID returns the merchant the order was placed with.
func (o *PendingOrder) MerchantID() int64 {
	return o.merchantID
}

// CustomerEmail returns the ordering customer's email.
func (o *PendingOrder) CustomerEmail() string {
	return o.customerEmail
}

// DeliveryFeeCents returns the delivery fee in minor currency units.
func (o *PendingOrder) DeliveryFeeCents() int64 {
	return o.deliveryFeeCents
}

// TotalAmountCents returns the order total in minor currency units.
func (o *PendingOrder) TotalAmountCents() int64 {
	return o.totalAmountCents
}

// TotalAmountMajor returns the order total in major currency units, as used in
// runner notifications.
func (o *PendingOrder) TotalAmountMajor() float64 {
	return float64(o.totalAmountCents) / 100.0
}

// Items returns a copy of the order's line items.
func (o *PendingOrder) Items() []Item {
	return append([]Item(nil), o.items...)
}

// ItemNames extracts the line item names, in order, for notification
// summaries.
func (o *PendingOrder) ItemNames() []string {
	names := make([]string, 0, len(o.items))
	for _, item := range o.items {
		names = append(names, item.Name)
	}
	return names
}

// Assigned reports whether a runner has been assigned to the order.
func (o *PendingOrder) Assigned() bool {
	return o.assigned
}

// MarkAssigned flips the order to assigned. Must be committed in the same
// transaction as the assignment ledger insert. Returns ErrOrderAlreadyAssigned
// if the order is assigned already.
func (o *PendingOrder) MarkAssigned() error {
	if o.assigned {
		return fmt.Errorf("order %d: %w", o.orderID, ErrOrderAlreadyAssigned)
	}

	o.assigned = true
	return nil
}

// MarkUnassigned flips the order back to unassigned. Used by the bulk reset
// operation together with ledger truncation; idempotent.
func (o *PendingOrder) MarkUnassigned() {
	o.assigned = false
}

func (o *PendingOrder) setOrderID(orderID int64) error {
	if orderID <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("orderId",
			fmt.Errorf("%d is not a positive order id", orderID))
	}
	o.orderID = orderID
	return nil
}

func (o *PendingOrder) setCustomerEmail(email string) error {
	if email == "" {
		return errs.NewValueIsRequiredError("customerEmail")
	}
	o.customerEmail = email
	return nil
}
