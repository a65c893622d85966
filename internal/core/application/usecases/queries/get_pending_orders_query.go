package queries

import (
	"errors"
	"fmt"
	"time"

	"runners/internal/core/domain/model/timeslot"
	"runners/internal/pkg/errs"
	"runners/internal/pkg/guard"
)

var ErrGetPendingOrdersQueryIsNotConstructed = errors.New(
	"GetPendingOrdersQuery must be created via one of its constructors",
)

// GetPendingOrdersQuery lists orders from the pending pool. Exactly one
// filter is set per query: a timeslot, a delivery-time window, or explicit
// order ids. Slot and window queries return unassigned orders only; the ids
// lookup returns whatever exists for those ids.
type GetPendingOrdersQuery struct {
	slot     timeslot.Timeslot
	start    time.Time
	end      time.Time
	orderIDs []int64

	guard guard.ConstructorGuard
}

// NewGetPendingOrdersBySlotQuery creates a query for the unassigned orders
// of one timeslot.
func NewGetPendingOrdersBySlotQuery(slot timeslot.Timeslot) (GetPendingOrdersQuery, error) {
	if err := slot.Validate(); err != nil {
		return GetPendingOrdersQuery{}, err
	}

	return GetPendingOrdersQuery{
		slot:  slot,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// NewGetPendingOrdersByWindowQuery creates a query for the unassigned orders
// whose local delivery time falls in [start, end].
func NewGetPendingOrdersByWindowQuery(start, end time.Time) (GetPendingOrdersQuery, error) {
	if start.IsZero() {
		return GetPendingOrdersQuery{}, errs.NewValueIsRequiredError("start")
	}
	if end.IsZero() {
		return GetPendingOrdersQuery{}, errs.NewValueIsRequiredError("end")
	}
	if end.Before(start) {
		return GetPendingOrdersQuery{}, errs.NewValueIsInvalidErrorWithCause("end",
			fmt.Errorf("%s is before start %s", end, start))
	}

	return GetPendingOrdersQuery{
		start: start,
		end:   end,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// NewGetPendingOrdersByIDsQuery creates a batch lookup for the given order
// ids.
func NewGetPendingOrdersByIDsQuery(orderIDs []int64) (GetPendingOrdersQuery, error) {
	if len(orderIDs) == 0 {
		return GetPendingOrdersQuery{}, errs.NewValueIsRequiredError("orderIds")
	}
	for _, id := range orderIDs {
		if id <= 0 {
			return GetPendingOrdersQuery{}, errs.NewValueIsInvalidErrorWithCause("orderIds",
				fmt.Errorf("%d is not a positive order id", id))
		}
	}

	return GetPendingOrdersQuery{
		orderIDs: append([]int64(nil), orderIDs...),
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through a constructor.
func (q GetPendingOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetPendingOrdersQueryIsNotConstructed)
}

// Slot returns the timeslot filter; Unknown when another filter is set.
func (q GetPendingOrdersQuery) Slot() timeslot.Timeslot { return q.slot }

// Start returns the window's start; zero when another filter is set.
func (q GetPendingOrdersQuery) Start() time.Time { return q.start }

// End returns the window's end; zero when another filter is set.
func (q GetPendingOrdersQuery) End() time.Time { return q.end }

// OrderIDs returns a copy of the id filter; empty when another filter is set.
func (q GetPendingOrdersQuery) OrderIDs() []int64 {
	return append([]int64(nil), q.orderIDs...)
}

// GetPendingOrdersQueryResponse is one pending pool entry.
type GetPendingOrdersQueryResponse struct {
	OrderID       int64
	Slot          string
	DeliveryTime  time.Time
	Building      string
	RoomType      string
	RoomNumber    string
	MerchantID    int64
	CustomerEmail string
	Items         []string
	TotalAmount   float64
	Assigned      bool
}
