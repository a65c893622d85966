package queries

import (
	"errors"

	"runners/internal/pkg/errs"
	"runners/internal/pkg/guard"
)

var ErrGetPendingOrderQueryIsNotConstructed = errors.New(
	"GetPendingOrderQuery must be created via NewGetPendingOrderQuery",
)

// GetPendingOrderQuery looks up a single order by its order id, assigned or
// not.
type GetPendingOrderQuery struct {
	orderID int64

	guard guard.ConstructorGuard
}

// NewGetPendingOrderQuery creates a single order lookup.
func NewGetPendingOrderQuery(orderID int64) (GetPendingOrderQuery, error) {
	if orderID <= 0 {
		return GetPendingOrderQuery{}, errs.NewValueIsRequiredError("orderId")
	}

	return GetPendingOrderQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetPendingOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetPendingOrderQueryIsNotConstructed)
}

// OrderID returns the order id to look up.
func (q GetPendingOrderQuery) OrderID() int64 { return q.orderID }
