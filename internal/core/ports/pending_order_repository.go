// Package ports defines the contracts between the core and its collaborators:
// repositories over the three registries, the unit of work transaction
// boundary, the notification publisher and the clock. These interfaces enable
// dependency inversion and testability.
package ports

import (
	"context"
	"time"

	"runners/internal/core/domain/model/pendingorder"
	"runners/internal/core/domain/model/timeslot"
)

// PendingOrderRepository defines the persistence contract for pending orders.
type PendingOrderRepository interface {
	// Upsert persists an order keyed by its order id, replacing any existing
	// row for the same id. Repeated submissions of the same order are
	// therefore idempotent.
	Upsert(ctx context.Context, order *pendingorder.PendingOrder) error

	// Update persists changes to an existing order. Used by the dispatcher to
	// flip the assigned flag inside the assignment transaction.
	Update(ctx context.Context, order *pendingorder.PendingOrder) error

	// Get retrieves an order by its order id.
	Get(ctx context.Context, orderID int64) (*pendingorder.PendingOrder, error)

	// GetUnassignedBySlot retrieves all unassigned orders in the given
	// timeslot, ordered by ascending order id. The ordering feeds the
	// dispatcher's determinism guarantee.
	GetUnassignedBySlot(ctx context.Context, slot timeslot.Timeslot) ([]*pendingorder.PendingOrder, error)

	// GetUnassignedBetween retrieves unassigned orders whose delivery time
	// falls within [start, end], ordered by ascending order id.
	GetUnassignedBetween(ctx context.Context, start, end time.Time) ([]*pendingorder.PendingOrder, error)

	// GetByOrderIDs retrieves the orders with the given ids, ordered by
	// ascending order id. Missing ids are skipped, not an error.
	GetByOrderIDs(ctx context.Context, orderIDs []int64) ([]*pendingorder.PendingOrder, error)

	// UnassignAll flips every assigned order back to unassigned. Paired with
	// AssignmentRepository.DeleteAll inside the reset transaction.
	UnassignAll(ctx context.Context) error
}
