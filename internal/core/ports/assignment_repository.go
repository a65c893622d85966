package ports

import (
	"context"

	"runners/internal/core/domain/model/assignment"
	"runners/internal/core/domain/model/kernel"
)

// AssignmentRepository defines the persistence contract for the assignment
// ledger.
type AssignmentRepository interface {
	// Add persists a new ledger row. The order id is unique across the
	// ledger: at most one assignment may exist per order.
	Add(ctx context.Context, record *assignment.Assignment) error

	// GetByOrderID retrieves the ledger row for an order. Returns an
	// errs.ObjectNotFoundError when no row exists.
	GetByOrderID(ctx context.Context, orderID int64) (*assignment.Assignment, error)

	// GetByRunnerAndDate retrieves all of a runner's ledger rows for a date,
	// ordered by ascending order id.
	GetByRunnerAndDate(ctx context.Context, runnerID int64, date kernel.Date) ([]*assignment.Assignment, error)

	// DeleteAll truncates the ledger. Paired with
	// PendingOrderRepository.UnassignAll inside the reset transaction.
	DeleteAll(ctx context.Context) error
}
