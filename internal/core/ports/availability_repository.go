package ports

import (
	"context"

	"runners/internal/core/domain/model/availability"
	"runners/internal/core/domain/model/kernel"
	"runners/internal/core/domain/model/timeslot"
)

// AvailabilityRepository defines the persistence contract for runner
// availability records.
type AvailabilityRepository interface {
	// Add persists a new availability row.
	Add(ctx context.Context, record *availability.Availability) error

	// GetByRunnerAndDate retrieves all rows for one runner on one date.
	GetByRunnerAndDate(ctx context.Context, runnerID int64, date kernel.Date) ([]*availability.Availability, error)

	// DeleteSlot removes the (runner, date, slot) row. It is idempotent:
	// deleting an absent row is not an error.
	DeleteSlot(ctx context.Context, runnerID int64, date kernel.Date, slot timeslot.Timeslot) error

	// GetRunnerIDs retrieves the distinct runner ids registered for the date
	// and slot, in ascending id order. The ordering feeds the dispatcher's
	// fairness guarantee.
	GetRunnerIDs(ctx context.Context, date kernel.Date, slot timeslot.Timeslot) ([]int64, error)

	// GetEmail resolves a runner's notification email for a date. A runner
	// registers all slots of a day with one email, so any row works.
	GetEmail(ctx context.Context, runnerID int64, date kernel.Date) (string, error)

	// DeleteBefore removes every row dated strictly before the given date.
	// Called by the daily sweep; no history is retained.
	DeleteBefore(ctx context.Context, date kernel.Date) error
}
