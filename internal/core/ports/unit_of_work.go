package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each request/command.
// This ensures proper isolation between concurrent operations.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a business transaction boundary across the three
// registries. It provides transaction control and repository access bound to
// the current transaction. Client code must explicitly manage the transaction
// lifecycle; repositories obtained before Begin operate outside any
// transaction.
//
// The dispatcher relies on this boundary for its core invariant: each order's
// ledger insert and pending-flag update commit atomically or not at all.
type UnitOfWork interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction.
	// Returns error if no active transaction or commit fails.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction.
	// Returns error if no active transaction or rollback fails.
	Rollback(ctx context.Context) error

	// PendingOrderRepository returns a PendingOrderRepository bound to the
	// current transaction, if one is active.
	PendingOrderRepository() PendingOrderRepository

	// AvailabilityRepository returns an AvailabilityRepository bound to the
	// current transaction, if one is active.
	AvailabilityRepository() AvailabilityRepository

	// AssignmentRepository returns an AssignmentRepository bound to the
	// current transaction, if one is active.
	AssignmentRepository() AssignmentRepository
}
