// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS
// architecture. All commands follow a consistent pattern: validation,
// transaction management, and persistence.
package commands

import (
	"context"

	"runners/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// PendingOrderRepoFactory provides access to the pending order repository
	// within a transaction.
	PendingOrderRepoFactory interface {
		PendingOrderRepository() ports.PendingOrderRepository
	}

	// AvailabilityRepoFactory provides access to the availability repository
	// within a transaction.
	AvailabilityRepoFactory interface {
		AvailabilityRepository() ports.AvailabilityRepository
	}

	// AssignmentRepoFactory provides access to the assignment ledger
	// repository within a transaction.
	AssignmentRepoFactory interface {
		AssignmentRepository() ports.AssignmentRepository
	}

	// PendingOrderUoW manages transactions for pending-order-only operations.
	PendingOrderUoW interface {
		TxManager
		PendingOrderRepoFactory
	}

	// PendingOrderUoWFactory creates new pending order unit of work instances.
	PendingOrderUoWFactory interface {
		Create() PendingOrderUoW
	}

	// AvailabilityUoW manages transactions for availability-only operations.
	AvailabilityUoW interface {
		TxManager
		AvailabilityRepoFactory
	}

	// AvailabilityUoWFactory creates new availability unit of work instances.
	AvailabilityUoWFactory interface {
		Create() AvailabilityUoW
	}

	// UoW manages transactions across all three registries. Used by commands
	// that coordinate changes between multiple aggregate types, most
	// importantly the dispatcher's atomic ledger-insert + flag-update pair.
	UoW interface {
		TxManager
		PendingOrderRepoFactory
		AvailabilityRepoFactory
		AssignmentRepoFactory
	}

	// UoWFactory creates new unit of work instances for cross-aggregate
	// operations.
	UoWFactory interface {
		Create() UoW
	}
)
