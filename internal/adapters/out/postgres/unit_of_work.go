// Package postgres provides the GORM-based Unit of Work implementation that
// coordinates transactions across the pending order pool, the availability
// registry and the assignment ledger. Repositories obtained from an active
// unit of work share its transaction; before Begin they run against the main
// connection.
package postgres

import (
	"context"

	"runners/internal/adapters/out/postgres/assignmentrepo"
	"runners/internal/adapters/out/postgres/availabilityrepo"
	"runners/internal/adapters/out/postgres/pendingorderrepo"
	"runners/internal/core/ports"

	"gorm.io/gorm"
)

// trackedAggregate records an aggregate modified during the unit of work,
// keyed by its numeric identity. Kept for post-commit processing such as
// outbox publication.
type trackedAggregate struct {
	ID        int64
	Aggregate any
}

// GormUnitOfWorkFactory creates isolated UnitOfWork instances over a shared
// GORM connection. Each business operation gets its own instance so
// concurrent commands never share transaction state.
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

// NewGormUnitOfWorkFactory creates a factory bound to the given connection.
func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

// Create produces a fresh UnitOfWork with no active transaction.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		trackedAggregates: make([]trackedAggregate, 0),
	}
}

// GormUnitOfWork implements ports.UnitOfWork on GORM transactions.
//
// Example:
//
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() { _ = uow.Rollback(ctx) }()
//
//	if err := uow.AssignmentRepository().Add(ctx, record); err != nil {
//	    return err
//	}
//	if err := uow.PendingOrderRepository().Update(ctx, order); err != nil {
//	    return err
//	}
//	return uow.Commit(ctx)
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	trackedAggregates []trackedAggregate
}

// Begin starts a database transaction. Calling Begin with a transaction
// already active is a no-op, not a nested transaction.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		return uow.tx.Error
	}

	return nil
}

// Commit finalizes the current transaction. Returns
// gorm.ErrInvalidTransaction when none is active.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	return err
}

// Rollback discards the current transaction. Returns
// gorm.ErrInvalidTransaction when none is active, which makes the usual
// deferred rollback after a successful commit harmless.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	return err
}

// PendingOrderRepository returns a pending order repository bound to the
// active transaction, or to the main connection when none is active.
func (uow *GormUnitOfWork) PendingOrderRepository() ports.PendingOrderRepository {
	db := uow.db
	if uow.tx != nil {
		db = uow.tx
	}
	return pendingorderrepo.NewGormPendingOrderRepository(db, uow)
}

// AvailabilityRepository returns an availability repository bound to the
// active transaction, or to the main connection when none is active.
func (uow *GormUnitOfWork) AvailabilityRepository() ports.AvailabilityRepository {
	db := uow.db
	if uow.tx != nil {
		db = uow.tx
	}
	return availabilityrepo.NewGormAvailabilityRepository(db, uow)
}

// AssignmentRepository returns an assignment ledger repository bound to the
// active transaction, or to the main connection when none is active.
func (uow *GormUnitOfWork) AssignmentRepository() ports.AssignmentRepository {
	db := uow.db
	if uow.tx != nil {
		db = uow.tx
	}
	return assignmentrepo.NewGormAssignmentRepository(db, uow)
}

// TrackAggregate registers an aggregate modified within this unit of work.
// Repository implementations call it on every add and update.
func (uow *GormUnitOfWork) TrackAggregate(id int64, aggregate any) {
	uow.trackedAggregates = append(uow.trackedAggregates, trackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}
