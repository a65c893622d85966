package assignmentrepo

import (
	"context"
	"errors"

	"runners/internal/core/domain/model/assignment"
	"runners/internal/core/domain/model/kernel"
	"runners/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormAssignmentRepository implements AssignmentRepository using GORM.
type GormAssignmentRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id int64, aggregate any)
}

// NewGormAssignmentRepository creates a new GORM assignment repository.
func NewGormAssignmentRepository(db *gorm.DB, tracker aggregateTracker) *GormAssignmentRepository {
	return &GormAssignmentRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new ledger row. The unique index on order_id rejects a second
// assignment of the same order.
func (r *GormAssignmentRepository) Add(ctx context.Context, record *assignment.Assignment) error {
	if err := record.Validate(); err != nil {
		return err
	}

	dto := fromDomain(record)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(record.OrderID(), record)
	return nil
}

// GetByOrderID retrieves the ledger row for an order.
func (r *GormAssignmentRepository) GetByOrderID(
	ctx context.Context, orderID int64,
) (*assignment.Assignment, error) {
	var dto AssignmentDTO
	if err := r.db.WithContext(ctx).First(&dto, "order_id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("assignment", orderID)
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByRunnerAndDate retrieves a runner's ledger rows for a date in ascending
// order id.
func (r *GormAssignmentRepository) GetByRunnerAndDate(
	ctx context.Context, runnerID int64, date kernel.Date,
) ([]*assignment.Assignment, error) {
	var dtos []AssignmentDTO
	err := r.db.WithContext(ctx).
		Where("runner_id = ? AND date = ?", runnerID, date.String()).
		Order("order_id").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	records := make([]*assignment.Assignment, 0, len(dtos))
	for _, dto := range dtos {
		record, recordErr := toDomain(dto)
		if recordErr != nil {
			return nil, recordErr
		}
		records = append(records, record)
	}

	return records, nil
}

// DeleteAll truncates the ledger.
func (r *GormAssignmentRepository) DeleteAll(ctx context.Context) error {
	return r.db.WithContext(ctx).
		Where("order_id IS NOT NULL").
		Delete(&AssignmentDTO{}).Error
}
