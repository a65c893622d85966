package availabilityrepo

import (
	"context"
	"errors"

	"runners/internal/core/domain/model/availability"
	"runners/internal/core/domain/model/kernel"
	"runners/internal/core/domain/model/timeslot"
	"runners/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormAvailabilityRepository implements AvailabilityRepository using GORM.
type GormAvailabilityRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id int64, aggregate any)
}

// NewGormAvailabilityRepository creates a new GORM availability repository.
func NewGormAvailabilityRepository(db *gorm.DB, tracker aggregateTracker) *GormAvailabilityRepository {
	return &GormAvailabilityRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new availability row.
func (r *GormAvailabilityRepository) Add(ctx context.Context, record *availability.Availability) error {
	if err := record.Validate(); err != nil {
		return err
	}

	dto := fromDomain(record)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(record.RunnerID(), record)
	return nil
}

// GetByRunnerAndDate retrieves all of a runner's rows for a date.
func (r *GormAvailabilityRepository) GetByRunnerAndDate(
	ctx context.Context, runnerID int64, date kernel.Date,
) ([]*availability.Availability, error) {
	var dtos []AvailabilityDTO
	err := r.db.WithContext(ctx).
		Where("runner_id = ? AND date = ?", runnerID, date.String()).
		Order("timeslot").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	records := make([]*availability.Availability, 0, len(dtos))
	for _, dto := range dtos {
		record, recordErr := toDomain(dto)
		if recordErr != nil {
			return nil, recordErr
		}
		records = append(records, record)
	}

	return records, nil
}

// DeleteSlot removes the (runner, date, slot) row, if present.
func (r *GormAvailabilityRepository) DeleteSlot(
	ctx context.Context, runnerID int64, date kernel.Date, slot timeslot.Timeslot,
) error {
	return r.db.WithContext(ctx).
		Where("runner_id = ? AND date = ? AND timeslot = ?", runnerID, date.String(), slot.String()).
		Delete(&AvailabilityDTO{}).Error
}

// GetRunnerIDs retrieves the distinct runner ids registered for the date and
// slot, in ascending id order.
func (r *GormAvailabilityRepository) GetRunnerIDs(
	ctx context.Context, date kernel.Date, slot timeslot.Timeslot,
) ([]int64, error) {
	ids := make([]int64, 0)
	err := r.db.WithContext(ctx).Model(&AvailabilityDTO{}).
		Where("date = ? AND timeslot = ?", date.String(), slot.String()).
		Distinct().
		Order("runner_id").
		Pluck("runner_id", &ids).Error
	if err != nil {
		return nil, err
	}

	return ids, nil
}

// GetEmail resolves a runner's notification email from any of their rows for
// the date.
func (r *GormAvailabilityRepository) GetEmail(
	ctx context.Context, runnerID int64, date kernel.Date,
) (string, error) {
	var dto AvailabilityDTO
	err := r.db.WithContext(ctx).
		First(&dto, "runner_id = ? AND date = ?", runnerID, date.String()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", errs.NewObjectNotFoundError("runner availability", runnerID)
		}
		return "", err
	}

	return dto.RunnerEmail, nil
}

// DeleteBefore removes every row dated strictly before the given date.
// Dates sort lexicographically in ISO form, so a string comparison suffices.
func (r *GormAvailabilityRepository) DeleteBefore(ctx context.Context, date kernel.Date) error {
	return r.db.WithContext(ctx).
		Where("date < ?", date.String()).
		Delete(&AvailabilityDTO{}).Error
}
