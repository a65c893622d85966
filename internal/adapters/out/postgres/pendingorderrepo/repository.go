package pendingorderrepo

import (
	"context"
	"errors"
	"time"

	"runners/internal/core/domain/model/pendingorder"
	"runners/internal/core/domain/model/timeslot"
	"runners/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormPendingOrderRepository implements PendingOrderRepository using GORM.
type GormPendingOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id int64, aggregate any)
}

// NewGormPendingOrderRepository creates a new GORM pending order repository.
func NewGormPendingOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormPendingOrderRepository {
	return &GormPendingOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Upsert saves an order, replacing any existing row for the same order id.
// The stored assigned flag survives the conflict update: a replayed
// payment-verified event must not detach an already-dispatched order from
// its ledger row. Only the dispatcher and the bulk reset touch the flag.
func (r *GormPendingOrderRepository) Upsert(ctx context.Context, aggregate *pendingorder.PendingOrder) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, err := fromDomain(aggregate)
	if err != nil {
		return err
	}

	err = r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "order_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"delivery_time", "timeslot", "building", "room_type", "room_number",
			"merchant_id", "customer_email", "delivery_fee_cents",
			"total_amount_cents", "items",
		}),
	}).Create(&dto).Error
	if err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.OrderID(), aggregate)
	return nil
}

// Update saves changes to an existing order.
func (r *GormPendingOrderRepository) Update(ctx context.Context, aggregate *pendingorder.PendingOrder) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, err := fromDomain(aggregate)
	if err != nil {
		return err
	}

	// Select("*") forces zero values like assigned=false to be written
	result := r.db.WithContext(ctx).Model(&PendingOrderDTO{}).
		Where("order_id = ?", dto.OrderID).
		Select("*").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.OrderID(), aggregate)
	return nil
}

// Get retrieves an order by its order id.
func (r *GormPendingOrderRepository) Get(ctx context.Context, orderID int64) (*pendingorder.PendingOrder, error) {
	var dto PendingOrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "order_id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("pending order", orderID)
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetUnassignedBySlot retrieves the unassigned orders of a timeslot in
// ascending order id, the order the dispatcher distributes them in.
func (r *GormPendingOrderRepository) GetUnassignedBySlot(
	ctx context.Context, slot timeslot.Timeslot,
) ([]*pendingorder.PendingOrder, error) {
	var dtos []PendingOrderDTO
	err := r.db.WithContext(ctx).
		Where("timeslot = ? AND assigned = ?", slot.String(), false).
		Order("order_id").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

// GetUnassignedBetween retrieves unassigned orders with a delivery time in
// [start, end], in ascending order id.
func (r *GormPendingOrderRepository) GetUnassignedBetween(
	ctx context.Context, start, end time.Time,
) ([]*pendingorder.PendingOrder, error) {
	var dtos []PendingOrderDTO
	err := r.db.WithContext(ctx).
		Where("assigned = ? AND delivery_time BETWEEN ? AND ?", false, start, end).
		Order("order_id").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

// GetByOrderIDs retrieves the orders with the given ids in ascending order
// id. Missing ids are skipped.
func (r *GormPendingOrderRepository) GetByOrderIDs(
	ctx context.Context, orderIDs []int64,
) ([]*pendingorder.PendingOrder, error) {
	var dtos []PendingOrderDTO
	err := r.db.WithContext(ctx).
		Where("order_id IN ?", orderIDs).
		Order("order_id").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

// UnassignAll flips every assigned order back to unassigned.
func (r *GormPendingOrderRepository) UnassignAll(ctx context.Context) error {
	return r.db.WithContext(ctx).Model(&PendingOrderDTO{}).
		Where("assigned = ?", true).
		Update("assigned", false).Error
}

func toDomainSlice(dtos []PendingOrderDTO) ([]*pendingorder.PendingOrder, error) {
	orders := make([]*pendingorder.PendingOrder, 0, len(dtos))
	for _, dto := range dtos {
		order, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	return orders, nil
}
