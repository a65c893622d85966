// Package pendingorderrepo persists the pending order pool. It maps the
// PendingOrder aggregate to a relational row with the line items stored as a
// jsonb document, indexed for the dispatcher's slot scans.
package pendingorderrepo

import (
	"encoding/json"
	"time"

	"runners/internal/core/domain/model/pendingorder"
	"runners/internal/core/domain/model/timeslot"
)

// PendingOrderDTO is the database row for a pending order. The upstream order
// id is the primary key, so repeated submissions of the same order overwrite
// rather than duplicate.
type PendingOrderDTO struct {
	OrderID          int64     `gorm:"primaryKey;autoIncrement:false"`
	DeliveryTime     time.Time `gorm:"index"`
	Timeslot         string    `gorm:"type:varchar(16);index:idx_pending_slot_assigned"`
	Building         string
	RoomType         string
	RoomNumber       string
	MerchantID       int64
	CustomerEmail    string
	DeliveryFeeCents int64
	TotalAmountCents int64
	Items            []byte `gorm:"type:jsonb"`
	Assigned         bool   `gorm:"index:idx_pending_slot_assigned"`
}

// TableName specifies the database table name for pending orders.
func (PendingOrderDTO) TableName() string {
	return "pending_orders"
}

// fromDomain converts a PendingOrder aggregate to its database row.
func fromDomain(order *pendingorder.PendingOrder) (PendingOrderDTO, error) {
	rawItems, err := json.Marshal(order.Items())
	if err != nil {
		return PendingOrderDTO{}, err
	}

	return PendingOrderDTO{
		OrderID:          order.OrderID(),
		DeliveryTime:     order.DeliveryTime(),
		Timeslot:         order.Slot().String(),
		Building:         order.Building(),
		RoomType:         order.RoomType(),
		RoomNumber:       order.RoomNumber(),
		MerchantID:       order.MerchantID(),
		CustomerEmail:    order.CustomerEmail(),
		DeliveryFeeCents: order.DeliveryFeeCents(),
		TotalAmountCents: order.TotalAmountCents(),
		Items:            rawItems,
		Assigned:         order.Assigned(),
	}, nil
}

// toDomain reconstructs a PendingOrder aggregate from its database row.
func toDomain(dto PendingOrderDTO) (*pendingorder.PendingOrder, error) {
	slot, err := timeslot.FromString(dto.Timeslot)
	if err != nil {
		return nil, err
	}

	var items []pendingorder.Item
	if len(dto.Items) > 0 {
		if err = json.Unmarshal(dto.Items, &items); err != nil {
			return nil, err
		}
	}

	return pendingorder.RestorePendingOrder(
		dto.OrderID,
		dto.DeliveryTime,
		slot,
		dto.Building,
		dto.RoomType,
		dto.RoomNumber,
		dto.MerchantID,
		dto.CustomerEmail,
		dto.DeliveryFeeCents,
		dto.TotalAmountCents,
		items,
		dto.Assigned,
	)
}
