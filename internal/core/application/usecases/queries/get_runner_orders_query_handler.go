package queries

import (
	"context"
	"encoding/json"
	"time"

	"runners/internal/core/domain/model/pendingorder"

	"gorm.io/gorm"
)

// GetRunnerOrdersQueryHandler reads a runner's manifest with a single join
// over the assignment ledger and the pending order pool.
type GetRunnerOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetRunnerOrdersQueryHandler creates a handler for runner manifest queries.
func NewGetRunnerOrdersQueryHandler(db *gorm.DB) GetRunnerOrdersQueryHandler {
	return GetRunnerOrdersQueryHandler{db: db}
}

// Handle executes the manifest query.
// Returns the orders assigned to the runner on the date, sorted by order id.
// A runner with no assignments gets an empty slice, not an error.
func (h GetRunnerOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetRunnerOrdersQuery,
) ([]GetRunnerOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders := make([]GetRunnerOrdersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			po.order_id,
			po.timeslot,
			po.delivery_time,
			po.building,
			po.room_type,
			po.room_number,
			po.items,
			po.total_amount_cents
		FROM runner_assignments a
		JOIN pending_orders po ON po.order_id = a.order_id
		WHERE a.runner_id = ? AND a.date = ?
		ORDER BY po.order_id
	`, query.RunnerID(), query.Date().String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var orderResp GetRunnerOrdersQueryResponse
		var deliveryTime time.Time
		var rawItems []byte
		var totalAmountCents int64

		err = rows.Scan(
			&orderResp.OrderID,
			&orderResp.Slot,
			&deliveryTime,
			&orderResp.Building,
			&orderResp.RoomType,
			&orderResp.RoomNumber,
			&rawItems,
			&totalAmountCents,
		)
		if err != nil {
			return nil, err
		}

		var items []pendingorder.Item
		if len(rawItems) > 0 {
			if err = json.Unmarshal(rawItems, &items); err != nil {
				return nil, err
			}
		}

		names := make([]string, 0, len(items))
		for _, item := range items {
			names = append(names, item.Name)
		}

		orderResp.DeliveryTime = deliveryTime
		orderResp.Items = names
		orderResp.TotalAmount = float64(totalAmountCents) / 100

		orders = append(orders, orderResp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
