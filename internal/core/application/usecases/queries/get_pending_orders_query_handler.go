package queries

import (
	"context"
	"errors"

	"runners/internal/core/domain/model/pendingorder"
	"runners/internal/core/domain/model/timeslot"
	"runners/internal/core/ports"
)

var errGetPendingOrdersQueryHandlerIsNotConstructed = errors.New(
	"GetPendingOrdersQueryHandler must be created via NewGetPendingOrdersQueryHandler",
)

// GetPendingOrdersQueryHandler reads the pending pool through the repository.
// Reads run outside any transaction; a repository obtained before Begin is
// non-transactional by contract.
type GetPendingOrdersQueryHandler struct {
	uowFactory ports.UnitOfWorkFactory
}

// NewGetPendingOrdersQueryHandler creates a handler for pending pool queries.
func NewGetPendingOrdersQueryHandler(uowFactory ports.UnitOfWorkFactory) GetPendingOrdersQueryHandler {
	return GetPendingOrdersQueryHandler{uowFactory: uowFactory}
}

// Handle executes the pending pool query. An empty pool yields an empty
// slice, not an error.
func (h GetPendingOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetPendingOrdersQuery,
) ([]GetPendingOrdersQueryResponse, error) {
	if h.uowFactory == nil {
		return nil, errGetPendingOrdersQueryHandlerIsNotConstructed
	}
	if err := query.Validate(); err != nil {
		return nil, err
	}

	repo := h.uowFactory.Create().PendingOrderRepository()

	var (
		orders []*pendingorder.PendingOrder
		err    error
	)
	switch {
	case query.Slot() != timeslot.Unknown:
		orders, err = repo.GetUnassignedBySlot(ctx, query.Slot())
	case !query.Start().IsZero():
		orders, err = repo.GetUnassignedBetween(ctx, query.Start(), query.End())
	default:
		orders, err = repo.GetByOrderIDs(ctx, query.OrderIDs())
	}
	if err != nil {
		return nil, err
	}

	responses := make([]GetPendingOrdersQueryResponse, 0, len(orders))
	for _, order := range orders {
		responses = append(responses, toPendingOrderResponse(order))
	}

	return responses, nil
}

func toPendingOrderResponse(order *pendingorder.PendingOrder) GetPendingOrdersQueryResponse {
	return GetPendingOrdersQueryResponse{
		OrderID:       order.OrderID(),
		Slot:          order.Slot().String(),
		DeliveryTime:  order.DeliveryTime(),
		Building:      order.Building(),
		RoomType:      order.RoomType(),
		RoomNumber:    order.RoomNumber(),
		MerchantID:    order.MerchantID(),
		CustomerEmail: order.CustomerEmail(),
		Items:         order.ItemNames(),
		TotalAmount:   order.TotalAmountMajor(),
		Assigned:      order.Assigned(),
	}
}
