package queries

import (
	"context"
	"errors"

	"runners/internal/core/ports"
)

var errGetPendingOrderQueryHandlerIsNotConstructed = errors.New(
	"GetPendingOrderQueryHandler must be created via NewGetPendingOrderQueryHandler",
)

// GetPendingOrderQueryHandler reads a single order through the repository.
type GetPendingOrderQueryHandler struct {
	uowFactory ports.UnitOfWorkFactory
}

// NewGetPendingOrderQueryHandler creates a handler for single order lookups.
func NewGetPendingOrderQueryHandler(uowFactory ports.UnitOfWorkFactory) GetPendingOrderQueryHandler {
	return GetPendingOrderQueryHandler{uowFactory: uowFactory}
}

// Handle executes the lookup. Returns errs.ErrObjectNotFound (wrapped) when no
// order exists for the id.
func (h GetPendingOrderQueryHandler) Handle(
	ctx context.Context,
	query GetPendingOrderQuery,
) (GetPendingOrdersQueryResponse, error) {
	if h.uowFactory == nil {
		return GetPendingOrdersQueryResponse{}, errGetPendingOrderQueryHandlerIsNotConstructed
	}
	if err := query.Validate(); err != nil {
		return GetPendingOrdersQueryResponse{}, err
	}

	repo := h.uowFactory.Create().PendingOrderRepository()

	order, err := repo.Get(ctx, query.OrderID())
	if err != nil {
		return GetPendingOrdersQueryResponse{}, err
	}

	return toPendingOrderResponse(order), nil
}
