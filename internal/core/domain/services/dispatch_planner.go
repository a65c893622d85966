package services

import (
	"errors"
	"sort"

	"runners/internal/core/domain/model/pendingorder"
)

// ErrNoAvailableRunners is returned when a dispatch is attempted with zero
// registered runners for the date and timeslot. This is a non-fatal business
// outcome: the orders remain pending for a later attempt.
var ErrNoAvailableRunners = errors.New("no available runners for timeslot")

// PlanEntry is one dispatch decision: this order goes to this runner.
type PlanEntry struct {
	RunnerID int64
	Order    *pendingorder.PendingOrder
}

// DispatchPlanner is a domain service that distributes a batch of pending
// orders across the available runners for one timeslot.
//
// The distribution is round-robin over a deterministic ordering: orders sorted
// by ascending order id, runners by ascending runner id, and the i-th order
// (0-indexed) assigned to runners[i mod len(runners)]. This guarantees that
// runner loads differ by at most one order and that the same inputs always
// produce the same plan. The planner is pure: it carries no state between
// calls and performs no persistence.
type DispatchPlanner struct{}

// NewDispatchPlanner creates a new DispatchPlanner instance.
func NewDispatchPlanner() DispatchPlanner {
	return DispatchPlanner{}
}

// Plan computes the round-robin assignment of orders to runners.
//
// The input slices are not mutated; sorting happens on copies. Returns
// ErrNoAvailableRunners if runnerIDs is empty, and a validation error if any
// order was not properly constructed. An empty order list yields an empty
// plan.
func (p DispatchPlanner) Plan(
	orders []*pendingorder.PendingOrder,
	runnerIDs []int64,
) ([]PlanEntry, error) {
	if len(runnerIDs) == 0 {
		return nil, ErrNoAvailableRunners
	}

	for _, order := range orders {
		if err := order.Validate(); err != nil {
			return nil, err
		}
	}

	sortedOrders := append([]*pendingorder.PendingOrder(nil), orders...)
	sort.Slice(sortedOrders, func(i, j int) bool {
		return sortedOrders[i].OrderID() < sortedOrders[j].OrderID()
	})

	sortedRunners := append([]int64(nil), runnerIDs...)
	sort.Slice(sortedRunners, func(i, j int) bool {
		return sortedRunners[i] < sortedRunners[j]
	})

	entries := make([]PlanEntry, 0, len(sortedOrders))
	for i, order := range sortedOrders {
		entries = append(entries, PlanEntry{
			RunnerID: sortedRunners[i%len(sortedRunners)],
			Order:    order,
		})
	}

	return entries, nil
}
