package services_test

import (
	"testing"
	"time"

	"runners/internal/core/domain/model/pendingorder"
	"runners/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func slot2Order(t *testing.T, orderID int64) *pendingorder.PendingOrder {
	t.Helper()
	loc, err := time.LoadLocation("Asia/Singapore")
	require.NoError(t, err)

	order, err := pendingorder.NewPendingOrder(
		orderID,
		time.Date(2025, time.November, 12, 11, 30, 0, 0, loc),
		"SDE1", "meeting_room", "02-11",
		7,
		"customer@example.com",
		150, 1250,
		[]pendingorder.Item{{Qty: 1, Name: "Chicken Rice", MenuItemID: 31, UnitPriceCents: 550}},
	)
	require.NoError(t, err)
	return order
}

func TestDispatchPlanner_Plan_RoundRobin(t *testing.T) {
	// 5 orders over runners 10 and 20: runner 10 takes positions 0, 2, 4 and
	// runner 20 takes positions 1, 3.
	planner := services.NewDispatchPlanner()

	orders := []*pendingorder.PendingOrder{
		slot2Order(t, 101),
		slot2Order(t, 102),
		slot2Order(t, 103),
		slot2Order(t, 104),
		slot2Order(t, 105),
	}

	entries, err := planner.Plan(orders, []int64{10, 20})
	require.NoError(t, err)
	require.Len(t, entries, 5)

	assert.Equal(t, int64(10), entries[0].RunnerID)
	assert.Equal(t, int64(20), entries[1].RunnerID)
	assert.Equal(t, int64(10), entries[2].RunnerID)
	assert.Equal(t, int64(20), entries[3].RunnerID)
	assert.Equal(t, int64(10), entries[4].RunnerID)

	counts := map[int64]int{}
	for _, e := range entries {
		counts[e.RunnerID]++
	}
	assert.Equal(t, 3, counts[10])
	assert.Equal(t, 2, counts[20])
}

func TestDispatchPlanner_Plan_Fairness(t *testing.T) {
	planner := services.NewDispatchPlanner()

	cases := []struct {
		name    string
		orders  int
		runners []int64
	}{
		{"more orders than runners", 11, []int64{1, 2, 3}},
		{"fewer orders than runners", 2, []int64{1, 2, 3, 4, 5}},
		{"equal orders and runners", 4, []int64{1, 2, 3, 4}},
		{"single runner", 7, []int64{9}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			orders := make([]*pendingorder.PendingOrder, 0, tc.orders)
			for i := 0; i < tc.orders; i++ {
				orders = append(orders, slot2Order(t, int64(200+i)))
			}

			entries, err := planner.Plan(orders, tc.runners)
			require.NoError(t, err)
			require.Len(t, entries, tc.orders)

			counts := map[int64]int{}
			for _, e := range entries {
				counts[e.RunnerID]++
			}

			minCount, maxCount := tc.orders, 0
			for _, id := range tc.runners {
				if counts[id] < minCount {
					minCount = counts[id]
				}
				if counts[id] > maxCount {
					maxCount = counts[id]
				}
			}
			assert.LessOrEqual(t, maxCount-minCount, 1)
		})
	}
}

func TestDispatchPlanner_Plan_Deterministic(t *testing.T) {
	planner := services.NewDispatchPlanner()

	// Inputs arrive unsorted; the plan must sort both sides before pairing.
	orders := []*pendingorder.PendingOrder{
		slot2Order(t, 103),
		slot2Order(t, 101),
		slot2Order(t, 102),
	}

	entries, err := planner.Plan(orders, []int64{20, 10})
	require.NoError(t, err)

	assert.Equal(t, int64(101), entries[0].Order.OrderID())
	assert.Equal(t, int64(10), entries[0].RunnerID)
	assert.Equal(t, int64(102), entries[1].Order.OrderID())
	assert.Equal(t, int64(20), entries[1].RunnerID)
	assert.Equal(t, int64(103), entries[2].Order.OrderID())
	assert.Equal(t, int64(10), entries[2].RunnerID)

	again, err := planner.Plan(orders, []int64{10, 20})
	require.NoError(t, err)
	assert.Equal(t, entries, again)
}

func TestDispatchPlanner_Plan_NoRunners(t *testing.T) {
	planner := services.NewDispatchPlanner()

	_, err := planner.Plan([]*pendingorder.PendingOrder{slot2Order(t, 101)}, nil)

	require.ErrorIs(t, err, services.ErrNoAvailableRunners)
}

func TestDispatchPlanner_Plan_EmptyOrders(t *testing.T) {
	planner := services.NewDispatchPlanner()

	entries, err := planner.Plan(nil, []int64{10})

	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestDispatchPlanner_Plan_InvalidOrder(t *testing.T) {
	planner := services.NewDispatchPlanner()

	var notConstructed pendingorder.PendingOrder
	_, err := planner.Plan([]*pendingorder.PendingOrder{&notConstructed}, []int64{10})

	require.ErrorIs(t, err, pendingorder.ErrPendingOrderIsNotConstructed)
}

func TestDispatchPlanner_Plan_DoesNotMutateInputs(t *testing.T) {
	planner := services.NewDispatchPlanner()

	orders := []*pendingorder.PendingOrder{slot2Order(t, 103), slot2Order(t, 101)}
	runners := []int64{20, 10}

	_, err := planner.Plan(orders, runners)
	require.NoError(t, err)

	assert.Equal(t, int64(103), orders[0].OrderID())
	assert.Equal(t, []int64{20, 10}, runners)
}
