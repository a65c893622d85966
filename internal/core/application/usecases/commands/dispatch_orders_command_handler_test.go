package commands_test

import (
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"runners/internal/core/application/usecases/commands"
	"runners/internal/core/domain/model/assignment"
	"runners/internal/core/domain/model/kernel"
	"runners/internal/core/domain/model/pendingorder"
	"runners/internal/core/domain/model/timeslot"
	"runners/internal/core/domain/services"
	"runners/internal/core/ports"
	"runners/internal/pkg/locks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func lunchOrder(t *testing.T, orderID int64) *pendingorder.PendingOrder {
	t.Helper()
	deliveryTime := time.Date(2025, 3, 10, 11, 30, 0, 0, testLocation)
	order, err := pendingorder.NewPendingOrder(
		orderID, deliveryTime, "SOE", "Seminar Room", "2-1", 3,
		"customer@example.edu", 100, 1000,
		[]pendingorder.Item{{Qty: 1, Name: "Laksa", MenuItemID: 5, UnitPriceCents: 900}})
	require.NoError(t, err)
	return order
}

func TestDispatchOrdersCommandHandler_Handle_RoundRobin(t *testing.T) {
	ctx := t.Context()
	date, _ := kernel.NewDate(2025, 3, 10)
	cmd, err := commands.NewDispatchOrdersCommand(timeslot.Slot2, date)
	require.NoError(t, err)

	orders := []*pendingorder.PendingOrder{
		lunchOrder(t, 1), lunchOrder(t, 2), lunchOrder(t, 3), lunchOrder(t, 4), lunchOrder(t, 5),
	}
	runnerIDs := []int64{10, 20}

	orderRepo := new(MockPendingOrderRepository)
	availabilityRepo := new(MockAvailabilityRepository)
	assignmentRepo := new(MockAssignmentRepository)
	uow := new(MockUoW)
	publisher := new(MockNotificationPublisher)

	uow.On("PendingOrderRepository").Return(orderRepo)
	uow.On("AvailabilityRepository").Return(availabilityRepo)
	uow.On("AssignmentRepository").Return(assignmentRepo)
	uow.On("Begin", ctx).Return(nil).Times(5)
	uow.On("Commit", ctx).Return(nil).Times(5)
	uow.On("Rollback", ctx).Return(nil).Times(5)

	orderRepo.On("GetUnassignedBySlot", ctx, timeslot.Slot2).Return(orders, nil).Once()
	orderRepo.On("Update", ctx, mock.AnythingOfType("*pendingorder.PendingOrder")).Return(nil).Times(5)
	availabilityRepo.On("GetRunnerIDs", ctx, date, timeslot.Slot2).Return(runnerIDs, nil).Once()
	availabilityRepo.On("GetEmail", ctx, int64(10), date).Return("runner10@example.edu", nil).Once()
	availabilityRepo.On("GetEmail", ctx, int64(20), date).Return("runner20@example.edu", nil).Once()
	assignmentRepo.On("Add", ctx, mock.AnythingOfType("*assignment.Assignment")).Return(nil).Times(5)
	publisher.On("PublishRunnerAssignment", ctx, mock.AnythingOfType("ports.RunnerAssignmentNotification")).
		Return(nil).
		Twice()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow)

	handler := commands.NewDispatchOrdersCommandHandler(factory, publisher, locks.NewKeyedMutex(), discardLogger())
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	orderRepo.AssertExpectations(t)
	availabilityRepo.AssertExpectations(t)
	assignmentRepo.AssertExpectations(t)
	publisher.AssertExpectations(t)
	uow.AssertExpectations(t)

	// Orders alternate between the two runners in ascending order id
	wantRunners := map[int64]int64{1: 10, 2: 20, 3: 10, 4: 20, 5: 10}
	for _, call := range assignmentRepo.Calls {
		record := call.Arguments[1].(*assignment.Assignment)
		assert.Equal(t, wantRunners[record.OrderID()], record.RunnerID())
		assert.Equal(t, timeslot.Slot2, record.Slot())
		assert.True(t, date.IsEqual(record.Date()))
	}

	// Every order was flipped to assigned before its update
	for _, order := range orders {
		assert.True(t, order.Assigned())
	}

	// One aggregated notification per runner
	batches := map[string]int{}
	for _, call := range publisher.Calls {
		notification := call.Arguments[1].(ports.RunnerAssignmentNotification)
		batches[notification.RunnerEmail] = len(notification.Orders)
	}
	assert.Equal(t, map[string]int{"runner10@example.edu": 3, "runner20@example.edu": 2}, batches)
}

func TestDispatchOrdersCommandHandler_Handle_NoPendingOrders(t *testing.T) {
	ctx := t.Context()
	date, _ := kernel.NewDate(2025, 3, 10)
	cmd, err := commands.NewDispatchOrdersCommand(timeslot.Slot1, date)
	require.NoError(t, err)

	orderRepo := new(MockPendingOrderRepository)
	availabilityRepo := new(MockAvailabilityRepository)
	uow := new(MockUoW)
	publisher := new(MockNotificationPublisher)

	uow.On("PendingOrderRepository").Return(orderRepo).Once()
	uow.On("AvailabilityRepository").Return(availabilityRepo).Once()
	orderRepo.On("GetUnassignedBySlot", ctx, timeslot.Slot1).
		Return([]*pendingorder.PendingOrder{}, nil).
		Once()
	availabilityRepo.On("GetRunnerIDs", ctx, date, timeslot.Slot1).Return([]int64{10}, nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewDispatchOrdersCommandHandler(factory, publisher, locks.NewKeyedMutex(), discardLogger())
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, commands.ErrNoPendingOrders)
	publisher.AssertNotCalled(t, "PublishRunnerAssignment")
}

func TestDispatchOrdersCommandHandler_Handle_NoRunners(t *testing.T) {
	ctx := t.Context()
	date, _ := kernel.NewDate(2025, 3, 10)
	cmd, err := commands.NewDispatchOrdersCommand(timeslot.Slot2, date)
	require.NoError(t, err)

	orderRepo := new(MockPendingOrderRepository)
	availabilityRepo := new(MockAvailabilityRepository)
	uow := new(MockUoW)
	publisher := new(MockNotificationPublisher)

	uow.On("PendingOrderRepository").Return(orderRepo).Once()
	uow.On("AvailabilityRepository").Return(availabilityRepo).Once()
	orderRepo.On("GetUnassignedBySlot", ctx, timeslot.Slot2).
		Return([]*pendingorder.PendingOrder{lunchOrder(t, 1)}, nil).
		Once()
	availabilityRepo.On("GetRunnerIDs", ctx, date, timeslot.Slot2).Return([]int64{}, nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewDispatchOrdersCommandHandler(factory, publisher, locks.NewKeyedMutex(), discardLogger())
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, services.ErrNoAvailableRunners)
	publisher.AssertNotCalled(t, "PublishRunnerAssignment")
}

func TestDispatchOrdersCommandHandler_Handle_PartialFailureContinues(t *testing.T) {
	ctx := t.Context()
	date, _ := kernel.NewDate(2025, 3, 10)
	cmd, err := commands.NewDispatchOrdersCommand(timeslot.Slot2, date)
	require.NoError(t, err)

	first := lunchOrder(t, 1)
	second := lunchOrder(t, 2)
	orders := []*pendingorder.PendingOrder{first, second}

	orderRepo := new(MockPendingOrderRepository)
	availabilityRepo := new(MockAvailabilityRepository)
	assignmentRepo := new(MockAssignmentRepository)
	uow := new(MockUoW)
	publisher := new(MockNotificationPublisher)

	uow.On("PendingOrderRepository").Return(orderRepo)
	uow.On("AvailabilityRepository").Return(availabilityRepo)
	uow.On("AssignmentRepository").Return(assignmentRepo)
	uow.On("Begin", ctx).Return(nil).Twice()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Twice()

	orderRepo.On("GetUnassignedBySlot", ctx, timeslot.Slot2).Return(orders, nil).Once()
	orderRepo.On("Update", ctx, mock.AnythingOfType("*pendingorder.PendingOrder")).Return(nil).Once()
	availabilityRepo.On("GetRunnerIDs", ctx, date, timeslot.Slot2).Return([]int64{10}, nil).Once()
	availabilityRepo.On("GetEmail", ctx, int64(10), date).Return("runner10@example.edu", nil).Once()
	assignmentRepo.On("Add", ctx, mock.AnythingOfType("*assignment.Assignment")).
		Return(errors.New("database error")).
		Once()
	assignmentRepo.On("Add", ctx, mock.AnythingOfType("*assignment.Assignment")).Return(nil).Once()
	publisher.On("PublishRunnerAssignment", ctx, mock.AnythingOfType("ports.RunnerAssignmentNotification")).
		Return(nil).
		Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow)

	handler := commands.NewDispatchOrdersCommandHandler(factory, publisher, locks.NewKeyedMutex(), discardLogger())
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.False(t, first.Assigned())
	assert.True(t, second.Assigned())

	notification := publisher.Calls[0].Arguments[1].(ports.RunnerAssignmentNotification)
	require.Len(t, notification.Orders, 1)
	assert.Equal(t, int64(2), notification.Orders[0].OrderID)
}

func TestDispatchOrdersCommandHandler_Handle_AllAssignmentsFail(t *testing.T) {
	ctx := t.Context()
	date, _ := kernel.NewDate(2025, 3, 10)
	cmd, err := commands.NewDispatchOrdersCommand(timeslot.Slot2, date)
	require.NoError(t, err)

	orderRepo := new(MockPendingOrderRepository)
	availabilityRepo := new(MockAvailabilityRepository)
	assignmentRepo := new(MockAssignmentRepository)
	uow := new(MockUoW)
	publisher := new(MockNotificationPublisher)

	uow.On("PendingOrderRepository").Return(orderRepo)
	uow.On("AvailabilityRepository").Return(availabilityRepo)
	uow.On("AssignmentRepository").Return(assignmentRepo)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	orderRepo.On("GetUnassignedBySlot", ctx, timeslot.Slot2).
		Return([]*pendingorder.PendingOrder{lunchOrder(t, 1)}, nil).
		Once()
	availabilityRepo.On("GetRunnerIDs", ctx, date, timeslot.Slot2).Return([]int64{10}, nil).Once()
	assignmentRepo.On("Add", ctx, mock.AnythingOfType("*assignment.Assignment")).
		Return(errors.New("database error")).
		Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow)

	handler := commands.NewDispatchOrdersCommandHandler(factory, publisher, locks.NewKeyedMutex(), discardLogger())
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.EqualError(t, err, "database error")
	publisher.AssertNotCalled(t, "PublishRunnerAssignment")
}

func TestDispatchOrdersCommandHandler_Handle_PublishFailureDoesNotFail(t *testing.T) {
	ctx := t.Context()
	date, _ := kernel.NewDate(2025, 3, 10)
	cmd, err := commands.NewDispatchOrdersCommand(timeslot.Slot2, date)
	require.NoError(t, err)

	orderRepo := new(MockPendingOrderRepository)
	availabilityRepo := new(MockAvailabilityRepository)
	assignmentRepo := new(MockAssignmentRepository)
	uow := new(MockUoW)
	publisher := new(MockNotificationPublisher)

	uow.On("PendingOrderRepository").Return(orderRepo)
	uow.On("AvailabilityRepository").Return(availabilityRepo)
	uow.On("AssignmentRepository").Return(assignmentRepo)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	orderRepo.On("GetUnassignedBySlot", ctx, timeslot.Slot2).
		Return([]*pendingorder.PendingOrder{lunchOrder(t, 1)}, nil).
		Once()
	orderRepo.On("Update", ctx, mock.AnythingOfType("*pendingorder.PendingOrder")).Return(nil).Once()
	availabilityRepo.On("GetRunnerIDs", ctx, date, timeslot.Slot2).Return([]int64{10}, nil).Once()
	availabilityRepo.On("GetEmail", ctx, int64(10), date).Return("runner10@example.edu", nil).Once()
	assignmentRepo.On("Add", ctx, mock.AnythingOfType("*assignment.Assignment")).Return(nil).Once()
	publisher.On("PublishRunnerAssignment", ctx, mock.AnythingOfType("ports.RunnerAssignmentNotification")).
		Return(errors.New("broker unavailable")).
		Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow)

	handler := commands.NewDispatchOrdersCommandHandler(factory, publisher, locks.NewKeyedMutex(), discardLogger())
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
}

func TestDispatchOrdersCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	var cmd commands.DispatchOrdersCommand

	factory := new(MockUoWFactory)
	publisher := new(MockNotificationPublisher)
	handler := commands.NewDispatchOrdersCommandHandler(factory, publisher, locks.NewKeyedMutex(), discardLogger())
	err := handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, commands.ErrDispatchOrdersCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}
