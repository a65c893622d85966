package commands_test

import (
	"context"
	"time"

	"runners/internal/core/application/usecases/commands"
	"runners/internal/core/domain/model/assignment"
	"runners/internal/core/domain/model/availability"
	"runners/internal/core/domain/model/kernel"
	"runners/internal/core/domain/model/pendingorder"
	"runners/internal/core/domain/model/timeslot"
	"runners/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockPendingOrderRepository struct{ mock.Mock }

func (m *MockPendingOrderRepository) Upsert(ctx context.Context, o *pendingorder.PendingOrder) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockPendingOrderRepository) Update(ctx context.Context, o *pendingorder.PendingOrder) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockPendingOrderRepository) Get(ctx context.Context, orderID int64) (*pendingorder.PendingOrder, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pendingorder.PendingOrder), args.Error(1)
}

func (m *MockPendingOrderRepository) GetUnassignedBySlot(
	ctx context.Context, slot timeslot.Timeslot,
) ([]*pendingorder.PendingOrder, error) {
	args := m.Called(ctx, slot)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*pendingorder.PendingOrder), args.Error(1)
}

func (m *MockPendingOrderRepository) GetUnassignedBetween(
	ctx context.Context, start, end time.Time,
) ([]*pendingorder.PendingOrder, error) {
	args := m.Called(ctx, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*pendingorder.PendingOrder), args.Error(1)
}

func (m *MockPendingOrderRepository) GetByOrderIDs(
	ctx context.Context, orderIDs []int64,
) ([]*pendingorder.PendingOrder, error) {
	args := m.Called(ctx, orderIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*pendingorder.PendingOrder), args.Error(1)
}

func (m *MockPendingOrderRepository) UnassignAll(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type MockAvailabilityRepository struct{ mock.Mock }

func (m *MockAvailabilityRepository) Add(ctx context.Context, record *availability.Availability) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockAvailabilityRepository) GetByRunnerAndDate(
	ctx context.Context, runnerID int64, date kernel.Date,
) ([]*availability.Availability, error) {
	args := m.Called(ctx, runnerID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*availability.Availability), args.Error(1)
}

func (m *MockAvailabilityRepository) DeleteSlot(
	ctx context.Context, runnerID int64, date kernel.Date, slot timeslot.Timeslot,
) error {
	args := m.Called(ctx, runnerID, date, slot)
	return args.Error(0)
}

func (m *MockAvailabilityRepository) GetRunnerIDs(
	ctx context.Context, date kernel.Date, slot timeslot.Timeslot,
) ([]int64, error) {
	args := m.Called(ctx, date, slot)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}

func (m *MockAvailabilityRepository) GetEmail(
	ctx context.Context, runnerID int64, date kernel.Date,
) (string, error) {
	args := m.Called(ctx, runnerID, date)
	return args.String(0), args.Error(1)
}

func (m *MockAvailabilityRepository) DeleteBefore(ctx context.Context, date kernel.Date) error {
	args := m.Called(ctx, date)
	return args.Error(0)
}

type MockAssignmentRepository struct{ mock.Mock }

func (m *MockAssignmentRepository) Add(ctx context.Context, record *assignment.Assignment) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockAssignmentRepository) GetByOrderID(
	ctx context.Context, orderID int64,
) (*assignment.Assignment, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*assignment.Assignment), args.Error(1)
}

func (m *MockAssignmentRepository) GetByRunnerAndDate(
	ctx context.Context, runnerID int64, date kernel.Date,
) ([]*assignment.Assignment, error) {
	args := m.Called(ctx, runnerID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*assignment.Assignment), args.Error(1)
}

func (m *MockAssignmentRepository) DeleteAll(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) PendingOrderRepository() ports.PendingOrderRepository {
	args := m.Called()
	return args.Get(0).(ports.PendingOrderRepository)
}

func (m *MockUoW) AvailabilityRepository() ports.AvailabilityRepository {
	args := m.Called()
	return args.Get(0).(ports.AvailabilityRepository)
}

func (m *MockUoW) AssignmentRepository() ports.AssignmentRepository {
	args := m.Called()
	return args.Get(0).(ports.AssignmentRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockPendingOrderUoWFactory struct{ mock.Mock }

func (m *MockPendingOrderUoWFactory) Create() commands.PendingOrderUoW {
	args := m.Called()
	return args.Get(0).(commands.PendingOrderUoW)
}

type MockAvailabilityUoWFactory struct{ mock.Mock }

func (m *MockAvailabilityUoWFactory) Create() commands.AvailabilityUoW {
	args := m.Called()
	return args.Get(0).(commands.AvailabilityUoW)
}

type MockNotificationPublisher struct{ mock.Mock }

func (m *MockNotificationPublisher) PublishRunnerAssignment(
	ctx context.Context, notification ports.RunnerAssignmentNotification,
) error {
	args := m.Called(ctx, notification)
	return args.Error(0)
}

func (m *MockNotificationPublisher) PublishCollectionReady(
	ctx context.Context, notification ports.CollectionReadyNotification,
) error {
	args := m.Called(ctx, notification)
	return args.Error(0)
}

// fixedClock pins Now for deterministic slot-boundary tests.
type fixedClock struct {
	now time.Time
	loc *time.Location
}

func (c fixedClock) Now() time.Time           { return c.now }
func (c fixedClock) Location() *time.Location { return c.loc }
