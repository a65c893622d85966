package queries_test

import (
	"context"
	"time"

	"runners/internal/core/domain/model/pendingorder"
	"runners/internal/core/domain/model/timeslot"
	"runners/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

var testLocation = time.FixedZone("SGT", 8*60*60)

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

type MockUnitOfWork struct{ mock.Mock }

func (m *MockUnitOfWork) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUnitOfWork) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUnitOfWork) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUnitOfWork) PendingOrderRepository() ports.PendingOrderRepository {
	args := m.Called()
	return args.Get(0).(ports.PendingOrderRepository)
}

func (m *MockUnitOfWork) AvailabilityRepository() ports.AvailabilityRepository {
	args := m.Called()
	return args.Get(0).(ports.AvailabilityRepository)
}

func (m *MockUnitOfWork) AssignmentRepository() ports.AssignmentRepository {
	args := m.Called()
	return args.Get(0).(ports.AssignmentRepository)
}

type MockUnitOfWorkFactory struct{ mock.Mock }

func (m *MockUnitOfWorkFactory) Create() ports.UnitOfWork {
	args := m.Called()
	return args.Get(0).(ports.UnitOfWork)
}
