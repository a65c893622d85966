package cmd

import (
	"log/slog"
	"time"

	"runners/internal/adapters/out/postgres"
	"runners/internal/core/application/usecases/commands"
	"runners/internal/core/application/usecases/queries"
	"runners/internal/core/ports"
	"runners/internal/pkg/locks"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	publisher  ports.NotificationPublisher
	clock      ports.Clock
	mutex      *locks.KeyedMutex
	logger     *slog.Logger
}

func NewCompositionRoot(
	_ Config,
	gormDB *gorm.DB,
	publisher ports.NotificationPublisher,
	clock ports.Clock,
	logger *slog.Logger,
) CompositionRoot {
	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		publisher:  publisher,
		clock:      clock,
		mutex:      locks.NewKeyedMutex(),
		logger:     logger,
	}
}

func (c *CompositionRoot) Clock() ports.Clock {
	return c.clock
}

func (c *CompositionRoot) CreateSubmitPendingOrderCommandHandler() commands.SubmitPendingOrderCommandHandler {
	var f commands.PendingOrderUoWFactory = FuncPendingOrderUoWFactory(func() commands.PendingOrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewSubmitPendingOrderCommandHandler(f, c.clock)
}

func (c *CompositionRoot) CreateRegisterAvailabilityCommandHandler() commands.RegisterAvailabilityCommandHandler {
	var f commands.AvailabilityUoWFactory = FuncAvailabilityUoWFactory(func() commands.AvailabilityUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRegisterAvailabilityCommandHandler(f, c.mutex)
}

func (c *CompositionRoot) CreateRemoveAvailabilityCommandHandler() commands.RemoveAvailabilityCommandHandler {
	var f commands.AvailabilityUoWFactory = FuncAvailabilityUoWFactory(func() commands.AvailabilityUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRemoveAvailabilityCommandHandler(f, c.mutex)
}

func (c *CompositionRoot) CreateDispatchOrdersCommandHandler() commands.DispatchOrdersCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewDispatchOrdersCommandHandler(f, c.publisher, c.mutex, c.logger)
}

func (c *CompositionRoot) CreateResetAssignmentsCommandHandler() commands.ResetAssignmentsCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewResetAssignmentsCommandHandler(f)
}

func (c *CompositionRoot) CreateNotifyCollectionReadyCommandHandler() commands.NotifyCollectionReadyCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewNotifyCollectionReadyCommandHandler(f, c.publisher, c.clock)
}

func (c *CompositionRoot) CreatePurgeAvailabilityCommandHandler() commands.PurgeAvailabilityCommandHandler {
	var f commands.AvailabilityUoWFactory = FuncAvailabilityUoWFactory(func() commands.AvailabilityUoW {
		return c.uowFactory.Create()
	})
	return commands.NewPurgeAvailabilityCommandHandler(f)
}

func (c *CompositionRoot) CreateGetRunnerOrdersQueryHandler() queries.GetRunnerOrdersQueryHandler {
	return queries.NewGetRunnerOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetRunnerAvailabilityQueryHandler() queries.GetRunnerAvailabilityQueryHandler {
	return queries.NewGetRunnerAvailabilityQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetPendingOrdersQueryHandler() queries.GetPendingOrdersQueryHandler {
	return queries.NewGetPendingOrdersQueryHandler(&c.uowFactory)
}

func (c *CompositionRoot) CreateGetPendingOrderQueryHandler() queries.GetPendingOrderQueryHandler {
	return queries.NewGetPendingOrderQueryHandler(&c.uowFactory)
}

type FuncPendingOrderUoWFactory func() commands.PendingOrderUoW

func (f FuncPendingOrderUoWFactory) Create() commands.PendingOrderUoW {
	return f()
}

type FuncAvailabilityUoWFactory func() commands.AvailabilityUoW

func (f FuncAvailabilityUoWFactory) Create() commands.AvailabilityUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}

// SystemClock is the production clock, pinned to the delivery timezone.
type SystemClock struct {
	loc *time.Location
}

func NewSystemClock(loc *time.Location) SystemClock {
	return SystemClock{loc: loc}
}

func (c SystemClock) Now() time.Time {
	return time.Now().In(c.loc)
}

func (c SystemClock) Location() *time.Location {
	return c.loc
}
