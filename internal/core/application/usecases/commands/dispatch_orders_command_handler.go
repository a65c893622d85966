package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"runners/internal/core/domain/model/assignment"
	"runners/internal/core/domain/model/pendingorder"
	"runners/internal/core/domain/services"
	"runners/internal/core/ports"
	"runners/internal/pkg/locks"
)

// ErrNoPendingOrders signals a dispatch run found nothing to assign. The slot
// simply had no unassigned orders; callers usually report this as a benign
// outcome rather than a failure.
var ErrNoPendingOrders = errors.New("no pending orders for timeslot")

const deliveryTimeLayout = "2006-01-02T15:04:05"

// DispatchOrdersCommandHandler runs the round-robin dispatch for a timeslot.
// Each planned assignment commits in its own transaction, pairing the ledger
// insert with the order's assigned-flag flip, so a failure on one order never
// rolls back the others. After the batch, one aggregated notification per
// runner is published; publish failures are logged and do not undo
// assignments.
//
// The per-slot lock serializes concurrent dispatches of the same date and
// slot, closing the double-assignment race between the scheduler tick and a
// manual trigger.
//
// Example:
//
//	handler := NewDispatchOrdersCommandHandler(uowFactory, publisher, mutex, logger)
//	cmd, _ := NewDispatchOrdersCommand(timeslot.Slot2, date)
//	err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, ErrNoPendingOrders):
//	    log.Println("Nothing to dispatch")
//	case errors.Is(err, services.ErrNoAvailableRunners):
//	    log.Println("Orders are waiting but no runner signed up")
//	case err != nil:
//	    log.Printf("Dispatch failed: %v", err)
//	}
type DispatchOrdersCommandHandler struct {
	uowFactory UoWFactory
	publisher  ports.NotificationPublisher
	mutex      *locks.KeyedMutex
	logger     *slog.Logger
}

// NewDispatchOrdersCommandHandler creates a handler for dispatch runs.
func NewDispatchOrdersCommandHandler(
	uowFactory UoWFactory,
	publisher ports.NotificationPublisher,
	mutex *locks.KeyedMutex,
	logger *slog.Logger,
) DispatchOrdersCommandHandler {
	return DispatchOrdersCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		mutex:      mutex,
		logger:     logger,
	}
}

// Handle processes the dispatch command.
// Loads the slot's unassigned orders and the date's registered runners, plans
// the round-robin distribution, commits each assignment in its own
// transaction and publishes one aggregated notification per runner that
// received orders. Returns ErrNoPendingOrders or
// services.ErrNoAvailableRunners when there is nothing to do.
func (h DispatchOrdersCommandHandler) Handle(ctx context.Context, cmd DispatchOrdersCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	lockKey := fmt.Sprintf("dispatch/%s/%s", cmd.Date(), cmd.Slot())
	h.mutex.Lock(lockKey)
	defer h.mutex.Unlock(lockKey)

	orders, runnerIDs, err := h.loadDispatchInputs(ctx, cmd)
	if err != nil {
		return err
	}
	if len(orders) == 0 {
		return ErrNoPendingOrders
	}

	plan, err := services.NewDispatchPlanner().Plan(orders, runnerIDs)
	if err != nil {
		return err
	}

	committed := make([]services.PlanEntry, 0, len(plan))
	var firstErr error
	for _, entry := range plan {
		if err = h.commitEntry(ctx, cmd, entry); err != nil {
			h.logger.Error("assignment failed",
				slog.Int64("order_id", entry.Order.OrderID()),
				slog.Int64("runner_id", entry.RunnerID),
				slog.Any("error", err))
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		committed = append(committed, entry)
	}

	if len(committed) == 0 {
		return firstErr
	}

	h.publishBatches(ctx, cmd, committed)

	return nil
}

// loadDispatchInputs reads the slot's unassigned orders and the date's
// registered runners outside any transaction. The per-slot lock already
// guards against a concurrent dispatch changing them underneath.
func (h DispatchOrdersCommandHandler) loadDispatchInputs(
	ctx context.Context, cmd DispatchOrdersCommand,
) ([]*pendingorder.PendingOrder, []int64, error) {
	uow := h.uowFactory.Create()

	orders, err := uow.PendingOrderRepository().GetUnassignedBySlot(ctx, cmd.Slot())
	if err != nil {
		return nil, nil, err
	}

	runnerIDs, err := uow.AvailabilityRepository().GetRunnerIDs(ctx, cmd.Date(), cmd.Slot())
	if err != nil {
		return nil, nil, err
	}

	return orders, runnerIDs, nil
}

// commitEntry records one assignment: the ledger row and the order's assigned
// flag commit together or not at all. On failure the in-memory flag is rolled
// back so a later retry sees the order as unassigned.
func (h DispatchOrdersCommandHandler) commitEntry(
	ctx context.Context, cmd DispatchOrdersCommand, entry services.PlanEntry,
) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	record, err := assignment.NewAssignment(entry.RunnerID, entry.Order.OrderID(), cmd.Date(), cmd.Slot())
	if err != nil {
		return err
	}

	if err = uow.AssignmentRepository().Add(ctx, record); err != nil {
		return err
	}

	if err = entry.Order.MarkAssigned(); err != nil {
		return err
	}

	if err = uow.PendingOrderRepository().Update(ctx, entry.Order); err != nil {
		entry.Order.MarkUnassigned()
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		entry.Order.MarkUnassigned()
		return err
	}

	return nil
}

// publishBatches sends one aggregated notification per runner covering all
// the orders committed to them in this run. Notification is best effort: a
// missing email or a broker failure is logged and skipped.
func (h DispatchOrdersCommandHandler) publishBatches(
	ctx context.Context, cmd DispatchOrdersCommand, committed []services.PlanEntry,
) {
	perRunner := make(map[int64][]ports.AssignedOrder)
	runnerOrder := make([]int64, 0)
	for _, entry := range committed {
		if _, seen := perRunner[entry.RunnerID]; !seen {
			runnerOrder = append(runnerOrder, entry.RunnerID)
		}
		perRunner[entry.RunnerID] = append(perRunner[entry.RunnerID], ports.AssignedOrder{
			OrderID:      entry.Order.OrderID(),
			Building:     entry.Order.Building(),
			RoomType:     entry.Order.RoomType(),
			RoomNumber:   entry.Order.RoomNumber(),
			DeliveryTime: entry.Order.DeliveryTime().Format(deliveryTimeLayout),
			Items:        entry.Order.ItemNames(),
			TotalAmount:  entry.Order.TotalAmountMajor(),
		})
	}

	uow := h.uowFactory.Create()
	availabilityRepo := uow.AvailabilityRepository()

	for _, runnerID := range runnerOrder {
		email, err := availabilityRepo.GetEmail(ctx, runnerID, cmd.Date())
		if err != nil {
			h.logger.Error("runner email lookup failed, skipping notification",
				slog.Int64("runner_id", runnerID),
				slog.Any("error", err))
			continue
		}

		notification := ports.RunnerAssignmentNotification{
			RunnerEmail: email,
			Orders:      perRunner[runnerID],
		}
		if err = h.publisher.PublishRunnerAssignment(ctx, notification); err != nil {
			h.logger.Error("assignment notification publish failed",
				slog.Int64("runner_id", runnerID),
				slog.Any("error", err))
		}
	}
}
