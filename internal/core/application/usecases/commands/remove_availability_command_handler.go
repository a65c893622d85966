package commands

import (
	"context"
	"fmt"

	"runners/internal/pkg/locks"
)

// RemoveAvailabilityCommandHandler withdraws a runner from slots on a date.
// Withdrawal is idempotent: removing a slot the runner never registered is a
// no-op, so retried requests succeed.
type RemoveAvailabilityCommandHandler struct {
	uowFactory AvailabilityUoWFactory
	mutex      *locks.KeyedMutex
}

// NewRemoveAvailabilityCommandHandler creates a handler for availability
// withdrawal.
func NewRemoveAvailabilityCommandHandler(
	uowFactory AvailabilityUoWFactory, mutex *locks.KeyedMutex,
) RemoveAvailabilityCommandHandler {
	return RemoveAvailabilityCommandHandler{
		uowFactory: uowFactory,
		mutex:      mutex,
	}
}

// Handle processes the withdrawal command.
// Deletes each requested (runner, date, slot) row in one transaction.
func (h RemoveAvailabilityCommandHandler) Handle(ctx context.Context, cmd RemoveAvailabilityCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	lockKey := fmt.Sprintf("availability/%d/%s", cmd.RunnerID(), cmd.Date())
	h.mutex.Lock(lockKey)
	defer h.mutex.Unlock(lockKey)

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	availabilityRepo := uow.AvailabilityRepository()

	for _, slot := range cmd.Slots() {
		if err := availabilityRepo.DeleteSlot(ctx, cmd.RunnerID(), cmd.Date(), slot); err != nil {
			return err
		}
	}

	if err := uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
