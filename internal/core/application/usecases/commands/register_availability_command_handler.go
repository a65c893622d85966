package commands

import (
	"context"
	"errors"
	"fmt"

	"runners/internal/core/domain/model/availability"
	"runners/internal/pkg/locks"
)

// ErrAlreadyRegistered signals a runner already holds a registration for the
// date. A day's registration is all-or-nothing: to change slots the runner
// withdraws the unwanted ones instead of re-registering.
var ErrAlreadyRegistered = errors.New("runner already registered for this date")

// RegisterAvailabilityCommandHandler registers a runner's slots for a date.
// The per-runner-and-date lock closes the race where two concurrent
// registrations both pass the existence check and double-insert.
//
// Example:
//
//	handler := NewRegisterAvailabilityCommandHandler(uowFactory, mutex)
//	cmd, _ := NewRegisterAvailabilityCommand(runnerID, date, slots, email)
//	err := handler.Handle(ctx, cmd)
//	if errors.Is(err, ErrAlreadyRegistered) {
//	    // reject with a conflict response
//	}
type RegisterAvailabilityCommandHandler struct {
	uowFactory AvailabilityUoWFactory
	mutex      *locks.KeyedMutex
}

// NewRegisterAvailabilityCommandHandler creates a handler for availability
// registration.
func NewRegisterAvailabilityCommandHandler(
	uowFactory AvailabilityUoWFactory, mutex *locks.KeyedMutex,
) RegisterAvailabilityCommandHandler {
	return RegisterAvailabilityCommandHandler{
		uowFactory: uowFactory,
		mutex:      mutex,
	}
}

// Handle processes the registration command.
// Rejects with ErrAlreadyRegistered when the runner holds any row for the
// date, otherwise inserts one row per requested slot in a single transaction.
func (h RegisterAvailabilityCommandHandler) Handle(ctx context.Context, cmd RegisterAvailabilityCommand) error {
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

	existing, err := availabilityRepo.GetByRunnerAndDate(ctx, cmd.RunnerID(), cmd.Date())
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return ErrAlreadyRegistered
	}

	for _, slot := range cmd.Slots() {
		record, err := availability.NewAvailability(cmd.RunnerID(), slot, cmd.Date(), cmd.RunnerEmail())
		if err != nil {
			return err
		}
		if err = availabilityRepo.Add(ctx, record); err != nil {
			return err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
