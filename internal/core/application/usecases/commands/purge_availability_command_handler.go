package commands

import (
	"context"
)

// PurgeAvailabilityCommandHandler deletes stale availability rows. No
// availability history is retained; past dates only waste index space.
type PurgeAvailabilityCommandHandler struct {
	uowFactory AvailabilityUoWFactory
}

// NewPurgeAvailabilityCommandHandler creates a handler for availability purges.
func NewPurgeAvailabilityCommandHandler(uowFactory AvailabilityUoWFactory) PurgeAvailabilityCommandHandler {
	return PurgeAvailabilityCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the purge command.
func (h PurgeAvailabilityCommandHandler) Handle(ctx context.Context, cmd PurgeAvailabilityCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.AvailabilityRepository().DeleteBefore(ctx, cmd.Before()); err != nil {
		return err
	}

	if err := uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
