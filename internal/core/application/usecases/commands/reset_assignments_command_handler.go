package commands

import (
	"context"
)

// ResetAssignmentsCommandHandler clears the assignment ledger and unassigns
// all pending orders. Both operations run in one transaction: the system is
// never observable with a ledger row whose order is unassigned or vice versa.
type ResetAssignmentsCommandHandler struct {
	uowFactory UoWFactory
}

// NewResetAssignmentsCommandHandler creates a handler for assignment resets.
func NewResetAssignmentsCommandHandler(uowFactory UoWFactory) ResetAssignmentsCommandHandler {
	return ResetAssignmentsCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the reset command.
func (h ResetAssignmentsCommandHandler) Handle(ctx context.Context, cmd ResetAssignmentsCommand) error {
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

	if err := uow.PendingOrderRepository().UnassignAll(ctx); err != nil {
		return err
	}

	if err := uow.AssignmentRepository().DeleteAll(ctx); err != nil {
		return err
	}

	if err := uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
