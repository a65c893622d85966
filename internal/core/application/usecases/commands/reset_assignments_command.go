package commands

import (
	"errors"

	"runners/internal/pkg/guard"
)

var ErrResetAssignmentsCommandIsNotConstructed = errors.New(
	"ResetAssignmentsCommand must be created via NewResetAssignmentsCommand constructor",
)

// ResetAssignmentsCommand wipes the assignment ledger and returns every
// assigned order to the unassigned pool, so the next dispatch redistributes
// from scratch. An operator recovery tool, not part of the normal flow.
//
// Example:
//
//	cmd := NewResetAssignmentsCommand()
//	handler := NewResetAssignmentsCommandHandler(uowFactory)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    log.Printf("Reset failed: %v", err)
//	}
type ResetAssignmentsCommand struct {
	guard guard.ConstructorGuard
}

// NewResetAssignmentsCommand creates a new command to reset all assignments.
func NewResetAssignmentsCommand() ResetAssignmentsCommand {
	return ResetAssignmentsCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
func (c ResetAssignmentsCommand) Validate() error {
	return c.guard.Validate(ErrResetAssignmentsCommandIsNotConstructed)
}
