package commands

import (
	"errors"
	"fmt"

	"runners/internal/core/domain/model/kernel"
	"runners/internal/core/domain/model/timeslot"
	"runners/internal/pkg/errs"
	"runners/internal/pkg/guard"
)

var ErrRegisterAvailabilityCommandIsNotConstructed = errors.New(
	"RegisterAvailabilityCommand must be created via NewRegisterAvailabilityCommand constructor",
)

// RegisterAvailabilityCommand signs a runner up for delivery slots on a date.
type RegisterAvailabilityCommand struct {
	runnerID    int64
	date        kernel.Date
	slots       []timeslot.Timeslot
	runnerEmail string

	guard guard.ConstructorGuard
}

// NewRegisterAvailabilityCommand creates a validated registration command.
// At least one slot is required and every slot must be a known timeslot.
func NewRegisterAvailabilityCommand(
	runnerID int64,
	date kernel.Date,
	slots []timeslot.Timeslot,
	runnerEmail string,
) (RegisterAvailabilityCommand, error) {
	if runnerID <= 0 {
		return RegisterAvailabilityCommand{}, errs.NewValueIsInvalidErrorWithCause("runnerId",
			fmt.Errorf("%d is not a positive runner id", runnerID))
	}
	if err := date.Validate(); err != nil {
		return RegisterAvailabilityCommand{}, err
	}
	if len(slots) == 0 {
		return RegisterAvailabilityCommand{}, errs.NewValueIsRequiredError("slots")
	}
	for _, slot := range slots {
		if err := slot.Validate(); err != nil {
			return RegisterAvailabilityCommand{}, err
		}
	}
	if runnerEmail == "" {
		return RegisterAvailabilityCommand{}, errs.NewValueIsRequiredError("runnerEmail")
	}

	return RegisterAvailabilityCommand{
		runnerID:    runnerID,
		date:        date,
		slots:       append([]timeslot.Timeslot(nil), slots...),
		runnerEmail: runnerEmail,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c RegisterAvailabilityCommand) Validate() error {
	return c.guard.Validate(ErrRegisterAvailabilityCommandIsNotConstructed)
}

// RunnerID returns the registering runner's id.
func (c RegisterAvailabilityCommand) RunnerID() int64 { return c.runnerID }

// Date returns the service date being registered.
func (c RegisterAvailabilityCommand) Date() kernel.Date { return c.date }

// Slots returns a copy of the slots being registered.
func (c RegisterAvailabilityCommand) Slots() []timeslot.Timeslot {
	return append([]timeslot.Timeslot(nil), c.slots...)
}

// RunnerEmail returns the runner's notification email.
func (c RegisterAvailabilityCommand) RunnerEmail() string { return c.runnerEmail }
