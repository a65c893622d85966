package commands

import (
	"errors"
	"fmt"

	"runners/internal/core/domain/model/kernel"
	"runners/internal/core/domain/model/timeslot"
	"runners/internal/pkg/errs"
	"runners/internal/pkg/guard"
)

var ErrRemoveAvailabilityCommandIsNotConstructed = errors.New(
	"RemoveAvailabilityCommand must be created via NewRemoveAvailabilityCommand constructor",
)

// RemoveAvailabilityCommand withdraws a runner from delivery slots on a date.
type RemoveAvailabilityCommand struct {
	runnerID int64
	date     kernel.Date
	slots    []timeslot.Timeslot

	guard guard.ConstructorGuard
}

// NewRemoveAvailabilityCommand creates a validated withdrawal command.
func NewRemoveAvailabilityCommand(
	runnerID int64,
	date kernel.Date,
	slots []timeslot.Timeslot,
) (RemoveAvailabilityCommand, error) {
	if runnerID <= 0 {
		return RemoveAvailabilityCommand{}, errs.NewValueIsInvalidErrorWithCause("runnerId",
			fmt.Errorf("%d is not a positive runner id", runnerID))
	}
	if err := date.Validate(); err != nil {
		return RemoveAvailabilityCommand{}, err
	}
	if len(slots) == 0 {
		return RemoveAvailabilityCommand{}, errs.NewValueIsRequiredError("slots")
	}
	for _, slot := range slots {
		if err := slot.Validate(); err != nil {
			return RemoveAvailabilityCommand{}, err
		}
	}

	return RemoveAvailabilityCommand{
		runnerID: runnerID,
		date:     date,
		slots:    append([]timeslot.Timeslot(nil), slots...),
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c RemoveAvailabilityCommand) Validate() error {
	return c.guard.Validate(ErrRemoveAvailabilityCommandIsNotConstructed)
}

// RunnerID returns the withdrawing runner's id.
func (c RemoveAvailabilityCommand) RunnerID() int64 { return c.runnerID }

// Date returns the service date being withdrawn from.
func (c RemoveAvailabilityCommand) Date() kernel.Date { return c.date }

// Slots returns a copy of the slots being withdrawn.
func (c RemoveAvailabilityCommand) Slots() []timeslot.Timeslot {
	return append([]timeslot.Timeslot(nil), c.slots...)
}
