package commands

import (
	"errors"

	"runners/internal/core/domain/model/kernel"
	"runners/internal/core/domain/model/timeslot"
	"runners/internal/pkg/guard"
)

var ErrDispatchOrdersCommandIsNotConstructed = errors.New(
	"DispatchOrdersCommand must be created via NewDispatchOrdersCommand constructor",
)

// DispatchOrdersCommand triggers a dispatch run for one timeslot on one date.
type DispatchOrdersCommand struct {
	slot timeslot.Timeslot
	date kernel.Date

	guard guard.ConstructorGuard
}

// NewDispatchOrdersCommand creates a validated dispatch command.
func NewDispatchOrdersCommand(slot timeslot.Timeslot, date kernel.Date) (DispatchOrdersCommand, error) {
	if err := slot.Validate(); err != nil {
		return DispatchOrdersCommand{}, err
	}
	if err := date.Validate(); err != nil {
		return DispatchOrdersCommand{}, err
	}

	return DispatchOrdersCommand{
		slot:  slot,
		date:  date,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c DispatchOrdersCommand) Validate() error {
	return c.guard.Validate(ErrDispatchOrdersCommandIsNotConstructed)
}

// Slot returns the timeslot being dispatched.
func (c DispatchOrdersCommand) Slot() timeslot.Timeslot { return c.slot }

// Date returns the service date being dispatched.
func (c DispatchOrdersCommand) Date() kernel.Date { return c.date }
