package commands

import (
	"errors"

	"runners/internal/core/domain/model/kernel"
	"runners/internal/pkg/guard"
)

var ErrPurgeAvailabilityCommandIsNotConstructed = errors.New(
	"PurgeAvailabilityCommand must be created via NewPurgeAvailabilityCommand constructor",
)

// PurgeAvailabilityCommand removes availability rows dated before a cutoff.
// The nightly sweep uses the current date as the cutoff, keeping only today
// and future registrations.
type PurgeAvailabilityCommand struct {
	before kernel.Date

	guard guard.ConstructorGuard
}

// NewPurgeAvailabilityCommand creates a validated purge command.
func NewPurgeAvailabilityCommand(before kernel.Date) (PurgeAvailabilityCommand, error) {
	if err := before.Validate(); err != nil {
		return PurgeAvailabilityCommand{}, err
	}

	return PurgeAvailabilityCommand{
		before: before,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c PurgeAvailabilityCommand) Validate() error {
	return c.guard.Validate(ErrPurgeAvailabilityCommandIsNotConstructed)
}

// Before returns the cutoff date; rows dated strictly before it are removed.
func (c PurgeAvailabilityCommand) Before() kernel.Date { return c.before }
