// Package availability contains the RunnerAvailability record: a runner's
// opt-in for one delivery timeslot on one date. A runner registers a set of
// slots for a day in a single call; the registry enforces at most one
// successful registration per (runner, date).
package availability

import (
	"errors"
	"fmt"

	"runners/internal/core/domain/model/kernel"
	"runners/internal/core/domain/model/timeslot"
	"runners/internal/pkg/errs"
)

// ErrAvailabilityIsNotConstructed is returned when an Availability instance
// was not created through NewAvailability.
var ErrAvailabilityIsNotConstructed = errors.New(
	"Availability must be created via NewAvailability",
)

// Availability is one (runner, date, timeslot) opt-in row, carrying the email
// the runner wants notifications sent to on that date. Rows are write-once:
// slot-level changes go through deletion, and a daily sweep purges rows older
// than today.
type Availability struct {
	runnerID    int64
	slot        timeslot.Timeslot
	date        kernel.Date
	runnerEmail string

	isConstructed bool
}

// NewAvailability creates a validated availability row.
func NewAvailability(
	runnerID int64,
	slot timeslot.Timeslot,
	date kernel.Date,
	runnerEmail string,
) (*Availability, error) {
	a := &Availability{isConstructed: true}

	if err := errors.Join(
		a.setRunnerID(runnerID),
		a.setSlot(slot),
		a.setDate(date),
		a.setRunnerEmail(runnerEmail),
	); err != nil {
		return nil, err
	}

	return a, nil
}

// Validate ensures the Availability was properly constructed.
func (a *Availability) Validate() error {
	if a == nil || !a.isConstructed {
		return ErrAvailabilityIsNotConstructed
	}
	return nil
}

// RunnerID returns the opted-in runner's identifier.
func (a *Availability) RunnerID() int64 {
	return a.runnerID
}

// Slot returns the timeslot the runner opted into.
func (a *Availability) Slot() timeslot.Timeslot {
	return a.slot
}

// Date returns the delivery date the opt-in applies to.
func (a *Availability) Date() kernel.Date {
	return a.date
}

// RunnerEmail returns the notification email for this runner and date.
func (a *Availability) RunnerEmail() string {
	return a.runnerEmail
}

func (a *Availability) setRunnerID(runnerID int64) error {
	if runnerID <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("runnerId",
			fmt.Errorf("%d is not a positive runner id", runnerID))
	}
	a.runnerID = runnerID
	return nil
}

func (a *Availability) setSlot(slot timeslot.Timeslot) error {
	if err := slot.Validate(); err != nil {
		return err
	}
	a.slot = slot
	return nil
}

func (a *Availability) setDate(date kernel.Date) error {
	if err := date.Validate(); err != nil {
		return err
	}
	a.date = date
	return nil
}

func (a *Availability) setRunnerEmail(email string) error {
	if email == "" {
		return errs.NewValueIsRequiredError("runnerEmail")
	}
	a.runnerEmail = email
	return nil
}
