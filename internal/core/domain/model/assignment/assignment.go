// Package assignment contains the RunnerAssignment ledger row: the durable
// record of which runner delivers which order on which date and slot. The
// ledger is the source of truth for "who delivers what"; at most one row may
// exist per order.
package assignment

import (
	"errors"
	"fmt"

	"runners/internal/core/domain/model/kernel"
	"runners/internal/core/domain/model/timeslot"
	"runners/internal/pkg/errs"
)

// ErrAssignmentIsNotConstructed is returned when an Assignment instance was
// not created through NewAssignment or RestoreAssignment.
var ErrAssignmentIsNotConstructed = errors.New(
	"Assignment must be created via NewAssignment or RestoreAssignment",
)

// Assignment maps one order to one runner for a date and timeslot. Rows are
// created by the dispatcher in the same transaction that marks the pending
// order assigned, and destroyed en masse by the reset operation.
type Assignment struct {
	id       int64
	runnerID int64
	orderID  int64
	date     kernel.Date
	slot     timeslot.Timeslot

	isConstructed bool
}

// NewAssignment creates a ledger row for a fresh dispatch decision.
// The storage id is assigned on persistence.
func NewAssignment(
	runnerID, orderID int64,
	date kernel.Date,
	slot timeslot.Timeslot,
) (*Assignment, error) {
	a := &Assignment{isConstructed: true}

	if err := errors.Join(
		a.setRunnerID(runnerID),
		a.setOrderID(orderID),
		a.setDate(date),
		a.setSlot(slot),
	); err != nil {
		return nil, err
	}

	return a, nil
}

// RestoreAssignment reconstructs a persisted ledger row, including its
// storage id.
func RestoreAssignment(
	id, runnerID, orderID int64,
	date kernel.Date,
	slot timeslot.Timeslot,
) (*Assignment, error) {
	a, err := NewAssignment(runnerID, orderID, date, slot)
	if err != nil {
		return nil, err
	}

	a.id = id
	return a, nil
}

// Validate ensures the Assignment was properly constructed.
func (a *Assignment) Validate() error {
	if a == nil || !a.isConstructed {
		return ErrAssignmentIsNotConstructed
	}
	return nil
}

// ID returns the storage identifier, zero until persisted.
func (a *Assignment) ID() int64 {
	return a.id
}

// RunnerID returns the assigned runner.
func (a *Assignment) RunnerID() int64 {
	return a.runnerID
}

// OrderID returns the assigned order.
func (a *Assignment) OrderID() int64 {
	return a.orderID
}

// Date returns the delivery date.
func (a *Assignment) Date() kernel.Date {
	return a.date
}

// Slot returns the delivery timeslot.
func (a *Assignment) Slot() timeslot.Timeslot {
	return a.slot
}

func (a *Assignment) setRunnerID(runnerID int64) error {
	if runnerID <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("runnerId",
			fmt.Errorf("%d is not a positive runner id", runnerID))
	}
	a.runnerID = runnerID
	return nil
}

func (a *Assignment) setOrderID(orderID int64) error {
	if orderID <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("orderId",
			fmt.Errorf("%d is not a positive order id", orderID))
	}
	a.orderID = orderID
	return nil
}

func (a *Assignment) setDate(date kernel.Date) error {
	if err := date.Validate(); err != nil {
		return err
	}
	a.date = date
	return nil
}

func (a *Assignment) setSlot(slot timeslot.Timeslot) error {
	if err := slot.Validate(); err != nil {
		return err
	}
	a.slot = slot
	return nil
}
