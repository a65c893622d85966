package commands_test

import (
	"testing"

	"runners/internal/core/application/usecases/commands"
	"runners/internal/core/domain/model/kernel"
	"runners/internal/core/domain/model/timeslot"
	"runners/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRegisterAvailabilityCommand_ValidInput(t *testing.T) {
	date, err := kernel.NewDate(2025, 3, 10)
	require.NoError(t, err)

	cmd, err := commands.NewRegisterAvailabilityCommand(
		7, date, []timeslot.Timeslot{timeslot.Slot1, timeslot.Slot3}, "bob@example.edu")
	require.NoError(t, err)

	assert.Equal(t, int64(7), cmd.RunnerID())
	assert.True(t, date.IsEqual(cmd.Date()))
	assert.Equal(t, []timeslot.Timeslot{timeslot.Slot1, timeslot.Slot3}, cmd.Slots())
	assert.Equal(t, "bob@example.edu", cmd.RunnerEmail())
}

func TestNewRegisterAvailabilityCommand_InvalidRunnerID(t *testing.T) {
	date, _ := kernel.NewDate(2025, 3, 10)
	_, err := commands.NewRegisterAvailabilityCommand(
		-1, date, []timeslot.Timeslot{timeslot.Slot1}, "bob@example.edu")
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestNewRegisterAvailabilityCommand_NoSlots(t *testing.T) {
	date, _ := kernel.NewDate(2025, 3, 10)
	_, err := commands.NewRegisterAvailabilityCommand(7, date, nil, "bob@example.edu")
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestNewRegisterAvailabilityCommand_UnknownSlot(t *testing.T) {
	date, _ := kernel.NewDate(2025, 3, 10)
	_, err := commands.NewRegisterAvailabilityCommand(
		7, date, []timeslot.Timeslot{timeslot.Unknown}, "bob@example.edu")
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestNewRegisterAvailabilityCommand_EmptyEmail(t *testing.T) {
	date, _ := kernel.NewDate(2025, 3, 10)
	_, err := commands.NewRegisterAvailabilityCommand(
		7, date, []timeslot.Timeslot{timeslot.Slot1}, "")
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestNewRegisterAvailabilityCommand_ZeroDate(t *testing.T) {
	_, err := commands.NewRegisterAvailabilityCommand(
		7, kernel.Date{}, []timeslot.Timeslot{timeslot.Slot1}, "bob@example.edu")
	require.Error(t, err)
	assert.ErrorIs(t, err, kernel.ErrDateIsNotConstructed)
}
