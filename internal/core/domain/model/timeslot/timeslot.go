// Package timeslot defines the four fixed daily delivery windows and the pure
// classification of timestamps into them. A single ordered window table is the
// source of truth for both classification and slot-start computation, so the
// classifier and the scheduler can never disagree about slot boundaries.
package timeslot

import (
	"errors"
	"fmt"
	"time"

	"runners/internal/pkg/errs"
)

// ErrUnclassifiableTime is returned when a delivery time falls outside every
// delivery window. Orders with such delivery times are rejected at ingestion.
var ErrUnclassifiableTime = errors.New("delivery time is outside all delivery windows")

// Timeslot identifies one of the four fixed daily delivery windows.
//
// The windows are, in local delivery time:
//
//	SLOT_1  07:15–08:15
//	SLOT_2  11:00–12:00
//	SLOT_3  14:30–15:30
//	SLOT_4  18:00–19:00
//
// Classification works at minute precision and both boundaries are inclusive
// for every slot: 07:15 and 08:15 each classify as SLOT_1. The wire and
// storage representation is the slot name ("SLOT_1" .. "SLOT_4").
type Timeslot int

const (
	// Unknown represents an invalid or undefined timeslot.
	// This value (0) helps catch uninitialized Timeslot values.
	Unknown Timeslot = iota

	// Slot1 is the morning window, 07:15–08:15.
	Slot1

	// Slot2 is the lunch window, 11:00–12:00.
	Slot2

	// Slot3 is the afternoon window, 14:30–15:30.
	Slot3

	// Slot4 is the evening window, 18:00–19:00.
	Slot4
)

// window holds a slot's boundaries as minutes since local midnight.
// Both ends are inclusive.
type window struct {
	slot      Timeslot
	startHour int
	startMin  int
	endHour   int
	endMin    int
}

func (w window) startMinutes() int { return w.startHour*60 + w.startMin }
func (w window) endMinutes() int   { return w.endHour*60 + w.endMin }

// windows is the ordered boundary table consulted by both Classify and
// StartOn. Changing a delivery window means changing exactly one row here.
var windows = [...]window{
	{slot: Slot1, startHour: 7, startMin: 15, endHour: 8, endMin: 15},
	{slot: Slot2, startHour: 11, startMin: 0, endHour: 12, endMin: 0},
	{slot: Slot3, startHour: 14, startMin: 30, endHour: 15, endMin: 30},
	{slot: Slot4, startHour: 18, startMin: 0, endHour: 19, endMin: 0},
}

// All returns the slots in chronological order.
func All() []Timeslot {
	return []Timeslot{Slot1, Slot2, Slot3, Slot4}
}

// Classify maps a local timestamp to the delivery window containing it.
// Seconds and finer are ignored; comparison is at minute precision with both
// window boundaries inclusive. Timestamps outside every window return
// ErrUnclassifiableTime.
func Classify(t time.Time) (Timeslot, error) {
	minutes := t.Hour()*60 + t.Minute()

	for _, w := range windows {
		if minutes >= w.startMinutes() && minutes <= w.endMinutes() {
			return w.slot, nil
		}
	}

	return Unknown, ErrUnclassifiableTime
}

// StartOn returns the slot's canonical start time on the calendar day of the
// given local timestamp, in the timestamp's location. The scheduler compares
// this against the current tick to decide when a slot's dispatch is due.
func (s Timeslot) StartOn(day time.Time) time.Time {
	for _, w := range windows {
		if w.slot == s {
			return time.Date(day.Year(), day.Month(), day.Day(), w.startHour, w.startMin, 0, 0, day.Location())
		}
	}
	return time.Time{}
}

// Window returns the human-readable window, e.g. "07:15-08:15".
// Unknown slots return an empty string.
func (s Timeslot) Window() string {
	for _, w := range windows {
		if w.slot == s {
			return fmt.Sprintf("%02d:%02d-%02d:%02d", w.startHour, w.startMin, w.endHour, w.endMin)
		}
	}
	return ""
}

func getTimeslotStrings() map[Timeslot]string {
	return map[Timeslot]string{
		Unknown: "Unknown",
		Slot1:   "SLOT_1",
		Slot2:   "SLOT_2",
		Slot3:   "SLOT_3",
		Slot4:   "SLOT_4",
	}
}

func getValidTimeslotStrings() map[Timeslot]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Timeslot]string{
		Slot1: "SLOT_1",
		Slot2: "SLOT_2",
		Slot3: "SLOT_3",
		Slot4: "SLOT_4",
	}
}

// Validate checks that the Timeslot value denotes one of the four windows.
func (s Timeslot) Validate() error {
	if _, ok := getValidTimeslotStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("timeslot",
			fmt.Errorf("%d is not a valid timeslot", s))
	}
	return nil
}

// String returns the wire name of the slot ("SLOT_1" .. "SLOT_4"), or
// "Unknown" for invalid values. Implements fmt.Stringer.
func (s Timeslot) String() string {
	if str, ok := getTimeslotStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// FromString parses a wire name ("SLOT_1" .. "SLOT_4") into a Timeslot.
func FromString(s string) (Timeslot, error) {
	for slot, name := range getValidTimeslotStrings() {
		if name == s {
			return slot, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("timeslot",
		fmt.Errorf("%q is not a valid timeslot name", s))
}
