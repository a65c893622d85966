package kernel

import (
	"fmt"
	"time"

	"runners/internal/pkg/errs"
)

// ErrDateIsNotConstructed indicates that a Date was not properly initialized
// through one of the constructor functions. It is returned when validating a
// zero-value Date.
var ErrDateIsNotConstructed = errs.NewValueIsRequiredError(
	"Date must be created via NewDate, DateFromTime or DateFromString",
)

// dateLayout is the ISO calendar date form used on the wire and in storage.
const dateLayout = "2006-01-02"

// Date is a value object representing a calendar day without a time-of-day or
// timezone component. Availability records, assignments and dispatch runs are
// all keyed by Date: two timestamps on the same local day compare equal here
// regardless of their clock time.
//
// The zero value of Date is invalid and must be constructed using NewDate,
// DateFromTime or DateFromString. Date is immutable and safe for concurrent
// use.
type Date struct {
	year  int
	month time.Month
	day   int

	isConstructed bool
}

// NewDate creates a Date from explicit calendar components.
// The components are normalized through the time package, so out-of-range
// values are rejected rather than silently rolled over.
func NewDate(year int, month time.Month, day int) (Date, error) {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || t.Month() != month || t.Day() != day {
		return Date{}, errs.NewValueIsInvalidErrorWithCause("date",
			fmt.Errorf("%04d-%02d-%02d is not a calendar date", year, int(month), day))
	}

	return Date{year: year, month: month, day: day, isConstructed: true}, nil
}

// DateFromTime extracts the calendar day from a timestamp, as observed in the
// timestamp's own location. Convert the timestamp to the delivery timezone
// before calling this when local-day semantics are required.
func DateFromTime(t time.Time) Date {
	year, month, day := t.Date()
	return Date{year: year, month: month, day: day, isConstructed: true}
}

// DateFromString parses an ISO "2006-01-02" calendar date.
func DateFromString(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, errs.NewValueIsInvalidErrorWithCause("date", err)
	}

	return DateFromTime(t), nil
}

// Validate ensures the Date was created through a constructor.
func (d Date) Validate() error {
	if !d.isConstructed {
		return ErrDateIsNotConstructed
	}
	return nil
}

// Time returns midnight of the date in the given location.
func (d Date) Time(loc *time.Location) time.Time {
	return time.Date(d.year, d.month, d.day, 0, 0, 0, 0, loc)
}

// Next returns the following calendar day.
func (d Date) Next() Date {
	return DateFromTime(d.Time(time.UTC).AddDate(0, 0, 1))
}

// Before reports whether d is strictly earlier than other.
func (d Date) Before(other Date) bool {
	if d.year != other.year {
		return d.year < other.year
	}
	if d.month != other.month {
		return d.month < other.month
	}
	return d.day < other.day
}

// IsEqual reports whether two dates denote the same calendar day.
func (d Date) IsEqual(other Date) bool {
	return d.year == other.year && d.month == other.month && d.day == other.day
}

// String returns the ISO "2006-01-02" form.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.year, int(d.month), d.day)
}
