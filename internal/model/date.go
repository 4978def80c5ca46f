package model

import (
	"fmt"
	"time"
)

// dateLayout is the wire and storage format for calendar dates.
const dateLayout = "2006-01-02"

// Date is a day-granularity calendar date in YYYY-MM-DD form. The string
// representation sorts lexicographically in date order, so range filters can
// compare Dates directly. Attendance identity is keyed on this type.
type Date string

// NewDate truncates a timestamp to its UTC calendar day.
func NewDate(t time.Time) Date {
	return Date(t.UTC().Format(dateLayout))
}

// Today returns the current UTC calendar day.
func Today() Date {
	return NewDate(time.Now())
}

// ParseDate validates and normalizes a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return "", fmt.Errorf("parse date %q: %w", s, err)
	}
	return NewDate(t), nil
}

// Time returns the date as a UTC midnight timestamp.
func (d Date) Time() time.Time {
	t, err := time.Parse(dateLayout, string(d))
	if err != nil {
		return time.Time{}
	}
	return t.UTC()
}

func (d Date) String() string {
	return string(d)
}

// TruncateToDay normalizes a timestamp to UTC midnight. Leave start/end
// dates are stored as timestamps but carry no meaningful time-of-day, so
// all day arithmetic runs on truncated values to avoid timezone-induced
// off-by-one errors.
func TruncateToDay(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// DaysInclusive counts whole days between two day-granular timestamps,
// counting both endpoints. Same-day ranges yield 1. Callers must ensure
// end is not before start.
func DaysInclusive(start, end time.Time) int {
	s := TruncateToDay(start)
	e := TruncateToDay(end)
	return int(e.Sub(s).Hours()/24) + 1
}

// MonthWindow returns the first and last calendar day of a month along with
// the number of days it contains.
func MonthWindow(year int, month time.Month) (start, end time.Time, days int) {
	start = time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	end = start.AddDate(0, 1, -1)
	return start, end, end.Day()
}
