package models

import (
	"fmt"
	"time"
)

// DateLayout is the wire and storage format for calendar dates.
const DateLayout = "2006-01-02"

// Date is a calendar date in fixed-width YYYY-MM-DD form, with no time
// component. Because the format is zero-padded, dates order correctly
// under plain string comparison, which is what range filtering relies on.
type Date string

// DateOf truncates a time.Time to its calendar date.
func DateOf(t time.Time) Date {
	return Date(t.Format(DateLayout))
}

// ParseDate validates s as a YYYY-MM-DD date.
func ParseDate(s string) (Date, error) {
	if _, err := time.Parse(DateLayout, s); err != nil {
		return "", fmt.Errorf("invalid date %q: %w", s, err)
	}
	return Date(s), nil
}

// Time converts the date to a time.Time at midnight UTC.
func (d Date) Time() (time.Time, error) {
	return time.Parse(DateLayout, string(d))
}

// Valid reports whether the date parses as YYYY-MM-DD.
func (d Date) Valid() bool {
	_, err := time.Parse(DateLayout, string(d))
	return err == nil
}

// After reports whether d is strictly later than other.
func (d Date) After(other Date) bool { return string(d) > string(other) }

// Before reports whether d is strictly earlier than other.
func (d Date) Before(other Date) bool { return string(d) < string(other) }

func (d Date) String() string { return string(d) }
