package domain

import (
	"fmt"
	"time"
)

// DateLayout is the wire and storage format for intake dates.
const DateLayout = "2006-01-02"

// MaxCalories bounds a single submitted entry and the per-day sum of one
// submission. Totals accumulated across submissions stay far below the
// int64 limit.
const MaxCalories = 1_000_000

// CheckCalories rejects negative values and values above MaxCalories.
func CheckCalories(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: calories must not be negative", ErrValidation)
	}
	if n > MaxCalories {
		return fmt.Errorf("%w: calories must not exceed %d", ErrValidation, MaxCalories)
	}
	return nil
}

// IntakeRecord is the accumulated calorie total of one user on one day.
// There is at most one record per (UserID, Date).
type IntakeRecord struct {
	UserID   int64
	Date     time.Time // midnight UTC
	Calories int
}

// DateRange bounds an intake query. A zero bound is open; both are inclusive.
type DateRange struct {
	From time.Time
	To   time.Time
}

// Empty reports whether the range cannot match any date.
func (r DateRange) Empty() bool {
	return !r.From.IsZero() && !r.To.IsZero() && r.From.After(r.To)
}

// Contains reports whether d falls inside the range.
func (r DateRange) Contains(d time.Time) bool {
	if !r.From.IsZero() && d.Before(r.From) {
		return false
	}
	if !r.To.IsZero() && d.After(r.To) {
		return false
	}
	return true
}

// ParseDate parses a YYYY-MM-DD string into midnight UTC.
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid date format %q, expected YYYY-MM-DD", ErrValidation, s)
	}
	return d.UTC(), nil
}

// ParseDateRange parses optional start and end bounds. Empty strings leave the
// corresponding bound open.
func ParseDateRange(start, end string) (DateRange, error) {
	var r DateRange
	var err error
	if start != "" {
		if r.From, err = ParseDate(start); err != nil {
			return DateRange{}, err
		}
	}
	if end != "" {
		if r.To, err = ParseDate(end); err != nil {
			return DateRange{}, err
		}
	}
	return r, nil
}
