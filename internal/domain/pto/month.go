package pto

import (
	"fmt"
	"time"
)

// ParseMonth parses a YYYY-MM selector into the first and last day of that
// calendar month.
func ParseMonth(value string) (start, end Date, err error) {
	parsed, err := time.Parse("2006-01", value)
	if err != nil {
		return Date{}, Date{}, fmt.Errorf("invalid month %q: use YYYY-MM", value)
	}
	start = NewDate(parsed)
	end = NewDate(parsed.AddDate(0, 1, -1))
	return start, end, nil
}

// CurrentMonth returns the YYYY-MM selector for now.
func CurrentMonth(now time.Time) string {
	return now.Format("2006-01")
}

// Overlaps reports whether the inclusive entry range touches the inclusive
// period range: entry.start <= period.end AND entry.end >= period.start.
func Overlaps(entryStart, entryEnd, periodStart, periodEnd Date) bool {
	return !entryStart.After(periodEnd.Time) && !entryEnd.Before(periodStart.Time)
}
