package habit

import (
	"fmt"
	"time"
)

// DateLayout is the canonical YYYY-MM-DD format used for log dates.
const DateLayout = "2006-01-02"

// maxGridDays caps calendar expansion. Six months of week-aligned grid
// tops out well under this; hitting the cap means the date arithmetic
// is broken and we abort instead of looping.
const maxGridDays = 370

// FormatDate renders t as YYYY-MM-DD in t's location.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDate parses a YYYY-MM-DD string in the local time zone.
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t, nil
}

// Today returns the current local calendar day as YYYY-MM-DD.
func Today() string {
	return FormatDate(time.Now())
}

// GridMode selects how much of the calendar a grid covers.
type GridMode int

const (
	// GridMonth covers the anchor's calendar month.
	GridMonth GridMode = iota
	// GridHalfYear covers six calendar months starting at the anchor month.
	GridHalfYear
)

// GridRange returns the inclusive [start, end] of the week-aligned grid for
// the anchor period: start is the Sunday on or before the first day of the
// period, end is the Saturday on or after its last day. The grid is therefore
// always a whole number of 7-day weeks.
func GridRange(anchor time.Time, mode GridMode) (start, end time.Time) {
	year, month, _ := anchor.Date()
	first := time.Date(year, month, 1, 0, 0, 0, 0, anchor.Location())

	months := 1
	if mode == GridHalfYear {
		months = 6
	}
	// Day 0 of the following month is the last day of the period.
	last := time.Date(year, month+time.Month(months), 0, 0, 0, 0, 0, anchor.Location())

	start = first.AddDate(0, 0, -int(first.Weekday()))
	end = last.AddDate(0, 0, int(time.Saturday-last.Weekday()))
	return start, end
}

// ExpandGrid returns every date in the grid for the anchor period, oldest
// first, as YYYY-MM-DD strings. It fails rather than loop unbounded if the
// range exceeds maxGridDays.
func ExpandGrid(anchor time.Time, mode GridMode) ([]string, error) {
	start, end := GridRange(anchor, mode)

	var dates []string
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if len(dates) >= maxGridDays {
			return nil, fmt.Errorf("calendar range %s..%s exceeds %d days", FormatDate(start), FormatDate(end), maxGridDays)
		}
		dates = append(dates, FormatDate(d))
	}
	return dates, nil
}
