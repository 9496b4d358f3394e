package habit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGridRange_Month(t *testing.T) {
	anchor := time.Date(2026, 2, 15, 0, 0, 0, 0, time.UTC)

	start, end := GridRange(anchor, GridMonth)

	// Feb 2026 starts on a Sunday and ends on a Saturday, so the grid is
	// exactly the month.
	assert.Equal(t, "2026-02-01", FormatDate(start))
	assert.Equal(t, "2026-02-28", FormatDate(end))
	assert.Equal(t, time.Sunday, start.Weekday())
	assert.Equal(t, time.Saturday, end.Weekday())
}

func TestGridRange_MonthPadsToWholeWeeks(t *testing.T) {
	// March 2026 starts on a Sunday and ends on a Tuesday.
	anchor := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	start, end := GridRange(anchor, GridMonth)

	assert.Equal(t, "2026-03-01", FormatDate(start))
	assert.Equal(t, "2026-04-04", FormatDate(end))
	assert.Equal(t, time.Sunday, start.Weekday())
	assert.Equal(t, time.Saturday, end.Weekday())
}

func TestGridRange_HalfYear(t *testing.T) {
	anchor := time.Date(2026, 2, 15, 0, 0, 0, 0, time.UTC)

	start, end := GridRange(anchor, GridHalfYear)

	// Covers Feb through Jul 2026 inclusive, week aligned.
	assert.Equal(t, time.Sunday, start.Weekday())
	assert.Equal(t, time.Saturday, end.Weekday())
	assert.False(t, start.After(time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)))
	assert.False(t, end.Before(time.Date(2026, 7, 31, 0, 0, 0, 0, time.UTC)))
}

func TestExpandGrid(t *testing.T) {
	anchor := time.Date(2026, 2, 15, 0, 0, 0, 0, time.UTC)

	dates, err := ExpandGrid(anchor, GridMonth)
	require.NoError(t, err)

	assert.Equal(t, 28, len(dates))
	assert.Equal(t, "2026-02-01", dates[0])
	assert.Equal(t, "2026-02-28", dates[len(dates)-1])
	assert.Zero(t, len(dates)%7, "grid must be whole weeks")
}

func TestExpandGrid_HalfYearWithinCap(t *testing.T) {
	anchor := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	dates, err := ExpandGrid(anchor, GridHalfYear)
	require.NoError(t, err)

	assert.Zero(t, len(dates)%7)
	assert.Less(t, len(dates), maxGridDays)
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2026-02-01")
	require.NoError(t, err)
	assert.Equal(t, "2026-02-01", FormatDate(d))

	_, err = ParseDate("02/01/2026")
	assert.Error(t, err)

	_, err = ParseDate("2026-2-1")
	assert.Error(t, err, "dates must be zero padded")
}
