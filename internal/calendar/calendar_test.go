package calendar

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hay-kot/sprout/internal/habit"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func cellFor(t *testing.T, g Grid, date string) Cell {
	t.Helper()

	for _, week := range g.Weeks {
		for _, c := range week {
			if c.Date == date {
				return c
			}
		}
	}
	t.Fatalf("no cell for %s", date)
	return Cell{}
}

func TestBuild_MonthGridShape(t *testing.T) {
	// February 2026 starts on a Sunday and ends on a Saturday, so the
	// grid is exactly the month with no padding.
	g, err := Build(day(2026, time.February, 15), habit.GridMonth, Input{})
	require.NoError(t, err)

	require.Len(t, g.Weeks, 4)
	assert.Equal(t, "2026-02-01", g.Weeks[0][0].Date)
	assert.Equal(t, "2026-02-28", g.Weeks[3][6].Date)
	for _, week := range g.Weeks {
		for _, c := range week {
			assert.NotEqual(t, CellOutside, c.State)
		}
	}
}

func TestBuild_PaddingIsOutside(t *testing.T) {
	// March 2026 starts on a Sunday but ends mid-week; the tail pads
	// into April.
	g, err := Build(day(2026, time.March, 1), habit.GridMonth, Input{})
	require.NoError(t, err)

	assert.Equal(t, CellOutside, cellFor(t, g, "2026-04-01").State)
	assert.NotEqual(t, CellOutside, cellFor(t, g, "2026-03-31").State)
}

func TestBuild_CellStates(t *testing.T) {
	in := Input{
		Achieved:  map[string]struct{}{"2026-02-03": {}},
		Completed: map[string]int{"2026-02-03": 2, "2026-02-04": 1},
		Today:     "2026-02-10",
	}

	g, err := Build(day(2026, time.February, 15), habit.GridMonth, in)
	require.NoError(t, err)

	assert.Equal(t, CellDone, cellFor(t, g, "2026-02-03").State)
	assert.Equal(t, CellPartial, cellFor(t, g, "2026-02-04").State)
	assert.Equal(t, CellEmpty, cellFor(t, g, "2026-02-05").State)
	assert.Equal(t, CellFuture, cellFor(t, g, "2026-02-11").State)

	today := cellFor(t, g, "2026-02-10")
	assert.True(t, today.Today)
	assert.Equal(t, CellEmpty, today.State)
}

func TestBuild_HalfYearSpansSixMonths(t *testing.T) {
	g, err := Build(day(2026, time.January, 1), habit.GridHalfYear, Input{})
	require.NoError(t, err)

	assert.NotEqual(t, CellOutside, cellFor(t, g, "2026-01-01").State)
	assert.NotEqual(t, CellOutside, cellFor(t, g, "2026-06-30").State)

	// Week alignment pads before January and after June.
	assert.Equal(t, CellOutside, cellFor(t, g, "2025-12-28").State)
	assert.Equal(t, CellOutside, cellFor(t, g, "2026-07-01").State)
}

func TestCompletedCounts(t *testing.T) {
	tasks := []habit.Task{{ID: "a"}, {ID: "b"}}
	logs := []habit.Log{
		{Date: "2026-02-01", TaskID: "a"},
		{Date: "2026-02-01", TaskID: "a"}, // duplicate row, same id
		{Date: "2026-02-01", TaskID: "b"},
		{Date: "2026-02-02", TaskID: "a"},
		{Date: "2026-02-02", TaskID: "ghost"}, // deleted task, not counted
	}

	counts := CompletedCounts(tasks, logs)

	assert.Equal(t, 2, counts["2026-02-01"])
	assert.Equal(t, 1, counts["2026-02-02"])
}

func TestRenderMonth(t *testing.T) {
	g, err := Build(day(2026, time.February, 15), habit.GridMonth, Input{})
	require.NoError(t, err)

	out := RenderMonth(g, "")
	assert.Contains(t, out, "February 2026")
	assert.Contains(t, out, "Su Mo Tu We Th Fr Sa")
	assert.Contains(t, out, "28")

	lines := strings.Split(out, "\n")
	assert.Len(t, lines, 6) // title + header + 4 weeks
}

func TestRenderHalfYear(t *testing.T) {
	g, err := Build(day(2026, time.January, 1), habit.GridHalfYear, Input{})
	require.NoError(t, err)

	out := RenderHalfYear(g, 200)
	lines := strings.Split(out, "\n")
	assert.Len(t, lines, 8) // month labels + 7 day rows

	narrow := RenderHalfYear(g, 40)
	for _, line := range strings.Split(narrow, "\n") {
		assert.LessOrEqual(t, len([]rune(line)), 60)
	}
}
