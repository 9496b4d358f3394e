// Package calendar builds and renders achievement calendar grids. Grid
// construction is pure so the TUI can carry a cursor over the cells; the
// render helpers turn cells into styled terminal output.
package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/hay-kot/sprout/internal/core/styles"
	"github.com/hay-kot/sprout/internal/habit"
)

// CellState classifies a day cell for styling.
type CellState int

const (
	// CellOutside is padding outside the anchor month(s) range.
	CellOutside CellState = iota
	// CellFuture is a day after today.
	CellFuture
	// CellEmpty is a past or current day with no achievement.
	CellEmpty
	// CellPartial is a day with some but not all tasks completed.
	CellPartial
	// CellDone is an achieved day.
	CellDone
)

// Cell is one day in the grid.
type Cell struct {
	Date  string
	Day   int
	State CellState
	Today bool
}

// Grid is a calendar expansion cut into weeks of 7, Sunday first.
type Grid struct {
	Anchor time.Time
	Mode   habit.GridMode
	Weeks  [][7]Cell
}

// Input carries the data a grid is derived from.
type Input struct {
	Achieved  map[string]struct{}
	Completed map[string]int // dates with at least one completed task
	Today     string
}

// Build expands the anchor month(s) into a grid of styled-classifiable
// cells. The expansion itself comes from habit.ExpandGrid, so both views
// share the exact same day range rules.
func Build(anchor time.Time, mode habit.GridMode, in Input) (Grid, error) {
	dates, err := habit.ExpandGrid(anchor, mode)
	if err != nil {
		return Grid{}, err
	}

	grid := Grid{Anchor: anchor, Mode: mode}

	// The month-range boundary, before week alignment pads it out.
	year, month, _ := anchor.Date()
	months := 1
	if mode == habit.GridHalfYear {
		months = 6
	}
	firstDay := habit.FormatDate(time.Date(year, month, 1, 0, 0, 0, 0, anchor.Location()))
	lastDay := habit.FormatDate(time.Date(year, month+time.Month(months), 0, 0, 0, 0, 0, anchor.Location()))

	var week [7]Cell
	for i, date := range dates {
		day, err := habit.ParseDate(date)
		if err != nil {
			return Grid{}, fmt.Errorf("expand produced bad date %q: %w", date, err)
		}

		cell := Cell{Date: date, Day: day.Day(), Today: date == in.Today}
		switch {
		case date < firstDay || date > lastDay:
			cell.State = CellOutside
		case in.Today != "" && date > in.Today:
			cell.State = CellFuture
		default:
			if _, ok := in.Achieved[date]; ok {
				cell.State = CellDone
			} else if in.Completed[date] > 0 {
				cell.State = CellPartial
			} else {
				cell.State = CellEmpty
			}
		}

		week[i%7] = cell
		if i%7 == 6 {
			grid.Weeks = append(grid.Weeks, week)
		}
	}

	return grid, nil
}

// CompletedCounts derives per-date completed-task counts for partial-day
// styling, counting only live task ids.
func CompletedCounts(tasks []habit.Task, logs []habit.Log) map[string]int {
	live := make(map[string]struct{}, len(tasks))
	for _, t := range tasks {
		live[t.ID] = struct{}{}
	}

	seen := make(map[string]map[string]struct{})
	for _, l := range logs {
		if _, ok := live[l.TaskID]; !ok {
			continue
		}
		if seen[l.Date] == nil {
			seen[l.Date] = make(map[string]struct{})
		}
		seen[l.Date][l.TaskID] = struct{}{}
	}

	counts := make(map[string]int, len(seen))
	for date, ids := range seen {
		counts[date] = len(ids)
	}
	return counts
}

func cellStyle(c Cell, cursor bool) lipgloss.Style {
	switch {
	case cursor:
		return styles.CalCursorStyle
	case c.State == CellOutside:
		return styles.CalPadStyle
	case c.Today:
		return styles.CalTodayStyle
	case c.State == CellDone:
		return styles.CalDoneStyle
	case c.State == CellPartial:
		return styles.CalPartialStyle
	case c.State == CellFuture:
		return styles.CalFutureStyle
	default:
		return styles.CalEmptyStyle
	}
}

// RenderMonth renders a single month grid with a weekday header. An empty
// cursor date renders no cursor.
func RenderMonth(g Grid, cursor string) string {
	var b strings.Builder

	b.WriteString(styles.CalMonthStyle.Render(g.Anchor.Format("January 2006")))
	b.WriteString("\n")
	b.WriteString(styles.CalWeekdayStyle.Render("Su Mo Tu We Th Fr Sa"))
	b.WriteString("\n")

	for _, week := range g.Weeks {
		cells := make([]string, 0, 7)
		for _, c := range week {
			if c.State == CellOutside {
				cells = append(cells, "  ")
				continue
			}
			label := fmt.Sprintf("%2d", c.Day)
			cells = append(cells, cellStyle(c, c.Date == cursor).Render(label))
		}
		b.WriteString(strings.Join(cells, " "))
		b.WriteString("\n")
	}

	return strings.TrimRight(b.String(), "\n")
}

// RenderHalfYear renders the 6-month view as one cell per day, GitHub
// heatmap style with month labels above week columns. width bounds the
// output; columns beyond it are dropped from the left (oldest first).
func RenderHalfYear(g Grid, width int) string {
	weeks := g.Weeks

	// Each week column is 2 runes wide (cell + gap) plus the weekday gutter.
	const gutter = 3
	if width > gutter {
		maxWeeks := (width - gutter) / 2
		if maxWeeks > 0 && len(weeks) > maxWeeks {
			weeks = weeks[len(weeks)-maxWeeks:]
		}
	}

	var b strings.Builder

	// Month labels: mark the column where each month starts.
	labels := make([]string, len(weeks))
	prevMonth := ""
	for i, week := range weeks {
		labels[i] = "  "
		for _, c := range week {
			if c.State == CellOutside {
				continue
			}
			day, err := habit.ParseDate(c.Date)
			if err != nil {
				continue
			}
			m := day.Format("Jan")
			if m != prevMonth && day.Day() <= 7 {
				labels[i] = m[:2]
				prevMonth = m
			}
			break
		}
	}
	b.WriteString(strings.Repeat(" ", gutter))
	b.WriteString(styles.CalMonthStyle.Render(strings.Join(labels, "")))
	b.WriteString("\n")

	gutterLabels := [7]string{"  ", "Mo", "  ", "We", "  ", "Fr", "  "}
	for dow := 0; dow < 7; dow++ {
		b.WriteString(styles.CalWeekdayStyle.Render(gutterLabels[dow]))
		b.WriteString(" ")
		for _, week := range weeks {
			c := week[dow]
			if c.State == CellOutside {
				b.WriteString("  ")
				continue
			}
			b.WriteString(cellStyle(c, false).Render("■"))
			b.WriteString(" ")
		}
		b.WriteString("\n")
	}

	return strings.TrimRight(b.String(), "\n")
}
