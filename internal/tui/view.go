package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/hay-kot/sprout/internal/calendar"
	"github.com/hay-kot/sprout/internal/core/styles"
	"github.com/hay-kot/sprout/internal/habit"
)

func (m Model) View() string {
	if m.loading {
		return fmt.Sprintf("\n  %s loading…\n", m.spinner.View())
	}

	if m.loadErr != nil {
		return lipgloss.JoinVertical(lipgloss.Left,
			"",
			"  "+styles.StatusErrorStyle.Render("could not load your data"),
			"  "+styles.SubtleStyle.Render(m.loadErr.Error()),
			"",
			"  "+styles.HelpStyle.Render("r retry • q quit"),
		)
	}

	if m.detail != "" {
		return m.viewDetail()
	}

	left := m.viewChecklist()
	right := m.viewCalendar()

	leftBox := styles.PaneBorderStyle
	rightBox := styles.PaneBorderStyle
	if m.focus == paneChecklist {
		leftBox = styles.PaneBorderActiveStyle
	} else {
		rightBox = styles.PaneBorderActiveStyle
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top, leftBox.Render(left), rightBox.Render(right))

	lines := []string{body}
	if m.inputMode != inputNone {
		lines = append(lines, styles.InputPromptStyle.Render("> ")+m.input.View())
	}
	if m.confirmDelete != "" {
		title := m.confirmDelete
		if t, ok := m.taskByID(m.confirmDelete); ok {
			title = t.Title
		}
		lines = append(lines, styles.StatusErrorStyle.Render(
			fmt.Sprintf("delete %q and all history? y/n", title)))
	}
	if m.statusEr != "" {
		lines = append(lines, styles.StatusErrorStyle.Render(m.statusEr))
	}
	lines = append(lines, styles.HelpStyle.Render(m.helpLine()))

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m Model) taskByID(id string) (habit.Task, bool) {
	for _, t := range m.tasks {
		if t.ID == id {
			return t, true
		}
	}
	return habit.Task{}, false
}

func (m Model) viewChecklist() string {
	var b strings.Builder

	today := habit.Today()
	summary := habit.SummarizeDay(m.tasks, m.logs, today)

	title := fmt.Sprintf("Today  %d/%d", summary.Completed, summary.Total)
	if summary.AllDone() {
		title += " " + styles.IconStar
	}
	b.WriteString(styles.TitleStyle.Render(title))
	b.WriteString("\n\n")

	if len(m.tasks) == 0 {
		b.WriteString(styles.SubtleStyle.Render("no tasks yet, press a to add one"))
		return b.String()
	}

	for i, task := range m.tasks {
		mark := styles.ChecklistPendingStyle.Render(styles.IconCircle)
		label := task.Title
		if _, ok := summary.CompletedIDs[task.ID]; ok {
			mark = styles.ChecklistDoneStyle.Render(styles.IconCheck)
		}

		if m.focus == paneChecklist && i == m.cursor {
			b.WriteString(styles.ChecklistSelectedStyle.Render("❯ "))
			b.WriteString(mark)
			b.WriteString(" ")
			b.WriteString(styles.ChecklistSelectedStyle.Render(label))
		} else {
			b.WriteString("  ")
			b.WriteString(mark)
			b.WriteString(" ")
			b.WriteString(label)
		}
		b.WriteString("\n")
	}

	return strings.TrimRight(b.String(), "\n")
}

func (m Model) viewCalendar() string {
	mode := habit.GridMonth
	anchor := m.anchor
	if m.halfYear {
		mode = habit.GridHalfYear
		anchor = anchor.AddDate(0, -5, 0)
	}

	grid, err := calendar.Build(anchor, mode, calendar.Input{
		Achieved:  habit.AchievedDates(m.tasks, m.logs),
		Completed: calendar.CompletedCounts(m.tasks, m.logs),
		Today:     habit.Today(),
	})
	if err != nil {
		return styles.StatusErrorStyle.Render(err.Error())
	}

	if m.halfYear {
		width := m.width - 40
		if width < 40 {
			width = 40
		}
		return calendar.RenderHalfYear(grid, width)
	}

	cursor := ""
	if m.focus == paneCalendar {
		cursor = m.calCursor
	}
	return calendar.RenderMonth(grid, cursor)
}

func (m Model) viewDetail() string {
	summary := habit.SummarizeDay(m.tasks, m.logs, m.detail)

	var b strings.Builder
	header := fmt.Sprintf("%s  %d/%d", m.detail, summary.Completed, summary.Total)
	if summary.AllDone() {
		header += " " + styles.IconStar
	}
	b.WriteString(styles.TitleStyle.Render(header))
	b.WriteString("\n\n")

	for i, task := range m.tasks {
		mark := styles.ChecklistPendingStyle.Render(styles.IconCircle)
		if _, ok := summary.CompletedIDs[task.ID]; ok {
			mark = styles.ChecklistDoneStyle.Render(styles.IconCheck)
		}
		prefix := "  "
		if i == m.cursor {
			prefix = styles.ChecklistSelectedStyle.Render("❯ ")
		}
		b.WriteString(prefix + mark + " " + task.Title + "\n")
	}

	b.WriteString("\n")
	if m.statusEr != "" {
		b.WriteString(styles.StatusErrorStyle.Render(m.statusEr))
		b.WriteString("\n")
	}
	b.WriteString(styles.HelpStyle.Render("space toggle • j/k move • esc back"))

	return styles.PaneBorderActiveStyle.Render(strings.TrimRight(b.String(), "\n"))
}

func (m Model) helpLine() string {
	if m.focus == paneChecklist {
		return "space toggle • j/k move • J/K reorder • a add • e rename • d delete • tab calendar • q quit"
	}
	if m.halfYear {
		return "m month view • H/L shift months • tab checklist • q quit"
	}
	return "h/j/k/l move • H/L month • t today • m 6-month • enter day • tab checklist • q quit"
}
