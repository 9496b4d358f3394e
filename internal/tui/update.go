package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/hay-kot/sprout/internal/habit"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case dataLoadedMsg:
		m.loading = false
		m.loadErr = nil
		m.snapshot()
		return m, nil

	case loadFailedMsg:
		m.loading = false
		m.loadErr = msg.err
		return m, nil

	case toggleResultMsg:
		if msg.err != nil {
			m.statusEr = msg.err.Error()
		}
		m.snapshot()
		return m, nil

	case taskAddedMsg:
		if msg.err != nil {
			m.statusEr = msg.err.Error()
		}
		m.snapshot()
		return m, nil

	case taskRenamedMsg:
		if msg.err != nil {
			m.statusEr = msg.err.Error()
		}
		m.snapshot()
		return m, nil

	case taskDeletedMsg:
		if msg.err != nil {
			m.statusEr = msg.err.Error()
		} else {
			// Drop the deleted id from the persisted order too.
			m.deps.Order.Set(removeTask(m.tasks, msg.id))
			_ = m.deps.Order.Save()
		}
		m.snapshot()
		return m, nil

	case tea.KeyMsg:
		return m.updateKey(msg)
	}

	return m, nil
}

func removeTask(tasks []habit.Task, id string) []habit.Task {
	out := make([]habit.Task, 0, len(tasks))
	for _, t := range tasks {
		if t.ID != id {
			out = append(out, t)
		}
	}
	return out
}

func (m Model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// The blocking load-failure screen only understands retry and quit.
	if m.loadErr != nil {
		switch msg.String() {
		case "r":
			m.loading = true
			m.loadErr = nil
			return m, tea.Batch(m.spinner.Tick, m.loadCmd())
		case "q", "ctrl+c":
			return m, tea.Quit
		}
		return m, nil
	}

	if m.loading {
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		return m, nil
	}

	if m.inputMode != inputNone {
		return m.updateInputKey(msg)
	}

	if m.confirmDelete != "" {
		switch msg.String() {
		case "y", "enter":
			id := m.confirmDelete
			m.confirmDelete = ""
			return m, m.deleteCmd(id)
		case "n", "esc":
			m.confirmDelete = ""
		}
		return m, nil
	}

	if m.detail != "" {
		return m.updateDetailKey(msg)
	}

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "tab":
		if m.focus == paneChecklist {
			m.focus = paneCalendar
			m.calCursor = habit.Today()
		} else {
			m.focus = paneChecklist
			m.calCursor = ""
		}
		return m, nil
	case "a":
		m.inputMode = inputAdd
		m.input.SetValue("")
		m.input.Placeholder = "New task title"
		m.input.Focus()
		return m, nil
	}

	if m.focus == paneChecklist {
		return m.updateChecklistKey(msg)
	}
	return m.updateCalendarKey(msg)
}

func (m Model) updateChecklistKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "j", "down":
		if m.cursor < len(m.tasks)-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "J":
		if task, ok := m.selectedTask(); ok && m.deps.Order.Move(m.tasks, task.ID, 1) {
			m.cursor++
			_ = m.deps.Order.Save()
		}
	case "K":
		if task, ok := m.selectedTask(); ok && m.deps.Order.Move(m.tasks, task.ID, -1) {
			m.cursor--
			_ = m.deps.Order.Save()
		}
	case " ", "enter":
		if task, ok := m.selectedTask(); ok {
			return m.toggle(habit.Today(), task.ID)
		}
	case "e":
		if task, ok := m.selectedTask(); ok {
			m.inputMode = inputRename
			m.renameID = task.ID
			m.input.SetValue(task.Title)
			m.input.Placeholder = ""
			m.input.Focus()
		}
	case "d":
		if task, ok := m.selectedTask(); ok {
			m.confirmDelete = task.ID
		}
	}
	return m, nil
}

func (m Model) updateCalendarKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "h", "left":
		if cur, err := habit.ParseDate(m.calCursor); err == nil {
			m.setCalCursor(cur.AddDate(0, 0, -1))
		}
	case "l", "right":
		if cur, err := habit.ParseDate(m.calCursor); err == nil {
			m.setCalCursor(cur.AddDate(0, 0, 1))
		}
	case "j", "down":
		if cur, err := habit.ParseDate(m.calCursor); err == nil {
			m.setCalCursor(cur.AddDate(0, 0, 7))
		}
	case "k", "up":
		if cur, err := habit.ParseDate(m.calCursor); err == nil {
			m.setCalCursor(cur.AddDate(0, 0, -7))
		}
	case "H", "pgup":
		m.anchor = m.anchor.AddDate(0, -1, 0)
		m.calCursor = habit.FormatDate(m.anchor)
	case "L", "pgdown":
		m.anchor = m.anchor.AddDate(0, 1, 0)
		m.calCursor = habit.FormatDate(m.anchor)
	case "t":
		now := time.Now()
		m.anchor = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.Local)
		m.calCursor = habit.Today()
	case "m":
		m.halfYear = !m.halfYear
	case "enter":
		if m.calCursor != "" {
			m.detail = m.calCursor
			m.cursor = 0
		}
	}
	return m, nil
}

// setCalCursor moves the calendar cursor, shifting the anchor month when
// the cursor walks off the visible range.
func (m *Model) setCalCursor(d time.Time) {
	m.calCursor = habit.FormatDate(d)
	if d.Month() != m.anchor.Month() || d.Year() != m.anchor.Year() {
		m.anchor = time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, time.Local)
	}
}

func (m Model) updateDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q", "enter":
		m.detail = ""
	case "j", "down":
		if m.cursor < len(m.tasks)-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case " ":
		if task, ok := m.selectedTask(); ok {
			return m.toggle(m.detail, task.ID)
		}
	}
	return m, nil
}

// toggle flips (date, task) optimistically: the view copy changes now so
// the cell updates this frame, and the authoritative snapshot arrives with
// toggleResultMsg (reverted by the engine if the store write failed).
func (m Model) toggle(date, taskID string) (tea.Model, tea.Cmd) {
	want := !hasLog(m.logs, date, taskID)
	m.statusEr = ""

	if want {
		m.logs = append(m.logs, habit.Log{Date: date, TaskID: taskID, Timestamp: time.Now()})
	} else {
		kept := make([]habit.Log, 0, len(m.logs))
		for _, l := range m.logs {
			if !l.Matches(date, taskID) {
				kept = append(kept, l)
			}
		}
		m.logs = kept
	}

	return m, m.toggleCmd(date, taskID, want)
}

func (m Model) updateInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.inputMode = inputNone
		m.input.Blur()
		return m, nil
	case "enter":
		title := m.input.Value()
		mode := m.inputMode
		m.inputMode = inputNone
		m.input.Blur()
		m.statusEr = ""
		switch mode {
		case inputAdd:
			return m, m.addCmd(title)
		case inputRename:
			return m, m.renameCmd(m.renameID, title)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) selectedTask() (habit.Task, bool) {
	if m.cursor < 0 || m.cursor >= len(m.tasks) {
		return habit.Task{}, false
	}
	return m.tasks[m.cursor], true
}

func hasLog(logs []habit.Log, date, taskID string) bool {
	for _, l := range logs {
		if l.Matches(date, taskID) {
			return true
		}
	}
	return false
}
