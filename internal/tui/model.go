// Package tui implements the sprout dashboard: today's checklist next to
// the achievement calendar, backed by the sync engine. The TUI only ever
// reads derived data; every mutation goes through the engine so optimistic
// state and rollback behave exactly as they do for the CLI commands.
package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/hay-kot/sprout/internal/habit"
	"github.com/hay-kot/sprout/internal/taskorder"
)

// pane identifies which side of the dashboard has focus.
type pane int

const (
	paneChecklist pane = iota
	paneCalendar
)

// inputMode tracks what a visible text input is for.
type inputMode int

const (
	inputNone inputMode = iota
	inputAdd
	inputRename
)

// Deps carries everything the dashboard needs from the caller.
type Deps struct {
	Engine *habit.Engine
	Order  *taskorder.Order
}

// Model is the bubbletea model for the dashboard.
type Model struct {
	deps Deps

	// data snapshot, refreshed after every engine round-trip
	tasks []habit.Task
	logs  []habit.Log

	loading  bool
	loadErr  error
	spinner  spinner.Model
	statusEr string

	focus  pane
	cursor int // checklist row

	// calendar state
	anchor    time.Time
	halfYear  bool
	calCursor string // selected date, empty when the checklist has focus
	detail    string // date opened in the day-detail overlay, empty when closed

	input     textinput.Model
	inputMode inputMode
	renameID  string

	confirmDelete string // task id pending delete confirmation

	width  int
	height int
}

// New creates the dashboard model. The engine may be uninitialized; the
// model loads it on Init and shows a blocking retry screen on failure.
func New(deps Deps) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	ti := textinput.New()
	ti.CharLimit = 120

	now := time.Now()
	return Model{
		deps:    deps,
		loading: true,
		spinner: sp,
		input:   ti,
		anchor:  time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.Local),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.loadCmd())
}

// snapshot re-reads engine state into the model. Called after every
// mutation result so the view always reflects optimistic state.
func (m *Model) snapshot() {
	tasks, logs, err := m.deps.Engine.Snapshot()
	if err != nil {
		return
	}
	m.deps.Order.Sort(tasks)
	m.tasks = tasks
	m.logs = logs
	if m.cursor >= len(m.tasks) {
		m.cursor = max(0, len(m.tasks)-1)
	}
}

// Messages.

type dataLoadedMsg struct{}

type loadFailedMsg struct{ err error }

type toggleResultMsg struct {
	date   string
	taskID string
	err    error
}

type taskAddedMsg struct {
	task habit.Task
	err  error
}

type taskRenamedMsg struct {
	task habit.Task
	err  error
}

type taskDeletedMsg struct {
	id  string
	err error
}

// Commands. Engine calls run off the update loop; the engine serializes
// its own state so concurrent in-flight toggles are fine.

func (m Model) loadCmd() tea.Cmd {
	engine := m.deps.Engine
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := engine.Initialize(ctx); err != nil {
			return loadFailedMsg{err: err}
		}
		return dataLoadedMsg{}
	}
}

func (m Model) toggleCmd(date, taskID string, want bool) tea.Cmd {
	engine := m.deps.Engine
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		err := engine.ToggleLog(ctx, date, taskID, want)
		return toggleResultMsg{date: date, taskID: taskID, err: err}
	}
}

func (m Model) addCmd(title string) tea.Cmd {
	engine := m.deps.Engine
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		task, err := engine.AddTask(ctx, title)
		return taskAddedMsg{task: task, err: err}
	}
}

func (m Model) renameCmd(id, title string) tea.Cmd {
	engine := m.deps.Engine
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		task, err := engine.UpdateTask(ctx, id, title)
		return taskRenamedMsg{task: task, err: err}
	}
}

func (m Model) deleteCmd(id string) tea.Cmd {
	engine := m.deps.Engine
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		err := engine.DeleteTask(ctx, id)
		return taskDeletedMsg{id: id, err: err}
	}
}
