package habit

import (
	"context"
	"strings"
	"sync"
	"time"
)

// Remote is the operation surface of the row store the engine syncs against.
// Implementations live in internal/remote: an in-process binding for local
// backends and an HTTP client for a sprout server.
type Remote interface {
	InitialData(ctx context.Context) ([]Task, []Log, error)
	AddTask(ctx context.Context, title string) (Task, error)
	UpdateTask(ctx context.Context, id, title string) (Task, error)
	DeleteTask(ctx context.Context, id string) error
	ToggleLog(ctx context.Context, date, taskID string, done bool) error
}

// Engine owns the client-side copy of tasks and logs and keeps it consistent
// with the remote store. Toggles apply optimistically with a compensating
// rollback on failure; task mutations go remote-first.
//
// The engine is safe for concurrent use. Local state is guarded by one mutex
// and remote round-trips happen outside the critical section, so independent
// in-flight toggles compose regardless of completion order.
type Engine struct {
	remote Remote

	mu     sync.Mutex
	loaded bool
	tasks  []Task
	logs   []Log
}

// NewEngine creates an engine bound to the given remote. Call Initialize
// before reading or mutating.
func NewEngine(remote Remote) *Engine {
	return &Engine{remote: remote}
}

// Initialize fetches the full {tasks, logs} dataset and replaces local state
// wholesale. Until it succeeds every other method returns ErrNotLoaded.
func (e *Engine) Initialize(ctx context.Context) error {
	tasks, logs, err := e.remote.InitialData(ctx)
	if err != nil {
		return &LoadError{Err: err}
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.tasks = tasks
	e.logs = logs
	e.loaded = true
	return nil
}

// Tasks returns a copy of the current task list in store order.
func (e *Engine) Tasks() ([]Task, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.loaded {
		return nil, ErrNotLoaded
	}
	out := make([]Task, len(e.tasks))
	copy(out, e.tasks)
	return out, nil
}

// Logs returns a copy of the current log set.
func (e *Engine) Logs() ([]Log, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.loaded {
		return nil, ErrNotLoaded
	}
	out := make([]Log, len(e.logs))
	copy(out, e.logs)
	return out, nil
}

// Snapshot returns copies of both tasks and logs from the same locked view,
// so derived sets are computed over a consistent pair.
func (e *Engine) Snapshot() ([]Task, []Log, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.loaded {
		return nil, nil, ErrNotLoaded
	}
	tasks := make([]Task, len(e.tasks))
	copy(tasks, e.tasks)
	logs := make([]Log, len(e.logs))
	copy(logs, e.logs)
	return tasks, logs, nil
}

// ToggleLog sets the completion state of (date, taskID) to want.
//
// The local mutation is applied first and is idempotent: if local state
// already matches want nothing changes, but the remote call is still issued
// so the store stays the source of truth. On remote failure only the exact
// mutation applied here is reverted; optimistic changes to other pairs are
// left alone.
func (e *Engine) ToggleLog(ctx context.Context, date, taskID string, want bool) error {
	e.mu.Lock()
	if !e.loaded {
		e.mu.Unlock()
		return ErrNotLoaded
	}

	// Capture current state now, not at call-issue time, so rapid toggles
	// on the same pair each carry their own rollback scope.
	had := e.hasLogLocked(date, taskID)
	mutated := false
	switch {
	case want && !had:
		e.logs = append(e.logs, Log{Date: date, TaskID: taskID, Timestamp: time.Now()})
		mutated = true
	case !want && had:
		e.removeLogLocked(date, taskID)
		mutated = true
	}
	e.mu.Unlock()

	if err := e.remote.ToggleLog(ctx, date, taskID, want); err != nil {
		if mutated {
			e.mu.Lock()
			if want {
				// We added it; take it back out.
				e.removeLogLocked(date, taskID)
			} else if !e.hasLogLocked(date, taskID) {
				// We removed it; put it back.
				e.logs = append(e.logs, Log{Date: date, TaskID: taskID, Timestamp: time.Now()})
			}
			e.mu.Unlock()
		}
		return &RemoteError{Op: "toggle log", Err: err}
	}
	return nil
}

// AddTask creates a new task. The title must be non-blank; the remote mints
// the id and creation time and the returned task is what gets appended
// locally. Not optimistic: a failed add leaves local state untouched.
func (e *Engine) AddTask(ctx context.Context, title string) (Task, error) {
	if strings.TrimSpace(title) == "" {
		return Task{}, &ValidationError{Field: "title", Reason: "must not be empty"}
	}

	e.mu.Lock()
	if !e.loaded {
		e.mu.Unlock()
		return Task{}, ErrNotLoaded
	}
	e.mu.Unlock()

	task, err := e.remote.AddTask(ctx, title)
	if err != nil {
		return Task{}, &RemoteError{Op: "add task", Err: err}
	}

	e.mu.Lock()
	e.tasks = append(e.tasks, task)
	e.mu.Unlock()
	return task, nil
}

// UpdateTask renames a task. Remote-first: local state only changes once the
// store confirms, and the server's returned value is what replaces the local
// row. An unknown id surfaces as the remote's not-found error.
func (e *Engine) UpdateTask(ctx context.Context, id, title string) (Task, error) {
	if strings.TrimSpace(title) == "" {
		return Task{}, &ValidationError{Field: "title", Reason: "must not be empty"}
	}

	e.mu.Lock()
	if !e.loaded {
		e.mu.Unlock()
		return Task{}, ErrNotLoaded
	}
	e.mu.Unlock()

	task, err := e.remote.UpdateTask(ctx, id, title)
	if err != nil {
		return Task{}, &RemoteError{Op: "update task", Err: err}
	}

	e.mu.Lock()
	for i := range e.tasks {
		if e.tasks[i].ID == id {
			e.tasks[i] = task
			break
		}
	}
	e.mu.Unlock()
	return task, nil
}

// DeleteTask removes a task and all logs referencing it. Remote-first; the
// local removal mirrors the remote cascade exactly so stale logs can't skew
// aggregation even if individual remote log rows were missed.
func (e *Engine) DeleteTask(ctx context.Context, id string) error {
	e.mu.Lock()
	if !e.loaded {
		e.mu.Unlock()
		return ErrNotLoaded
	}
	e.mu.Unlock()

	if err := e.remote.DeleteTask(ctx, id); err != nil {
		return &RemoteError{Op: "delete task", Err: err}
	}

	e.mu.Lock()
	tasks := e.tasks[:0]
	for _, t := range e.tasks {
		if t.ID != id {
			tasks = append(tasks, t)
		}
	}
	e.tasks = tasks

	logs := e.logs[:0]
	for _, l := range e.logs {
		if l.TaskID != id {
			logs = append(logs, l)
		}
	}
	e.logs = logs
	e.mu.Unlock()
	return nil
}

func (e *Engine) hasLogLocked(date, taskID string) bool {
	for _, l := range e.logs {
		if l.Matches(date, taskID) {
			return true
		}
	}
	return false
}

func (e *Engine) removeLogLocked(date, taskID string) {
	logs := e.logs[:0]
	for _, l := range e.logs {
		if !l.Matches(date, taskID) {
			logs = append(logs, l)
		}
	}
	e.logs = logs
}
