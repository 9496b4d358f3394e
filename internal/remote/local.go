// Package remote implements the operation surface the sync engine talks to:
// an in-process binding over a row store for local backends, and an HTTP
// client for a sprout server.
package remote

import (
	"context"
	"fmt"
	"time"

	"github.com/hay-kot/sprout/internal/habit"
	"github.com/hay-kot/sprout/internal/rowstore"
	"github.com/hay-kot/sprout/pkg/randid"
)

// Local binds the operations directly to a row store. It is the authority
// for task identity (it mints ids) and for the one-log-per-(date,task)
// invariant, exactly like a sprout server would be.
type Local struct {
	store rowstore.Store
}

var _ habit.Remote = (*Local)(nil)

// NewLocal creates a Local over the given store.
func NewLocal(store rowstore.Store) *Local {
	return &Local{store: store}
}

func (l *Local) InitialData(ctx context.Context) ([]habit.Task, []habit.Log, error) {
	tasks, err := l.store.Tasks.GetAll(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("fetch tasks: %w", err)
	}
	logs, err := l.store.Logs.GetAll(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("fetch logs: %w", err)
	}
	return tasks, logs, nil
}

func (l *Local) AddTask(ctx context.Context, title string) (habit.Task, error) {
	task := habit.Task{
		ID:        "t_" + randid.Generate(12),
		Title:     title,
		CreatedAt: time.Now(),
	}
	return l.store.Tasks.Add(ctx, task)
}

func (l *Local) UpdateTask(ctx context.Context, id, title string) (habit.Task, error) {
	return l.store.Tasks.Update(ctx, id, title)
}

func (l *Local) DeleteTask(ctx context.Context, id string) error {
	// Logs go first so a failure half-way never leaves logs pointing at a
	// deleted task row.
	if _, err := l.store.Logs.DeleteByTaskID(ctx, id); err != nil {
		return fmt.Errorf("cascade logs: %w", err)
	}

	found, err := l.store.Tasks.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !found {
		return rowstore.ErrNotFound
	}
	return nil
}

func (l *Local) ToggleLog(ctx context.Context, date, taskID string, done bool) error {
	if done {
		// Add only if absent; a redundant confirm must not mint a
		// duplicate row.
		logs, err := l.store.Logs.GetAll(ctx)
		if err != nil {
			return err
		}
		for _, log := range logs {
			if log.Matches(date, taskID) {
				return nil
			}
		}
		_, err = l.store.Logs.Add(ctx, habit.Log{Date: date, TaskID: taskID, Timestamp: time.Now()})
		return err
	}

	// Delete by exact match; nothing matching is still success.
	_, err := l.store.Logs.Delete(ctx, date, taskID)
	return err
}
