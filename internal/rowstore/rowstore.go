// Package rowstore defines the ordered row collections that back sprout:
// one for tasks, one for completion logs. The contract is deliberately
// spreadsheet-shaped: append, linear-scan find, update-in-place, and
// delete-by-predicate over ordered rows. No transactions, no secondary
// indexes; empty storage yields empty slices, not errors.
package rowstore

import (
	"context"
	"errors"

	"github.com/hay-kot/sprout/internal/habit"
)

// ErrNotFound is returned when a row lookup by id finds nothing.
var ErrNotFound = errors.New("row not found")

// TaskStore holds task rows in insertion order.
type TaskStore interface {
	// GetAll returns every task row in order.
	GetAll(ctx context.Context) ([]habit.Task, error)
	// Add appends a row and returns it as stored.
	Add(ctx context.Context, task habit.Task) (habit.Task, error)
	// Update replaces the title of the task with the given id.
	// Returns ErrNotFound when no row matches.
	Update(ctx context.Context, id, title string) (habit.Task, error)
	// Delete removes the task with the given id. The boolean reports
	// whether a matching row was found and removed.
	Delete(ctx context.Context, id string) (bool, error)
}

// LogStore holds log rows in insertion order. Uniqueness of (date, taskID)
// is the toggle operation's responsibility, not the store's.
type LogStore interface {
	GetAll(ctx context.Context) ([]habit.Log, error)
	Add(ctx context.Context, log habit.Log) (habit.Log, error)
	// Delete removes one row matching (date, taskID) exactly, scanning
	// newest-first so duplicate cleanup stays stable.
	Delete(ctx context.Context, date, taskID string) (bool, error)
	// DeleteByTaskID removes every row referencing taskID and reports how
	// many were removed. Used for cascade deletion.
	DeleteByTaskID(ctx context.Context, taskID string) (int, error)
}

// Store bundles the two row collections a backend provides.
type Store struct {
	Tasks TaskStore
	Logs  LogStore
}
