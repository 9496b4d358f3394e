// Package taskorder persists a client-side display order for tasks. The
// order is purely local preference; the remote never sees it.
package taskorder

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/hay-kot/sprout/internal/habit"
)

// Order is a total order over task ids. Ids not present sort after the
// ordered ones, keeping their relative position.
type Order struct {
	path string
	IDs  []string `json:"ids"`
}

// Load reads the order file at path. A missing file is an empty order.
func Load(path string) (*Order, error) {
	o := &Order{path: path}

	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return o, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read task order: %w", err)
	}

	if err := json.Unmarshal(raw, o); err != nil {
		return nil, fmt.Errorf("parse task order %s: %w", path, err)
	}
	return o, nil
}

// Save writes the order back to its file atomically.
func (o *Order) Save() error {
	if err := os.MkdirAll(filepath.Dir(o.path), 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	raw, err := json.MarshalIndent(o, "", "  ")
	if err != nil {
		return fmt.Errorf("encode task order: %w", err)
	}

	tmp := o.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return fmt.Errorf("write task order: %w", err)
	}
	if err := os.Rename(tmp, o.path); err != nil {
		return fmt.Errorf("replace task order: %w", err)
	}
	return nil
}

// Sort orders tasks by the stored order. Stable, so unseen ids keep their
// incoming relative order after the known ones.
func (o *Order) Sort(tasks []habit.Task) {
	rank := make(map[string]int, len(o.IDs))
	for i, id := range o.IDs {
		rank[id] = i
	}

	pos := func(id string) int {
		if r, ok := rank[id]; ok {
			return r
		}
		return len(o.IDs)
	}

	slices.SortStableFunc(tasks, func(a, b habit.Task) int {
		return pos(a.ID) - pos(b.ID)
	})
}

// Set replaces the order with the ids of tasks as currently arranged.
func (o *Order) Set(tasks []habit.Task) {
	o.IDs = o.IDs[:0]
	for _, t := range tasks {
		o.IDs = append(o.IDs, t.ID)
	}
}

// Move shifts the task id one step in the given direction (-1 up, +1 down)
// within the arrangement of tasks, and records the new order. Returns false
// if the move is out of range.
func (o *Order) Move(tasks []habit.Task, id string, dir int) bool {
	idx := slices.IndexFunc(tasks, func(t habit.Task) bool { return t.ID == id })
	if idx < 0 {
		return false
	}

	target := idx + dir
	if target < 0 || target >= len(tasks) {
		return false
	}

	tasks[idx], tasks[target] = tasks[target], tasks[idx]
	o.Set(tasks)
	return true
}
