// Package habit holds the core domain model: tasks, completion logs,
// the optimistic sync engine, and the achievement aggregator.
package habit

import "time"

// Task is a named recurring habit the user tracks.
type Task struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
}

// Log records that a task was completed on a specific local calendar day.
// Date is always YYYY-MM-DD. At most one log exists per (Date, TaskID) pair;
// the toggle operation upholds that invariant.
type Log struct {
	Date      string    `json:"date"`
	TaskID    string    `json:"task_id"`
	Timestamp time.Time `json:"timestamp"`
}

// Matches reports whether the log belongs to the given (date, taskID) pair.
func (l Log) Matches(date, taskID string) bool {
	return l.Date == date && l.TaskID == taskID
}
