// Package sqlite provides a SQLite-backed row store.
//
// The row-store contract is linear-scan over ordered rows; SQLite is a
// deliberate indexed upgrade over that, kept observably identical by
// ordering every read on rowid (insertion order).
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/hay-kot/sprout/internal/habit"
	"github.com/hay-kot/sprout/internal/rowstore"
)

const schema = `
CREATE TABLE IF NOT EXISTS tasks (
	id         TEXT PRIMARY KEY,
	title      TEXT NOT NULL,
	created_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS logs (
	date      TEXT NOT NULL,
	task_id   TEXT NOT NULL,
	timestamp INTEGER NOT NULL
);
`

// DB wraps the SQLite connection shared by both row collections.
type DB struct {
	db *sql.DB
}

// Open opens (creating if needed) the database at path and applies the
// schema. WAL mode keeps `serve` responsive under concurrent requests.
func Open(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &DB{db: db}, nil
}

// Close closes the underlying connection.
func (d *DB) Close() error { return d.db.Close() }

// Store returns the row-store views over this database.
func (d *DB) Store() rowstore.Store {
	return rowstore.Store{
		Tasks: &taskStore{db: d.db},
		Logs:  &logStore{db: d.db},
	}
}

type taskStore struct {
	db *sql.DB
}

var _ rowstore.TaskStore = (*taskStore)(nil)

func (s *taskStore) GetAll(ctx context.Context) ([]habit.Task, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, title, created_at FROM tasks ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer func() { _ = rows.Close() }()

	tasks := []habit.Task{}
	for rows.Next() {
		var t habit.Task
		var createdAt int64
		if err := rows.Scan(&t.ID, &t.Title, &createdAt); err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		t.CreatedAt = time.Unix(0, createdAt)
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (s *taskStore) Add(ctx context.Context, task habit.Task) (habit.Task, error) {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO tasks (id, title, created_at) VALUES (?, ?, ?)`,
		task.ID, task.Title, task.CreatedAt.UnixNano(),
	)
	if err != nil {
		return habit.Task{}, fmt.Errorf("insert task: %w", err)
	}
	return task, nil
}

func (s *taskStore) Update(ctx context.Context, id, title string) (habit.Task, error) {
	row := s.db.QueryRowContext(ctx,
		`UPDATE tasks SET title = ? WHERE id = ? RETURNING id, title, created_at`,
		title, id,
	)

	var t habit.Task
	var createdAt int64
	err := row.Scan(&t.ID, &t.Title, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return habit.Task{}, rowstore.ErrNotFound
	}
	if err != nil {
		return habit.Task{}, fmt.Errorf("update task: %w", err)
	}
	t.CreatedAt = time.Unix(0, createdAt)
	return t, nil
}

func (s *taskStore) Delete(ctx context.Context, id string) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete task: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

type logStore struct {
	db *sql.DB
}

var _ rowstore.LogStore = (*logStore)(nil)

func (s *logStore) GetAll(ctx context.Context) ([]habit.Log, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT date, task_id, timestamp FROM logs ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("list logs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	logs := []habit.Log{}
	for rows.Next() {
		var l habit.Log
		var ts int64
		if err := rows.Scan(&l.Date, &l.TaskID, &ts); err != nil {
			return nil, fmt.Errorf("scan log: %w", err)
		}
		l.Timestamp = time.Unix(0, ts)
		logs = append(logs, l)
	}
	return logs, rows.Err()
}

func (s *logStore) Add(ctx context.Context, log habit.Log) (habit.Log, error) {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO logs (date, task_id, timestamp) VALUES (?, ?, ?)`,
		log.Date, log.TaskID, log.Timestamp.UnixNano(),
	)
	if err != nil {
		return habit.Log{}, fmt.Errorf("insert log: %w", err)
	}
	return log, nil
}

func (s *logStore) Delete(ctx context.Context, date, taskID string) (bool, error) {
	// Newest matching row first, same as the list backends.
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM logs WHERE rowid = (
			SELECT rowid FROM logs WHERE date = ? AND task_id = ? ORDER BY rowid DESC LIMIT 1
		)`,
		date, taskID,
	)
	if err != nil {
		return false, fmt.Errorf("delete log: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *logStore) DeleteByTaskID(ctx context.Context, taskID string) (int, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM logs WHERE task_id = ?`, taskID)
	if err != nil {
		return 0, fmt.Errorf("delete logs by task: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(n), nil
}
