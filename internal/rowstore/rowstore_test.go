package rowstore

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hay-kot/sprout/internal/habit"
)

func testTask(id, title string) habit.Task {
	return habit.Task{ID: id, Title: title, CreatedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func testLog(date, taskID string) habit.Log {
	return habit.Log{Date: date, TaskID: taskID, Timestamp: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
}

// runStoreConformance exercises the row-store contract against any backend.
func runStoreConformance(t *testing.T, store Store) {
	t.Helper()
	ctx := context.Background()

	t.Run("empty storage reads as empty, not error", func(t *testing.T) {
		tasks, err := store.Tasks.GetAll(ctx)
		require.NoError(t, err)
		assert.Empty(t, tasks)

		logs, err := store.Logs.GetAll(ctx)
		require.NoError(t, err)
		assert.Empty(t, logs)
	})

	t.Run("tasks append in order", func(t *testing.T) {
		_, err := store.Tasks.Add(ctx, testTask("t1", "workout"))
		require.NoError(t, err)
		_, err = store.Tasks.Add(ctx, testTask("t2", "reading"))
		require.NoError(t, err)

		tasks, err := store.Tasks.GetAll(ctx)
		require.NoError(t, err)
		require.Len(t, tasks, 2)
		assert.Equal(t, "t1", tasks[0].ID)
		assert.Equal(t, "t2", tasks[1].ID)
	})

	t.Run("update replaces title in place", func(t *testing.T) {
		task, err := store.Tasks.Update(ctx, "t1", "morning workout")
		require.NoError(t, err)
		assert.Equal(t, "morning workout", task.Title)

		tasks, err := store.Tasks.GetAll(ctx)
		require.NoError(t, err)
		assert.Equal(t, "morning workout", tasks[0].Title)
		assert.Equal(t, "t1", tasks[0].ID, "order must be preserved")
	})

	t.Run("update unknown id reports not found", func(t *testing.T) {
		_, err := store.Tasks.Update(ctx, "nope", "x")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("log add and exact-match delete", func(t *testing.T) {
		_, err := store.Logs.Add(ctx, testLog("2026-02-01", "t1"))
		require.NoError(t, err)
		_, err = store.Logs.Add(ctx, testLog("2026-02-01", "t2"))
		require.NoError(t, err)
		_, err = store.Logs.Add(ctx, testLog("2026-02-02", "t1"))
		require.NoError(t, err)

		ok, err := store.Logs.Delete(ctx, "2026-02-01", "t1")
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = store.Logs.Delete(ctx, "2026-02-01", "t1")
		require.NoError(t, err)
		assert.False(t, ok, "second delete of the same pair finds nothing")

		logs, err := store.Logs.GetAll(ctx)
		require.NoError(t, err)
		assert.Len(t, logs, 2)
	})

	t.Run("cascade delete by task id", func(t *testing.T) {
		_, err := store.Logs.Add(ctx, testLog("2026-02-03", "t1"))
		require.NoError(t, err)

		// Rows now: (02-01,t2), (02-02,t1), (02-03,t1).
		removed, err := store.Logs.DeleteByTaskID(ctx, "t1")
		require.NoError(t, err)
		assert.Equal(t, 2, removed)

		logs, err := store.Logs.GetAll(ctx)
		require.NoError(t, err)
		require.Len(t, logs, 1)
		assert.Equal(t, "t2", logs[0].TaskID)
	})

	t.Run("task delete reports found", func(t *testing.T) {
		ok, err := store.Tasks.Delete(ctx, "t1")
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = store.Tasks.Delete(ctx, "t1")
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestMemoryStore(t *testing.T) {
	runStoreConformance(t, NewMemory())
}

func TestJSONFileStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "rows.json")
	runStoreConformance(t, NewJSONFile(path))
}

func TestJSONFileStore_PersistsAcrossInstances(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "rows.json")

	first := NewJSONFile(path)
	_, err := first.Tasks.Add(ctx, testTask("t1", "workout"))
	require.NoError(t, err)
	_, err = first.Logs.Add(ctx, testLog("2026-02-01", "t1"))
	require.NoError(t, err)

	second := NewJSONFile(path)
	tasks, err := second.Tasks.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "workout", tasks[0].Title)

	logs, err := second.Logs.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, logs, 1)
}
