package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hay-kot/sprout/internal/habit"
	"github.com/hay-kot/sprout/internal/rowstore"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "rows.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestSQLiteStore_TaskRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := openTestDB(t).Store()

	created := time.Date(2026, 1, 5, 9, 30, 0, 0, time.UTC)
	_, err := store.Tasks.Add(ctx, habit.Task{ID: "t1", Title: "workout", CreatedAt: created})
	require.NoError(t, err)
	_, err = store.Tasks.Add(ctx, habit.Task{ID: "t2", Title: "reading", CreatedAt: created})
	require.NoError(t, err)

	tasks, err := store.Tasks.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, "t1", tasks[0].ID, "insertion order preserved")
	assert.True(t, tasks[0].CreatedAt.Equal(created))

	updated, err := store.Tasks.Update(ctx, "t1", "morning workout")
	require.NoError(t, err)
	assert.Equal(t, "morning workout", updated.Title)

	_, err = store.Tasks.Update(ctx, "ghost", "x")
	assert.ErrorIs(t, err, rowstore.ErrNotFound)

	ok, err := store.Tasks.Delete(ctx, "t2")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = store.Tasks.Delete(ctx, "t2")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSQLiteStore_LogDeleteSemantics(t *testing.T) {
	ctx := context.Background()
	store := openTestDB(t).Store()

	now := time.Now()
	for _, l := range []habit.Log{
		{Date: "2026-02-01", TaskID: "t1", Timestamp: now},
		{Date: "2026-02-01", TaskID: "t2", Timestamp: now},
		{Date: "2026-02-02", TaskID: "t1", Timestamp: now},
	} {
		_, err := store.Logs.Add(ctx, l)
		require.NoError(t, err)
	}

	ok, err := store.Logs.Delete(ctx, "2026-02-01", "t1")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = store.Logs.Delete(ctx, "2026-02-01", "t1")
	require.NoError(t, err)
	assert.False(t, ok)

	removed, err := store.Logs.DeleteByTaskID(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	logs, err := store.Logs.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, "t2", logs[0].TaskID)
}

func TestSQLiteStore_EmptyReadsAsEmpty(t *testing.T) {
	ctx := context.Background()
	store := openTestDB(t).Store()

	tasks, err := store.Tasks.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, tasks)

	logs, err := store.Logs.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, logs)
}
