package remote

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hay-kot/sprout/internal/habit"
	"github.com/hay-kot/sprout/internal/rowstore"
)

func TestLocal_AddTask_MintsID(t *testing.T) {
	local := NewLocal(rowstore.NewMemory())
	ctx := context.Background()

	a, err := local.AddTask(ctx, "Read")
	require.NoError(t, err)
	b, err := local.AddTask(ctx, "Stretch")
	require.NoError(t, err)

	assert.NotEmpty(t, a.ID)
	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, "Read", a.Title)
	assert.False(t, a.CreatedAt.IsZero())
}

func TestLocal_DeleteTask_CascadesLogsFirst(t *testing.T) {
	store := rowstore.NewMemory()
	local := NewLocal(store)
	ctx := context.Background()

	task, err := local.AddTask(ctx, "Read")
	require.NoError(t, err)

	require.NoError(t, local.ToggleLog(ctx, "2026-02-01", task.ID, true))
	require.NoError(t, local.ToggleLog(ctx, "2026-02-02", task.ID, true))
	require.NoError(t, local.ToggleLog(ctx, "2026-02-02", "other", true))

	require.NoError(t, local.DeleteTask(ctx, task.ID))

	logs, err := store.Logs.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, "other", logs[0].TaskID)
}

func TestLocal_DeleteTask_Missing(t *testing.T) {
	local := NewLocal(rowstore.NewMemory())

	err := local.DeleteTask(context.Background(), "nope")
	assert.ErrorIs(t, err, rowstore.ErrNotFound)
}

func TestLocal_ToggleLog_Idempotent(t *testing.T) {
	store := rowstore.NewMemory()
	local := NewLocal(store)
	ctx := context.Background()

	require.NoError(t, local.ToggleLog(ctx, "2026-02-01", "t_1", true))
	require.NoError(t, local.ToggleLog(ctx, "2026-02-01", "t_1", true))

	logs, err := store.Logs.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, logs, 1)

	require.NoError(t, local.ToggleLog(ctx, "2026-02-01", "t_1", false))
	require.NoError(t, local.ToggleLog(ctx, "2026-02-01", "t_1", false))

	logs, err = store.Logs.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, logs)
}

func TestLocal_InitialData(t *testing.T) {
	store := rowstore.NewMemory()
	local := NewLocal(store)
	ctx := context.Background()

	_, err := store.Tasks.Add(ctx, habit.Task{ID: "t_1", Title: "Read"})
	require.NoError(t, err)
	_, err = store.Logs.Add(ctx, habit.Log{Date: "2026-02-01", TaskID: "t_1"})
	require.NoError(t, err)

	tasks, logs, err := local.InitialData(ctx)
	require.NoError(t, err)
	assert.Len(t, tasks, 1)
	assert.Len(t, logs, 1)
}
