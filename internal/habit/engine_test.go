package habit

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRemote is a scriptable Remote double. Errors can be injected per
// operation; calls are recorded for assertion.
type fakeRemote struct {
	mu sync.Mutex

	tasks []Task
	logs  []Log

	initialErr error
	addErr     error
	updateErr  error
	deleteErr  error
	toggleErr  error

	addCalls    int
	toggleCalls []toggleCall
}

type toggleCall struct {
	date   string
	taskID string
	done   bool
}

func (f *fakeRemote) InitialData(ctx context.Context) ([]Task, []Log, error) {
	if f.initialErr != nil {
		return nil, nil, f.initialErr
	}
	return f.tasks, f.logs, nil
}

func (f *fakeRemote) AddTask(ctx context.Context, title string) (Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.addCalls++
	if f.addErr != nil {
		return Task{}, f.addErr
	}
	return Task{ID: "srv-1", Title: title, CreatedAt: time.Now()}, nil
}

func (f *fakeRemote) UpdateTask(ctx context.Context, id, title string) (Task, error) {
	if f.updateErr != nil {
		return Task{}, f.updateErr
	}
	return Task{ID: id, Title: title, CreatedAt: time.Now()}, nil
}

func (f *fakeRemote) DeleteTask(ctx context.Context, id string) error {
	return f.deleteErr
}

func (f *fakeRemote) ToggleLog(ctx context.Context, date, taskID string, done bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.toggleCalls = append(f.toggleCalls, toggleCall{date, taskID, done})
	return f.toggleErr
}

func newTestEngine(t *testing.T, remote *fakeRemote) *Engine {
	t.Helper()
	e := NewEngine(remote)
	require.NoError(t, e.Initialize(context.Background()))
	return e
}

func logPairs(t *testing.T, e *Engine) map[[2]string]int {
	t.Helper()
	logs, err := e.Logs()
	require.NoError(t, err)
	pairs := make(map[[2]string]int)
	for _, l := range logs {
		pairs[[2]string{l.Date, l.TaskID}]++
	}
	return pairs
}

func TestEngine_Initialize_Failure(t *testing.T) {
	remote := &fakeRemote{initialErr: errors.New("boom")}
	e := NewEngine(remote)

	err := e.Initialize(context.Background())

	var loadErr *LoadError
	require.ErrorAs(t, err, &loadErr)

	_, err = e.Tasks()
	assert.ErrorIs(t, err, ErrNotLoaded)
	_, _, err = e.Snapshot()
	assert.ErrorIs(t, err, ErrNotLoaded)
	assert.ErrorIs(t, e.ToggleLog(context.Background(), "2026-02-01", "a", true), ErrNotLoaded)
}

func TestEngine_ToggleLog_RoundTrip(t *testing.T) {
	remote := &fakeRemote{tasks: []Task{mkTask("a", "workout")}}
	e := newTestEngine(t, remote)

	before := logPairs(t, e)

	require.NoError(t, e.ToggleLog(context.Background(), "2026-02-01", "a", true))
	require.NoError(t, e.ToggleLog(context.Background(), "2026-02-01", "a", false))

	assert.Equal(t, before, logPairs(t, e), "toggle on then off must restore the original set")
	assert.Len(t, remote.toggleCalls, 2)
}

func TestEngine_ToggleLog_Idempotent(t *testing.T) {
	remote := &fakeRemote{
		tasks: []Task{mkTask("a", "workout")},
		logs:  []Log{mkLog("2026-02-01", "a")},
	}
	e := newTestEngine(t, remote)

	// Local state already matches; no duplicate row, but the remote call is
	// still issued for server-side confirmation.
	require.NoError(t, e.ToggleLog(context.Background(), "2026-02-01", "a", true))

	assert.Equal(t, 1, logPairs(t, e)[[2]string{"2026-02-01", "a"}])
	assert.Len(t, remote.toggleCalls, 1)
}

func TestEngine_ToggleLog_RollbackOnFailure(t *testing.T) {
	t.Run("failed add removes the optimistic entry", func(t *testing.T) {
		remote := &fakeRemote{tasks: []Task{mkTask("a", "workout")}, toggleErr: errors.New("down")}
		e := newTestEngine(t, remote)

		err := e.ToggleLog(context.Background(), "2026-02-01", "a", true)

		var remoteErr *RemoteError
		require.ErrorAs(t, err, &remoteErr)
		assert.NotContains(t, logPairs(t, e), [2]string{"2026-02-01", "a"})
	})

	t.Run("failed remove restores the entry", func(t *testing.T) {
		remote := &fakeRemote{
			tasks:     []Task{mkTask("a", "workout")},
			logs:      []Log{mkLog("2026-02-01", "a")},
			toggleErr: errors.New("down"),
		}
		e := newTestEngine(t, remote)

		err := e.ToggleLog(context.Background(), "2026-02-01", "a", false)

		require.Error(t, err)
		assert.Equal(t, 1, logPairs(t, e)[[2]string{"2026-02-01", "a"}])
	})

	t.Run("rollback does not touch other pairs", func(t *testing.T) {
		remote := &fakeRemote{
			tasks: []Task{mkTask("a", "workout"), mkTask("b", "reading")},
			logs:  []Log{mkLog("2026-02-02", "b")},
		}
		e := newTestEngine(t, remote)

		remote.toggleErr = errors.New("down")
		require.Error(t, e.ToggleLog(context.Background(), "2026-02-01", "a", true))

		pairs := logPairs(t, e)
		assert.NotContains(t, pairs, [2]string{"2026-02-01", "a"})
		assert.Equal(t, 1, pairs[[2]string{"2026-02-02", "b"}])
	})
}

func TestEngine_ToggleLog_ConcurrentDistinctPairs(t *testing.T) {
	remote := &fakeRemote{tasks: []Task{mkTask("a", "workout"), mkTask("b", "reading")}}
	e := newTestEngine(t, remote)

	dates := []string{"2026-02-01", "2026-02-02", "2026-02-03", "2026-02-04"}
	var wg sync.WaitGroup
	for _, date := range dates {
		for _, id := range []string{"a", "b"} {
			wg.Add(1)
			go func(date, id string) {
				defer wg.Done()
				assert.NoError(t, e.ToggleLog(context.Background(), date, id, true))
			}(date, id)
		}
	}
	wg.Wait()

	pairs := logPairs(t, e)
	for _, date := range dates {
		assert.Equal(t, 1, pairs[[2]string{date, "a"}])
		assert.Equal(t, 1, pairs[[2]string{date, "b"}])
	}
}

func TestEngine_AddTask(t *testing.T) {
	t.Run("blank titles are rejected before any remote call", func(t *testing.T) {
		remote := &fakeRemote{}
		e := newTestEngine(t, remote)

		for _, title := range []string{"", "   ", "\t\n"} {
			_, err := e.AddTask(context.Background(), title)
			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr)
		}
		assert.Zero(t, remote.addCalls)
	})

	t.Run("appends the server-returned task", func(t *testing.T) {
		remote := &fakeRemote{}
		e := newTestEngine(t, remote)

		task, err := e.AddTask(context.Background(), "Read")
		require.NoError(t, err)
		assert.Equal(t, "srv-1", task.ID, "identity comes from the store, not the client")

		tasks, err := e.Tasks()
		require.NoError(t, err)
		require.Len(t, tasks, 1)
		assert.Equal(t, "srv-1", tasks[0].ID)
	})

	t.Run("failure leaves local state untouched", func(t *testing.T) {
		remote := &fakeRemote{addErr: errors.New("down")}
		e := newTestEngine(t, remote)

		_, err := e.AddTask(context.Background(), "Read")
		var remoteErr *RemoteError
		require.ErrorAs(t, err, &remoteErr)

		tasks, err := e.Tasks()
		require.NoError(t, err)
		assert.Empty(t, tasks)
	})
}

func TestEngine_UpdateTask(t *testing.T) {
	remote := &fakeRemote{tasks: []Task{mkTask("a", "workout")}}
	e := newTestEngine(t, remote)

	task, err := e.UpdateTask(context.Background(), "a", "morning workout")
	require.NoError(t, err)
	assert.Equal(t, "morning workout", task.Title)

	tasks, err := e.Tasks()
	require.NoError(t, err)
	assert.Equal(t, "morning workout", tasks[0].Title)

	remote.updateErr = errors.New("down")
	_, err = e.UpdateTask(context.Background(), "a", "evening workout")
	require.Error(t, err)

	tasks, err = e.Tasks()
	require.NoError(t, err)
	assert.Equal(t, "morning workout", tasks[0].Title, "failed update must not change local state")
}

func TestEngine_DeleteTask_CascadesLogs(t *testing.T) {
	remote := &fakeRemote{
		tasks: []Task{mkTask("a", "workout"), mkTask("b", "reading")},
		logs: []Log{
			mkLog("2026-02-01", "a"),
			mkLog("2026-02-02", "a"),
			mkLog("2026-02-01", "b"),
		},
	}
	e := newTestEngine(t, remote)

	require.NoError(t, e.DeleteTask(context.Background(), "a"))

	tasks, err := e.Tasks()
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "b", tasks[0].ID)

	pairs := logPairs(t, e)
	assert.NotContains(t, pairs, [2]string{"2026-02-01", "a"})
	assert.NotContains(t, pairs, [2]string{"2026-02-02", "a"})
	assert.Equal(t, 1, pairs[[2]string{"2026-02-01", "b"}])

	// Aggregation after the cascade sees only the survivor.
	achieved := AchievedDates(tasks, mustLogs(t, e))
	assert.Contains(t, achieved, "2026-02-01")
}

func TestEngine_DeleteTask_FailureIsLocalNoop(t *testing.T) {
	remote := &fakeRemote{
		tasks:     []Task{mkTask("a", "workout")},
		logs:      []Log{mkLog("2026-02-01", "a")},
		deleteErr: errors.New("down"),
	}
	e := newTestEngine(t, remote)

	require.Error(t, e.DeleteTask(context.Background(), "a"))

	tasks, err := e.Tasks()
	require.NoError(t, err)
	assert.Len(t, tasks, 1)
	assert.Equal(t, 1, logPairs(t, e)[[2]string{"2026-02-01", "a"}])
}

func mustLogs(t *testing.T, e *Engine) []Log {
	t.Helper()
	logs, err := e.Logs()
	require.NoError(t, err)
	return logs
}
