package rowstore

import (
	"context"
	"sync"

	"github.com/hay-kot/sprout/internal/habit"
)

// memoryData is shared by the task and log views of one in-memory store so
// both collections sit behind a single lock, mirroring how a real backend
// serializes its row mutations.
type memoryData struct {
	mu    sync.RWMutex
	tasks []habit.Task
	logs  []habit.Log
}

// NewMemory returns a Store backed by in-memory slices with linear-scan
// semantics. Used for tests and the `--backend memory` mode.
func NewMemory() Store {
	data := &memoryData{}
	return Store{
		Tasks: &memoryTasks{data: data},
		Logs:  &memoryLogs{data: data},
	}
}

type memoryTasks struct {
	data *memoryData
}

func (s *memoryTasks) GetAll(ctx context.Context) ([]habit.Task, error) {
	s.data.mu.RLock()
	defer s.data.mu.RUnlock()
	out := make([]habit.Task, len(s.data.tasks))
	copy(out, s.data.tasks)
	return out, nil
}

func (s *memoryTasks) Add(ctx context.Context, task habit.Task) (habit.Task, error) {
	s.data.mu.Lock()
	defer s.data.mu.Unlock()
	s.data.tasks = append(s.data.tasks, task)
	return task, nil
}

func (s *memoryTasks) Update(ctx context.Context, id, title string) (habit.Task, error) {
	s.data.mu.Lock()
	defer s.data.mu.Unlock()
	for i := range s.data.tasks {
		if s.data.tasks[i].ID == id {
			s.data.tasks[i].Title = title
			return s.data.tasks[i], nil
		}
	}
	return habit.Task{}, ErrNotFound
}

func (s *memoryTasks) Delete(ctx context.Context, id string) (bool, error) {
	s.data.mu.Lock()
	defer s.data.mu.Unlock()
	for i := range s.data.tasks {
		if s.data.tasks[i].ID == id {
			s.data.tasks = append(s.data.tasks[:i], s.data.tasks[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

type memoryLogs struct {
	data *memoryData
}

func (s *memoryLogs) GetAll(ctx context.Context) ([]habit.Log, error) {
	s.data.mu.RLock()
	defer s.data.mu.RUnlock()
	out := make([]habit.Log, len(s.data.logs))
	copy(out, s.data.logs)
	return out, nil
}

func (s *memoryLogs) Add(ctx context.Context, log habit.Log) (habit.Log, error) {
	s.data.mu.Lock()
	defer s.data.mu.Unlock()
	s.data.logs = append(s.data.logs, log)
	return log, nil
}

func (s *memoryLogs) Delete(ctx context.Context, date, taskID string) (bool, error) {
	s.data.mu.Lock()
	defer s.data.mu.Unlock()
	for i := len(s.data.logs) - 1; i >= 0; i-- {
		if s.data.logs[i].Matches(date, taskID) {
			s.data.logs = append(s.data.logs[:i], s.data.logs[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (s *memoryLogs) DeleteByTaskID(ctx context.Context, taskID string) (int, error) {
	s.data.mu.Lock()
	defer s.data.mu.Unlock()
	removed := 0
	logs := s.data.logs[:0]
	for _, l := range s.data.logs {
		if l.TaskID == taskID {
			removed++
			continue
		}
		logs = append(logs, l)
	}
	s.data.logs = logs
	return removed, nil
}
