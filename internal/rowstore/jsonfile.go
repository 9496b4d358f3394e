package rowstore

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/hay-kot/sprout/internal/habit"
)

// rowsFile is the root JSON structure stored on disk.
type rowsFile struct {
	Tasks []habit.Task `json:"tasks"`
	Logs  []habit.Log  `json:"logs"`
}

// jsonFileData serializes all access to one rows file. Every operation is a
// full load-mutate-save cycle; row counts are human-scale so this stays cheap.
type jsonFileData struct {
	path string
	mu   sync.Mutex
}

// NewJSONFile returns a Store persisted as a single JSON document at path.
// The file is created on first write; a missing file reads as empty.
func NewJSONFile(path string) Store {
	data := &jsonFileData{path: path}
	return Store{
		Tasks: &jsonFileTasks{data: data},
		Logs:  &jsonFileLogs{data: data},
	}
}

func (d *jsonFileData) load() (rowsFile, error) {
	raw, err := os.ReadFile(d.path)
	if err != nil {
		if os.IsNotExist(err) {
			return rowsFile{}, nil
		}
		return rowsFile{}, err
	}
	if len(raw) == 0 {
		return rowsFile{}, nil
	}

	var file rowsFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return rowsFile{}, err
	}
	return file, nil
}

// save writes the rows file to disk atomically.
func (d *jsonFileData) save(file rowsFile) error {
	if err := os.MkdirAll(filepath.Dir(d.path), 0o755); err != nil {
		return err
	}

	raw, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return err
	}

	tmp := d.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return err
	}

	return os.Rename(tmp, d.path)
}

type jsonFileTasks struct {
	data *jsonFileData
}

func (s *jsonFileTasks) GetAll(ctx context.Context) ([]habit.Task, error) {
	s.data.mu.Lock()
	defer s.data.mu.Unlock()
	file, err := s.data.load()
	if err != nil {
		return nil, err
	}
	return file.Tasks, nil
}

func (s *jsonFileTasks) Add(ctx context.Context, task habit.Task) (habit.Task, error) {
	s.data.mu.Lock()
	defer s.data.mu.Unlock()
	file, err := s.data.load()
	if err != nil {
		return habit.Task{}, err
	}
	file.Tasks = append(file.Tasks, task)
	if err := s.data.save(file); err != nil {
		return habit.Task{}, err
	}
	return task, nil
}

func (s *jsonFileTasks) Update(ctx context.Context, id, title string) (habit.Task, error) {
	s.data.mu.Lock()
	defer s.data.mu.Unlock()
	file, err := s.data.load()
	if err != nil {
		return habit.Task{}, err
	}

	for i := range file.Tasks {
		if file.Tasks[i].ID == id {
			file.Tasks[i].Title = title
			if err := s.data.save(file); err != nil {
				return habit.Task{}, err
			}
			return file.Tasks[i], nil
		}
	}
	return habit.Task{}, ErrNotFound
}

func (s *jsonFileTasks) Delete(ctx context.Context, id string) (bool, error) {
	s.data.mu.Lock()
	defer s.data.mu.Unlock()
	file, err := s.data.load()
	if err != nil {
		return false, err
	}

	for i := range file.Tasks {
		if file.Tasks[i].ID == id {
			file.Tasks = append(file.Tasks[:i], file.Tasks[i+1:]...)
			if err := s.data.save(file); err != nil {
				return false, err
			}
			return true, nil
		}
	}
	return false, nil
}

type jsonFileLogs struct {
	data *jsonFileData
}

func (s *jsonFileLogs) GetAll(ctx context.Context) ([]habit.Log, error) {
	s.data.mu.Lock()
	defer s.data.mu.Unlock()
	file, err := s.data.load()
	if err != nil {
		return nil, err
	}
	return file.Logs, nil
}

func (s *jsonFileLogs) Add(ctx context.Context, log habit.Log) (habit.Log, error) {
	s.data.mu.Lock()
	defer s.data.mu.Unlock()
	file, err := s.data.load()
	if err != nil {
		return habit.Log{}, err
	}
	file.Logs = append(file.Logs, log)
	if err := s.data.save(file); err != nil {
		return habit.Log{}, err
	}
	return log, nil
}

func (s *jsonFileLogs) Delete(ctx context.Context, date, taskID string) (bool, error) {
	s.data.mu.Lock()
	defer s.data.mu.Unlock()
	file, err := s.data.load()
	if err != nil {
		return false, err
	}

	for i := len(file.Logs) - 1; i >= 0; i-- {
		if file.Logs[i].Matches(date, taskID) {
			file.Logs = append(file.Logs[:i], file.Logs[i+1:]...)
			if err := s.data.save(file); err != nil {
				return false, err
			}
			return true, nil
		}
	}
	return false, nil
}

func (s *jsonFileLogs) DeleteByTaskID(ctx context.Context, taskID string) (int, error) {
	s.data.mu.Lock()
	defer s.data.mu.Unlock()
	file, err := s.data.load()
	if err != nil {
		return 0, err
	}

	removed := 0
	logs := file.Logs[:0]
	for _, l := range file.Logs {
		if l.TaskID == taskID {
			removed++
			continue
		}
		logs = append(logs, l)
	}
	file.Logs = logs

	if removed > 0 {
		if err := s.data.save(file); err != nil {
			return 0, err
		}
	}
	return removed, nil
}
