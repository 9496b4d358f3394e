package habit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func mkTask(id, title string) Task {
	return Task{ID: id, Title: title, CreatedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func mkLog(date, taskID string) Log {
	return Log{Date: date, TaskID: taskID, Timestamp: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func TestAchievedDates(t *testing.T) {
	tasks := []Task{mkTask("a", "workout"), mkTask("b", "reading")}

	tests := []struct {
		name string
		logs []Log
		want []string
	}{
		{
			name: "all tasks logged on one date",
			logs: []Log{
				mkLog("2026-02-01", "a"),
				mkLog("2026-02-01", "b"),
				mkLog("2026-02-02", "a"),
			},
			want: []string{"2026-02-01"},
		},
		{
			name: "no logs",
			logs: nil,
			want: nil,
		},
		{
			name: "duplicate logs for one task do not count twice",
			logs: []Log{
				mkLog("2026-02-01", "a"),
				mkLog("2026-02-01", "a"),
			},
			want: nil,
		},
		{
			name: "dangling task ids are ignored",
			logs: []Log{
				mkLog("2026-02-01", "a"),
				mkLog("2026-02-01", "b"),
				mkLog("2026-02-03", "a"),
				mkLog("2026-02-03", "gone"),
			},
			want: []string{"2026-02-01"},
		},
		{
			name: "extra dangling log cannot fake completion",
			logs: []Log{
				mkLog("2026-02-01", "a"),
				mkLog("2026-02-01", "gone"),
			},
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AchievedDates(tasks, tt.logs)
			assert.Len(t, got, len(tt.want))
			for _, date := range tt.want {
				assert.Contains(t, got, date)
			}
		})
	}
}

func TestAchievedDates_NoTasks(t *testing.T) {
	logs := []Log{
		mkLog("2026-02-01", "a"),
		mkLog("2026-02-02", "b"),
	}

	got := AchievedDates(nil, logs)
	assert.Empty(t, got, "zero tasks must never produce achieved dates")
}

func TestSummarizeDay(t *testing.T) {
	tasks := []Task{mkTask("a", "workout"), mkTask("b", "reading")}
	logs := []Log{
		mkLog("2026-02-01", "a"),
		mkLog("2026-02-01", "b"),
		mkLog("2026-02-02", "a"),
		mkLog("2026-02-02", "gone"),
	}

	full := SummarizeDay(tasks, logs, "2026-02-01")
	assert.Equal(t, 2, full.Completed)
	assert.Equal(t, 2, full.Total)
	assert.True(t, full.AllDone())

	partial := SummarizeDay(tasks, logs, "2026-02-02")
	assert.Equal(t, 1, partial.Completed)
	assert.Equal(t, 2, partial.Total)
	assert.False(t, partial.AllDone())
	assert.Contains(t, partial.CompletedIDs, "a")
	assert.NotContains(t, partial.CompletedIDs, "gone")

	empty := SummarizeDay(nil, logs, "2026-02-01")
	assert.Equal(t, 0, empty.Total)
	assert.False(t, empty.AllDone(), "zero tasks is never all-done")
}
