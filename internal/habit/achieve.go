package habit

// AchievedDates returns the set of dates on which every current task has at
// least one log. Logs referencing task ids that no longer exist are ignored,
// and duplicate logs for the same (date, task) pair never over-count because
// membership is tracked per distinct task id.
//
// With zero tasks no date is ever achieved. That is a policy decision: an
// empty tracker has nothing to celebrate.
func AchievedDates(tasks []Task, logs []Log) map[string]struct{} {
	achieved := make(map[string]struct{})
	if len(tasks) == 0 {
		return achieved
	}

	live := make(map[string]struct{}, len(tasks))
	for _, t := range tasks {
		live[t.ID] = struct{}{}
	}

	byDate := make(map[string]map[string]struct{})
	for _, l := range logs {
		if _, ok := live[l.TaskID]; !ok {
			continue
		}
		ids, ok := byDate[l.Date]
		if !ok {
			ids = make(map[string]struct{})
			byDate[l.Date] = ids
		}
		ids[l.TaskID] = struct{}{}
	}

	for date, ids := range byDate {
		if len(ids) == len(tasks) {
			achieved[date] = struct{}{}
		}
	}
	return achieved
}

// DaySummary describes completion for a single date.
type DaySummary struct {
	Date         string
	Completed    int
	Total        int
	CompletedIDs map[string]struct{}
}

// AllDone reports whether every task was completed. A day with zero tasks is
// never complete.
func (s DaySummary) AllDone() bool {
	return s.Total > 0 && s.Completed == s.Total
}

// SummarizeDay computes completion for one date: logs are filtered to the
// exact date and intersected with the current task ids.
func SummarizeDay(tasks []Task, logs []Log, date string) DaySummary {
	logged := make(map[string]struct{})
	for _, l := range logs {
		if l.Date == date {
			logged[l.TaskID] = struct{}{}
		}
	}

	completed := make(map[string]struct{})
	for _, t := range tasks {
		if _, ok := logged[t.ID]; ok {
			completed[t.ID] = struct{}{}
		}
	}

	return DaySummary{
		Date:         date,
		Completed:    len(completed),
		Total:        len(tasks),
		CompletedIDs: completed,
	}
}
