package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/charmbracelet/huh"
	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"

	"github.com/hay-kot/sprout/internal/habit"
)

// selectTask resolves a task from a title query. Globs are matched
// case-insensitively against titles; exactly one match wins outright,
// several matches fall through to an interactive picker. An empty query
// always prompts.
func selectTask(tasks []habit.Task, query string) (habit.Task, error) {
	if len(tasks) == 0 {
		return habit.Task{}, fmt.Errorf("no tasks yet, add one with `sprout task add`")
	}

	matches := tasks
	if query != "" {
		matches = nil
		for _, t := range tasks {
			ok, err := doublestar.Match(strings.ToLower(query), strings.ToLower(t.Title))
			if err != nil {
				return habit.Task{}, fmt.Errorf("invalid pattern %q: %w", query, err)
			}
			if ok || strings.Contains(strings.ToLower(t.Title), strings.ToLower(query)) {
				matches = append(matches, t)
			}
		}
	}

	switch len(matches) {
	case 0:
		return habit.Task{}, fmt.Errorf("no task matches %q", query)
	case 1:
		return matches[0], nil
	}

	options := make([]huh.Option[string], 0, len(matches))
	for _, t := range matches {
		options = append(options, huh.NewOption(t.Title, t.ID))
	}

	var picked string
	err := huh.NewForm(huh.NewGroup(
		huh.NewSelect[string]().
			Title("Which task?").
			Options(options...).
			Value(&picked),
	)).Run()
	if err != nil {
		return habit.Task{}, err
	}

	for _, t := range matches {
		if t.ID == picked {
			return t, nil
		}
	}
	return habit.Task{}, fmt.Errorf("no task selected")
}

// dateParser understands both natural language ("yesterday", "last monday")
// and plain YYYY-MM-DD dates.
var dateParser = func() *when.Parser {
	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)
	return w
}()

// parseDateArg resolves a date argument to YYYY-MM-DD. Empty means today.
func parseDateArg(arg string) (string, error) {
	if arg == "" {
		return habit.Today(), nil
	}

	if t, err := habit.ParseDate(arg); err == nil {
		return habit.FormatDate(t), nil
	}

	r, err := dateParser.Parse(arg, time.Now())
	if err != nil {
		return "", fmt.Errorf("parse date %q: %w", arg, err)
	}
	if r == nil {
		return "", fmt.Errorf("cannot understand date %q", arg)
	}
	return habit.FormatDate(r.Time), nil
}
