package commands

import (
	"context"
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/urfave/cli/v3"

	"github.com/hay-kot/sprout/internal/core/styles"
)

type DocCmd struct {
	flags *Flags
	plain bool
}

func NewDocCmd(flags *Flags) *DocCmd {
	return &DocCmd{flags: flags}
}

func (cmd *DocCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "doc",
		Usage: "Documentation and guides",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "plain",
				Usage:       "print raw markdown without terminal rendering",
				Destination: &cmd.plain,
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "usage",
				Usage:  "Show the usage guide",
				Action: cmd.runUsage,
			},
			{
				Name:   "sync",
				Usage:  "Explain how syncing and rollback behave",
				Action: cmd.runSync,
			},
		},
	})
	return app
}

func (cmd *DocCmd) render(c *cli.Command, md string) error {
	w := c.Root().Writer
	if cmd.plain {
		_, err := fmt.Fprintln(w, md)
		return err
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithStyles(styles.GlamourStyle()),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return err
	}

	out, err := r.Render(md)
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(w, out)
	return err
}

func (cmd *DocCmd) runUsage(_ context.Context, c *cli.Command) error {
	return cmd.render(c, usageGuide)
}

func (cmd *DocCmd) runSync(_ context.Context, c *cli.Command) error {
	return cmd.render(c, syncGuide)
}

const usageGuide = `# Sprout Usage Guide

Sprout tracks daily habits. Every task is expected every day; a day where
every task gets checked off counts as achieved and lights up on the calendar.

## Everyday commands

| Command | Description |
|---------|-------------|
| ` + "`sprout`" + ` | Open the dashboard TUI |
| ` + "`sprout task add \"Read 20 min\"`" + ` | Add a daily task |
| ` + "`sprout task ls`" + ` | List tasks with today's status |
| ` + "`sprout done read*`" + ` | Check a task off for today |
| ` + "`sprout undo read* -d yesterday`" + ` | Uncheck it for yesterday |
| ` + "`sprout day`" + ` | Show one day in detail |
| ` + "`sprout cal`" + ` | Month calendar |
| ` + "`sprout cal -6`" + ` | Six-month heatmap |

Task arguments are matched against titles as case-insensitive globs; when
several tasks match you get a picker.

Dates accept natural language: ` + "`-d yesterday`" + `, ` + "`-d \"last monday\"`" + `,
or plain ` + "`-d 2026-02-14`" + `.

## Backends

State lives in a row store selected by ` + "`backend.driver`" + `:

- ` + "`jsonfile`" + ` (default) — a JSON document in your data dir
- ` + "`sqlite`" + ` — single-file database, better for long histories
- ` + "`sheets`" + ` — a Google Spreadsheet; run ` + "`sprout auth`" + ` once first
- ` + "`memory`" + ` — throwaway, for experiments

## Syncing between machines

Run ` + "`sprout serve`" + ` on the machine that owns the store, then point other
machines at it:

` + "```yaml" + `
# config.yaml
remote: http://192.168.1.20:8974
` + "```" + `

See ` + "`sprout doc sync`" + ` for how offline edits and failures behave.
`

const syncGuide = `# How Sprout Syncs

## Checking off is optimistic

Toggling a task applies locally first, so the UI never waits on the network.
The store write happens right after; if it fails, only that one day+task
toggle is rolled back. Nothing else you did in the meantime is touched, and
sprout never silently re-fetches the world to recover.

## Task edits are not optimistic

Adding, renaming, and deleting tasks wait for the store to confirm, because
the store mints task identity. A failed edit changes nothing locally.

## Deleting a task deletes its history

Removing a task removes every log that referenced it, logs first, so the
store never holds history for a task that no longer exists. The calendar
recomputes from what remains: days that were only achieved thanks to the
deleted task may light up differently afterwards. Aggregation always reflects
the current task list.

## Achievement rules

A date is achieved when every current task has at least one log on it.
Duplicate logs never double-count. With zero tasks, no day is achieved.
`
