package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/hay-kot/sprout/internal/core/styles"
)

// LogCmd provides the `done` and `undo` toggles. Dates accept natural
// language ("yesterday", "last monday") as well as YYYY-MM-DD.
type LogCmd struct {
	flags *Flags
	date  string
}

func NewLogCmd(flags *Flags) *LogCmd {
	return &LogCmd{flags: flags}
}

func (cmd *LogCmd) Register(app *cli.Command) *cli.Command {
	dateFlag := &cli.StringFlag{
		Name:        "date",
		Aliases:     []string{"d"},
		Usage:       "day to log against (natural language or YYYY-MM-DD, default today)",
		Destination: &cmd.date,
	}

	app.Commands = append(app.Commands,
		&cli.Command{
			Name:      "done",
			Usage:     "Mark a task complete",
			ArgsUsage: "[title-pattern]",
			Flags:     []cli.Flag{dateFlag},
			Action: func(ctx context.Context, c *cli.Command) error {
				return cmd.toggle(ctx, c, true)
			},
		},
		&cli.Command{
			Name:      "undo",
			Usage:     "Mark a task not complete",
			ArgsUsage: "[title-pattern]",
			Flags:     []cli.Flag{dateFlag},
			Action: func(ctx context.Context, c *cli.Command) error {
				return cmd.toggle(ctx, c, false)
			},
		},
	)
	return app
}

func (cmd *LogCmd) toggle(ctx context.Context, c *cli.Command, done bool) error {
	date, err := parseDateArg(cmd.date)
	if err != nil {
		return err
	}

	engine, order, err := cmd.flags.Session(ctx)
	if err != nil {
		return err
	}

	tasks, err := engine.Tasks()
	if err != nil {
		return err
	}
	order.Sort(tasks)

	task, err := selectTask(tasks, c.Args().First())
	if err != nil {
		return err
	}

	if err := engine.ToggleLog(ctx, date, task.ID, done); err != nil {
		return err
	}

	mark := styles.SuccessStyle.Render(styles.IconCheck)
	verb := "done"
	if !done {
		mark = styles.SubtleStyle.Render(styles.IconCircle)
		verb = "not done"
	}
	fmt.Fprintf(c.Root().Writer, "%s %q %s for %s\n", mark, task.Title, verb, date)
	return nil
}
