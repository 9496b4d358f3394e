package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/hay-kot/sprout/internal/calendar"
	"github.com/hay-kot/sprout/internal/habit"
)

type CalCmd struct {
	flags    *Flags
	halfYear bool
}

func NewCalCmd(flags *Flags) *CalCmd {
	return &CalCmd{flags: flags}
}

func (cmd *CalCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "cal",
		Usage:     "Show the achievement calendar",
		ArgsUsage: "[month]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "half-year",
				Aliases:     []string{"6"},
				Usage:       "show the last six months as a heatmap",
				Destination: &cmd.halfYear,
			},
		},
		Action: cmd.run,
	})
	return app
}

func (cmd *CalCmd) run(ctx context.Context, c *cli.Command) error {
	date, err := parseDateArg(c.Args().First())
	if err != nil {
		return err
	}
	anchor, err := habit.ParseDate(date)
	if err != nil {
		return err
	}

	mode := habit.GridMonth
	if cmd.halfYear {
		mode = habit.GridHalfYear
		// The heatmap reads better ending at the anchor month, so walk
		// the anchor back five months.
		anchor = anchor.AddDate(0, -5, 0)
	}

	engine, _, err := cmd.flags.Session(ctx)
	if err != nil {
		return err
	}

	tasks, logs, err := engine.Snapshot()
	if err != nil {
		return err
	}

	grid, err := calendar.Build(anchor, mode, calendar.Input{
		Achieved:  habit.AchievedDates(tasks, logs),
		Completed: calendar.CompletedCounts(tasks, logs),
		Today:     habit.Today(),
	})
	if err != nil {
		return err
	}

	w := c.Root().Writer
	if mode == habit.GridHalfYear {
		width, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || width <= 0 {
			width = 80
		}
		fmt.Fprintln(w, calendar.RenderHalfYear(grid, width))
		return nil
	}

	fmt.Fprintln(w, calendar.RenderMonth(grid, ""))
	return nil
}
