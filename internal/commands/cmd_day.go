package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/hay-kot/sprout/internal/core/styles"
	"github.com/hay-kot/sprout/internal/habit"
)

type DayCmd struct {
	flags *Flags
}

func NewDayCmd(flags *Flags) *DayCmd {
	return &DayCmd{flags: flags}
}

func (cmd *DayCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "day",
		Usage:     "Show task status for a day",
		ArgsUsage: "[date]",
		Action:    cmd.run,
	})
	return app
}

func (cmd *DayCmd) run(ctx context.Context, c *cli.Command) error {
	date, err := parseDateArg(c.Args().First())
	if err != nil {
		return err
	}

	engine, order, err := cmd.flags.Session(ctx)
	if err != nil {
		return err
	}

	tasks, logs, err := engine.Snapshot()
	if err != nil {
		return err
	}
	order.Sort(tasks)

	summary := habit.SummarizeDay(tasks, logs, date)

	w := c.Root().Writer
	header := fmt.Sprintf("%s  %d/%d", date, summary.Completed, summary.Total)
	if summary.AllDone() {
		header += " " + styles.SuccessStyle.Render(styles.IconStar)
	}
	fmt.Fprintln(w, styles.TitleStyle.Render(header))

	for _, task := range tasks {
		mark := styles.SubtleStyle.Render(styles.IconCircle)
		if _, ok := summary.CompletedIDs[task.ID]; ok {
			mark = styles.SuccessStyle.Render(styles.IconCheck)
		}
		fmt.Fprintf(w, "%s %s\n", mark, task.Title)
	}
	return nil
}
