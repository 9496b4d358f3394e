package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/urfave/cli/v3"

	"github.com/hay-kot/sprout/internal/core/styles"
	"github.com/hay-kot/sprout/internal/habit"
)

type TaskCmd struct {
	flags *Flags
	yes   bool
}

func NewTaskCmd(flags *Flags) *TaskCmd {
	return &TaskCmd{flags: flags}
}

func (cmd *TaskCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "task",
		Usage: "Manage daily tasks",
		Commands: []*cli.Command{
			{
				Name:      "add",
				Usage:     "Add a new daily task",
				ArgsUsage: "[title]",
				Action:    cmd.runAdd,
			},
			{
				Name:    "ls",
				Aliases: []string{"list"},
				Usage:   "List tasks with today's status",
				Action:  cmd.runList,
			},
			{
				Name:      "rename",
				Usage:     "Rename a task",
				ArgsUsage: "[title-pattern] [new-title]",
				Action:    cmd.runRename,
			},
			{
				Name:      "rm",
				Aliases:   []string{"remove"},
				Usage:     "Delete a task and all its history",
				ArgsUsage: "[title-pattern]",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:        "yes",
						Aliases:     []string{"y"},
						Usage:       "skip the confirmation prompt",
						Destination: &cmd.yes,
					},
				},
				Action: cmd.runRemove,
			},
		},
	})
	return app
}

func (cmd *TaskCmd) runAdd(ctx context.Context, c *cli.Command) error {
	title := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if title == "" {
		err := huh.NewForm(huh.NewGroup(
			huh.NewInput().Title("Task title").Value(&title),
		)).Run()
		if err != nil {
			return err
		}
	}

	engine, _, err := cmd.flags.Session(ctx)
	if err != nil {
		return err
	}

	task, err := engine.AddTask(ctx, title)
	if err != nil {
		return err
	}

	fmt.Fprintf(c.Root().Writer, "%s added %q\n", styles.SuccessStyle.Render(styles.IconCheck), task.Title)
	return nil
}

func (cmd *TaskCmd) runList(ctx context.Context, c *cli.Command) error {
	engine, order, err := cmd.flags.Session(ctx)
	if err != nil {
		return err
	}

	tasks, err := engine.Tasks()
	if err != nil {
		return err
	}
	logs, err := engine.Logs()
	if err != nil {
		return err
	}
	order.Sort(tasks)

	today := habit.Today()
	summary := habit.SummarizeDay(tasks, logs, today)

	w := c.Root().Writer
	for _, task := range tasks {
		mark := styles.SubtleStyle.Render(styles.IconCircle)
		if _, ok := summary.CompletedIDs[task.ID]; ok {
			mark = styles.SuccessStyle.Render(styles.IconCheck)
		}
		fmt.Fprintf(w, "%s %s\n", mark, task.Title)
	}
	if len(tasks) == 0 {
		fmt.Fprintln(w, styles.SubtleStyle.Render("no tasks yet, add one with `sprout task add`"))
	}
	return nil
}

func (cmd *TaskCmd) runRename(ctx context.Context, c *cli.Command) error {
	engine, _, err := cmd.flags.Session(ctx)
	if err != nil {
		return err
	}

	tasks, err := engine.Tasks()
	if err != nil {
		return err
	}

	task, err := selectTask(tasks, c.Args().First())
	if err != nil {
		return err
	}

	title := strings.TrimSpace(strings.Join(c.Args().Tail(), " "))
	if title == "" {
		title = task.Title
		err := huh.NewForm(huh.NewGroup(
			huh.NewInput().Title("New title").Value(&title),
		)).Run()
		if err != nil {
			return err
		}
	}

	renamed, err := engine.UpdateTask(ctx, task.ID, title)
	if err != nil {
		return err
	}

	fmt.Fprintf(c.Root().Writer, "%s renamed to %q\n", styles.SuccessStyle.Render(styles.IconCheck), renamed.Title)
	return nil
}

func (cmd *TaskCmd) runRemove(ctx context.Context, c *cli.Command) error {
	engine, _, err := cmd.flags.Session(ctx)
	if err != nil {
		return err
	}

	tasks, err := engine.Tasks()
	if err != nil {
		return err
	}

	task, err := selectTask(tasks, c.Args().First())
	if err != nil {
		return err
	}

	if !cmd.yes {
		confirmed := false
		err := huh.NewForm(huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Delete %q and all of its history?", task.Title)).
				Value(&confirmed),
		)).Run()
		if err != nil {
			return err
		}
		if !confirmed {
			return nil
		}
	}

	if err := engine.DeleteTask(ctx, task.ID); err != nil {
		return err
	}

	fmt.Fprintf(c.Root().Writer, "%s deleted %q\n", styles.SuccessStyle.Render(styles.IconCheck), task.Title)
	return nil
}
