package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/hay-kot/sprout/internal/habit"
	"github.com/hay-kot/sprout/pkg/iojson"
)

// dataDocument is the portable dump format: the same two row collections
// the store holds, nothing derived.
type dataDocument struct {
	Tasks []habit.Task `json:"tasks"`
	Logs  []habit.Log  `json:"logs"`
}

type DataCmd struct {
	flags  *Flags
	reader iojson.FileReader[dataDocument]
}

func NewDataCmd(flags *Flags) *DataCmd {
	return &DataCmd{flags: flags}
}

func (cmd *DataCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "data",
		Usage: "Export and import raw data",
		Commands: []*cli.Command{
			{
				Name:   "export",
				Usage:  "Dump all tasks and logs as JSON to stdout",
				Action: cmd.runExport,
			},
			{
				Name:  "import",
				Usage: "Merge tasks and logs from a JSON dump into the local store",
				Description: `Reads a dump produced by 'sprout data export' and merges it into the
configured local backend. Existing rows are kept; tasks are matched by id
and logs by (date, task). Import only works against a local backend.`,
				Flags:  []cli.Flag{cmd.reader.Flag()},
				Action: cmd.runImport,
			},
		},
	})
	return app
}

func (cmd *DataCmd) runExport(ctx context.Context, c *cli.Command) error {
	engine, _, err := cmd.flags.Session(ctx)
	if err != nil {
		return err
	}

	tasks, logs, err := engine.Snapshot()
	if err != nil {
		return err
	}

	return iojson.WriteWith(c.Root().Writer, c.Root().ErrWriter, dataDocument{Tasks: tasks, Logs: logs})
}

func (cmd *DataCmd) runImport(ctx context.Context, c *cli.Command) error {
	if cmd.flags.Config.Remote != "" {
		return fmt.Errorf("import writes the local store directly; unset remote or run it on the server machine")
	}

	doc, err := cmd.reader.Read()
	if err != nil {
		return err
	}

	store, err := cmd.flags.Store(ctx)
	if err != nil {
		return err
	}

	existingTasks, err := store.Tasks.GetAll(ctx)
	if err != nil {
		return err
	}
	existingLogs, err := store.Logs.GetAll(ctx)
	if err != nil {
		return err
	}

	haveTask := make(map[string]struct{}, len(existingTasks))
	for _, t := range existingTasks {
		haveTask[t.ID] = struct{}{}
	}
	haveLog := make(map[string]struct{}, len(existingLogs))
	for _, l := range existingLogs {
		haveLog[l.Date+"\x00"+l.TaskID] = struct{}{}
	}

	addedTasks, addedLogs := 0, 0
	for _, t := range doc.Tasks {
		if _, ok := haveTask[t.ID]; ok {
			continue
		}
		if _, err := store.Tasks.Add(ctx, t); err != nil {
			return fmt.Errorf("import task %q: %w", t.Title, err)
		}
		haveTask[t.ID] = struct{}{}
		addedTasks++
	}
	for _, l := range doc.Logs {
		key := l.Date + "\x00" + l.TaskID
		if _, ok := haveLog[key]; ok {
			continue
		}
		if _, err := store.Logs.Add(ctx, l); err != nil {
			return fmt.Errorf("import log %s/%s: %w", l.Date, l.TaskID, err)
		}
		haveLog[key] = struct{}{}
		addedLogs++
	}

	fmt.Fprintf(c.Root().Writer, "imported %d tasks and %d logs\n", addedTasks, addedLogs)
	return nil
}
