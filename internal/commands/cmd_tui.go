package commands

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v3"

	"github.com/hay-kot/sprout/internal/habit"
	"github.com/hay-kot/sprout/internal/taskorder"
	"github.com/hay-kot/sprout/internal/tui"
)

type TuiCmd struct {
	flags *Flags
}

// NewTuiCmd creates a new tui command
func NewTuiCmd(flags *Flags) *TuiCmd {
	return &TuiCmd{flags: flags}
}

// Run executes the TUI. Exported for use as default command.
func (cmd *TuiCmd) Run(ctx context.Context, c *cli.Command) error {
	return cmd.run(ctx, c)
}

func (cmd *TuiCmd) run(ctx context.Context, _ *cli.Command) error {
	// The engine is handed over uninitialized so the dashboard owns the
	// loading spinner and the retry screen.
	rem, err := cmd.flags.Remote(ctx)
	if err != nil {
		return err
	}

	order, err := taskorder.Load(cmd.flags.Config.TaskOrderFile())
	if err != nil {
		return err
	}

	m := tui.New(tui.Deps{
		Engine: habit.NewEngine(rem),
		Order:  order,
	})

	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}
