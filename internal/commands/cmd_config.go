package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/hay-kot/sprout/internal/core/styles"
)

type ConfigCmd struct {
	flags *Flags
}

func NewConfigCmd(flags *Flags) *ConfigCmd {
	return &ConfigCmd{flags: flags}
}

func (cmd *ConfigCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "config",
		Usage: "Configuration management commands",
		Commands: []*cli.Command{
			{
				Name:        "validate",
				Usage:       "Validate configuration and show effective settings",
				Description: "Validates the configuration file and prints where sprout will read and write data.",
				Action:      cmd.runValidate,
			},
		},
	})
	return app
}

func (cmd *ConfigCmd) runValidate(_ context.Context, c *cli.Command) error {
	// Config loaded in the Before hook already passed Validate; this
	// command exists to show what was resolved.
	cfg := cmd.flags.Config
	w := c.Root().Writer

	ok := styles.SuccessStyle.Render(styles.IconCheck)
	fmt.Fprintf(w, "%s config file: %s\n", ok, cmd.flags.ConfigPath)
	fmt.Fprintf(w, "%s data dir: %s\n", ok, cfg.DataDir)
	fmt.Fprintf(w, "%s theme: %s\n", ok, cfg.Theme)

	if cfg.Remote != "" {
		fmt.Fprintf(w, "%s remote: %s (local backend settings ignored)\n", ok, cfg.Remote)
		return nil
	}

	fmt.Fprintf(w, "%s backend: %s\n", ok, cfg.Backend.Driver)
	fmt.Fprintf(w, "%s store path: %s\n", ok, cfg.StorePath())
	return nil
}
