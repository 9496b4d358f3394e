// Command docgen generates CLI reference documentation from the sprout
// command definitions. Output is written to docs/cli-reference.md.
package main

import (
	"fmt"
	"os"

	docs "github.com/urfave/cli-docs/v3"
	"github.com/urfave/cli/v3"

	"github.com/hay-kot/sprout/internal/commands"
)

func main() {
	flags := &commands.Flags{}

	root := &cli.Command{
		Name:      "sprout",
		Usage:     "Track daily habits from the terminal",
		UsageText: "sprout [global options] command [command options]",
		Description: `Sprout tracks the daily tasks you want to do every day and renders your
streaks as an achievement calendar.

Run 'sprout' with no arguments to open the dashboard.
Run 'sprout done <task>' to check a task off for today.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "log level (debug, info, warn, error, fatal, panic)",
				Sources: cli.EnvVars("SPROUT_LOG_LEVEL"),
				Value:   "info",
			},
			&cli.StringFlag{
				Name:    "log-file",
				Usage:   "path to log file (defaults to the state dir)",
				Sources: cli.EnvVars("SPROUT_LOG_FILE"),
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "path to config file",
				Sources: cli.EnvVars("SPROUT_CONFIG"),
				Value:   commands.DefaultConfigPath(),
			},
			&cli.StringFlag{
				Name:    "data-dir",
				Usage:   "path to data directory",
				Sources: cli.EnvVars("SPROUT_DATA_DIR"),
				Value:   commands.DefaultDataDir(),
			},
		},
	}

	root = commands.NewTaskCmd(flags).Register(root)
	root = commands.NewLogCmd(flags).Register(root)
	root = commands.NewDayCmd(flags).Register(root)
	root = commands.NewCalCmd(flags).Register(root)
	root = commands.NewServeCmd(flags).Register(root)
	root = commands.NewAuthCmd(flags).Register(root)
	root = commands.NewDataCmd(flags).Register(root)
	root = commands.NewConfigCmd(flags).Register(root)
	root = commands.NewDocCmd(flags).Register(root)

	md, err := docs.ToMarkdown(root)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error generating docs: %v\n", err)
		os.Exit(1)
	}

	outPath := "docs/cli-reference.md"
	if len(os.Args) > 1 {
		outPath = os.Args[1]
	}

	if err := os.WriteFile(outPath, []byte(md), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "error writing %s: %v\n", outPath, err)
		os.Exit(1)
	}

	fmt.Printf("Generated %s\n", outPath)
}
