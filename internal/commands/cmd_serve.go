package commands

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/hay-kot/sprout/internal/server"
)

type ServeCmd struct {
	flags  *Flags
	listen string
}

func NewServeCmd(flags *Flags) *ServeCmd {
	return &ServeCmd{flags: flags}
}

func (cmd *ServeCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "serve",
		Usage: "Run the sync server over the configured backend",
		Description: `Serves the HTTP API other sprout clients sync against.

The server owns the configured local backend; point clients at it by
setting "remote" in their config.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "listen",
				Aliases:     []string{"l"},
				Usage:       "listen address (overrides server.listen)",
				Destination: &cmd.listen,
			},
		},
		Action: cmd.run,
	})
	return app
}

func (cmd *ServeCmd) run(ctx context.Context, c *cli.Command) error {
	if cmd.flags.Config.Remote != "" {
		return fmt.Errorf("config sets a remote; serve runs on the machine that owns the store")
	}

	store, err := cmd.flags.Store(ctx)
	if err != nil {
		return err
	}

	addr := cmd.listen
	if addr == "" {
		addr = cmd.flags.Config.Server.Listen
	}

	srv := server.New(store, log.Logger)
	return srv.ListenAndServe(ctx, addr)
}
