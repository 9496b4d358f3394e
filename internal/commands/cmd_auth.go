package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/hay-kot/sprout/internal/rowstore/sheets"
)

type AuthCmd struct {
	flags *Flags
}

func NewAuthCmd(flags *Flags) *AuthCmd {
	return &AuthCmd{flags: flags}
}

func (cmd *AuthCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "auth",
		Usage: "Authorize the Google Sheets backend",
		Description: `Runs the OAuth consent flow for the sheets backend and caches the
token next to your data. Requires a downloaded credentials.json; see the
sheets section of 'sprout doc usage'.`,
		Action: cmd.run,
	})
	return app
}

func (cmd *AuthCmd) run(ctx context.Context, c *cli.Command) error {
	cfg := cmd.flags.Config

	err := sheets.Authorize(ctx, cfg.Sheets.CredentialsPath, cfg.Sheets.TokenPath)
	if err != nil {
		return err
	}

	fmt.Fprintf(c.Root().Writer, "token saved to %s\n", cfg.Sheets.TokenPath)
	return nil
}
