package main

import (
	"github.com/urfave/cli/v2"
)

// settingsCommand prints the effective settings after all layers are applied
func settingsCommand(c *cli.Context) error {
	inv, err := newInvocation(c)
	if err != nil {
		return err
	}
	out, err := inv.settings.TOML()
	if err != nil {
		return err
	}
	_, err = c.App.Writer.Write(out)
	return err
}
