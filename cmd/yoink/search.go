package main

import (
	"github.com/urfave/cli/v2"

	"github.com/standardbeagle/yoink/internal/display"
	"github.com/standardbeagle/yoink/internal/session"
)

// searchCommand prints the candidates for the query in compact or rich form
func searchCommand(c *cli.Context) error {
	inv, err := newInvocation(c)
	if err != nil {
		return err
	}

	query := c.Args().First()
	if query != "" {
		if _, err := session.EnsureDependency(inv.runner.Binary); err != nil {
			return err
		}
	}

	rich := c.Bool("rich")
	result, err := inv.engine.Search(c.Context, inv.root, query, rich)
	if err != nil {
		return err
	}

	if rich {
		return display.WriteEntries(c.App.Writer, display.BuildEntries(result))
	}
	return display.WriteCompact(c.App.Writer, result.Candidates)
}
