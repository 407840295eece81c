package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/standardbeagle/yoink/internal/logger"
	"github.com/standardbeagle/yoink/internal/session"
)

// sessionCommand is the default action: the interactive picker
func sessionCommand(c *cli.Context) error {
	inv, err := newInvocation(c)
	if err != nil {
		return err
	}

	if err := session.EnsureDependencies(session.FzfBinary, inv.runner.Binary); err != nil {
		return err
	}
	if _, err := session.ResolveBat(); err != nil {
		return err
	}

	exe, err := os.Executable()
	if err != nil {
		return fmt.Errorf("failed to resolve current executable path: %w", err)
	}

	s := &session.Session{
		Fzf:     session.FzfBinary,
		Exe:     exe,
		Globals: globalArgs(c, inv.root),
		Root:    inv.root,
		Stdout:  c.App.Writer,
		Stderr:  c.App.ErrWriter,
		Log:     logger.Named("session"),
	}
	return s.Run(c.Context, c.Args().First())
}
