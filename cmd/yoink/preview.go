package main

import (
	"errors"
	"strconv"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/standardbeagle/yoink/internal/logger"
	"github.com/standardbeagle/yoink/internal/session"
)

// previewCommand renders PATH [QUERY] [LINE] for the fzf preview pane.
// A missing bat degrades to the in-process preview instead of failing.
func previewCommand(c *cli.Context) error {
	if c.NArg() < 1 {
		return errors.New("usage: yoink __preview PATH [QUERY] [LINE]")
	}
	inv, err := newInvocation(c)
	if err != nil {
		return err
	}

	path := c.Args().Get(0)
	query := c.Args().Get(1)
	line, _ := strconv.Atoi(strings.TrimSpace(c.Args().Get(2)))

	log := logger.Named("preview")
	bat, err := session.ResolveBat()
	if err != nil {
		log.WithError(err).Debug("bat unavailable, using built-in preview")
	}

	p := &session.Previewer{
		Bat:    bat,
		Lines:  inv.searcher,
		Width:  session.PreviewWidth(),
		Stdout: c.App.Writer,
		Stderr: c.App.ErrWriter,
		Log:    log,
	}
	return p.Preview(c.Context, inv.root, path, query, line)
}
