package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/standardbeagle/yoink/internal/display"
	"github.com/standardbeagle/yoink/internal/filter"
	"github.com/standardbeagle/yoink/internal/logger"
	"github.com/standardbeagle/yoink/internal/session"
	"github.com/standardbeagle/yoink/internal/watch"
)

// watchCommand prints the compact form and re-prints it on every change
// until interrupted
func watchCommand(c *cli.Context) error {
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

	f, err := filter.New(inv.root, inv.settings)
	if err != nil {
		return err
	}
	log := logger.Named("watch")
	fw, err := watch.NewFileWatcher(inv.root, f, c.Duration("debounce"), log)
	if err != nil {
		return err
	}
	if err := fw.Start(); err != nil {
		_ = fw.Stop()
		return err
	}
	defer fw.Stop()

	ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	render := func(ctx context.Context) ([]byte, error) {
		candidates, err := inv.engine.Candidates(ctx, inv.root, query)
		if err != nil {
			return nil, err
		}
		return []byte(display.FormatCompact(candidates)), nil
	}
	return watch.Loop(ctx, fw.Changes(), render, c.App.Writer, log)
}
