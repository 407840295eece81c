package main

import (
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/standardbeagle/yoink/internal/logger"
	"github.com/standardbeagle/yoink/internal/mcp"
	"github.com/standardbeagle/yoink/internal/session"
)

// mcpCommand serves the search tool on stdio until the client disconnects
func mcpCommand(c *cli.Context) error {
	inv, err := newInvocation(c)
	if err != nil {
		return err
	}
	if _, err := session.EnsureDependency(inv.runner.Binary); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	server := mcp.NewServer(inv.engine, inv.root, logger.Named("mcp"))
	return server.Start(ctx)
}
