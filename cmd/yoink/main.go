package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	yerrors "github.com/standardbeagle/yoink/internal/errors"
	"github.com/standardbeagle/yoink/internal/logger"
	"github.com/standardbeagle/yoink/internal/ripgrep"
	"github.com/standardbeagle/yoink/internal/version"
)

// DefaultConfigName is the per-user config file in the home directory
const DefaultConfigName = ".yoinkignore"

// ConfigPathEnv overrides the per-user config file location
const ConfigPathEnv = "YOINKIGNORE_PATH"

func newApp(stdout, stderr io.Writer) *cli.App {
	var logCloser io.Closer

	return &cli.App{
		Name:                   "yoink",
		Usage:                  "Regex search over paths and contents with an interactive picker",
		UsageText:              "yoink [global options] [QUERY]\n   yoink [global options] command [command options] [arguments...]",
		Version:                version.FullInfo(),
		ArgsUsage:              "[QUERY]",
		UseShortOptionHandling: true,
		Writer:                 stdout,
		ErrWriter:              stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Ignore/config file path (default: ~/" + DefaultConfigName + ")",
				EnvVars: []string{ConfigPathEnv},
			},
			&cli.StringFlag{
				Name:  "project-config",
				Usage: "Project overlay file, relative to the root (empty disables)",
				Value: ".yoink.kdl",
			},
			&cli.StringFlag{
				Name:    "root",
				Aliases: []string{"r"},
				Usage:   "Directory to search (default: current directory)",
			},
			&cli.DurationFlag{
				Name:  "timeout",
				Usage: "Bound each content search, e.g. 10s (0 = unbounded)",
				Value: 0,
			},
			&cli.StringFlag{
				Name:  "rg",
				Usage: "Content search binary",
				Value: ripgrep.DefaultBinary,
			},
			// -v belongs to the built-in --version flag
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "Show debug information",
			},
			&cli.StringFlag{
				Name:  "log-file",
				Usage: "Append log output to this file instead of stderr",
			},
		},
		Before: func(c *cli.Context) error {
			closer, err := logger.Setup(logger.Options{
				Verbose: c.Bool("verbose"),
				Output:  c.App.ErrWriter,
				File:    c.String("log-file"),
			})
			logCloser = closer
			return err
		},
		After: func(c *cli.Context) error {
			if logCloser != nil {
				return logCloser.Close()
			}
			return nil
		},
		Action: sessionCommand,
		Commands: []*cli.Command{
			{
				Name:      "__search",
				Usage:     "Print ranked candidates for QUERY (fzf reload source)",
				ArgsUsage: "[QUERY]",
				Hidden:    true,
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "rich",
						Usage: "Emit the highlighted display form with occurrence rows",
					},
				},
				Action: searchCommand,
			},
			{
				Name:      "__preview",
				Usage:     "Render the preview pane for a selected row",
				ArgsUsage: "PATH [QUERY] [LINE]",
				Hidden:    true,
				Action:    previewCommand,
			},
			{
				Name:      "watch",
				Aliases:   []string{"w"},
				Usage:     "Print ranked candidates and re-print them whenever the tree changes",
				ArgsUsage: "[QUERY]",
				Flags: []cli.Flag{
					&cli.DurationFlag{
						Name:  "debounce",
						Usage: "Quiet period after the last change before re-running",
						Value: 200 * time.Millisecond,
					},
				},
				Action: watchCommand,
			},
			{
				Name:   "mcp",
				Usage:  "Serve the search tool over the Model Context Protocol on stdio",
				Action: mcpCommand,
			},
			{
				Name:   "settings",
				Usage:  "Print the effective settings as TOML",
				Action: settingsCommand,
			},
		},
	}
}

// printError writes err and its causal chain the way every failure is reported
func printError(w io.Writer, err error) {
	chain := yerrors.Chain(err)
	if len(chain) == 0 {
		return
	}
	fmt.Fprintf(w, "yoink error: %s\n", chain[0])
	for _, cause := range chain[1:] {
		fmt.Fprintf(w, "  caused by: %s\n", cause)
	}
}

func main() {
	app := newApp(os.Stdout, os.Stderr)
	if err := app.Run(os.Args); err != nil {
		printError(os.Stderr, err)
		os.Exit(1)
	}
}
