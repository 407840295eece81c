package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/standardbeagle/yoink/internal/config"
	"github.com/standardbeagle/yoink/internal/logger"
	"github.com/standardbeagle/yoink/internal/ripgrep"
	"github.com/standardbeagle/yoink/internal/search"
)

// invocation is everything a command needs for one invocation
type invocation struct {
	root     string
	settings *config.Settings
	runner   *ripgrep.Runner
	searcher *ripgrep.Searcher
	engine   *search.Engine
	log      *logrus.Entry
}

// forwardedFlags are the global flags handed to the reload and preview
// processes started by fzf
var forwardedFlags = []string{"config", "project-config", "root", "timeout", "rg", "log-file"}

func newInvocation(c *cli.Context) (*invocation, error) {
	root, err := resolveRoot(c.String("root"))
	if err != nil {
		return nil, err
	}

	settings, err := config.Load(config.Sources{
		UserFile:    resolveUserConfig(c.String("config")),
		ProjectFile: resolveProjectConfig(root, c.String("project-config")),
	}, logger.Named("config"))
	if err != nil {
		return nil, err
	}

	runner := ripgrep.NewRunner(c.String("rg"), c.Duration("timeout"), logger.Named("ripgrep"))
	searcher := ripgrep.NewSearcher(runner, ripgrep.OptionsFromSettings(settings))

	return &invocation{
		root:     root,
		settings: settings,
		runner:   runner,
		searcher: searcher,
		engine:   search.NewEngine(settings, searcher, logger.Named("search")),
		log:      logger.Named("cli"),
	}, nil
}

// resolveRoot returns the absolute search root, the working directory by default
func resolveRoot(flag string) (string, error) {
	if flag == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("failed to read current working directory: %w", err)
		}
		return wd, nil
	}
	abs, err := filepath.Abs(flag)
	if err != nil {
		return "", fmt.Errorf("failed to resolve root path %q: %w", flag, err)
	}
	return abs, nil
}

// resolveUserConfig applies the flag, then the home-relative default. The
// environment override is bound to the flag itself.
func resolveUserConfig(flag string) string {
	if flag != "" {
		return flag
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, DefaultConfigName)
}

func resolveProjectConfig(root, flag string) string {
	if flag == "" {
		return ""
	}
	if filepath.IsAbs(flag) {
		return flag
	}
	return filepath.Join(root, flag)
}

// globalArgs rebuilds the explicitly set global flags for child processes.
// The root is always forwarded as an absolute path.
func globalArgs(c *cli.Context, root string) []string {
	var args []string
	for _, name := range forwardedFlags {
		if name == "root" {
			args = append(args, "--root", root)
			continue
		}
		if !c.IsSet(name) {
			continue
		}
		args = append(args, "--"+name, fmt.Sprint(c.Value(name)))
	}
	if c.Bool("verbose") {
		args = append(args, "--verbose")
	}
	return args
}
