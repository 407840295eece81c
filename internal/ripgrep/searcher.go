package ripgrep

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/standardbeagle/yoink/internal/config"
	"github.com/standardbeagle/yoink/internal/searchtypes"
)

// OptionsFromSettings mirrors the walker's traversal policy.
func OptionsFromSettings(s *config.Settings) Options {
	return Options{
		Hidden:        s.IncludeHidden,
		OneFileSystem: !s.IncludeMounts,
		Follow:        s.IncludeSymlinks,
		Excludes:      append([]string(nil), s.Globs...),
	}
}

// Searcher answers content queries under a root with the external searcher.
type Searcher struct {
	runner *Runner
	opts   Options
	log    *logrus.Entry
}

// NewSearcher creates a searcher that runs runner with opts.
func NewSearcher(runner *Runner, opts Options) *Searcher {
	return &Searcher{runner: runner, opts: opts, log: runner.log}
}

// MatchingFiles returns the keys of files under root whose contents match query.
func (s *Searcher) MatchingFiles(ctx context.Context, root, query string) ([]string, error) {
	out, err := s.runner.Run(ctx, root, ListArgs(query, s.opts))
	if err != nil {
		return nil, err
	}
	return ParseFileList(out), nil
}

// Occurrences returns the line-level matches of query under root, grouped by key.
func (s *Searcher) Occurrences(ctx context.Context, root, query string) (map[string][]searchtypes.Occurrence, error) {
	out, err := s.runner.Run(ctx, root, DetailArgs(query, s.opts))
	if err != nil {
		return nil, err
	}
	grouped, skipped := ParseOccurrences(out)
	if skipped > 0 {
		s.log.WithField("skipped", skipped).Debug("dropped malformed occurrence lines")
	}
	return grouped, nil
}

// FirstMatchLine returns the 1-based line of the first match of query in file.
// Any failure yields false.
func (s *Searcher) FirstMatchLine(ctx context.Context, file, query string) (int, bool) {
	if query == "" {
		return 0, false
	}
	out, err := s.runner.Run(ctx, "", FirstMatchArgs(query, file))
	if err != nil {
		s.log.WithError(err).Debug("first match lookup failed")
		return 0, false
	}
	return ParseFirstLine(out)
}
