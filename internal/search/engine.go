// Package search builds the ranked candidate set for a query: it walks the
// root for path matches, asks the content searcher for content matches,
// merges both and sorts the result. Every output form consumes the same
// Result.
package search

import (
	"context"
	"regexp"

	"github.com/sirupsen/logrus"

	"github.com/standardbeagle/yoink/internal/config"
	yerrors "github.com/standardbeagle/yoink/internal/errors"
	"github.com/standardbeagle/yoink/internal/filter"
	"github.com/standardbeagle/yoink/internal/searchtypes"
	"github.com/standardbeagle/yoink/internal/walker"
)

// ContentSearcher finds files whose contents match a query. Keys are
// candidate keys relative to root.
type ContentSearcher interface {
	MatchingFiles(ctx context.Context, root, query string) ([]string, error)
	Occurrences(ctx context.Context, root, query string) (map[string][]searchtypes.Occurrence, error)
}

// Result is one ranked candidate set
type Result struct {
	Root    string
	Query   string
	Pattern *regexp.Regexp // nil for an empty query

	Candidates []searchtypes.Candidate

	// Occurrences holds line-level matches per candidate key. It is only
	// populated when requested and only for keys present in Candidates.
	Occurrences map[string][]searchtypes.Occurrence
}

// OccurrencesFor returns the occurrences recorded for key
func (r *Result) OccurrencesFor(key string) []searchtypes.Occurrence {
	if r.Occurrences == nil {
		return nil
	}
	return r.Occurrences[key]
}

// Engine runs the candidate pipeline. It holds no per-invocation state.
type Engine struct {
	settings *config.Settings
	searcher ContentSearcher
	log      *logrus.Entry
}

// NewEngine creates an engine that applies settings and delegates content
// matching to searcher.
func NewEngine(settings *config.Settings, searcher ContentSearcher, log *logrus.Entry) *Engine {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Engine{settings: settings, searcher: searcher, log: log}
}

// Settings returns the settings the engine applies
func (e *Engine) Settings() *config.Settings {
	return e.settings
}

// Search builds the ranked candidates for query under root. An empty query
// lists every admitted entry and skips content search. withOccurrences
// additionally collects line-level matches for the rich form.
func (e *Engine) Search(ctx context.Context, root, query string, withOccurrences bool) (*Result, error) {
	var pattern *regexp.Regexp
	if query != "" {
		re, err := regexp.Compile(query)
		if err != nil {
			return nil, yerrors.NewQueryError(query, err)
		}
		pattern = re
	}

	f, err := filter.New(root, e.settings)
	if err != nil {
		return nil, err
	}

	walked, err := walker.Walk(root, f, walker.QueryMatcher(pattern), e.log)
	if err != nil {
		return nil, err
	}

	merger := NewMerger()
	merger.AddAll(walked)

	result := &Result{Root: root, Query: query, Pattern: pattern}

	if pattern != nil {
		if err := e.mergeContentMatches(ctx, root, query, f, merger); err != nil {
			return nil, err
		}
		if withOccurrences {
			occs, err := e.searcher.Occurrences(ctx, root, query)
			if err != nil {
				return nil, err
			}
			result.Occurrences = make(map[string][]searchtypes.Occurrence, len(occs))
			for key, list := range occs {
				if path, ok := merger.Lookup(key); ok {
					result.Occurrences[path] = append(result.Occurrences[path], list...)
				}
			}
		}
	}

	result.Candidates = merger.Candidates()
	Rank(result.Candidates, e.settings.SortMode)

	e.log.WithFields(logrus.Fields{
		"query":      query,
		"walked":     len(walked),
		"candidates": len(result.Candidates),
	}).Debug("search complete")
	return result, nil
}

// Candidates is Search without occurrences, returning only the ranked list
func (e *Engine) Candidates(ctx context.Context, root, query string) ([]searchtypes.Candidate, error) {
	result, err := e.Search(ctx, root, query, false)
	if err != nil {
		return nil, err
	}
	return result.Candidates, nil
}

// mergeContentMatches re-validates each reported file against the filter
// before merging it; the content searcher's own filtering is not trusted.
func (e *Engine) mergeContentMatches(ctx context.Context, root, query string, f *filter.Filter, merger *Merger) error {
	files, err := e.searcher.MatchingFiles(ctx, root, query)
	if err != nil {
		return err
	}

	rejected := 0
	for _, key := range files {
		isDir, ok := f.Admit(root, key)
		if !ok {
			rejected++
			continue
		}
		merger.Add(searchtypes.Candidate{Path: key, IsDir: isDir, ContentMatch: true})
	}
	if rejected > 0 {
		e.log.WithField("rejected", rejected).Debug("dropped content matches outside the filter")
	}
	return nil
}
