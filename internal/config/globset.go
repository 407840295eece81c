package config

import (
	"path"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	yerrors "github.com/standardbeagle/yoink/internal/errors"
)

// GlobSet is the OR-combination of every ignore pattern: a path is ignored
// when any pattern matches it.
type GlobSet struct {
	patterns []globPattern
}

type globPattern struct {
	pattern string
	// basename patterns contain no separator and also match the final path component
	basename bool
}

// NewGlobSet compiles patterns into a set. An invalid pattern yields a ConfigError naming it.
func NewGlobSet(patterns ...string) (*GlobSet, error) {
	return compileGlobs(patterns, nil)
}

func compileGlobs(patterns []string, sources []string) (*GlobSet, error) {
	set := &GlobSet{patterns: make([]globPattern, 0, len(patterns))}
	for i, p := range patterns {
		if !doublestar.ValidatePattern(p) {
			source := ""
			if i < len(sources) {
				source = sources[i]
			}
			return nil, yerrors.NewConfigError(source, "glob", p, doublestar.ErrBadPattern)
		}
		set.patterns = append(set.patterns, globPattern{
			pattern:  p,
			basename: !strings.Contains(p, "/"),
		})
	}
	return set, nil
}

// Match reports whether the slash-separated relative path is matched by any pattern.
func (g *GlobSet) Match(rel string) bool {
	if g == nil || rel == "" {
		return false
	}
	rel = strings.TrimPrefix(rel, "./")
	base := path.Base(rel)
	for _, p := range g.patterns {
		if matchPattern(p.pattern, rel) {
			return true
		}
		if p.basename && base != rel && matchPattern(p.pattern, base) {
			return true
		}
	}
	return false
}

// Len returns the number of compiled patterns.
func (g *GlobSet) Len() int {
	if g == nil {
		return 0
	}
	return len(g.patterns)
}

func matchPattern(pattern, name string) bool {
	// patterns were validated in compileGlobs
	matched, _ := doublestar.Match(pattern, name)
	return matched
}
