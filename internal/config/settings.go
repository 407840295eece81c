package config

import (
	"fmt"
	"strings"
)

// DefaultIgnoreGlobs are always prepended to the user's ignore patterns.
var DefaultIgnoreGlobs = []string{".git/**", "node_modules/**"}

// SortMode selects the ordering of the merged candidate set
type SortMode int

const (
	// SortDepth orders shallower entries first, ties broken by path
	SortDepth SortMode = iota
	// SortAlphabetical orders by the full relative path only
	SortAlphabetical
)

func (m SortMode) String() string {
	switch m {
	case SortAlphabetical:
		return "alphabetical"
	default:
		return "depth"
	}
}

// ParseSortMode parses a sort_mode value (case-insensitive).
func ParseSortMode(value string) (SortMode, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "depth":
		return SortDepth, nil
	case "alphabetical":
		return SortAlphabetical, nil
	default:
		return SortDepth, fmt.Errorf("expected depth or alphabetical")
	}
}

// ParseBool parses a boolean toggle value (case-insensitive).
func ParseBool(value string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "true", "1", "yes", "on":
		return true, nil
	case "false", "0", "no", "off":
		return false, nil
	default:
		return false, fmt.Errorf("expected true/false/1/0/yes/no/on/off")
	}
}

// Settings is the configuration for a single search invocation.
// It is built once by Load and never mutated afterwards.
type Settings struct {
	IncludeHidden   bool
	IncludeMounts   bool
	IncludeSymlinks bool
	SortMode        SortMode

	// Globs holds the built-in defaults followed by user and project patterns,
	// in the order they were read.
	Globs []string

	matcher *GlobSet
}

// IsIgnored reports whether a slash-separated relative path matches any ignore glob.
func (s *Settings) IsIgnored(rel string) bool {
	if s == nil || s.matcher == nil {
		return false
	}
	return s.matcher.Match(rel)
}

// Default returns the settings used when no config file exists.
func Default() *Settings {
	s, err := build(newBuilder())
	if err != nil {
		// built-in patterns are constant and valid
		panic(err)
	}
	return s
}

// builder accumulates settings while sources are read in layer order.
type builder struct {
	includeHidden   bool
	includeMounts   bool
	includeSymlinks bool
	sortMode        SortMode
	globs           []string
	globSources     []string // file each glob came from, "" for built-ins
}

func newBuilder() *builder {
	b := &builder{sortMode: SortDepth}
	for _, g := range DefaultIgnoreGlobs {
		b.addGlob(g, "")
	}
	return b
}

func (b *builder) addGlob(pattern, source string) {
	b.globs = append(b.globs, pattern)
	b.globSources = append(b.globSources, source)
}

func build(b *builder) (*Settings, error) {
	matcher, err := compileGlobs(b.globs, b.globSources)
	if err != nil {
		return nil, err
	}
	return &Settings{
		IncludeHidden:   b.includeHidden,
		IncludeMounts:   b.includeMounts,
		IncludeSymlinks: b.includeSymlinks,
		SortMode:        b.sortMode,
		Globs:           append([]string(nil), b.globs...),
		matcher:         matcher,
	}, nil
}
