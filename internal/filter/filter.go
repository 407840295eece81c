// Package filter decides which filesystem entries take part in a search.
// The same rules apply to entries found by walking the tree and to paths
// reported by the content searcher.
package filter

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/standardbeagle/yoink/internal/config"
	yerrors "github.com/standardbeagle/yoink/internal/errors"
	"github.com/standardbeagle/yoink/pkg/pathutil"
)

var errNotDirectory = errors.New("not a directory")

// Decision is the outcome for a single entry
type Decision int

const (
	// Include keeps the entry (and descends into it if it is a directory)
	Include Decision = iota
	// Exclude drops a non-directory entry
	Exclude
	// Prune drops a directory together with its whole subtree
	Prune
)

func (d Decision) String() string {
	switch d {
	case Include:
		return "include"
	case Exclude:
		return "exclude"
	case Prune:
		return "prune"
	default:
		return "unknown"
	}
}

// Entry describes one candidate entry to Decide.
type Entry struct {
	Rel       string // slash-separated path relative to the root
	IsDir     bool
	IsSymlink bool
	Device    uint64
	HasDevice bool // false when the platform or the stat call gave no device id
}

// Filter applies the hidden, symlink, ignore-glob and mount rules of one Settings value.
type Filter struct {
	settings *config.Settings
	rootDev  uint64
	checkDev bool
}

// New creates a filter for root. The root is stat'ed once so that entries on
// other devices can be recognized when mounts are excluded.
func New(root string, settings *config.Settings) (*Filter, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, yerrors.NewFileError("stat search root", root, err)
	}
	if !info.IsDir() {
		return nil, yerrors.NewFileError("search", root, errNotDirectory)
	}

	f := &Filter{settings: settings}
	if !settings.IncludeMounts {
		f.rootDev, f.checkDev = DeviceOf(root)
	}
	return f, nil
}

// NewWithDevice creates a filter with an explicit root device id.
func NewWithDevice(settings *config.Settings, rootDev uint64) *Filter {
	return &Filter{
		settings: settings,
		rootDev:  rootDev,
		checkDev: !settings.IncludeMounts,
	}
}

// Settings returns the settings the filter applies.
func (f *Filter) Settings() *config.Settings {
	return f.settings
}

// Decide applies the rules to e. It has no side effects.
func (f *Filter) Decide(e Entry) Decision {
	drop := Exclude
	if e.IsDir {
		drop = Prune
	}

	if e.IsSymlink && !f.settings.IncludeSymlinks {
		return drop
	}
	if !f.settings.IncludeHidden && pathutil.HasHiddenComponent(e.Rel) {
		return drop
	}
	if f.settings.IsIgnored(e.Rel) {
		return drop
	}
	if e.IsDir && f.crossesDevice(e) {
		return Prune
	}
	return Include
}

// Admit re-validates a path reported by an external source against the hidden,
// ignore-glob and mount rules. It stats the path to learn whether it is a
// directory and which device it lives on; a path that cannot be stat'ed is
// not admitted.
func (f *Filter) Admit(root, rel string) (isDir bool, ok bool) {
	if !f.settings.IncludeHidden && pathutil.HasHiddenComponent(rel) {
		return false, false
	}
	if f.settings.IsIgnored(rel) {
		return false, false
	}

	full := filepath.Join(root, filepath.FromSlash(rel))
	info, err := os.Stat(full)
	if err != nil {
		return false, false
	}
	isDir = info.IsDir()
	if f.checkDev {
		if dev, has := DeviceOf(full); has && dev != f.rootDev {
			return isDir, false
		}
	}
	return isDir, true
}

func (f *Filter) crossesDevice(e Entry) bool {
	return f.checkDev && e.HasDevice && e.Device != f.rootDev
}

// NeedsDevice reports whether Decide consults Entry.Device.
func (f *Filter) NeedsDevice() bool {
	return f.checkDev
}
