// Package walker enumerates the search root and reports path matches.
package walker

import (
	"io/fs"
	"path/filepath"
	"regexp"

	"github.com/sirupsen/logrus"

	yerrors "github.com/standardbeagle/yoink/internal/errors"
	"github.com/standardbeagle/yoink/internal/filter"
	"github.com/standardbeagle/yoink/internal/searchtypes"
	"github.com/standardbeagle/yoink/pkg/pathutil"
)

// Matcher decides whether a walked entry is a path match. rel is the
// slash-separated relative path and name its final component.
type Matcher func(rel, name string) bool

// MatchAll accepts every entry; it is used for an empty query.
func MatchAll(string, string) bool { return true }

// QueryMatcher matches when re matches the relative path or the entry name.
// A nil re matches everything.
func QueryMatcher(re *regexp.Regexp) Matcher {
	if re == nil {
		return MatchAll
	}
	return func(rel, name string) bool {
		return re.MatchString(rel) || re.MatchString(name)
	}
}

// Walk traverses root without following symlinked directories, pruning
// subtrees the filter rejects, and returns every surviving entry accepted by
// match as a path-match candidate. The root itself is never returned.
//
// Unreadable directories and entries are skipped; only a failure to read the
// root is returned as an error.
func Walk(root string, f *filter.Filter, match Matcher, log *logrus.Entry) ([]searchtypes.Candidate, error) {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	root = filepath.Clean(root)
	var out []searchtypes.Candidate

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root && d == nil {
				return err
			}
			log.WithError(err).WithField("path", path).Debug("skipping unreadable entry")
			return nil
		}
		if path == root {
			return nil
		}

		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return nil
		}
		key := pathutil.Key(rel)

		entry := filter.Entry{
			Rel:       key,
			IsDir:     d.IsDir(),
			IsSymlink: d.Type()&fs.ModeSymlink != 0,
		}
		if entry.IsDir && f.NeedsDevice() {
			entry.Device, entry.HasDevice = filter.DeviceOf(path)
		}

		switch f.Decide(entry) {
		case filter.Prune:
			return fs.SkipDir
		case filter.Exclude:
			return nil
		}

		if match(key, pathutil.Base(key)) {
			out = append(out, searchtypes.Candidate{
				Path:      key,
				IsDir:     entry.IsDir,
				PathMatch: true,
			})
		}
		return nil
	})
	if err != nil {
		return nil, yerrors.NewFileError("walk", root, err)
	}

	log.WithFields(logrus.Fields{"root": root, "matches": len(out)}).Debug("walk complete")
	return out, nil
}
