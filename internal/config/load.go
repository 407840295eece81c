package config

import (
	"bufio"
	"errors"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	yerrors "github.com/standardbeagle/yoink/internal/errors"
)

// Setting keys recognized in the user config file and the project overlay.
const (
	KeyIncludeHidden   = "include_hidden"
	KeyIncludeMounts   = "include_mounts"
	KeyIncludeSymlinks = "include_symlinks"
	KeySortMode        = "sort_mode"
)

var settingKeys = []string{KeyIncludeHidden, KeyIncludeMounts, KeyIncludeSymlinks, KeySortMode}

// Sources names the config files to read. Paths are resolved by the caller;
// an empty path or a missing file contributes nothing.
type Sources struct {
	// UserFile is the per-user line-oriented ignore/config file
	UserFile string
	// ProjectFile is an optional KDL overlay, read after UserFile
	ProjectFile string
}

// Load builds Settings from the built-in defaults followed by each source in order.
func Load(src Sources, log *logrus.Entry) (*Settings, error) {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	b := newBuilder()

	if src.UserFile != "" {
		if err := b.loadUserFile(src.UserFile, log); err != nil {
			return nil, err
		}
	}

	if src.ProjectFile != "" {
		if err := b.loadProjectFile(src.ProjectFile, log); err != nil {
			return nil, err
		}
	}

	return build(b)
}

func (b *builder) loadUserFile(path string, log *logrus.Entry) error {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.WithField("path", path).Debug("no config file, using defaults")
			return nil
		}
		return yerrors.NewConfigError(path, "", "", err)
	}
	defer file.Close()

	if err := b.parseLines(file, path, log); err != nil {
		return err
	}
	log.WithField("path", path).Debug("loaded config file")
	return nil
}

// parseLines consumes the line-oriented format: comments and blank lines are
// skipped, recognized key=value lines set toggles, everything else is a glob.
func (b *builder) parseLines(r io.Reader, source string, log *logrus.Entry) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if rawKey, rawValue, ok := strings.Cut(line, "="); ok {
			key := strings.ToLower(strings.TrimSpace(rawKey))
			consumed, err := b.applySetting(key, strings.TrimSpace(rawValue), source)
			if err != nil {
				return err
			}
			if consumed {
				continue
			}
			if suggestion, ok := suggestKey(key); ok {
				log.WithFields(logrus.Fields{
					"path": source,
					"line": line,
				}).Warnf("treating %q as an ignore glob; did you mean %s?", line, suggestion)
			}
		}

		b.addGlob(line, source)
	}
	if err := scanner.Err(); err != nil {
		return yerrors.NewConfigError(source, "", "", err)
	}
	return nil
}

// applySetting sets a recognized key. It reports false for keys it does not know.
func (b *builder) applySetting(key, value, source string) (bool, error) {
	switch key {
	case KeyIncludeHidden, KeyIncludeMounts, KeyIncludeSymlinks:
		v, err := ParseBool(value)
		if err != nil {
			return true, yerrors.NewConfigError(source, key, value, err)
		}
		b.setBool(key, v)
		return true, nil
	case KeySortMode:
		mode, err := ParseSortMode(value)
		if err != nil {
			return true, yerrors.NewConfigError(source, key, value, err)
		}
		b.sortMode = mode
		return true, nil
	default:
		return false, nil
	}
}

func (b *builder) setBool(key string, v bool) {
	switch key {
	case KeyIncludeHidden:
		b.includeHidden = v
	case KeyIncludeMounts:
		b.includeMounts = v
	case KeyIncludeSymlinks:
		b.includeSymlinks = v
	}
}

// Parse reads the user config format from r on top of the built-in defaults.
// source names r in error messages.
func Parse(r io.Reader, source string) (*Settings, error) {
	b := newBuilder()
	if err := b.parseLines(r, source, logrus.NewEntry(logrus.StandardLogger())); err != nil {
		return nil, err
	}
	return build(b)
}
