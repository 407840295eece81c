// Package logger configures the process-wide logrus logger. Log output goes
// to stderr or a file; stdout carries the line protocols.
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// DebugEnv enables debug logging when set to a true value
const DebugEnv = "YOINK_DEBUG"

// Options controls Setup
type Options struct {
	Verbose bool      // debug level instead of warn
	Output  io.Writer // stderr when nil
	File    string    // append to this file instead of Output
}

var rootLogger = logrus.StandardLogger()

// Setup configures the root logger. The returned closer releases the log
// file, if one was opened, and is never nil.
func Setup(opts Options) (io.Closer, error) {
	l := root()
	l.SetFormatter(PlainFormatter{})

	level := logrus.WarnLevel
	if opts.Verbose || DebugFromEnv() {
		level = logrus.DebugLevel
	}
	l.SetLevel(level)

	if opts.File != "" {
		f, err := openLogFile(opts.File)
		if err != nil {
			return nopCloser{}, err
		}
		l.SetOutput(f)
		return f, nil
	}

	out := opts.Output
	if out == nil {
		out = os.Stderr
	}
	l.SetOutput(out)
	return nopCloser{}, nil
}

// DebugFromEnv reports whether DebugEnv requests debug logging
func DebugFromEnv() bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(DebugEnv))) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}

// SetRoot replaces the shared logger; nil restores the standard logger.
func SetRoot(l *logrus.Logger) {
	if l == nil {
		l = logrus.StandardLogger()
	}
	rootLogger = l
}

// Named returns an entry tagged with a component field
func Named(component string) *logrus.Entry {
	entry := logrus.NewEntry(root())
	if component != "" {
		entry = entry.WithField("component", component)
	}
	return entry
}

func root() *logrus.Logger {
	if rootLogger == nil {
		rootLogger = logrus.StandardLogger()
	}
	return rootLogger
}

// PlainFormatter writes [timestamp] [LEVEL] [component] message fields
type PlainFormatter struct{}

// Format implements logrus.Formatter
func (PlainFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	if entry == nil {
		return []byte{}, nil
	}

	parts := make([]string, 0, 5)
	parts = append(parts, fmt.Sprintf("[%s]", entry.Time.UTC().Format(time.RFC3339Nano)))
	parts = append(parts, fmt.Sprintf("[%s]", strings.ToUpper(entry.Level.String())))
	if component, ok := entry.Data["component"].(string); ok && component != "" {
		parts = append(parts, fmt.Sprintf("[%s]", component))
	}
	parts = append(parts, entry.Message)
	if fields := formatFields(entry.Data); fields != "" {
		parts = append(parts, fields)
	}
	return []byte(strings.Join(parts, " ") + "\n"), nil
}

func formatFields(fields logrus.Fields) string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		if k == "component" {
			continue
		}
		keys = append(keys, k)
	}
	if len(keys) == 0 {
		return ""
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, fields[k]))
	}
	return strings.Join(parts, " ")
}

func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	return os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
