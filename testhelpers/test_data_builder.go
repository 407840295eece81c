package testhelpers

import (
	"os"
	"path/filepath"
	"testing"
)

// TreeBuilder lays out an isolated directory tree under t.TempDir().
// Paths are slash-separated and relative to the tree root.
type TreeBuilder struct {
	t    *testing.T
	root string
}

// NewTree creates an empty tree rooted in a fresh temporary directory
func NewTree(t *testing.T) *TreeBuilder {
	t.Helper()
	return &TreeBuilder{t: t, root: t.TempDir()}
}

// Root returns the absolute tree root
func (tb *TreeBuilder) Root() string {
	return tb.root
}

// Path returns the absolute location of rel
func (tb *TreeBuilder) Path(rel string) string {
	return filepath.Join(tb.root, filepath.FromSlash(rel))
}

// AddFile writes content to rel, creating parent directories
func (tb *TreeBuilder) AddFile(rel, content string) *TreeBuilder {
	tb.t.Helper()
	full := tb.Path(rel)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		tb.t.Fatalf("mkdir for %s: %v", rel, err)
	}
	if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
		tb.t.Fatalf("write %s: %v", rel, err)
	}
	return tb
}

// AddDir creates rel and any missing parents
func (tb *TreeBuilder) AddDir(rel string) *TreeBuilder {
	tb.t.Helper()
	if err := os.MkdirAll(tb.Path(rel), 0o755); err != nil {
		tb.t.Fatalf("mkdir %s: %v", rel, err)
	}
	return tb
}

// AddSymlink creates a symlink at rel pointing at target. The test is
// skipped when the platform refuses to create links.
func (tb *TreeBuilder) AddSymlink(target, rel string) *TreeBuilder {
	tb.t.Helper()
	full := tb.Path(rel)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		tb.t.Fatalf("mkdir for %s: %v", rel, err)
	}
	if err := os.Symlink(target, full); err != nil {
		tb.t.Skipf("symlinks unavailable: %v", err)
	}
	return tb
}

// WriteTree creates every file in files (rel path -> content) under a new
// temporary root and returns it.
func WriteTree(t *testing.T, files map[string]string) string {
	t.Helper()
	tb := NewTree(t)
	for rel, content := range files {
		tb.AddFile(rel, content)
	}
	return tb.Root()
}
