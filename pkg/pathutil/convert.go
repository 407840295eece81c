// Package pathutil provides utilities for converting between absolute and relative paths.
//
// Architecture Pattern:
// yoink identifies every candidate by a slash-separated path relative to the search root.
// The walker produces absolute paths and the content searcher prints "./"-prefixed relative
// paths; both are converted here so they land in the same identity space.
package pathutil

import (
	"path/filepath"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// ToRelative converts an absolute path to relative based on a root directory.
// Falls back to the original path if conversion fails or path is already relative.
//
// Examples:
//   - ToRelative("/home/user/project/src/main.go", "/home/user/project") → "src/main.go"
//   - ToRelative("/other/location/file.go", "/home/user/project") → "/other/location/file.go" (outside root)
//   - ToRelative("src/main.go", "/home/user/project") → "src/main.go" (already relative)
func ToRelative(absPath, rootDir string) string {
	// Handle empty inputs
	if absPath == "" || rootDir == "" {
		return absPath
	}

	// If path is already relative, return as-is
	if !filepath.IsAbs(absPath) {
		return absPath
	}

	absPath = filepath.Clean(absPath)
	rootDir = filepath.Clean(rootDir)

	relPath, err := filepath.Rel(rootDir, absPath)
	if err != nil {
		// Conversion failed (e.g., different drives on Windows) - return absolute
		return absPath
	}

	// If the relative path starts with ".." it means the file is outside the root
	if relPath == ".." || strings.HasPrefix(relPath, ".."+string(filepath.Separator)) {
		return absPath
	}

	return relPath
}

// StripCurrentDir removes every leading "./" marker from a path printed by an
// external tool.
func StripCurrentDir(p string) string {
	for strings.HasPrefix(p, "./") {
		p = p[2:]
	}
	if filepath.Separator != '/' {
		prefix := "." + string(filepath.Separator)
		for strings.HasPrefix(p, prefix) {
			p = p[len(prefix):]
		}
	}
	return p
}

// Key normalizes a relative path into candidate form: forward slashes and no
// current-dir marker. The bytes of each name are kept as they are on disk so
// the key can always be opened again.
func Key(rel string) string {
	return filepath.ToSlash(StripCurrentDir(rel))
}

// Identity returns the NFC-composed form of key. Two keys that differ only in
// Unicode composition share one identity.
func Identity(key string) string {
	return norm.NFC.String(key)
}

// HasHiddenComponent reports whether any segment of a slash-separated relative
// path starts with a dot.
func HasHiddenComponent(rel string) bool {
	for _, segment := range strings.Split(rel, "/") {
		if strings.HasPrefix(segment, ".") && segment != "." && segment != ".." {
			return true
		}
	}
	return false
}

// Base returns the final component of a slash-separated relative path.
func Base(rel string) string {
	if i := strings.LastIndexByte(rel, '/'); i >= 0 {
		return rel[i+1:]
	}
	return rel
}
