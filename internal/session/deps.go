// Package session drives the external collaborators of interactive mode:
// the fzf selector, the bat previewer and the editors launched on a
// selection.
package session

import (
	"os/exec"

	yerrors "github.com/standardbeagle/yoink/internal/errors"
)

// Binaries used by the interactive session
const (
	FzfBinary    = "fzf"
	BatBinary    = "bat"
	BatcatBinary = "batcat" // Debian and Ubuntu package name
	LsBinary     = "ls"
)

// EnsureDependency locates name in PATH. A missing binary is a SpawnError
// naming it.
func EnsureDependency(name string) (string, error) {
	path, err := exec.LookPath(name)
	if err != nil {
		return "", yerrors.NewSpawnError(name, "", err)
	}
	return path, nil
}

// EnsureDependencies checks every name in order and stops at the first one missing.
func EnsureDependencies(names ...string) error {
	for _, name := range names {
		if _, err := EnsureDependency(name); err != nil {
			return err
		}
	}
	return nil
}

// ResolveBat returns bat, or batcat where the distribution renamed it.
func ResolveBat() (string, error) {
	if path, err := exec.LookPath(BatBinary); err == nil {
		return path, nil
	}
	if path, err := exec.LookPath(BatcatBinary); err == nil {
		return path, nil
	}
	_, err := EnsureDependency(BatBinary)
	return "", err
}
