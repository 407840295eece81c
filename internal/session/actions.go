package session

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
)

// Editors bound to the selector's expect keys
var Editors = map[string]string{
	"ctrl-v": "vim",
	"ctrl-o": "code",
	"ctrl-s": "subl",
}

// ResolveTargetDir returns the directory containing the selected path.
func ResolveTargetDir(root, rel string) string {
	full := filepath.Join(root, filepath.FromSlash(rel))
	parent := filepath.Dir(full)
	if parent == "" || parent == full {
		return root
	}
	return parent
}

// OpenInEditor runs editor on the selected path attached to the terminal.
func OpenInEditor(ctx context.Context, editor, root, rel string) error {
	bin, err := EnsureDependency(editor)
	if err != nil {
		return err
	}

	cmd := exec.CommandContext(ctx, bin, filepath.Join(root, filepath.FromSlash(rel)))
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("editor command exited unsuccessfully: %s: %w", editor, err)
	}
	return nil
}
