package session

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	yerrors "github.com/standardbeagle/yoink/internal/errors"
)

const (
	fzfHeader = "Enter: cd to container  |  Ctrl-V: vim  |  Ctrl-O: code  |  Ctrl-S: subl"
	fzfPrompt = "regex> "
	keyEnter  = "enter"
)

// FzfArgs builds the selector invocation. reload and preview are the shell
// commands fzf runs to refill the list and to preview the current row.
func FzfArgs(reload, preview, initialQuery string) []string {
	args := []string{
		"--ansi",
		"--delimiter", "\t",
		"--with-nth", "1",
		"--layout=reverse",
		"--height=100%",
		"--header", fzfHeader,
		"--preview-window=right:65%:wrap",
		"--preview", preview,
		"--disabled",
		"--print-query",
		"--expect=enter,ctrl-v,ctrl-o,ctrl-s",
		"--bind", "start:reload:" + reload,
		"--bind", "change:reload:" + reload,
		"--prompt", fzfPrompt,
	}
	if initialQuery != "" {
		args = append(args, "--query", initialQuery)
	}
	return args
}

// Commands builds the reload and preview commands that call back into exe.
// globals are forwarded so the child processes load the same settings. The
// placeholders follow "--" so a query or path starting with a dash stays an
// argument.
func Commands(exe string, globals []string) (reload, preview string) {
	prefix := ShellQuote(exe)
	for _, g := range globals {
		prefix += " " + ShellQuote(g)
	}
	return prefix + " __search --rich -- {q}", prefix + " __preview -- {2} {q} {3}"
}

// ShellQuote quotes s for a POSIX shell.
func ShellQuote(s string) string {
	if s != "" && strings.IndexFunc(s, func(r rune) bool {
		return !(r == '/' || r == '.' || r == '-' || r == '_' || r == '=' ||
			(r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9'))
	}) < 0 {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// Selection is what the user picked in the selector
type Selection struct {
	Query string
	Key   string
	Path  string
	Line  int // zero when a header row was selected
}

// ParseSelection parses the selector output: the query line, the expect
// key line, then the selected row. It reports false when nothing usable was
// selected.
func ParseSelection(out []byte) (Selection, bool) {
	scanner := bufio.NewScanner(bytes.NewReader(out))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var lines []string
	for len(lines) < 3 && scanner.Scan() {
		lines = append(lines, scanner.Text())
	}

	var sel Selection
	if len(lines) > 0 {
		sel.Query = lines[0]
	}
	sel.Key = keyEnter
	if len(lines) > 1 && lines[1] != "" {
		sel.Key = lines[1]
	}
	if len(lines) < 3 || lines[2] == "" {
		return sel, false
	}

	sel.Path, sel.Line = ParseRow(lines[2])
	return sel, sel.Path != ""
}

// ParseRow extracts the path and line fields of a rich-form row.
func ParseRow(row string) (string, int) {
	parts := strings.SplitN(row, "\t", 3)
	if len(parts) < 2 {
		return "", 0
	}
	line := 0
	if len(parts) == 3 {
		if n, err := strconv.Atoi(strings.TrimSpace(parts[2])); err == nil && n > 0 {
			line = n
		}
	}
	return parts[1], line
}

// Session runs one interactive selection rooted at Root.
type Session struct {
	Fzf     string   // selector binary
	Exe     string   // this executable, used for reload and preview
	Globals []string // global flags forwarded to reload and preview
	Root    string

	Stdout io.Writer
	Stderr io.Writer
	Log    *logrus.Entry

	// Open launches an editor; OpenInEditor when nil
	Open func(ctx context.Context, editor, root, rel string) error
}

// Run starts the selector and acts on the selection. Cancelling the selector
// is not an error.
func (s *Session) Run(ctx context.Context, initialQuery string) error {
	reload, preview := Commands(s.Exe, s.Globals)

	fzf := s.Fzf
	if fzf == "" {
		fzf = FzfBinary
	}
	cmd := exec.CommandContext(ctx, fzf, FzfArgs(reload, preview, initialQuery)...)
	cmd.Dir = s.Root
	cmd.Stdin = os.Stdin
	cmd.Stderr = os.Stderr
	var out bytes.Buffer
	cmd.Stdout = &out

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			s.logger().WithField("exit", exitErr.ExitCode()).Debug("selector closed without a selection")
			return nil
		}
		return yerrors.NewSpawnError(fzf, "interactive selection", err)
	}

	sel, ok := ParseSelection(out.Bytes())
	if !ok {
		return nil
	}
	return s.act(ctx, sel)
}

func (s *Session) act(ctx context.Context, sel Selection) error {
	editor, isEditor := Editors[sel.Key]
	if !isEditor {
		_, err := fmt.Fprintln(s.Stdout, ResolveTargetDir(s.Root, sel.Path))
		return err
	}

	open := s.Open
	if open == nil {
		open = OpenInEditor
	}
	if err := open(ctx, editor, s.Root, sel.Path); err != nil {
		fmt.Fprintf(s.Stderr, "yoink editor error: %v\n", err)
	}
	return nil
}

func (s *Session) logger() *logrus.Entry {
	if s.Log == nil {
		return logrus.NewEntry(logrus.StandardLogger())
	}
	return s.Log
}
