package session

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"

	"github.com/mattn/go-runewidth"
	"github.com/sirupsen/logrus"

	yerrors "github.com/standardbeagle/yoink/internal/errors"
)

const (
	// PreviewContext is the number of lines shown on each side of the focused line
	PreviewContext = 30
	// PreviewHeadLines is the number of leading lines shown when no line is focused
	PreviewHeadLines = 300
)

// LineFinder locates the first line of file matching query
type LineFinder interface {
	FirstMatchLine(ctx context.Context, file, query string) (int, bool)
}

// Previewer renders the preview pane for one selected row.
type Previewer struct {
	Bat    string     // resolved bat or batcat binary
	Lines  LineFinder // used when the row carries no line number
	Width  int        // fallback truncation width in cells, 0 for none
	Stdout io.Writer
	Stderr io.Writer
	Log    *logrus.Entry
}

// LineRange returns the window of lines shown around line.
func LineRange(line int) (start, end int) {
	start = line - PreviewContext
	if start < 1 {
		start = 1
	}
	return start, line + PreviewContext
}

// BatArgs builds the bat invocation for file, focused on line when line > 0.
func BatArgs(file string, line int) []string {
	args := []string{"--style=numbers", "--color=always"}
	if line > 0 {
		start, end := LineRange(line)
		args = append(args,
			"--highlight-line", strconv.Itoa(line),
			"--line-range", fmt.Sprintf("%d:%d", start, end),
		)
	} else {
		args = append(args, fmt.Sprintf("--line-range=:%d", PreviewHeadLines))
	}
	return append(args, file)
}

// PreviewWidth reads the preview pane width fzf exports, 0 when unknown.
func PreviewWidth() int {
	n, err := strconv.Atoi(os.Getenv("FZF_PREVIEW_COLUMNS"))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// Preview renders rel under root. Directories are listed; files go through
// bat, falling back to printing the head of the file when bat fails.
func (p *Previewer) Preview(ctx context.Context, root, rel, query string, line int) error {
	full := filepath.Join(root, filepath.FromSlash(rel))

	info, err := os.Stat(full)
	if err != nil {
		return yerrors.NewFileError("preview", full, err)
	}
	if info.IsDir() {
		return p.run(ctx, LsBinary, "directory listing", "-la", full)
	}

	if line <= 0 && query != "" && p.Lines != nil {
		if n, ok := p.Lines.FirstMatchLine(ctx, full, query); ok {
			line = n
		}
	}

	if p.Bat != "" {
		err := p.run(ctx, p.Bat, "file preview", BatArgs(full, line)...)
		if err == nil {
			return nil
		}
		p.logger().WithError(err).Debug("bat preview failed, printing head of file")
	}

	fh, err := os.Open(full)
	if err != nil {
		return yerrors.NewFileError("preview", full, err)
	}
	defer fh.Close()
	return WriteHead(p.Stdout, fh, PreviewHeadLines, p.Width)
}

func (p *Previewer) run(ctx context.Context, bin, op string, args ...string) error {
	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Stdout = p.Stdout
	cmd.Stderr = p.Stderr
	if err := cmd.Run(); err != nil {
		return yerrors.NewSpawnError(bin, op, err)
	}
	return nil
}

func (p *Previewer) logger() *logrus.Entry {
	if p.Log == nil {
		return logrus.NewEntry(logrus.StandardLogger())
	}
	return p.Log
}

// WriteHead copies the first maxLines lines of r to w, truncating each to
// width display cells when width is positive.
func WriteHead(w io.Writer, r io.Reader, maxLines, width int) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	bw := bufio.NewWriter(w)

	for n := 0; n < maxLines && scanner.Scan(); n++ {
		text := scanner.Text()
		if width > 0 {
			text = runewidth.Truncate(text, width, "…")
		}
		if _, err := bw.WriteString(text + "\n"); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	return bw.Flush()
}
