// Package ripgrep drives the external content searcher. Every invocation is
// scoped to the search root through the working directory and each output
// line is parsed independently; malformed lines are dropped.
package ripgrep

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	yerrors "github.com/standardbeagle/yoink/internal/errors"
)

// DefaultBinary is the content searcher looked up in PATH
const DefaultBinary = "rg"

// Runner executes the content searcher and buffers its output.
type Runner struct {
	Binary  string
	Timeout time.Duration // zero means unbounded

	log *logrus.Entry
}

// NewRunner creates a runner for binary. An empty binary selects DefaultBinary.
func NewRunner(binary string, timeout time.Duration, log *logrus.Entry) *Runner {
	if binary == "" {
		binary = DefaultBinary
	}
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Runner{Binary: binary, Timeout: timeout, log: log}
}

// Run executes the binary with args in dir and returns its stdout.
//
// A non-zero exit status is not an error: the searcher exits 1 when nothing
// matched and 2 on partial read failures, and whatever it printed is still
// usable. Failure to start the process, and hitting the timeout, are errors.
func (r *Runner) Run(ctx context.Context, dir string, args []string) ([]byte, error) {
	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, r.Binary, args...)
	cmd.Dir = dir

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, yerrors.NewSpawnError(r.Binary, "content search", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, yerrors.NewSpawnError(r.Binary, "content search", err)
	}

	if err := cmd.Start(); err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return nil, yerrors.NewSpawnError(r.Binary, "", err)
		}
		return nil, yerrors.NewSpawnError(r.Binary, "content search", err)
	}

	var out, diag bytes.Buffer
	var g errgroup.Group
	g.Go(func() error {
		_, err := io.Copy(&out, stdout)
		return err
	})
	g.Go(func() error {
		_, err := io.Copy(&diag, stderr)
		return err
	})
	copyErr := g.Wait()
	waitErr := cmd.Wait()

	if ctxErr := ctx.Err(); ctxErr != nil {
		if errors.Is(ctxErr, context.DeadlineExceeded) && r.Timeout > 0 {
			ctxErr = fmt.Errorf("timed out after %s: %w", r.Timeout, ctxErr)
		}
		return nil, yerrors.NewSpawnError(r.Binary, "content search", ctxErr)
	}
	if copyErr != nil {
		return nil, yerrors.NewSpawnError(r.Binary, "content search", copyErr)
	}

	if waitErr != nil {
		var exitErr *exec.ExitError
		if !errors.As(waitErr, &exitErr) {
			return nil, yerrors.NewSpawnError(r.Binary, "content search", waitErr)
		}
		r.log.WithFields(logrus.Fields{
			"exit":   exitErr.ExitCode(),
			"stderr": diag.String(),
		}).Debug("content searcher exited non-zero")
	}

	return out.Bytes(), nil
}
