package session

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	yerrors "github.com/standardbeagle/yoink/internal/errors"
	"github.com/standardbeagle/yoink/testhelpers"
)

func TestFzfArgs(t *testing.T) {
	args := FzfArgs("yoink __search --rich {q}", "yoink __preview {2} {q} {3}", "")
	assert.Contains(t, args, "--ansi")
	assert.Contains(t, args, "--disabled")
	assert.Contains(t, args, "--print-query")
	assert.Contains(t, args, "--expect=enter,ctrl-v,ctrl-o,ctrl-s")
	assert.Contains(t, args, "start:reload:yoink __search --rich {q}")
	assert.Contains(t, args, "change:reload:yoink __search --rich {q}")
	assert.NotContains(t, args, "--query")

	args = FzfArgs("r", "p", "needle")
	assert.Equal(t, []string{"--query", "needle"}, args[len(args)-2:])
}

func TestCommands(t *testing.T) {
	reload, preview := Commands("/usr/local/bin/yoink", []string{"--config", "/home/me/my ignore"})
	assert.Equal(t, "/usr/local/bin/yoink --config '/home/me/my ignore' __search --rich -- {q}", reload)
	assert.Equal(t, "/usr/local/bin/yoink --config '/home/me/my ignore' __preview -- {2} {q} {3}", preview)
}

func TestShellQuote(t *testing.T) {
	assert.Equal(t, "plain-path/x.y", ShellQuote("plain-path/x.y"))
	assert.Equal(t, "''", ShellQuote(""))
	assert.Equal(t, `'it'\''s'`, ShellQuote("it's"))
	assert.Equal(t, "'a b'", ShellQuote("a b"))
}

func TestParseSelection(t *testing.T) {
	tests := []struct {
		name   string
		out    string
		want   Selection
		wantOK bool
	}{
		{
			name:   "occurrence row with enter",
			out:    "needle\nenter\n   ↳ 3  x\tsrc/a.go\t3\n",
			want:   Selection{Query: "needle", Key: "enter", Path: "src/a.go", Line: 3},
			wantOK: true,
		},
		{
			name:   "header row with editor key",
			out:    "needle\nctrl-v\n📄 a.txt\ta.txt\t\n",
			want:   Selection{Query: "needle", Key: "ctrl-v", Path: "a.txt"},
			wantOK: true,
		},
		{
			name:   "empty key defaults to enter",
			out:    "q\n\nrow\tdir/file\t\n",
			want:   Selection{Query: "q", Key: "enter", Path: "dir/file"},
			wantOK: true,
		},
		{
			name:   "nothing selected",
			out:    "q\nenter\n",
			want:   Selection{Query: "q", Key: "enter"},
			wantOK: false,
		},
		{
			name:   "row without path field",
			out:    "q\nenter\njust display\n",
			want:   Selection{Query: "q", Key: "enter"},
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseSelection([]byte(tt.out))
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveTargetDir(t *testing.T) {
	root := filepath.FromSlash("/work/proj")
	assert.Equal(t, filepath.FromSlash("/work/proj/src"), ResolveTargetDir(root, "src/main.go"))
	assert.Equal(t, root, ResolveTargetDir(root, "README.md"))
	assert.Equal(t, root, ResolveTargetDir(root, "sub_needle"))
}

func TestSessionAct(t *testing.T) {
	var stdout, stderr bytes.Buffer
	var opened []string
	s := &Session{
		Root:   "/work",
		Stdout: &stdout,
		Stderr: &stderr,
		Open: func(_ context.Context, editor, root, rel string) error {
			opened = append(opened, editor+":"+rel)
			if editor == "subl" {
				return errors.New("boom")
			}
			return nil
		},
	}

	require.NoError(t, s.act(context.Background(), Selection{Key: "enter", Path: "a/b.txt"}))
	assert.Equal(t, filepath.FromSlash("/work/a")+"\n", stdout.String())

	require.NoError(t, s.act(context.Background(), Selection{Key: "ctrl-o", Path: "a/b.txt"}))
	require.NoError(t, s.act(context.Background(), Selection{Key: "ctrl-s", Path: "a/b.txt"}))
	assert.Equal(t, []string{"code:a/b.txt", "subl:a/b.txt"}, opened)
	assert.Contains(t, stderr.String(), "yoink editor error: boom")
}

func TestEnsureDependency_Missing(t *testing.T) {
	_, err := EnsureDependency("yoink-no-such-binary")
	require.Error(t, err)

	var spawnErr *yerrors.SpawnError
	require.True(t, errors.As(err, &spawnErr))
	assert.Contains(t, err.Error(), "required dependency not found in PATH: yoink-no-such-binary")

	err = EnsureDependencies("yoink-no-such-binary", "another-missing")
	assert.Contains(t, err.Error(), "yoink-no-such-binary")
}

func TestLineRangeAndBatArgs(t *testing.T) {
	start, end := LineRange(10)
	assert.Equal(t, 1, start)
	assert.Equal(t, 40, end)

	start, end = LineRange(100)
	assert.Equal(t, 70, start)
	assert.Equal(t, 130, end)

	assert.Equal(t, []string{
		"--style=numbers", "--color=always", "--highlight-line", "100", "--line-range", "70:130", "f.go",
	}, BatArgs("f.go", 100))
	assert.Equal(t, []string{"--style=numbers", "--color=always", "--line-range=:300", "f.go"}, BatArgs("f.go", 0))
}

func TestWriteHead(t *testing.T) {
	var lines []string
	for i := 0; i < 5; i++ {
		lines = append(lines, strings.Repeat("漢", 10))
	}
	var out bytes.Buffer
	require.NoError(t, WriteHead(&out, strings.NewReader(strings.Join(lines, "\n")), 3, 7))

	got := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	require.Len(t, got, 3)
	assert.Equal(t, "漢漢漢…", got[0])

	out.Reset()
	require.NoError(t, WriteHead(&out, strings.NewReader("short\n"), 10, 0))
	assert.Equal(t, "short\n", out.String())
}

type fixedLine int

func (f fixedLine) FirstMatchLine(context.Context, string, string) (int, bool) {
	return int(f), f > 0
}

func TestPreview_FallbackWhenBatMissing(t *testing.T) {
	root := testhelpers.WriteTree(t, map[string]string{"a.txt": "one\ntwo\n"})

	var out bytes.Buffer
	p := &Previewer{Lines: fixedLine(2), Stdout: &out, Stderr: &out}
	require.NoError(t, p.Preview(context.Background(), root, "a.txt", "two", 0))
	assert.Equal(t, "one\ntwo\n", out.String())
}

func TestPreview_BatFailureFallsBack(t *testing.T) {
	falseBin := testhelpers.RequireBinary(t, "false")
	root := testhelpers.WriteTree(t, map[string]string{"a.txt": "content\n"})

	var out bytes.Buffer
	p := &Previewer{Bat: falseBin, Stdout: &out, Stderr: &out}
	require.NoError(t, p.Preview(context.Background(), root, "a.txt", "", 0))
	assert.Equal(t, "content\n", out.String())
}

func TestPreview_Directory(t *testing.T) {
	testhelpers.RequireBinary(t, LsBinary)
	root := testhelpers.WriteTree(t, map[string]string{"dir/inside.txt": "x"})

	var out bytes.Buffer
	p := &Previewer{Stdout: &out, Stderr: &out}
	require.NoError(t, p.Preview(context.Background(), root, "dir", "", 0))
	assert.Contains(t, out.String(), "inside.txt")
}

func TestPreview_MissingPath(t *testing.T) {
	var out bytes.Buffer
	p := &Previewer{Stdout: &out, Stderr: &out}
	err := p.Preview(context.Background(), t.TempDir(), "gone.txt", "", 0)

	var fileErr *yerrors.FileError
	assert.True(t, errors.As(err, &fileErr))
}
