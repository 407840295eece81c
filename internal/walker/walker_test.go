package walker

import (
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/standardbeagle/yoink/internal/config"
	"github.com/standardbeagle/yoink/internal/filter"
	"github.com/standardbeagle/yoink/internal/searchtypes"
	"github.com/standardbeagle/yoink/testhelpers"
)

func walkPaths(t *testing.T, root string, settings *config.Settings, match Matcher) []string {
	t.Helper()
	f, err := filter.New(root, settings)
	require.NoError(t, err)

	got, err := Walk(root, f, match, nil)
	require.NoError(t, err)

	paths := make([]string, 0, len(got))
	for _, c := range got {
		assert.True(t, c.PathMatch, c.Path)
		assert.False(t, c.ContentMatch, c.Path)
		paths = append(paths, c.Path)
	}
	sort.Strings(paths)
	return paths
}

func TestWalk_EmptyQueryListsEverythingVisible(t *testing.T) {
	tb := testhelpers.NewTree(t).
		AddFile("a.txt", "").
		AddFile("sub/b.txt", "").
		AddFile(".hidden/secret.txt", "").
		AddFile(".git/HEAD", "").
		AddFile("node_modules/pkg/index.js", "")

	got := walkPaths(t, tb.Root(), config.Default(), MatchAll)
	assert.Equal(t, []string{"a.txt", "sub", "sub/b.txt"}, got)
}

func TestWalk_QueryMatchesPathOrName(t *testing.T) {
	tb := testhelpers.NewTree(t).
		AddFile("sub_needle/file.txt", "").
		AddFile("other/needle.go", "").
		AddFile("plain.txt", "")

	got := walkPaths(t, tb.Root(), config.Default(), QueryMatcher(regexp.MustCompile("needle")))
	assert.Equal(t, []string{"other/needle.go", "sub_needle", "sub_needle/file.txt"}, got)
}

func TestWalk_DirectoryFlag(t *testing.T) {
	tb := testhelpers.NewTree(t).AddFile("src/main.go", "")

	f, err := filter.New(tb.Root(), config.Default())
	require.NoError(t, err)
	got, err := Walk(tb.Root(), f, MatchAll, nil)
	require.NoError(t, err)

	byPath := map[string]searchtypes.Candidate{}
	for _, c := range got {
		byPath[c.Path] = c
	}
	assert.True(t, byPath["src"].IsDir)
	assert.False(t, byPath["src/main.go"].IsDir)
}

func TestWalk_IgnoreGlobPrunes(t *testing.T) {
	tb := testhelpers.NewTree(t).
		AddFile("ignored_dir/hit.txt", "").
		AddFile("kept/hit.txt", "")

	settings, err := config.Parse(strings.NewReader("ignored_dir\nignored_dir/**\n"), "test")
	require.NoError(t, err)

	got := walkPaths(t, tb.Root(), settings, QueryMatcher(regexp.MustCompile("hit")))
	assert.Equal(t, []string{"kept/hit.txt"}, got)
}

func TestWalk_HiddenIncluded(t *testing.T) {
	tb := testhelpers.NewTree(t).AddFile(".hidden/secret.txt", "")

	settings, err := config.Parse(strings.NewReader("include_hidden=true"), "test")
	require.NoError(t, err)

	got := walkPaths(t, tb.Root(), settings, QueryMatcher(regexp.MustCompile("secret")))
	assert.Equal(t, []string{".hidden/secret.txt"}, got)
}

func TestWalk_SymlinksSkippedByDefault(t *testing.T) {
	tb := testhelpers.NewTree(t).
		AddFile("real/target.txt", "").
		AddSymlink("real", "linkdir")

	got := walkPaths(t, tb.Root(), config.Default(), QueryMatcher(regexp.MustCompile("link")))
	assert.Empty(t, got)

	settings, err := config.Parse(strings.NewReader("include_symlinks=true"), "test")
	require.NoError(t, err)
	got = walkPaths(t, tb.Root(), settings, QueryMatcher(regexp.MustCompile("link")))
	assert.Equal(t, []string{"linkdir"}, got)
}

func TestQueryMatcher_NilMatchesAll(t *testing.T) {
	assert.True(t, QueryMatcher(nil)("anything", "anything"))
}

func TestWalk_DecomposedNameIsReportedAsStored(t *testing.T) {
	tb := testhelpers.NewTree(t).AddFile("dir/cafe\u0301.txt", "")

	entries, err := os.ReadDir(tb.Path("dir"))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	want := "dir/" + entries[0].Name()

	got := walkPaths(t, tb.Root(), config.Default(), MatchAll)
	assert.Equal(t, []string{"dir", want}, got)

	for _, rel := range got {
		_, err := os.Stat(filepath.Join(tb.Root(), filepath.FromSlash(rel)))
		assert.NoError(t, err, rel)
	}
}
