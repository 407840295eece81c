package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	yerrors "github.com/standardbeagle/yoink/internal/errors"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".yoinkignore")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	s, err := Load(Sources{UserFile: filepath.Join(t.TempDir(), "absent")}, nil)
	require.NoError(t, err)

	assert.False(t, s.IncludeHidden)
	assert.False(t, s.IncludeMounts)
	assert.False(t, s.IncludeSymlinks)
	assert.Equal(t, SortDepth, s.SortMode)
	assert.Equal(t, DefaultIgnoreGlobs, s.Globs)
}

func TestLoad_UnsetPathUsesDefaults(t *testing.T) {
	s, err := Load(Sources{}, nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultIgnoreGlobs, s.Globs)
	assert.True(t, s.IsIgnored(".git/config"))
	assert.True(t, s.IsIgnored("node_modules/react/index.js"))
}

func TestLoad_TogglesAndGlobs(t *testing.T) {
	path := writeConfig(t, strings.Join([]string{
		"# personal ignores",
		"",
		"INCLUDE_HIDDEN = Yes",
		"include_mounts=on",
		"include_symlinks=1",
		"sort_mode=Alphabetical",
		"target/**",
		"  *.log  ",
	}, "\n"))

	s, err := Load(Sources{UserFile: path}, nil)
	require.NoError(t, err)

	assert.True(t, s.IncludeHidden)
	assert.True(t, s.IncludeMounts)
	assert.True(t, s.IncludeSymlinks)
	assert.Equal(t, SortAlphabetical, s.SortMode)
	assert.Equal(t, []string{".git/**", "node_modules/**", "target/**", "*.log"}, s.Globs)
}

func TestLoad_BooleanSpellings(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"true", true}, {"1", true}, {"yes", true}, {"ON", true},
		{"false", false}, {"0", false}, {"No", false}, {"off", false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			s, err := Parse(strings.NewReader("include_hidden="+tt.value), "test")
			require.NoError(t, err)
			assert.Equal(t, tt.want, s.IncludeHidden)
		})
	}
}

func TestLoad_InvalidBooleanIsError(t *testing.T) {
	path := writeConfig(t, "include_symlinks=sometimes\n")

	_, err := Load(Sources{UserFile: path}, nil)
	require.Error(t, err)

	var cfgErr *yerrors.ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "include_symlinks", cfgErr.Key)
	assert.Equal(t, "sometimes", cfgErr.Value)
	assert.Contains(t, err.Error(), path)
}

func TestLoad_InvalidSortModeIsError(t *testing.T) {
	_, err := Parse(strings.NewReader("sort_mode=size"), "cfg")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sort_mode")
	assert.Contains(t, err.Error(), "size")
}

func TestLoad_InvalidGlobIsError(t *testing.T) {
	_, err := Parse(strings.NewReader("src/[abc"), "cfg")
	require.Error(t, err)

	var cfgErr *yerrors.ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "glob", cfgErr.Key)
	assert.Equal(t, "src/[abc", cfgErr.Value)
}

func TestLoad_UnreadableFileIsError(t *testing.T) {
	// a directory cannot be read as a config file
	_, err := Load(Sources{UserFile: t.TempDir()}, nil)
	require.Error(t, err)

	var cfgErr *yerrors.ConfigError
	assert.ErrorAs(t, err, &cfgErr)
}

func TestLoad_UnknownKeyBecomesGlobWithHint(t *testing.T) {
	var logs bytes.Buffer
	logger := logrus.New()
	logger.SetOutput(&logs)

	path := writeConfig(t, "include_hiden=true\n")
	s, err := Load(Sources{UserFile: path}, logrus.NewEntry(logger))
	require.NoError(t, err)

	assert.False(t, s.IncludeHidden)
	assert.Contains(t, s.Globs, "include_hiden=true")
	assert.Contains(t, logs.String(), "did you mean include_hidden")
}

func TestSuggestKey(t *testing.T) {
	got, ok := suggestKey("sort_mod")
	assert.True(t, ok)
	assert.Equal(t, KeySortMode, got)

	_, ok = suggestKey("build")
	assert.False(t, ok)

	_, ok = suggestKey("")
	assert.False(t, ok)
}

func TestGlobSet_Match(t *testing.T) {
	set, err := NewGlobSet(".git/**", "ignored_dir/**", "*.log", "docs/*.md")
	require.NoError(t, err)

	tests := []struct {
		path string
		want bool
	}{
		{".git/HEAD", true},
		{".git/refs/heads/main", true},
		{"ignored_dir/hit.txt", true},
		{"ignored_dir/nested/deep.txt", true},
		{"app.log", true},
		{"logs/2024/app.log", true},
		{"docs/readme.md", true},
		{"docs/api/readme.md", false},
		{"kept.txt", false},
		{"src/ignored_dir.go", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, set.Match(tt.path))
		})
	}
	assert.Equal(t, 4, set.Len())
}

func TestSettings_TOML(t *testing.T) {
	s, err := Parse(strings.NewReader("sort_mode=alphabetical\ninclude_hidden=true\nbuild/**"), "cfg")
	require.NoError(t, err)

	out, err := s.TOML()
	require.NoError(t, err)

	text := string(out)
	assert.Contains(t, text, "include_hidden = true")
	assert.Contains(t, text, "sort_mode")
	assert.Contains(t, text, "alphabetical")
	assert.Contains(t, text, "build/**")
}

func TestLoad_ProjectOverlay(t *testing.T) {
	user := writeConfig(t, "include_hidden=false\nsort_mode=depth\nuser_dir/**\n")
	project := filepath.Join(t.TempDir(), ProjectFileName)
	require.NoError(t, os.WriteFile(project, []byte(`
include_hidden true
sort_mode "alphabetical"
exclude "dist/**" "coverage/**"
`), 0644))

	s, err := Load(Sources{UserFile: user, ProjectFile: project}, nil)
	require.NoError(t, err)

	assert.True(t, s.IncludeHidden)
	assert.Equal(t, SortAlphabetical, s.SortMode)
	assert.Equal(t, []string{".git/**", "node_modules/**", "user_dir/**", "dist/**", "coverage/**"}, s.Globs)
	assert.True(t, s.IsIgnored("dist/bundle.js"))
}

func TestLoad_ProjectOverlayBlockForm(t *testing.T) {
	project := filepath.Join(t.TempDir(), ProjectFileName)
	require.NoError(t, os.WriteFile(project, []byte(`
exclude {
    "vendor/**"
    "tmp/**"
}
`), 0644))

	s, err := Load(Sources{ProjectFile: project}, nil)
	require.NoError(t, err)
	assert.Contains(t, s.Globs, "vendor/**")
	assert.Contains(t, s.Globs, "tmp/**")
}

func TestLoad_ProjectOverlayInvalidValue(t *testing.T) {
	project := filepath.Join(t.TempDir(), ProjectFileName)
	require.NoError(t, os.WriteFile(project, []byte(`include_mounts 3`), 0644))

	_, err := Load(Sources{ProjectFile: project}, nil)
	require.Error(t, err)

	var cfgErr *yerrors.ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, KeyIncludeMounts, cfgErr.Key)
	assert.Equal(t, project, cfgErr.Path)
}

func TestLoad_ProjectOverlayMissingIsIgnored(t *testing.T) {
	s, err := Load(Sources{ProjectFile: filepath.Join(t.TempDir(), ProjectFileName)}, nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultIgnoreGlobs, s.Globs)
}
