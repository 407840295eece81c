package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/standardbeagle/yoink/internal/config"
	"github.com/standardbeagle/yoink/internal/searchtypes"
)

func TestMerger_ORMergesFlags(t *testing.T) {
	m := NewMerger()
	m.Add(searchtypes.Candidate{Path: "a.txt", PathMatch: true})
	m.Add(searchtypes.Candidate{Path: "b.txt", ContentMatch: true})
	m.Add(searchtypes.Candidate{Path: "a.txt", ContentMatch: true})
	m.Add(searchtypes.Candidate{Path: "a.txt", PathMatch: true})

	assert.Equal(t, 2, m.Len())
	assert.True(t, m.Has("a.txt"))
	assert.False(t, m.Has("c.txt"))
	assert.Equal(t, []searchtypes.Candidate{
		{Path: "a.txt", PathMatch: true, ContentMatch: true},
		{Path: "b.txt", ContentMatch: true},
	}, m.Candidates())
}

func TestMerger_CandidatesIsACopy(t *testing.T) {
	m := NewMerger()
	m.Add(searchtypes.Candidate{Path: "a.txt", PathMatch: true})

	got := m.Candidates()
	got[0].Path = "mutated"
	assert.Equal(t, "a.txt", m.Candidates()[0].Path)
}

func TestRank(t *testing.T) {
	input := func() []searchtypes.Candidate {
		return []searchtypes.Candidate{
			{Path: "b/deeper/file2.txt"},
			{Path: "z_root.txt"},
			{Path: "a/deeper/file1.txt"},
			{Path: "a_root.txt"},
		}
	}

	tests := []struct {
		name string
		mode config.SortMode
		want []string
	}{
		{"depth", config.SortDepth, []string{"a_root.txt", "z_root.txt", "a/deeper/file1.txt", "b/deeper/file2.txt"}},
		{"alphabetical", config.SortAlphabetical, []string{"a/deeper/file1.txt", "a_root.txt", "b/deeper/file2.txt", "z_root.txt"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cs := input()
			Rank(cs, tt.mode)
			assert.Equal(t, tt.want, paths(cs))
		})
	}
}

func TestRank_DepthInvariant(t *testing.T) {
	cs := []searchtypes.Candidate{
		{Path: "x/y/z"}, {Path: "b"}, {Path: "a/b"}, {Path: "a"}, {Path: "c/d/e/f"}, {Path: "c/a"},
	}
	Rank(cs, config.SortDepth)
	for i := 1; i < len(cs); i++ {
		prev, cur := cs[i-1], cs[i]
		if prev.Depth() == cur.Depth() {
			assert.Less(t, prev.Path, cur.Path)
		} else {
			assert.Less(t, prev.Depth(), cur.Depth())
		}
	}
}

func TestMerger_ComposedAndDecomposedShareOneCandidate(t *testing.T) {
	decomposed := "cafe\u0301.txt"
	composed := "caf\u00e9.txt"

	m := NewMerger()
	m.Add(searchtypes.Candidate{Path: decomposed, PathMatch: true})
	m.Add(searchtypes.Candidate{Path: composed, ContentMatch: true})

	require.Equal(t, 1, m.Len())
	got := m.Candidates()[0]
	assert.Equal(t, decomposed, got.Path, "the first spelling seen is kept")
	assert.True(t, got.PathMatch)
	assert.True(t, got.ContentMatch)

	path, ok := m.Lookup(composed)
	assert.True(t, ok)
	assert.Equal(t, decomposed, path)
	assert.True(t, m.Has(decomposed))
}
