package search

import (
	"github.com/standardbeagle/yoink/internal/searchtypes"
	"github.com/standardbeagle/yoink/pkg/pathutil"
)

// Merger unifies walker and content-search discoveries into one path-keyed
// collection. A path seen more than once keeps one candidate whose flags are
// the OR of every discovery. Paths are compared by their NFC identity; the
// candidate keeps the spelling of its first discovery.
type Merger struct {
	byKey map[string]int
	items []searchtypes.Candidate
}

// NewMerger creates an empty merger
func NewMerger() *Merger {
	return &Merger{byKey: make(map[string]int)}
}

// Add merges c into the collection
func (m *Merger) Add(c searchtypes.Candidate) {
	id := pathutil.Identity(c.Path)
	if i, ok := m.byKey[id]; ok {
		existing := &m.items[i]
		existing.PathMatch = existing.PathMatch || c.PathMatch
		existing.ContentMatch = existing.ContentMatch || c.ContentMatch
		existing.IsDir = existing.IsDir || c.IsDir
		return
	}
	m.byKey[id] = len(m.items)
	m.items = append(m.items, c)
}

// AddAll merges every candidate in cs
func (m *Merger) AddAll(cs []searchtypes.Candidate) {
	for _, c := range cs {
		m.Add(c)
	}
}

// Has reports whether key is in the collection
func (m *Merger) Has(key string) bool {
	_, ok := m.Lookup(key)
	return ok
}

// Lookup returns the path of the candidate key merged into
func (m *Merger) Lookup(key string) (string, bool) {
	i, ok := m.byKey[pathutil.Identity(key)]
	if !ok {
		return "", false
	}
	return m.items[i].Path, true
}

// Len returns the number of distinct candidates
func (m *Merger) Len() int {
	return len(m.items)
}

// Candidates returns a copy of the merged candidates in discovery order
func (m *Merger) Candidates() []searchtypes.Candidate {
	return append([]searchtypes.Candidate(nil), m.items...)
}
