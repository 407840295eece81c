package searchtypes

import "strings"

// Candidate is one filesystem entry relevant to a query, identified by its
// slash-separated path relative to the search root.
type Candidate struct {
	Path         string `json:"path"`
	IsDir        bool   `json:"is_dir"`
	PathMatch    bool   `json:"path_match"`    // query matched the relative path or its final component
	ContentMatch bool   `json:"content_match"` // query matched inside the file
}

// Depth returns the number of path components.
func (c Candidate) Depth() int {
	return PathDepth(c.Path)
}

// Tag derives the compact-form tag from the match flags.
func (c Candidate) Tag() Tag {
	switch {
	case c.PathMatch && c.ContentMatch:
		return TagBoth
	case c.ContentMatch:
		return TagText
	default:
		// a candidate with neither flag cannot leave the merger; PATH is the documented default
		return TagPath
	}
}

// Tag labels a candidate in the compact output protocol
type Tag string

const (
	TagPath Tag = "PATH"
	TagText Tag = "TEXT"
	TagBoth Tag = "BOTH"
)

// Occurrence is one line-level content match reported by the content searcher.
type Occurrence struct {
	Line    int    `json:"line"`   // 1-based
	Column  int    `json:"column"` // 1-based
	Snippet string `json:"snippet"`
}

// PathDepth counts the components of a slash-separated relative path.
func PathDepth(rel string) int {
	rel = strings.Trim(rel, "/")
	if rel == "" {
		return 0
	}
	return strings.Count(rel, "/") + 1
}
