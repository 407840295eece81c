// Package display renders ranked candidates in the two line protocols:
// the compact TAG<TAB>path form and the rich form consumed by fzf.
package display

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/standardbeagle/yoink/internal/search"
	"github.com/standardbeagle/yoink/internal/searchtypes"
)

const (
	dirIcon  = "📁"
	fileIcon = "📄"

	minLineWidth = 4
)

// WriteCompact writes one TAG<TAB>path line per candidate
func WriteCompact(w io.Writer, candidates []searchtypes.Candidate) error {
	bw := bufio.NewWriter(w)
	for _, c := range candidates {
		if _, err := fmt.Fprintf(bw, "%s\t%s\n", c.Tag(), c.Path); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// FormatCompact returns the compact form as a string
func FormatCompact(candidates []searchtypes.Candidate) string {
	var sb strings.Builder
	_ = WriteCompact(&sb, candidates)
	return sb.String()
}

// Entry is one row of the rich form. Line is zero on header rows.
type Entry struct {
	Display string
	Path    string
	Line    int
}

// String renders the row as display<TAB>path<TAB>line. Tabs inside the
// display text are expanded so the selector's field split stays intact.
func (e Entry) String() string {
	line := ""
	if e.Line > 0 {
		line = strconv.Itoa(e.Line)
	}
	return strings.ReplaceAll(e.Display, "\t", "    ") + "\t" + e.Path + "\t" + line + "\n"
}

// BuildEntries turns a search result into rich-form rows: a header per
// candidate that matched by path or has occurrences, followed by one row per
// occurrence.
func BuildEntries(result *search.Result) []Entry {
	hl := NewHighlighter(result.Pattern)
	var entries []Entry

	for _, c := range result.Candidates {
		occs := result.OccurrencesFor(c.Path)
		if !c.PathMatch && len(occs) == 0 {
			continue
		}

		icon := fileIcon
		if c.IsDir {
			icon = dirIcon
		}
		entries = append(entries, Entry{
			Display: icon + " " + hl.Apply(c.Path),
			Path:    c.Path,
		})

		width := lineWidth(occs)
		for i, occ := range occs {
			prefix := "  "
			if i == 0 {
				prefix = fmt.Sprintf("%s%2d%s", countColor, len(occs), colorReset)
			}
			snippet := hl.Apply(TruncateRunes(occ.Snippet, SnippetLimit))
			entries = append(entries, Entry{
				Display: fmt.Sprintf("%s   ↳ %*d  %s", prefix, width, occ.Line, snippet),
				Path:    c.Path,
				Line:    occ.Line,
			})
		}
	}
	return entries
}

// WriteEntries writes every entry in the rich protocol
func WriteEntries(w io.Writer, entries []Entry) error {
	bw := bufio.NewWriter(w)
	for _, e := range entries {
		if _, err := bw.WriteString(e.String()); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// FormatEntries returns the rich form as a string
func FormatEntries(entries []Entry) string {
	var sb strings.Builder
	_ = WriteEntries(&sb, entries)
	return sb.String()
}

func lineWidth(occs []searchtypes.Occurrence) int {
	width := minLineWidth
	for _, occ := range occs {
		if n := len(strconv.Itoa(occ.Line)); n > width {
			width = n
		}
	}
	return width
}
