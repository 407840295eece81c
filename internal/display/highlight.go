package display

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	highlightStart = "\x1b[1;36m"
	colorReset     = "\x1b[0m"
	countColor     = "\x1b[33m"

	// SnippetLimit is the maximum number of runes of a snippet shown in the rich form
	SnippetLimit = 140
	ellipsis     = "…"
)

// Highlighter wraps every match of a query in terminal emphasis escapes
type Highlighter struct {
	re *regexp.Regexp
}

// NewHighlighter creates a highlighter for re. A nil re passes text through.
func NewHighlighter(re *regexp.Regexp) *Highlighter {
	return &Highlighter{re: re}
}

// Apply returns text with each non-empty match span emphasized
func (h *Highlighter) Apply(text string) string {
	if h == nil || h.re == nil {
		return text
	}
	spans := h.re.FindAllStringIndex(text, -1)
	if len(spans) == 0 {
		return text
	}

	var sb strings.Builder
	last := 0
	for _, span := range spans {
		if span[0] == span[1] {
			continue
		}
		sb.WriteString(text[last:span[0]])
		sb.WriteString(highlightStart)
		sb.WriteString(text[span[0]:span[1]])
		sb.WriteString(colorReset)
		last = span[1]
	}
	sb.WriteString(text[last:])
	return sb.String()
}

// TruncateRunes shortens s to max runes followed by an ellipsis. Strings of
// max runes or fewer are returned unchanged.
func TruncateRunes(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	n := 0
	for i := range s {
		if n == max {
			return s[:i] + ellipsis
		}
		n++
	}
	return s
}
