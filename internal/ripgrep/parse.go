package ripgrep

import (
	"bufio"
	"bytes"
	"sort"
	"strconv"
	"strings"

	"github.com/standardbeagle/yoink/internal/searchtypes"
	"github.com/standardbeagle/yoink/pkg/pathutil"
)

// ParseFileList parses the output of a ListArgs invocation into candidate keys.
// Blank lines are skipped and the leading current-dir marker is removed.
// Surrounding spaces belong to the file name and are kept.
func ParseFileList(out []byte) []string {
	var paths []string
	scanner := newLineScanner(out)
	for scanner.Scan() {
		line := strings.TrimSuffix(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		if key := pathutil.Key(line); key != "" {
			paths = append(paths, key)
		}
	}
	return paths
}

// ParseOccurrences parses the output of a DetailArgs invocation, grouping
// occurrences by candidate key. Lines that do not split into exactly four
// colon-separated fields, or whose line or column is not a positive number,
// are skipped. Each group is sorted by (line, column).
func ParseOccurrences(out []byte) (map[string][]searchtypes.Occurrence, int) {
	grouped := make(map[string][]searchtypes.Occurrence)
	skipped := 0

	scanner := newLineScanner(out)
	for scanner.Scan() {
		key, occ, ok := parseDetailLine(scanner.Text())
		if !ok {
			skipped++
			continue
		}
		grouped[key] = append(grouped[key], occ)
	}

	for key := range grouped {
		occs := grouped[key]
		sort.SliceStable(occs, func(i, j int) bool {
			if occs[i].Line != occs[j].Line {
				return occs[i].Line < occs[j].Line
			}
			return occs[i].Column < occs[j].Column
		})
	}
	return grouped, skipped
}

func parseDetailLine(line string) (string, searchtypes.Occurrence, bool) {
	fields := strings.SplitN(strings.TrimSuffix(line, "\r"), ":", 4)
	if len(fields) != 4 {
		return "", searchtypes.Occurrence{}, false
	}
	lineNo, ok := parsePositive(fields[1])
	if !ok {
		return "", searchtypes.Occurrence{}, false
	}
	column, ok := parsePositive(fields[2])
	if !ok {
		return "", searchtypes.Occurrence{}, false
	}
	key := pathutil.Key(fields[0])
	if key == "" {
		return "", searchtypes.Occurrence{}, false
	}

	snippet := strings.TrimSpace(strings.ReplaceAll(fields[3], "\t", " "))
	return key, searchtypes.Occurrence{Line: lineNo, Column: column, Snippet: snippet}, true
}

// ParseFirstLine extracts the line number from the first line:text record of
// a FirstMatchArgs invocation.
func ParseFirstLine(out []byte) (int, bool) {
	scanner := newLineScanner(out)
	if !scanner.Scan() {
		return 0, false
	}
	head, _, found := strings.Cut(scanner.Text(), ":")
	if !found {
		return 0, false
	}
	return parsePositive(head)
}

// parsePositive accepts only unsigned decimal digits with a value of at least 1
func parsePositive(field string) (int, bool) {
	if field == "" || strings.TrimLeft(field, "0123456789") != "" {
		return 0, false
	}
	n, err := strconv.Atoi(field)
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}

func newLineScanner(out []byte) *bufio.Scanner {
	scanner := bufio.NewScanner(bytes.NewReader(out))
	// minified files produce very long match lines
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	return scanner
}
