package search

import (
	"sort"

	"github.com/standardbeagle/yoink/internal/config"
	"github.com/standardbeagle/yoink/internal/searchtypes"
)

// Rank sorts candidates in place under mode. Paths are unique, so both orders
// are total.
func Rank(candidates []searchtypes.Candidate, mode config.SortMode) {
	switch mode {
	case config.SortAlphabetical:
		sort.SliceStable(candidates, func(i, j int) bool {
			return candidates[i].Path < candidates[j].Path
		})
	default:
		sort.SliceStable(candidates, func(i, j int) bool {
			di, dj := candidates[i].Depth(), candidates[j].Depth()
			if di != dj {
				return di < dj
			}
			return candidates[i].Path < candidates[j].Path
		})
	}
}
