package config

import (
	"github.com/hbollon/go-edlib"
)

// keyHintThreshold is the Jaro-Winkler similarity above which an unknown key
// is reported as a probable misspelling.
const keyHintThreshold = 0.85

// suggestKey returns the recognized setting key closest to key when the two are
// similar enough to look like a typo.
func suggestKey(key string) (string, bool) {
	if key == "" {
		return "", false
	}

	best := ""
	var bestScore float32
	for _, candidate := range settingKeys {
		score, err := edlib.StringsSimilarity(key, candidate, edlib.JaroWinkler)
		if err != nil {
			continue
		}
		if score > bestScore {
			best, bestScore = candidate, score
		}
	}

	if bestScore < keyHintThreshold {
		return "", false
	}
	return best, true
}
