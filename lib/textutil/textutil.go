package textutil

import (
	"regexp"
	"strings"

	"github.com/antzucaro/matchr"
)

var whitespaceRegex = regexp.MustCompile(`\s+`)

// NormalizeLabel lowercases a label and collapses its whitespace so that
// "  Started\n reading " and "started reading" compare equal.
func NormalizeLabel(label string) string {
	label = strings.ToLower(label)
	label = whitespaceRegex.ReplaceAllString(label, " ")
	return strings.TrimSpace(label)
}

// MatchLabel reports whether the normalized label equals any of the matchers,
// matchers are expected to already be normalized.
func MatchLabel(label string, matchers ...string) bool {
	label = NormalizeLabel(label)
	for _, m := range matchers {
		if label == m {
			return true
		}
	}
	return false
}

// MostSimilar returns the index of the candidate closest to target by
// Jaro-Winkler similarity of the normalized strings, or -1 when there are no
// candidates.
func MostSimilar(target string, candidates []string) (int, float64) {
	target = NormalizeLabel(target)

	best := -1
	var bestSimilarity float64
	for i, c := range candidates {
		similarity := matchr.JaroWinkler(target, NormalizeLabel(c), false)
		if best < 0 || similarity > bestSimilarity {
			best = i
			bestSimilarity = similarity
		}
	}
	return best, bestSimilarity
}
