package alerr

import (
	"fmt"
	"strings"
)

// maxSuggestDistance is the largest edit distance still offered as a hint.
const maxSuggestDistance = 3

// levenshteinDistance counts the single-rune edits turning a into b.
func levenshteinDistance(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 || len(rb) == 0 {
		return len(ra) + len(rb)
	}

	row := make([]int, len(rb)+1)
	for j := range row {
		row[j] = j
	}
	for i, ca := range ra {
		diag := row[0]
		row[0] = i + 1
		for j, cb := range rb {
			up := row[j+1]
			cost := 1
			if ca == cb {
				cost = 0
			}
			row[j+1] = min(up+1, row[j]+1, diag+cost)
			diag = up
		}
	}
	return row[len(rb)]
}

// FindClosestMatch returns the option nearest to input, ignoring case, when it
// is at most three edits away. Ties go to the earlier option.
func FindClosestMatch(input string, options []string) (string, bool) {
	input = strings.ToLower(input)
	best, bestDist := "", maxSuggestDistance+1
	for _, opt := range options {
		if d := levenshteinDistance(input, strings.ToLower(opt)); d < bestDist {
			best, bestDist = opt, d
		}
	}
	return best, bestDist <= maxSuggestDistance
}

// SuggestSimilar returns "did you mean 'X'?" for the closest option, or "".
func SuggestSimilar(input string, options []string) string {
	match, ok := FindClosestMatch(input, options)
	if !ok {
		return ""
	}
	return fmt.Sprintf("did you mean '%s'?", match)
}
