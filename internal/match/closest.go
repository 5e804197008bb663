package match

import "strings"

// Closest returns the candidate nearest to name. Candidates farther than
// maxDistance edits, and name itself, are ignored. Comparison is case
// insensitive; ties are won by the earlier candidate.
func Closest(name string, candidates []string, maxDistance int) (string, bool) {
	lower := strings.ToLower(name)

	best, bestDistance := "", maxDistance+1

	for _, candidate := range candidates {
		if candidate == name {
			continue
		}

		if d := Levenshtein(lower, strings.ToLower(candidate)); d < bestDistance {
			best, bestDistance = candidate, d
		}
	}

	return best, best != ""
}

// Budget returns the edit distance tolerated for a name of the given
// length: about a third of it, at least one.
func Budget(name string) int {
	return max(1, len(name)/3)
}
