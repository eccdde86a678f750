package textmatch

import "strings"

// Similarity scores how well two normalized strings match, in [0, 1].
//
// If the shorter string is contained in the longer, the score is the length
// ratio shorter/longer. This cheap path dominates in practice: a verbatim
// quote sitting somewhere inside a page's joined region text. Otherwise the
// score falls back to longest-common-substring length over the longer
// length, which tolerates OCR noise and punctuation drift without paying
// for a full edit-distance computation.
//
// The function is not symmetric in general, but Similarity(a, a) == 1 for
// any non-empty a. Empty input on either side scores 0.
func Similarity(a, b string) float64 {
	if a == "" || b == "" {
		return 0
	}

	shorter, longer := a, b
	if len(shorter) > len(longer) {
		shorter, longer = longer, shorter
	}

	if strings.Contains(longer, shorter) {
		return float64(len(shorter)) / float64(len(longer))
	}

	return float64(longestCommonSubstring(a, b)) / float64(len(longer))
}

// longestCommonSubstring returns the length of the longest contiguous
// substring shared by a and b. Classic DP over two rows keyed on b, so
// working memory stays O(len(b)) even when a is an entire page's worth of
// aggregated text.
func longestCommonSubstring(a, b string) int {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	best := 0

	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			if a[i-1] == b[j-1] {
				curr[j] = prev[j-1] + 1
				if curr[j] > best {
					best = curr[j]
				}
			} else {
				curr[j] = 0
			}
		}
		prev, curr = curr, prev
	}

	return best
}
