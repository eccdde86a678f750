package textmatch

import (
	"strings"

	"github.com/docsight/docsight/internal/types"
)

// DefaultThreshold is the minimum similarity score for a match to count as
// confident grounding.
const DefaultThreshold = 0.5

// MatchQuoteToRegions finds the contiguous run of OCR regions on one page
// whose space-joined normalized text best matches quote, and returns the
// bounding quads of that run in original page order.
//
// A best score below threshold means "no confident grounding" and yields an
// empty result, as do an empty quote or an empty region list. Regions are
// only ever selected as contiguous sub-runs; their order is never changed.
func MatchQuoteToRegions(quote string, page types.PageOCRData, threshold float64) []types.Quad {
	target := Normalize(quote)
	if target == "" || len(page.Regions) == 0 {
		return nil
	}

	normalized := make([]string, len(page.Regions))
	for i, region := range page.Regions {
		normalized[i] = Normalize(region.Text)
	}

	bestScore := 0.0
	bestStart, bestEnd := -1, -1

	for start := range normalized {
		// A contentless leading region would tie with the window starting
		// at the next region and drag its box into the result.
		if normalized[start] == "" {
			continue
		}

		var candidate strings.Builder
		for end := start; end < len(normalized); end++ {
			if normalized[end] != "" {
				if candidate.Len() > 0 {
					candidate.WriteByte(' ')
				}
				candidate.WriteString(normalized[end])
			}

			score := Similarity(candidate.String(), target)
			if score > bestScore {
				bestScore = score
				bestStart, bestEnd = start, end
			}

			// Once the window is more than twice the quote's length, a
			// containment-based score can only shrink as it grows.
			if candidate.Len() > 2*len(target) {
				break
			}
		}
	}

	if bestStart < 0 || bestScore < threshold {
		return nil
	}

	quads := make([]types.Quad, 0, bestEnd-bestStart+1)
	for _, region := range page.Regions[bestStart : bestEnd+1] {
		quads = append(quads, region.BBox)
	}
	return quads
}
