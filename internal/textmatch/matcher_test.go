package textmatch

import (
	"reflect"
	"testing"

	"github.com/docsight/docsight/internal/types"
)

// regionPage builds a page whose regions carry the given texts, with a
// distinct quad per region so matches can be identified by position.
func regionPage(texts ...string) types.PageOCRData {
	regions := make([]types.OCRTextRegion, len(texts))
	for i, text := range texts {
		regions[i] = types.OCRTextRegion{
			BBox:       quadAt(i),
			Text:       text,
			Confidence: 1.0,
		}
	}
	return types.PageOCRData{Page: 1, Regions: regions}
}

func quadAt(i int) types.Quad {
	x := float64(i * 100)
	return types.Quad{{x, 0}, {x + 90, 0}, {x + 90, 20}, {x, 20}}
}

func TestMatchQuoteToRegions(t *testing.T) {
	page := regionPage("This", "Agreement's", "governing", "law", "is", "England", "and Wales.")

	t.Run("finds contiguous span", func(t *testing.T) {
		got := MatchQuoteToRegions("governing law is England", page, DefaultThreshold)
		want := []types.Quad{quadAt(2), quadAt(3), quadAt(4), quadAt(5)}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("matched quads = %v, want %v", got, want)
		}
	})

	t.Run("exact sub-run round trips", func(t *testing.T) {
		// A quote that is exactly the joined normalized text of a sub-run
		// must return exactly that sub-run.
		got := MatchQuoteToRegions("agreements governing law", page, DefaultThreshold)
		want := []types.Quad{quadAt(1), quadAt(2), quadAt(3)}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("matched quads = %v, want %v", got, want)
		}
	})

	t.Run("empty quote returns nothing", func(t *testing.T) {
		if got := MatchQuoteToRegions("", page, DefaultThreshold); got != nil {
			t.Errorf("expected nil for empty quote, got %v", got)
		}
	})

	t.Run("punctuation-only quote returns nothing", func(t *testing.T) {
		if got := MatchQuoteToRegions("?!", page, DefaultThreshold); got != nil {
			t.Errorf("expected nil for quote that normalizes to empty, got %v", got)
		}
	})

	t.Run("empty page returns nothing", func(t *testing.T) {
		empty := types.PageOCRData{Page: 1}
		if got := MatchQuoteToRegions("governing law", empty, DefaultThreshold); got != nil {
			t.Errorf("expected nil for empty page, got %v", got)
		}
	})

	t.Run("below threshold returns nothing", func(t *testing.T) {
		if got := MatchQuoteToRegions("entirely unrelated content", page, DefaultThreshold); got != nil {
			t.Errorf("expected nil below threshold, got %v", got)
		}
	})

	t.Run("tolerates OCR noise", func(t *testing.T) {
		noisy := regionPage("Thls", "Agreernent's", "govern1ng", "law", "is", "Engl@nd", "and Wales.")
		got := MatchQuoteToRegions("governing law is England", noisy, 0.5)
		if len(got) == 0 {
			t.Fatal("expected a match despite OCR noise")
		}
	})

	t.Run("single region match", func(t *testing.T) {
		got := MatchQuoteToRegions("England", page, DefaultThreshold)
		want := []types.Quad{quadAt(5)}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("matched quads = %v, want %v", got, want)
		}
	})
}

func TestMatchQuoteToRegions_SkipsEmptyRegions(t *testing.T) {
	t.Run("interior empty region stays in the run", func(t *testing.T) {
		page := regionPage("governing", "---", "law")
		got := MatchQuoteToRegions("governing law", page, DefaultThreshold)
		// The middle region normalizes to nothing but sits inside the
		// selected contiguous run, so all three quads come back.
		want := []types.Quad{quadAt(0), quadAt(1), quadAt(2)}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("matched quads = %v, want %v", got, want)
		}
	})

	t.Run("leading empty region is excluded", func(t *testing.T) {
		// A window starting at "---" joins to the same candidate text as
		// the one starting at "governing"; the span must not begin with
		// the contentless box.
		page := regionPage("---", "governing", "law", "is", "England")
		got := MatchQuoteToRegions("governing law is England", page, DefaultThreshold)
		want := []types.Quad{quadAt(1), quadAt(2), quadAt(3), quadAt(4)}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("matched quads = %v, want %v", got, want)
		}
	})

	t.Run("page of only empty regions returns nothing", func(t *testing.T) {
		page := regionPage("---", "...", "!!")
		if got := MatchQuoteToRegions("governing law", page, DefaultThreshold); got != nil {
			t.Errorf("expected nil, got %v", got)
		}
	})
}
