package textmatch

import (
	"math"
	"strings"
	"testing"
)

func TestSimilarity(t *testing.T) {
	t.Run("empty inputs score zero", func(t *testing.T) {
		if got := Similarity("", "anything"); got != 0 {
			t.Errorf("Similarity(\"\", x) = %v, want 0", got)
		}
		if got := Similarity("anything", ""); got != 0 {
			t.Errorf("Similarity(x, \"\") = %v, want 0", got)
		}
	})

	t.Run("identical strings score one", func(t *testing.T) {
		for _, s := range []string{"a", "governing law is england", "12345"} {
			if got := Similarity(s, s); got != 1 {
				t.Errorf("Similarity(%q, %q) = %v, want 1", s, s, got)
			}
		}
	})

	t.Run("containment uses length ratio", func(t *testing.T) {
		// "law" (3 chars) inside "governing law" (13 chars).
		want := 3.0 / 13.0
		if got := Similarity("law", "governing law"); math.Abs(got-want) > 1e-9 {
			t.Errorf("Similarity = %v, want %v", got, want)
		}
		// Order of arguments doesn't matter for the containment path.
		if got := Similarity("governing law", "law"); math.Abs(got-want) > 1e-9 {
			t.Errorf("Similarity reversed = %v, want %v", got, want)
		}
	})

	t.Run("falls back to longest common substring", func(t *testing.T) {
		// No containment: shared block is "overning law" plus noise on both
		// sides. Score must be lcs/maxLen, strictly between 0 and 1.
		a := "xoverning lawz"
		b := "governing lawq"
		got := Similarity(a, b)
		want := float64(len("overning law")) / float64(len(b))
		if math.Abs(got-want) > 1e-9 {
			t.Errorf("Similarity(%q, %q) = %v, want %v", a, b, got, want)
		}
	})
}

func TestLongestCommonSubstring(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"abc", "", 0},
		{"abc", "abc", 3},
		{"abcdef", "zcdefz", 4},
		{"abc", "xyz", 0},
		{"aab", "baa", 2},
	}

	for _, tt := range tests {
		if got := longestCommonSubstring(tt.a, tt.b); got != tt.want {
			t.Errorf("longestCommonSubstring(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestLongestCommonSubstring_LargeInput(t *testing.T) {
	// Contiguous match, not subsequence: interleaved characters must not
	// accumulate.
	a := strings.Repeat("ab", 500)
	b := strings.Repeat("ba", 500)
	got := longestCommonSubstring(a, b)
	if got != len(a)-1 {
		t.Errorf("longestCommonSubstring = %d, want %d", got, len(a)-1)
	}
}
