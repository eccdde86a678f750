package textmatch

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"lowercases", "Governing Law", "governing law"},
		{"strips punctuation", "Agreement's term (the \"Term\")", "agreements term the term"},
		{"collapses whitespace", "one   two\t\nthree", "one two three"},
		{"trims ends", "  padded  ", "padded"},
		{"keeps digits", "Section 12.3(b)", "section 123b"},
		{"only punctuation", "!!! --- ???", ""},
		{"unicode stripped", "café naïve", "caf nave"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.input); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"",
		"Governing Law is England.",
		"  MIXED   case\twith\n(punctuation)!  ",
		"already normalized text",
	}

	for _, input := range inputs {
		once := Normalize(input)
		if twice := Normalize(once); twice != once {
			t.Errorf("Normalize not idempotent for %q: %q != %q", input, twice, once)
		}
	}
}
