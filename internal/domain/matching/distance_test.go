package matching

import "testing"

func TestEditDistance(t *testing.T) {
	tests := []struct {
		a    string
		b    string
		want int
	}{
		{"", "", 0},
		{"go", "go", 0},
		{"", "abc", 3},
		{"abc", "", 3},
		{"a", "b", 1},
		{"a", "ab", 1},
		{"kitten", "sitting", 3},
		{"saturday", "sunday", 3},
		{"ab", "ba", 1},
		{"pyhton", "python", 1},
		{"abcd", "badc", 2},
		// restricted transposition: a substring is never edited twice
		{"ca", "abc", 3},
		{"café", "cafe", 1},
		{"Go", "go", 1},
	}

	for _, tt := range tests {
		t.Run(tt.a+"_"+tt.b, func(t *testing.T) {
			if got := EditDistance(tt.a, tt.b); got != tt.want {
				t.Errorf("EditDistance(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
			if got, rev := EditDistance(tt.a, tt.b), EditDistance(tt.b, tt.a); got != rev {
				t.Errorf("EditDistance not symmetric: (%q,%q)=%d (%q,%q)=%d", tt.a, tt.b, got, tt.b, tt.a, rev)
			}
		})
	}
}

func TestEditDistance_Identity(t *testing.T) {
	for _, s := range []string{"", "x", "python", "machine learning", "日本語"} {
		if d := EditDistance(s, s); d != 0 {
			t.Errorf("EditDistance(%q, %q) = %d, want 0", s, s, d)
		}
	}
}

func TestLexicalSimilarity(t *testing.T) {
	tests := []struct {
		a    string
		b    string
		want float64
	}{
		{"", "", 1},
		{"guitar", "guitar", 1},
		{"abc", "xyz", 0},
		{"abc", "", 0},
		{"kitten", "sitting", 1 - 3.0/7.0},
		{"ab", "ba", 0.5},
	}

	for _, tt := range tests {
		if got := LexicalSimilarity(tt.a, tt.b); got != tt.want {
			t.Errorf("LexicalSimilarity(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestLexicalSimilarity_Bounds(t *testing.T) {
	words := []string{"", "a", "go", "golang", "python", "pythonista", "guitar", "drums", "ab", "ba"}
	for _, a := range words {
		for _, b := range words {
			s := LexicalSimilarity(a, b)
			if s < 0 || s > 1 {
				t.Fatalf("LexicalSimilarity(%q, %q) = %v out of [0,1]", a, b, s)
			}
		}
	}
}
