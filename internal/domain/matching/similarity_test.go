package matching

import "testing"

// oneWay reports b as a synonym of a only when listed under a.
type oneWay map[string][]string

func (o oneWay) IsSynonymOf(a, b string) bool {
	for _, s := range o[a] {
		if s == b {
			return true
		}
	}
	return false
}

func TestScorer_Similarity(t *testing.T) {
	s := NewScorer(nil)

	if got := s.Similarity("Python", "python"); got != 1 {
		t.Fatalf("expected case-insensitive identity, got %v", got)
	}
	if got := s.Similarity(" guitar ", "guitar"); got != 1 {
		t.Fatalf("expected trimmed identity, got %v", got)
	}
	if got := s.Similarity("kitten", "sitting"); got != 1-3.0/7.0 {
		t.Fatalf("unexpected lexical score %v", got)
	}
	if got := s.Similarity("Né", "ne"); got != 0.5 {
		t.Fatalf("expected accents to count as an edit, got %v", got)
	}
}

func TestScorer_SynonymOverride(t *testing.T) {
	s := NewScorer(oneWay{"golang": {"go"}})

	if got := s.Similarity("golang", "go"); got != 1 {
		t.Fatalf("expected synonym override to 1, got %v", got)
	}
	if got := s.Similarity("GoLang", "Go"); got != 1 {
		t.Fatalf("expected synonym override after lowercasing, got %v", got)
	}
	if got := s.Similarity("go", "golang"); got != LexicalSimilarity("go", "golang") {
		t.Fatalf("checker is one-way; expected lexical score, got %v", got)
	}
}

func TestScorer_NilReceiver(t *testing.T) {
	var s *Scorer
	if got := s.Similarity("abc", "abd"); got != LexicalSimilarity("abc", "abd") {
		t.Fatalf("unexpected score %v", got)
	}
}
