package matching

// SynonymChecker reports whether two skill terms are interchangeable. The
// relation is not assumed to be symmetric; implementations decide how to
// combine both directions.
type SynonymChecker interface {
	IsSynonymOf(a, b string) bool
}

type Scorer struct {
	synonyms SynonymChecker
}

// NewScorer returns a scorer that overrides lexical similarity with 1.0 for
// synonymous terms. A nil checker disables the override.
func NewScorer(synonyms SynonymChecker) *Scorer {
	return &Scorer{synonyms: synonyms}
}

// Similarity returns a score in [0,1] for two skill terms.
func (s *Scorer) Similarity(a, b string) float64 {
	a = CleanTerm(a)
	b = CleanTerm(b)

	if a == b {
		return 1
	}
	if s != nil && s.synonyms != nil && s.synonyms.IsSynonymOf(a, b) {
		return 1
	}
	return LexicalSimilarity(a, b)
}
