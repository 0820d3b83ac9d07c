// Package synonym resolves skill synonyms for a matching run.
package synonym

import (
	"context"

	"skill-swap/internal/domain/matching"
)

// Lookup fetches the synonyms of a single term. The relation returned may be
// asymmetric.
type Lookup interface {
	LookupSynonyms(ctx context.Context, term string) ([]string, error)
}

// LookupFunc adapts a function to Lookup.
type LookupFunc func(ctx context.Context, term string) ([]string, error)

func (f LookupFunc) LookupSynonyms(ctx context.Context, term string) ([]string, error) {
	return f(ctx, term)
}

// Set is an immutable set of lowercase terms.
type Set map[string]struct{}

func NewSet(words ...string) Set {
	s := make(Set, len(words))
	for _, w := range words {
		w = normalizeTerm(w)
		if w == "" {
			continue
		}
		s[w] = struct{}{}
	}
	return s
}

func (s Set) Has(term string) bool {
	_, ok := s[normalizeTerm(term)]
	return ok
}

func (s Set) Len() int {
	return len(s)
}

// normalizeTerm keys sets the same way the matcher cleans skill terms, so
// accented synonyms compare equal to accented skills.
func normalizeTerm(s string) string {
	return matching.CleanTerm(s)
}
