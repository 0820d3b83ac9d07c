package synonym

import (
	"context"
	"errors"
)

// Multi merges the results of several lookups. It fails only when every
// lookup fails.
type Multi []Lookup

func (m Multi) LookupSynonyms(ctx context.Context, term string) ([]string, error) {
	out := make([]string, 0)
	seen := make(map[string]struct{})

	var errs []error
	succeeded := 0
	for _, l := range m {
		if l == nil {
			continue
		}
		words, err := l.LookupSynonyms(ctx, term)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		succeeded++
		for _, w := range words {
			w = normalizeTerm(w)
			if w == "" {
				continue
			}
			if _, ok := seen[w]; ok {
				continue
			}
			seen[w] = struct{}{}
			out = append(out, w)
		}
	}

	if succeeded == 0 && len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return out, nil
}

var _ Lookup = Multi(nil)
