package synonym

import "context"

// Skills is the built-in thesaurus for skill names the remote service does not
// know about. Entries are one-directional.
var Skills = map[string][]string{
	"golang":           {"go"},
	"js":               {"javascript"},
	"ts":               {"typescript"},
	"py":               {"python"},
	"postgres":         {"postgresql"},
	"k8s":              {"kubernetes"},
	"ml":               {"machine learning"},
	"ai":               {"artificial intelligence"},
	"ui":               {"user interface", "interface design"},
	"ux":               {"user experience"},
	"frontend":         {"front end", "frontend development", "ui development"},
	"backend":          {"back end", "server development"},
	"photography":      {"photo", "photos"},
	"cook":             {"cookery", "culinary"},
	"spanish language": {"spanish"},
}

type Static struct {
	words map[string][]string
}

// NewStatic returns a lookup over Skills merged with extra entries.
func NewStatic(extra map[string][]string) *Static {
	words := make(map[string][]string, len(Skills)+len(extra))
	for k, v := range Skills {
		words[normalizeTerm(k)] = append([]string(nil), v...)
	}
	for k, v := range extra {
		k = normalizeTerm(k)
		if k == "" {
			continue
		}
		words[k] = append(words[k], v...)
	}
	return &Static{words: words}
}

func (s *Static) LookupSynonyms(_ context.Context, term string) ([]string, error) {
	if s == nil {
		return []string{}, nil
	}
	v, ok := s.words[normalizeTerm(term)]
	if !ok {
		return []string{}, nil
	}
	out := make([]string, 0, len(v))
	out = append(out, v...)
	return out, nil
}

var _ Lookup = (*Static)(nil)
