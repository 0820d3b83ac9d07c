package matching

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var defaultStopwords = []string{
	"i", "me", "my", "myself", "we", "our", "ours", "you", "your", "he", "him", "his",
	"she", "her", "it", "its", "they", "them", "their", "theirs", "this", "that", "these", "those",
	"am", "is", "are", "was", "were", "be", "been", "having", "do", "does", "did", "doing",
	"a", "an", "the", "and", "if", "or", "because", "as", "until", "while",
	"of", "at", "by", "for", "with", "about", "against", "between", "into", "through",
	"before", "after", "above", "below", "to", "from", "up", "down", "in", "out", "on", "off",
}

// DefaultStopwords returns a fresh copy of the built-in stopword list.
func DefaultStopwords() []string {
	out := make([]string, len(defaultStopwords))
	copy(out, defaultStopwords)
	return out
}

// Lemmas maps a lowercase word to its lemma.
type Lemmas map[string]string

// LoadLemmas reads a JSON object of word -> lemma pairs. Keys and values are
// cleaned the same way skill terms are.
func LoadLemmas(path string) (Lemmas, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return Lemmas{}, nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read lemma dictionary: %w", err)
	}

	var raw map[string]string
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil, fmt.Errorf("decode lemma dictionary %s: %w", path, err)
	}

	out := make(Lemmas, len(raw))
	for k, v := range raw {
		k = CleanTerm(k)
		v = CleanTerm(v)
		if k == "" || v == "" {
			continue
		}
		out[k] = v
	}
	return out, nil
}

type NormalizerConfig struct {
	// Stopwords replaces the default list when non-nil.
	Stopwords []string
	Lemmas    Lemmas
}

type Normalizer struct {
	stopwords map[string]struct{}
	lemmas    Lemmas
}

func NewNormalizer(cfg NormalizerConfig) *Normalizer {
	words := cfg.Stopwords
	if words == nil {
		words = defaultStopwords
	}

	stop := make(map[string]struct{}, len(words))
	for _, w := range words {
		w = CleanTerm(w)
		if w == "" {
			continue
		}
		stop[w] = struct{}{}
	}

	lemmas := cfg.Lemmas
	if lemmas == nil {
		lemmas = Lemmas{}
	}

	return &Normalizer{stopwords: stop, lemmas: lemmas}
}

// Normalize splits a comma-separated skill list into lowercase, lemmatized
// tokens. Order and duplicates are preserved.
func (n *Normalizer) Normalize(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return []string{}
	}

	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		tok := CleanTerm(p)
		if tok == "" {
			continue
		}
		if _, stop := n.stopwords[tok]; stop {
			continue
		}
		if lemma, ok := n.lemmas[tok]; ok {
			tok = lemma
		}
		out = append(out, tok)
	}
	return out
}

// CleanTerm trims and lowercases s and collapses inner whitespace. Letters
// keep their diacritics: "né" and "ne" are different terms.
func CleanTerm(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	// A Caser is stateful, so each call gets its own.
	s = cases.Lower(language.Und).String(s)
	return strings.Join(strings.Fields(s), " ")
}
