package matching

import (
	"bytes"
	"context"
	"sort"

	"github.com/google/uuid"
)

// DefaultThreshold is the minimum directional similarity for a match.
const DefaultThreshold = 0.7

type RequiredSkill struct {
	ID   uuid.UUID
	Name string
}

// UserSnapshot is the read-only view of a user for one matching run.
type UserSnapshot struct {
	ID               uuid.UUID
	OfferedSkillsRaw string
	RequiredSkills   []RequiredSkill
}

// Candidate is the best mutual match found for one pair of users.
type Candidate struct {
	UserA          uuid.UUID
	UserB          uuid.UUID
	SkillWantedByA string
	SkillWantedByB string
	Score          float64
}

// PairKey identifies an unordered pair of users.
type PairKey struct {
	Low  uuid.UUID
	High uuid.UUID
}

func NewPairKey(a, b uuid.UUID) PairKey {
	if bytes.Compare(a[:], b[:]) > 0 {
		a, b = b, a
	}
	return PairKey{Low: a, High: b}
}

func (k PairKey) String() string {
	return k.Low.String() + "_" + k.High.String()
}

// PreparedUser holds the per-run derived skill lists of a user.
type PreparedUser struct {
	ID       uuid.UUID
	Offered  []string
	Required []string
}

type Matcher struct {
	normalizer *Normalizer
	scorer     *Scorer
	threshold  float64
}

// NewMatcher builds a matcher. A threshold outside (0,1] falls back to
// DefaultThreshold.
func NewMatcher(normalizer *Normalizer, scorer *Scorer, threshold float64) *Matcher {
	if normalizer == nil {
		normalizer = NewNormalizer(NormalizerConfig{})
	}
	if scorer == nil {
		scorer = NewScorer(nil)
	}
	if threshold <= 0 || threshold > 1 {
		threshold = DefaultThreshold
	}
	return &Matcher{normalizer: normalizer, scorer: scorer, threshold: threshold}
}

func (m *Matcher) Threshold() float64 {
	return m.threshold
}

// Prepare normalizes every user's offerings once and cleans their
// requirement names. The returned slice keeps the input order.
func (m *Matcher) Prepare(users []UserSnapshot) []PreparedUser {
	out := make([]PreparedUser, 0, len(users))
	for _, u := range users {
		reqs := make([]string, 0, len(u.RequiredSkills))
		for _, r := range u.RequiredSkills {
			name := CleanTerm(r.Name)
			if name == "" {
				continue
			}
			reqs = append(reqs, name)
		}
		out = append(out, PreparedUser{
			ID:       u.ID,
			Offered:  m.normalizer.Normalize(u.OfferedSkillsRaw),
			Required: reqs,
		})
	}
	return out
}

// Terms returns the distinct skill terms of the prepared users, sorted.
func Terms(users []PreparedUser) []string {
	seen := make(map[string]struct{})
	for _, u := range users {
		for _, t := range u.Offered {
			seen[t] = struct{}{}
		}
		for _, t := range u.Required {
			seen[t] = struct{}{}
		}
	}

	out := make([]string, 0, len(seen))
	for t := range seen {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// PairCount is the number of unordered pairs among n users.
func PairCount(n int) int {
	if n < 2 {
		return 0
	}
	return n * (n - 1) / 2
}

type scoredSkill struct {
	name  string
	score float64
}

// EvaluatePair searches every combination of u's requirements against v's
// offerings and v's requirements against u's offerings. Both directional
// scores must clear the threshold; the highest average wins and ties go to
// the lexicographically smallest (SkillWantedByA, SkillWantedByB).
func (m *Matcher) EvaluatePair(u, v PreparedUser) (Candidate, bool) {
	if u.ID == v.ID {
		return Candidate{}, false
	}

	uv := m.directional(u.Required, v.Offered)
	if len(uv) == 0 {
		return Candidate{}, false
	}
	vu := m.directional(v.Required, u.Offered)
	if len(vu) == 0 {
		return Candidate{}, false
	}

	var best Candidate
	found := false
	for _, a := range uv {
		for _, b := range vu {
			score := (a.score + b.score) / 2
			if found && !better(score, a.name, b.name, best) {
				continue
			}
			best = Candidate{
				UserA:          u.ID,
				UserB:          v.ID,
				SkillWantedByA: a.name,
				SkillWantedByB: b.name,
				Score:          score,
			}
			found = true
		}
	}
	return best, found
}

// directional keeps, for every requirement, the best similarity against the
// offerings when it clears the threshold.
func (m *Matcher) directional(reqs, offers []string) []scoredSkill {
	if len(reqs) == 0 || len(offers) == 0 {
		return nil
	}

	out := make([]scoredSkill, 0, len(reqs))
	for _, req := range reqs {
		bestScore := 0.0
		for _, off := range offers {
			s := m.scorer.Similarity(req, off)
			if s > bestScore {
				bestScore = s
			}
			if bestScore >= 1 {
				break
			}
		}
		if bestScore >= m.threshold {
			out = append(out, scoredSkill{name: req, score: bestScore})
		}
	}
	return out
}

func better(score float64, skillA, skillB string, cur Candidate) bool {
	if score != cur.Score {
		return score > cur.Score
	}
	if skillA != cur.SkillWantedByA {
		return skillA < cur.SkillWantedByA
	}
	return skillB < cur.SkillWantedByB
}

// FindMatches evaluates every unordered pair (users[i], users[j]) with i < j
// and returns at most one candidate per pair, in pair order.
func (m *Matcher) FindMatches(ctx context.Context, users []UserSnapshot) ([]Candidate, error) {
	prepared := m.Prepare(users)

	out := make([]Candidate, 0)
	for i := 0; i < len(prepared); i++ {
		for j := i + 1; j < len(prepared); j++ {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			if c, ok := m.EvaluatePair(prepared[i], prepared[j]); ok {
				out = append(out, c)
			}
		}
	}
	return out, nil
}
