package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"skill-swap/internal/domain/match"

	"github.com/google/uuid"
)

// MemoryMatchRepository keeps matches in process memory. Dry runs keep their
// pending matches in one.
type MemoryMatchRepository struct {
	mu    sync.RWMutex
	items []match.Match
	now   func() time.Time
}

func NewMemoryMatchRepository() *MemoryMatchRepository {
	return &MemoryMatchRepository{now: time.Now}
}

func (r *MemoryMatchRepository) Exists(_ context.Context, key MatchKey) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.indexOf(key) >= 0 || r.indexOf(key.Reversed()) >= 0, nil
}

func (r *MemoryMatchRepository) Create(_ context.Context, key MatchKey) (uuid.UUID, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.indexOf(key) >= 0 {
		return uuid.Nil, false, nil
	}
	m := match.Match{
		ID:        uuid.New(),
		User1:     key.User1,
		User2:     key.User2,
		Skill1:    key.Skill1,
		Skill2:    key.Skill2,
		Score:     key.Score,
		CreatedAt: r.now().UTC(),
	}
	r.items = append(r.items, m)
	return m.ID, true, nil
}

func (r *MemoryMatchRepository) ListByUser(_ context.Context, userID uuid.UUID, limit, offset int) ([]match.Match, error) {
	r.mu.RLock()
	out := make([]match.Match, 0)
	for i := len(r.items) - 1; i >= 0; i-- {
		if r.items[i].Involves(userID) {
			out = append(out, r.items[i])
		}
	}
	r.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if offset > len(out) {
		return []match.Match{}, nil
	}
	out = out[offset:]
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (r *MemoryMatchRepository) GetByID(_ context.Context, id uuid.UUID) (match.Match, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, m := range r.items {
		if m.ID == id {
			return m, nil
		}
	}
	return match.Match{}, ErrMatchNotFound
}

// All returns the stored matches in insertion order.
func (r *MemoryMatchRepository) All() []match.Match {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]match.Match, len(r.items))
	copy(out, r.items)
	return out
}

func (r *MemoryMatchRepository) indexOf(key MatchKey) int {
	for i, m := range r.items {
		if m.User1 == key.User1 && m.User2 == key.User2 && m.Skill1 == key.Skill1 && m.Skill2 == key.Skill2 && m.Score == key.Score {
			return i
		}
	}
	return -1
}

var _ MatchRepository = (*MemoryMatchRepository)(nil)
