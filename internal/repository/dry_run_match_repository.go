package repository

import (
	"context"
	"errors"
	"sort"

	"skill-swap/internal/domain/match"

	"github.com/google/uuid"
)

// DryRunMatchRepository reads existing matches from a backing store and
// keeps new ones in memory. The backing store is never written.
type DryRunMatchRepository struct {
	stored  MatchRepository
	pending *MemoryMatchRepository
}

func NewDryRunMatchRepository(stored MatchRepository) *DryRunMatchRepository {
	return &DryRunMatchRepository{stored: stored, pending: NewMemoryMatchRepository()}
}

func (r *DryRunMatchRepository) Exists(ctx context.Context, key MatchKey) (bool, error) {
	if ok, _ := r.pending.Exists(ctx, key); ok {
		return true, nil
	}
	if r.stored == nil {
		return false, nil
	}
	return r.stored.Exists(ctx, key)
}

func (r *DryRunMatchRepository) Create(ctx context.Context, key MatchKey) (uuid.UUID, bool, error) {
	exists, err := r.Exists(ctx, key)
	if err != nil {
		return uuid.Nil, false, err
	}
	if exists {
		return uuid.Nil, false, nil
	}
	return r.pending.Create(ctx, key)
}

// ListByUser merges stored and pending matches, newest first.
func (r *DryRunMatchRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]match.Match, error) {
	out, _ := r.pending.ListByUser(ctx, userID, 0, 0)
	if r.stored != nil {
		stored, err := r.stored.ListByUser(ctx, userID, limit+offset, 0)
		if err != nil {
			return nil, err
		}
		out = append(out, stored...)
	}

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

func (r *DryRunMatchRepository) GetByID(ctx context.Context, id uuid.UUID) (match.Match, error) {
	m, err := r.pending.GetByID(ctx, id)
	if !errors.Is(err, ErrMatchNotFound) || r.stored == nil {
		return m, err
	}
	return r.stored.GetByID(ctx, id)
}

// Pending returns the matches a real run would have stored.
func (r *DryRunMatchRepository) Pending() []match.Match {
	return r.pending.All()
}

var _ MatchRepository = (*DryRunMatchRepository)(nil)
