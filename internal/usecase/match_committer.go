package usecase

import (
	"context"
	"fmt"
	"sync"

	"skill-swap/internal/domain/matching"
	"skill-swap/internal/repository"

	"go.uber.org/zap"
)

type CommitOutcome int

const (
	CommitSkipped CommitOutcome = iota
	CommitCreated
)

func (o CommitOutcome) String() string {
	switch o {
	case CommitCreated:
		return "created"
	case CommitSkipped:
		return "skipped"
	default:
		return fmt.Sprintf("CommitOutcome(%d)", int(o))
	}
}

// RunSeen is the set of user pairs already matched in the current run.
type RunSeen struct {
	mu   sync.Mutex
	keys map[matching.PairKey]struct{}
}

func NewRunSeen() *RunSeen {
	return &RunSeen{keys: make(map[matching.PairKey]struct{})}
}

func (s *RunSeen) Has(k matching.PairKey) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.keys[k]
	return ok
}

func (s *RunSeen) Add(k matching.PairKey) {
	s.mu.Lock()
	s.keys[k] = struct{}{}
	s.mu.Unlock()
}

func (s *RunSeen) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.keys)
}

// MatchCommitter persists candidates at most once per pair per run and never
// duplicates a stored match.
type MatchCommitter struct {
	matches repository.MatchRepository
	logger  *zap.Logger
}

func NewMatchCommitter(matches repository.MatchRepository, logger *zap.Logger) *MatchCommitter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MatchCommitter{matches: matches, logger: logger}
}

// Commit stores c unless its pair was already handled in this run or an
// identical match exists. Store errors are returned and leave seen untouched.
func (m *MatchCommitter) Commit(ctx context.Context, c matching.Candidate, seen *RunSeen) (CommitOutcome, error) {
	if seen == nil {
		return CommitSkipped, fmt.Errorf("%w: nil run set", ErrInvalidInput)
	}
	if err := ctx.Err(); err != nil {
		return CommitSkipped, err
	}

	pair := matching.NewPairKey(c.UserA, c.UserB)
	fields := []zap.Field{
		zap.String("user1", c.UserA.String()),
		zap.String("user2", c.UserB.String()),
		zap.String("skill1", c.SkillWantedByA),
		zap.String("skill2", c.SkillWantedByB),
		zap.Float64("score", c.Score),
	}

	if seen.Has(pair) {
		m.logger.Debug("match skipped, pair already matched in this run", fields...)
		return CommitSkipped, nil
	}

	key := repository.MatchKey{
		User1:  c.UserA,
		User2:  c.UserB,
		Skill1: c.SkillWantedByA,
		Skill2: c.SkillWantedByB,
		Score:  c.Score,
	}

	exists, err := m.matches.Exists(ctx, key)
	if err != nil {
		return CommitSkipped, fmt.Errorf("check existing match %s: %w", pair, err)
	}
	if exists {
		seen.Add(pair)
		m.logger.Info("match skipped, already stored", fields...)
		return CommitSkipped, nil
	}

	id, created, err := m.matches.Create(ctx, key)
	if err != nil {
		return CommitSkipped, fmt.Errorf("create match %s: %w", pair, err)
	}
	seen.Add(pair)
	if !created {
		m.logger.Info("match skipped, stored concurrently", fields...)
		return CommitSkipped, nil
	}

	m.logger.Info("match stored", append(fields, zap.String("match_id", id.String()))...)
	return CommitCreated, nil
}
