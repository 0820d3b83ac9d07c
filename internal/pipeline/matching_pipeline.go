package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"skill-swap/internal/domain/matching"
	"skill-swap/internal/logger"
	"skill-swap/internal/repository"
	"skill-swap/internal/synonym"
	"skill-swap/internal/usecase"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RunSummary reports the outcome of one matching run.
type RunSummary struct {
	RunID           string
	Users           int
	Terms           int
	PairsEvaluated  int
	Candidates      int
	MatchesCreated  int
	MatchesSkipped  int
	SynonymLookups  int64
	SynonymFailures int64
	Errors          []PairError
	StartedAt       time.Time
	Duration        time.Duration
}

// PairError is a non-fatal failure to commit the match of one pair.
type PairError struct {
	User1 uuid.UUID
	User2 uuid.UUID
	Err   error
}

func (e PairError) Error() string {
	return fmt.Sprintf("pair %s/%s: %v", e.User1, e.User2, e.Err)
}

func (e PairError) Unwrap() error { return e.Err }

// Notifier is told about runs that stored new matches.
type Notifier interface {
	NotifyMatchesCreated(ctx context.Context, s RunSummary)
}

type MatchingOptions struct {
	Threshold          float64
	Workers            int
	SynonymConcurrency int
}

type MatchingPipeline struct {
	users      repository.UserDirectory
	committer  *usecase.MatchCommitter
	normalizer *matching.Normalizer
	lookup     synonym.Lookup
	lock       RunLock
	notifier   Notifier
	opts       MatchingOptions
	log        *zap.Logger
	now        func() time.Time
}

func NewMatchingPipeline(
	users repository.UserDirectory,
	committer *usecase.MatchCommitter,
	normalizer *matching.Normalizer,
	lookup synonym.Lookup,
	lock RunLock,
	notifier Notifier,
	opts MatchingOptions,
	log *zap.Logger,
) *MatchingPipeline {
	if log == nil {
		log = zap.NewNop()
	}
	if normalizer == nil {
		normalizer = matching.NewNormalizer(matching.NormalizerConfig{})
	}
	if opts.Workers <= 0 {
		opts.Workers = 1
	}
	return &MatchingPipeline{
		users:      users,
		committer:  committer,
		normalizer: normalizer,
		lookup:     lookup,
		lock:       lock,
		notifier:   notifier,
		opts:       opts,
		log:        log,
		now:        time.Now,
	}
}

// Run performs one complete matching pass: snapshot the directory, resolve
// synonyms for every distinct term, evaluate all pairs and commit the
// candidates in pair order. Only lock and snapshot failures, or cancellation,
// end the run with an error; per-pair store failures land in Errors.
func (p *MatchingPipeline) Run(ctx context.Context) (RunSummary, error) {
	start := p.now()
	summary := RunSummary{RunID: uuid.NewString(), StartedAt: start.UTC()}
	log := logger.WithRun(p.log, summary.RunID)

	if p.users == nil || p.committer == nil {
		return summary, errors.New("matching pipeline is not configured")
	}

	if p.lock != nil {
		ok, err := p.lock.Acquire(ctx, summary.RunID)
		if err != nil {
			return summary, fmt.Errorf("acquire run lock: %w", err)
		}
		if !ok {
			log.Warn("matching run skipped", zap.String("reason", "another run is in progress"))
			return summary, usecase.ErrRunInProgress
		}
		defer func() {
			releaseCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := p.lock.Release(releaseCtx, summary.RunID); err != nil {
				log.Warn("release run lock failed", zap.Error(err))
			}
		}()
	}

	log.Info("matching run started", zap.Float64("threshold", p.threshold()), zap.Int("workers", p.opts.Workers))
	defer func() {
		summary.Duration = time.Since(start)
	}()

	stepStart := time.Now()
	users, err := p.users.ListUsers(ctx)
	if err != nil {
		log.Error("matching run failed", zap.String("step", "snapshot"), zap.Error(err))
		return summary, fmt.Errorf("snapshot users: %w", err)
	}
	summary.Users = len(users)
	log.Info("directory snapshot loaded", zap.Int("users", len(users)), zap.Duration("duration", time.Since(stepStart)))

	if len(users) < 2 {
		log.Info("not enough users to match", zap.Int("users", len(users)))
		return summary, nil
	}

	cache := synonym.NewCache(p.lookup, log, p.opts.SynonymConcurrency)
	matcher := matching.NewMatcher(p.normalizer, matching.NewScorer(cache), p.opts.Threshold)

	stepStart = time.Now()
	prepared := matcher.Prepare(users)
	terms := matching.Terms(prepared)
	summary.Terms = len(terms)
	if err := cache.Prefetch(ctx, terms); err != nil {
		return summary, fmt.Errorf("prefetch synonyms: %w", err)
	}
	stats := cache.Stats()
	summary.SynonymLookups = stats.Lookups
	summary.SynonymFailures = stats.Failures
	log.Info("synonyms resolved",
		zap.Int("terms", len(terms)),
		zap.Int64("lookups", stats.Lookups),
		zap.Int64("failures", stats.Failures),
		zap.Duration("duration", time.Since(stepStart)),
	)

	stepStart = time.Now()
	candidates, pairs, err := p.evaluate(ctx, matcher, prepared)
	if err != nil {
		return summary, fmt.Errorf("evaluate pairs: %w", err)
	}
	summary.PairsEvaluated = pairs
	summary.Candidates = len(candidates)
	log.Info("pairs evaluated",
		zap.Int("pairs", pairs),
		zap.Int("candidates", len(candidates)),
		zap.Duration("duration", time.Since(stepStart)),
	)

	stepStart = time.Now()
	seen := usecase.NewRunSeen()
	for _, c := range candidates {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		outcome, err := p.committer.Commit(ctx, c, seen)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return summary, ctxErr
			}
			summary.Errors = append(summary.Errors, PairError{User1: c.UserA, User2: c.UserB, Err: err})
			log.Warn("commit match failed",
				zap.String("user1", c.UserA.String()),
				zap.String("user2", c.UserB.String()),
				zap.Error(err),
			)
			continue
		}
		switch outcome {
		case usecase.CommitCreated:
			summary.MatchesCreated++
		default:
			summary.MatchesSkipped++
		}
	}

	log.Info("matching run finished",
		zap.Int("pairs", summary.PairsEvaluated),
		zap.Int("created", summary.MatchesCreated),
		zap.Int("skipped", summary.MatchesSkipped),
		zap.Int("errors", len(summary.Errors)),
		zap.Duration("commit_duration", time.Since(stepStart)),
		zap.Duration("duration", time.Since(start)),
	)

	if p.notifier != nil && summary.MatchesCreated > 0 {
		summary.Duration = time.Since(start)
		p.notifier.NotifyMatchesCreated(ctx, summary)
	}
	return summary, nil
}

func (p *MatchingPipeline) threshold() float64 {
	t := p.opts.Threshold
	if t <= 0 || t > 1 {
		return matching.DefaultThreshold
	}
	return t
}

// evaluate scores every pair i<j. Rows of the pair matrix are spread over the
// worker pool and reassembled by row index, so the result order matches a
// sequential scan.
func (p *MatchingPipeline) evaluate(ctx context.Context, m *matching.Matcher, users []matching.PreparedUser) ([]matching.Candidate, int, error) {
	rows := len(users) - 1
	if rows <= 0 {
		return []matching.Candidate{}, 0, nil
	}

	byRow := make([][]matching.Candidate, rows)
	pairs := 0

	if p.opts.Workers <= 1 {
		for i := 0; i < rows; i++ {
			res := evaluateRow(ctx, m, users, i)
			if res.Err != nil {
				return nil, 0, res.Err
			}
			byRow[i] = res.Candidates
			pairs += res.Pairs
		}
		return flatten(byRow), pairs, nil
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	pool := NewWorkerPool(p.opts.Workers, p.opts.Workers)
	results := pool.Run(ctx)

	go func() {
		defer pool.Close()
		for i := 0; i < rows; i++ {
			if !pool.Submit(ctx, func(ctx context.Context) Result {
				return evaluateRow(ctx, m, users, i)
			}) {
				return
			}
		}
	}()

	var firstErr error
	received := 0
	for res := range results {
		if res.Err != nil {
			if firstErr == nil {
				firstErr = res.Err
			}
			cancel()
			continue
		}
		byRow[res.Row] = res.Candidates
		pairs += res.Pairs
		received++
	}

	if firstErr != nil {
		return nil, 0, firstErr
	}
	if received != rows {
		if err := ctx.Err(); err != nil {
			return nil, 0, err
		}
		return nil, 0, errors.New("pair evaluation stopped early")
	}
	return flatten(byRow), pairs, nil
}

func evaluateRow(ctx context.Context, m *matching.Matcher, users []matching.PreparedUser, i int) Result {
	res := Result{Row: i}
	for j := i + 1; j < len(users); j++ {
		if err := ctx.Err(); err != nil {
			res.Err = err
			return res
		}
		res.Pairs++
		if c, ok := m.EvaluatePair(users[i], users[j]); ok {
			res.Candidates = append(res.Candidates, c)
		}
	}
	return res
}

func flatten(rows [][]matching.Candidate) []matching.Candidate {
	n := 0
	for _, r := range rows {
		n += len(r)
	}
	out := make([]matching.Candidate, 0, n)
	for _, r := range rows {
		out = append(out, r...)
	}
	return out
}
