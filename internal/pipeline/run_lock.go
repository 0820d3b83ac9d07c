package pipeline

import (
	"context"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

const runLockKey = "matching:run:lock"

// RunLock keeps matching runs from overlapping.
type RunLock interface {
	Acquire(ctx context.Context, token string) (bool, error)
	Release(ctx context.Context, token string) error
}

// LockStore is the subset of the Redis cache used for the shared lock.
type LockStore interface {
	Available() bool
	SetIfNotExists(ctx context.Context, key string, value string, ttl time.Duration) (bool, error)
	DeleteIfValue(ctx context.Context, key string, value string) (bool, error)
}

// DistributedRunLock guards runs inside this process and, when the store is
// reachable, across processes. An unreachable store never blocks a run.
type DistributedRunLock struct {
	store  LockStore
	ttl    time.Duration
	logger *zap.Logger

	local atomic.Bool
}

func NewDistributedRunLock(store LockStore, ttl time.Duration, logger *zap.Logger) *DistributedRunLock {
	if logger == nil {
		logger = zap.NewNop()
	}
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return &DistributedRunLock{store: store, ttl: ttl, logger: logger}
}

func (l *DistributedRunLock) Acquire(ctx context.Context, token string) (bool, error) {
	if !l.local.CompareAndSwap(false, true) {
		return false, nil
	}
	if l.store == nil || !l.store.Available() {
		return true, nil
	}

	ok, err := l.store.SetIfNotExists(ctx, runLockKey, token, l.ttl)
	if err != nil {
		l.logger.Warn("run lock unavailable, continuing with local lock only", zap.Error(err))
		return true, nil
	}
	if !ok {
		l.local.Store(false)
		return false, nil
	}
	return true, nil
}

func (l *DistributedRunLock) Release(ctx context.Context, token string) error {
	defer l.local.Store(false)
	if l.store == nil || !l.store.Available() {
		return nil
	}
	_, err := l.store.DeleteIfValue(ctx, runLockKey, token)
	return err
}
