package usecase

import (
	"context"
	"time"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthStatus struct {
	DatabaseHealthy bool
	RedisHealthy    bool
	CheckedAt       time.Time
}

func (s HealthStatus) Healthy() bool {
	return s.DatabaseHealthy
}

type HealthUsecase interface {
	Check(ctx context.Context) HealthStatus
}

type Health struct {
	db    Pinger
	redis Pinger
	now   func() time.Time
}

// NewHealthUsecase reports the dependencies' reachability. Redis is optional
// and its absence never marks the service unhealthy.
func NewHealthUsecase(db Pinger, redis Pinger) *Health {
	return &Health{db: db, redis: redis, now: time.Now}
}

func (u *Health) Check(ctx context.Context) HealthStatus {
	return HealthStatus{
		DatabaseHealthy: ping(ctx, u.db),
		RedisHealthy:    ping(ctx, u.redis),
		CheckedAt:       u.now().UTC(),
	}
}

func ping(ctx context.Context, p Pinger) bool {
	if p == nil {
		return false
	}
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return p.Ping(pingCtx) == nil
}
