package seeder

import (
	"context"
	"fmt"
	"time"

	"skill-swap/internal/database"

	"go.uber.org/zap"
)

// Seeder loads one set of fixture rows. Seeders must be safe to run again.
type Seeder interface {
	Name() string
	Run(ctx context.Context, db database.DB) error
}

// Defaults is the seed set used by `matcher seed`.
func Defaults() []Seeder {
	return []Seeder{UsersSeeder{Users: DemoUsers()}}
}

type Runner struct {
	Seeders []Seeder
	Logger  *zap.Logger
}

// Run executes the seeders in order and stops at the first failure.
func (r Runner) Run(ctx context.Context, db database.DB) error {
	if db == nil {
		return database.ErrNilDB
	}
	logger := r.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	for _, s := range r.Seeders {
		if s == nil {
			continue
		}
		start := time.Now()
		if err := s.Run(ctx, db); err != nil {
			return fmt.Errorf("seed %s: %w", s.Name(), err)
		}
		logger.Info("seeder finished", zap.String("seeder", s.Name()), zap.Duration("duration", time.Since(start)))
	}
	return nil
}
