package app

import (
	"context"
	"errors"
	"time"

	"skill-swap/internal/config"
	"skill-swap/internal/database"
	dbpostgres "skill-swap/internal/database/postgres"
	"skill-swap/internal/domain/matching"
	"skill-swap/internal/infrastructure/cache"
	"skill-swap/internal/infrastructure/thesaurus"
	"skill-swap/internal/logger"
	"skill-swap/internal/pipeline"
	"skill-swap/internal/pkg/jwt"
	"skill-swap/internal/repository"
	"skill-swap/internal/synonym"
	"skill-swap/internal/usecase"

	"go.uber.org/zap"
)

// Container owns the long-lived dependencies shared by the server and the CLI.
type Container struct {
	Config config.Config
	Logger *zap.Logger
	DB     database.DB
	Redis  *cache.Redis

	Directory  repository.UserDirectory
	Matches    repository.MatchRepository
	Normalizer *matching.Normalizer
	Synonyms   synonym.Lookup
	RunLock    pipeline.RunLock
	JWT        *jwt.HMACService

	MatchQuery *usecase.MatchQuery
	Health     *usecase.Health
}

func NewContainer(ctx context.Context, cfg config.Config, log *zap.Logger) (*Container, error) {
	if log == nil {
		log = zap.NewNop()
	}

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(connectCtx, cfg.Database, logger.Named(log, "postgres"))
	if err != nil {
		return nil, err
	}
	redis := cache.NewRedis(connectCtx, cfg.Redis, logger.Named(log, "redis"))
	var store synonym.JSONCache
	if redis.Available() {
		store = redis
	}

	c := &Container{
		Config:     cfg,
		Logger:     log,
		DB:         db,
		Redis:      redis,
		Directory:  repository.NewPostgresUserDirectory(db),
		Matches:    repository.NewPostgresMatchRepository(db),
		Normalizer: NewNormalizer(cfg.Matching, log),
		Synonyms:   NewSynonymLookup(cfg.Thesaurus, store, log),
		RunLock:    pipeline.NewDistributedRunLock(redis, cfg.Matching.LockTTL, logger.Named(log, "run_lock")),
		JWT:        jwt.NewHMACService(cfg.JWT.AccessSecret, cfg.JWT.AccessExpiresIn, cfg.App.AppName),
	}
	c.MatchQuery = usecase.NewMatchQueryUsecase(c.Matches)
	c.Health = usecase.NewHealthUsecase(db, redis)
	return c, nil
}

// NewPipeline builds a matching pipeline that stores into matches. The CLI
// passes an in-memory store for dry runs.
func (c *Container) NewPipeline(matches repository.MatchRepository, notifier pipeline.Notifier) *pipeline.MatchingPipeline {
	if matches == nil {
		matches = c.Matches
	}
	log := logger.Named(c.Logger, "matching")
	return pipeline.NewMatchingPipeline(
		c.Directory,
		usecase.NewMatchCommitter(matches, log),
		c.Normalizer,
		c.Synonyms,
		c.RunLock,
		notifier,
		pipeline.MatchingOptions{
			Threshold:          c.Config.Matching.Threshold,
			Workers:            c.Config.Matching.Workers,
			SynonymConcurrency: c.Config.Thesaurus.Concurrency,
		},
		log,
	)
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	var errs []error
	if c.Redis != nil {
		errs = append(errs, c.Redis.Close())
	}
	if c.DB != nil {
		errs = append(errs, c.DB.Close())
	}
	return errors.Join(errs...)
}

// NewNormalizer loads the lemma dictionary. A missing or broken dictionary
// only disables lemmatization.
func NewNormalizer(cfg config.MatchingConfig, log *zap.Logger) *matching.Normalizer {
	lemmas, err := matching.LoadLemmas(cfg.LemmaFile)
	if err != nil {
		log.Warn("lemma dictionary unavailable, continuing without lemmas",
			zap.String("path", cfg.LemmaFile),
			zap.Error(err),
		)
		lemmas = nil
	}
	return matching.NewNormalizer(matching.NormalizerConfig{
		Stopwords: cfg.Stopwords,
		Lemmas:    lemmas,
	})
}

// NewSynonymLookup combines the built-in thesaurus with the remote one. Remote
// results are shared across runs through the cache when it is available.
func NewSynonymLookup(cfg config.ThesaurusConfig, store synonym.JSONCache, log *zap.Logger) synonym.Lookup {
	var lookups synonym.Multi
	if cfg.Static {
		lookups = append(lookups, synonym.NewStatic(cfg.Extra))
	}

	attempts := uint(1)
	if cfg.Retries > 0 {
		attempts += uint(cfg.Retries)
	}
	client := thesaurus.NewClient(thesaurus.Options{
		BaseURL:    cfg.BaseURL,
		Timeout:    cfg.Timeout,
		MaxResults: cfg.MaxResults,
		Attempts:   attempts,
	}, logger.Named(log, "thesaurus"))
	if client != nil {
		var remote synonym.Lookup = client
		if store != nil {
			remote = synonym.NewCachedLookup(client, store, cfg.CacheTTL, logger.Named(log, "synonym_cache"))
		}
		lookups = append(lookups, remote)
	}

	switch len(lookups) {
	case 0:
		return nil
	case 1:
		return lookups[0]
	default:
		return lookups
	}
}
