package synonym

import (
	"context"
	"time"

	"go.uber.org/zap"
)

const keyPrefix = "synonyms:"

// JSONCache is the subset of the Redis cache used to share lookups across runs.
type JSONCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
}

// CachedLookup keeps successful lookups in a shared cache for ttl so that
// consecutive runs do not hit the remote thesaurus for every term. Cache
// errors never fail a lookup.
type CachedLookup struct {
	next   Lookup
	cache  JSONCache
	ttl    time.Duration
	logger *zap.Logger
}

func NewCachedLookup(next Lookup, cache JSONCache, ttl time.Duration, logger *zap.Logger) *CachedLookup {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CachedLookup{next: next, cache: cache, ttl: ttl, logger: logger}
}

func CacheKey(term string) string {
	return keyPrefix + normalizeTerm(term)
}

func (l *CachedLookup) LookupSynonyms(ctx context.Context, term string) ([]string, error) {
	key := CacheKey(term)

	if l.cache != nil {
		var cached []string
		ok, err := l.cache.GetJSON(ctx, key, &cached)
		if err != nil {
			l.logger.Debug("synonym cache read failed", zap.String("key", key), zap.Error(err))
		}
		if ok {
			return cached, nil
		}
	}

	words, err := l.next.LookupSynonyms(ctx, term)
	if err != nil {
		return nil, err
	}
	if words == nil {
		words = []string{}
	}

	if l.cache != nil {
		if err := l.cache.SetJSON(ctx, key, words, l.ttl); err != nil {
			l.logger.Debug("synonym cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return words, nil
}

var _ Lookup = (*CachedLookup)(nil)
