package synonym

import (
	"context"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

const defaultConcurrency = 4

// Cache memoizes synonym sets for the lifetime of one matching run. The first
// caller for a term performs the lookup; concurrent callers for the same term
// wait for that result. Failed lookups are remembered as empty sets.
type Cache struct {
	lookup      Lookup
	logger      *zap.Logger
	concurrency int

	group singleflight.Group
	mu    sync.RWMutex
	sets  map[string]Set

	lookups  atomic.Int64
	failures atomic.Int64
}

type CacheStats struct {
	Terms    int
	Lookups  int64
	Failures int64
}

func NewCache(lookup Lookup, logger *zap.Logger, concurrency int) *Cache {
	if logger == nil {
		logger = zap.NewNop()
	}
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}
	return &Cache{
		lookup:      lookup,
		logger:      logger,
		concurrency: concurrency,
		sets:        make(map[string]Set),
	}
}

// SynonymsOf returns the synonym set of term, looking it up at most once.
func (c *Cache) SynonymsOf(ctx context.Context, term string) Set {
	term = normalizeTerm(term)
	if term == "" {
		return Set{}
	}
	if s, ok := c.get(term); ok {
		return s
	}
	if c.lookup == nil {
		c.put(term, Set{})
		return Set{}
	}

	v, _, _ := c.group.Do(term, func() (any, error) {
		if s, ok := c.get(term); ok {
			return s, nil
		}

		c.lookups.Add(1)
		words, err := c.lookup.LookupSynonyms(ctx, term)
		if err != nil {
			c.failures.Add(1)
			c.logger.Warn("synonym lookup failed, continuing without synonyms",
				zap.String("term", term),
				zap.Error(err),
			)
			words = nil
		}

		s := NewSet(words...)
		delete(s, term)
		c.put(term, s)
		return s, nil
	})
	return v.(Set)
}

// Prefetch resolves every term with at most the configured number of lookups
// in flight. It only fails when ctx is done.
func (c *Cache) Prefetch(ctx context.Context, terms []string) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.concurrency)

	for _, t := range terms {
		if _, ok := c.get(normalizeTerm(t)); ok {
			continue
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			c.SynonymsOf(gctx, t)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}

// IsSynonymOf reports whether b is a synonym of a or a is a synonym of b. It
// only consults sets already resolved, so it never blocks on I/O.
func (c *Cache) IsSynonymOf(a, b string) bool {
	a = normalizeTerm(a)
	b = normalizeTerm(b)
	if a == "" || b == "" {
		return false
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.sets[a].Has(b) || c.sets[b].Has(a)
}

func (c *Cache) Stats() CacheStats {
	c.mu.RLock()
	n := len(c.sets)
	c.mu.RUnlock()
	return CacheStats{Terms: n, Lookups: c.lookups.Load(), Failures: c.failures.Load()}
}

func (c *Cache) get(term string) (Set, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	s, ok := c.sets[term]
	return s, ok
}

func (c *Cache) put(term string, s Set) {
	c.mu.Lock()
	c.sets[term] = s
	c.mu.Unlock()
}
