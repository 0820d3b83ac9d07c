package synonym

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"go.uber.org/zap/zapcore"
)

type countingLookup struct {
	mu    sync.Mutex
	calls map[string]int
	words map[string][]string
	fail  map[string]bool
	delay time.Duration
}

func newCountingLookup(words map[string][]string) *countingLookup {
	return &countingLookup{calls: map[string]int{}, words: words, fail: map[string]bool{}}
}

func (c *countingLookup) LookupSynonyms(ctx context.Context, term string) ([]string, error) {
	c.mu.Lock()
	c.calls[term]++
	fail := c.fail[term]
	c.mu.Unlock()

	if c.delay > 0 {
		time.Sleep(c.delay)
	}
	if fail {
		return nil, errors.New("thesaurus unavailable")
	}
	return c.words[term], nil
}

func (c *countingLookup) count(term string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls[term]
}

func TestCache_LooksUpEachTermOnce(t *testing.T) {
	lookup := newCountingLookup(map[string][]string{"golang": {"go"}})
	lookup.delay = 10 * time.Millisecond
	c := NewCache(lookup, nil, 4)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s := c.SynonymsOf(context.Background(), "Golang")
			if !s.Has("go") {
				t.Errorf("expected go in synonyms of golang")
			}
		}()
	}
	wg.Wait()

	if got := lookup.count("golang"); got != 1 {
		t.Fatalf("expected one lookup, got %d", got)
	}
	if st := c.Stats(); st.Lookups != 1 || st.Terms != 1 {
		t.Fatalf("unexpected stats: %+v", st)
	}
}

func TestCache_FailureMemoizedAsEmpty(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	lookup := newCountingLookup(nil)
	lookup.fail["guitar"] = true
	c := NewCache(lookup, zap.New(core), 2)

	for i := 0; i < 3; i++ {
		if s := c.SynonymsOf(context.Background(), "guitar"); s.Len() != 0 {
			t.Fatalf("expected empty set, got %v", s)
		}
	}
	if got := lookup.count("guitar"); got != 1 {
		t.Fatalf("expected one lookup, got %d", got)
	}
	if logs.Len() != 1 {
		t.Fatalf("expected one warning, got %d", logs.Len())
	}
	if st := c.Stats(); st.Failures != 1 {
		t.Fatalf("expected one failure, got %+v", st)
	}
}

func TestCache_ExcludesTermFromItsOwnSet(t *testing.T) {
	c := NewCache(LookupFunc(func(context.Context, string) ([]string, error) {
		return []string{"piano", "keyboard"}, nil
	}), nil, 1)

	s := c.SynonymsOf(context.Background(), "piano")
	if s.Has("piano") || !s.Has("keyboard") {
		t.Fatalf("unexpected set: %v", s)
	}
}

func TestCache_IsSynonymOfChecksBothDirections(t *testing.T) {
	lookup := newCountingLookup(map[string][]string{"js": {"javascript"}})
	c := NewCache(lookup, nil, 2)

	if c.IsSynonymOf("js", "javascript") {
		t.Fatalf("expected false before prefetch")
	}
	if err := c.Prefetch(context.Background(), []string{"js", "javascript"}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !c.IsSynonymOf("js", "javascript") {
		t.Fatalf("expected js ~ javascript")
	}
	if !c.IsSynonymOf("javascript", "js") {
		t.Fatalf("expected javascript ~ js")
	}
	if c.IsSynonymOf("js", "python") {
		t.Fatalf("expected js !~ python")
	}
	if c.IsSynonymOf("", "js") {
		t.Fatalf("expected empty term to never match")
	}
}

func TestCache_KeepsAccentsOfReturnedSynonyms(t *testing.T) {
	lookup := newCountingLookup(map[string][]string{"coffee": {"Café", "espresso"}})
	c := NewCache(lookup, nil, 1)

	if err := c.Prefetch(context.Background(), []string{"coffee", "café"}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !c.IsSynonymOf("café", "coffee") {
		t.Fatalf("expected café ~ coffee")
	}
	if c.IsSynonymOf("cafe", "coffee") {
		t.Fatalf("expected unaccented cafe to stay distinct")
	}
}

func TestCache_PrefetchSkipsKnownTerms(t *testing.T) {
	lookup := newCountingLookup(map[string][]string{})
	c := NewCache(lookup, nil, 3)

	terms := []string{"a", "b", "c", "a"}
	if err := c.Prefetch(context.Background(), terms); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if err := c.Prefetch(context.Background(), terms); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	for _, term := range []string{"a", "b", "c"} {
		if got := lookup.count(term); got != 1 {
			t.Fatalf("expected one lookup for %q, got %d", term, got)
		}
	}
}

func TestCache_PrefetchBoundsConcurrency(t *testing.T) {
	var inFlight, peak atomic.Int32
	c := NewCache(LookupFunc(func(context.Context, string) ([]string, error) {
		n := inFlight.Add(1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		time.Sleep(5 * time.Millisecond)
		inFlight.Add(-1)
		return nil, nil
	}), nil, 2)

	terms := []string{"a", "b", "c", "d", "e", "f", "g", "h"}
	if err := c.Prefetch(context.Background(), terms); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if p := peak.Load(); p > 2 {
		t.Fatalf("expected at most 2 lookups in flight, got %d", p)
	}
}

func TestCache_PrefetchCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := NewCache(newCountingLookup(nil), nil, 1)
	err := c.Prefetch(ctx, []string{"a", "b"})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestCache_NilLookup(t *testing.T) {
	c := NewCache(nil, nil, 0)
	if s := c.SynonymsOf(context.Background(), "go"); s.Len() != 0 {
		t.Fatalf("expected empty set, got %v", s)
	}
	if c.IsSynonymOf("go", "golang") {
		t.Fatalf("expected false")
	}
}
