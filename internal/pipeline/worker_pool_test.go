package pipeline

import (
	"context"
	"sort"
	"sync/atomic"
	"testing"
	"time"
)

func TestWorkerPool_RunsAllTasks(t *testing.T) {
	pool := NewWorkerPool(3, 0)
	ctx := context.Background()
	results := pool.Run(ctx)

	go func() {
		defer pool.Close()
		for i := 0; i < 10; i++ {
			row := i
			pool.Submit(ctx, func(context.Context) Result { return Result{Row: row, Pairs: row} })
		}
	}()

	var rows []int
	for res := range results {
		rows = append(rows, res.Row)
	}
	sort.Ints(rows)
	if len(rows) != 10 {
		t.Fatalf("expected 10 results, got %d", len(rows))
	}
	for i, r := range rows {
		if r != i {
			t.Fatalf("missing row %d in %v", i, rows)
		}
	}
}

func TestWorkerPool_LimitsConcurrency(t *testing.T) {
	pool := NewWorkerPool(2, 0)
	ctx := context.Background()
	results := pool.Run(ctx)

	var active, peak atomic.Int32
	go func() {
		defer pool.Close()
		for i := 0; i < 8; i++ {
			pool.Submit(ctx, func(context.Context) Result {
				n := active.Add(1)
				for {
					p := peak.Load()
					if n <= p || peak.CompareAndSwap(p, n) {
						break
					}
				}
				time.Sleep(5 * time.Millisecond)
				active.Add(-1)
				return Result{}
			})
		}
	}()

	for range results {
	}
	if p := peak.Load(); p > 2 {
		t.Fatalf("expected at most 2 concurrent tasks, got %d", p)
	}
}

func TestWorkerPool_SubmitAfterCancel(t *testing.T) {
	pool := NewWorkerPool(1, 0)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if pool.Submit(ctx, func(context.Context) Result { return Result{} }) {
		t.Fatalf("expected submit to fail on cancelled context")
	}
}

func TestWorkerPool_CancelClosesResults(t *testing.T) {
	pool := NewWorkerPool(2, 0)
	ctx, cancel := context.WithCancel(context.Background())
	results := pool.Run(ctx)
	cancel()

	select {
	case _, ok := <-results:
		for ok {
			_, ok = <-results
		}
	case <-time.After(time.Second):
		t.Fatalf("results channel not closed after cancel")
	}
}

func TestWorkerPool_CloseIsIdempotent(t *testing.T) {
	pool := NewWorkerPool(1, 1)
	pool.Close()
	pool.Close()

	var nilPool *WorkerPool
	nilPool.Close()
	if nilPool.Submit(context.Background(), func(context.Context) Result { return Result{} }) {
		t.Fatalf("nil pool accepted a task")
	}
	for range nilPool.Run(context.Background()) {
	}
}
