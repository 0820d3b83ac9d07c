package ws

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"skill-swap/internal/pipeline"
)

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("condition not met in time")
		}
		time.Sleep(time.Millisecond)
	}
}

func TestHub_BroadcastReachesClients(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := NewHub(nil)
	go hub.Run(ctx)

	a := NewClient(hub, nil)
	b := NewClient(hub, nil)
	hub.Register(a)
	hub.Register(b)
	waitFor(t, func() bool { return hub.ClientCount() == 2 })

	if !hub.Broadcast([]byte("hello")) {
		t.Fatalf("broadcast dropped")
	}
	for _, c := range []*Client{a, b} {
		select {
		case msg := <-c.send:
			if string(msg) != "hello" {
				t.Fatalf("unexpected message %q", msg)
			}
		case <-time.After(time.Second):
			t.Fatalf("message not delivered")
		}
	}

	hub.Unregister(a)
	waitFor(t, func() bool { return hub.ClientCount() == 1 })
	if _, ok := <-a.send; ok {
		t.Fatalf("send channel of unregistered client should be closed")
	}
}

func TestHub_DropsSlowClient(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := NewHub(nil)
	go hub.Run(ctx)

	slow := NewClient(hub, nil)
	hub.Register(slow)
	waitFor(t, func() bool { return hub.ClientCount() == 1 })

	for i := 0; i < sendBuffer+1; i++ {
		hub.Broadcast([]byte("x"))
	}
	waitFor(t, func() bool { return hub.ClientCount() == 0 })
}

func TestHub_StopClosesClients(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	hub := NewHub(nil)
	done := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(done)
	}()

	c := NewClient(hub, nil)
	hub.Register(c)
	waitFor(t, func() bool { return hub.ClientCount() == 1 })

	cancel()
	<-done
	if hub.ClientCount() != 0 {
		t.Fatalf("expected no clients after stop")
	}
}

func TestNotifier_PublishesEvent(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := NewHub(nil)
	go hub.Run(ctx)
	c := NewClient(hub, nil)
	hub.Register(c)
	waitFor(t, func() bool { return hub.ClientCount() == 1 })

	n := NewNotifier(hub, nil)
	n.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }
	n.NotifyMatchesCreated(ctx, pipeline.RunSummary{RunID: "run-1", MatchesCreated: 3, PairsEvaluated: 10})

	var evt MatchesCreatedEvent
	select {
	case msg := <-c.send:
		if err := json.Unmarshal(msg, &evt); err != nil {
			t.Fatalf("decode: %v", err)
		}
	case <-time.After(time.Second):
		t.Fatalf("event not delivered")
	}

	want := MatchesCreatedEvent{Type: EventMatchesCreated, RunID: "run-1", MatchesCreated: 3, PairsEvaluated: 10, Timestamp: "2026-01-02T03:04:05Z"}
	if evt != want {
		t.Fatalf("unexpected event %+v", evt)
	}
}

func TestNilHub(t *testing.T) {
	var h *Hub
	if h.Broadcast([]byte("x")) || h.ClientCount() != 0 {
		t.Fatalf("nil hub should be inert")
	}
	NewNotifier(nil, nil).NotifyMatchesCreated(context.Background(), pipeline.RunSummary{})
}
