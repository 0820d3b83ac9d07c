package ws

import (
	"context"
	"encoding/json"
	"time"

	"skill-swap/internal/pipeline"

	"go.uber.org/zap"
)

const EventMatchesCreated = "matches_created"

type MatchesCreatedEvent struct {
	Type           string `json:"type"`
	RunID          string `json:"run_id"`
	MatchesCreated int    `json:"matches_created"`
	PairsEvaluated int    `json:"pairs_evaluated"`
	Timestamp      string `json:"timestamp"`
}

// Notifier publishes run results to websocket subscribers.
type Notifier struct {
	hub    *Hub
	logger *zap.Logger
	now    func() time.Time
}

func NewNotifier(hub *Hub, logger *zap.Logger) *Notifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Notifier{hub: hub, logger: logger, now: time.Now}
}

func (n *Notifier) NotifyMatchesCreated(_ context.Context, s pipeline.RunSummary) {
	if n == nil || n.hub == nil {
		return
	}
	b, err := json.Marshal(MatchesCreatedEvent{
		Type:           EventMatchesCreated,
		RunID:          s.RunID,
		MatchesCreated: s.MatchesCreated,
		PairsEvaluated: s.PairsEvaluated,
		Timestamp:      n.now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		n.logger.Warn("encode ws event failed", zap.Error(err))
		return
	}
	n.hub.Broadcast(b)
}

var _ pipeline.Notifier = (*Notifier)(nil)
