package dto

import (
	"time"

	"skill-swap/internal/pipeline"

	"github.com/google/uuid"
)

type PairErrorResponse struct {
	User1 uuid.UUID `json:"user1"`
	User2 uuid.UUID `json:"user2"`
	Error string    `json:"error"`
}

type RunSummaryResponse struct {
	RunID           string              `json:"run_id"`
	Users           int                 `json:"users"`
	Terms           int                 `json:"terms"`
	PairsEvaluated  int                 `json:"pairs_evaluated"`
	Candidates      int                 `json:"candidates"`
	MatchesCreated  int                 `json:"matches_created"`
	MatchesSkipped  int                 `json:"matches_skipped"`
	SynonymLookups  int64               `json:"synonym_lookups"`
	SynonymFailures int64               `json:"synonym_failures"`
	Errors          []PairErrorResponse `json:"errors"`
	StartedAt       time.Time           `json:"started_at"`
	DurationMS      int64               `json:"duration_ms"`
}

func NewRunSummaryResponse(s pipeline.RunSummary) RunSummaryResponse {
	out := RunSummaryResponse{
		RunID:           s.RunID,
		Users:           s.Users,
		Terms:           s.Terms,
		PairsEvaluated:  s.PairsEvaluated,
		Candidates:      s.Candidates,
		MatchesCreated:  s.MatchesCreated,
		MatchesSkipped:  s.MatchesSkipped,
		SynonymLookups:  s.SynonymLookups,
		SynonymFailures: s.SynonymFailures,
		Errors:          make([]PairErrorResponse, 0, len(s.Errors)),
		StartedAt:       s.StartedAt,
		DurationMS:      s.Duration.Milliseconds(),
	}
	for _, e := range s.Errors {
		msg := ""
		if e.Err != nil {
			msg = e.Err.Error()
		}
		out.Errors = append(out.Errors, PairErrorResponse{User1: e.User1, User2: e.User2, Error: msg})
	}
	return out
}
