package dto

import (
	"time"

	"skill-swap/internal/domain/match"

	"github.com/google/uuid"
)

type MatchResponse struct {
	ID        uuid.UUID `json:"id"`
	User1     uuid.UUID `json:"user1"`
	User2     uuid.UUID `json:"user2"`
	Skill1    string    `json:"skill1"`
	Skill2    string    `json:"skill2"`
	Score     float64   `json:"score"`
	Accept1   bool      `json:"accept1"`
	Accept2   bool      `json:"accept2"`
	CreatedAt time.Time `json:"created_at"`
}

// UserMatchResponse is a match seen from one participant.
type UserMatchResponse struct {
	MatchResponse
	PartnerID uuid.UUID `json:"partner_id"`
}

func NewMatchResponse(m match.Match) MatchResponse {
	return MatchResponse{
		ID:        m.ID,
		User1:     m.User1,
		User2:     m.User2,
		Skill1:    m.Skill1,
		Skill2:    m.Skill2,
		Score:     m.Score,
		Accept1:   m.Accept1,
		Accept2:   m.Accept2,
		CreatedAt: m.CreatedAt,
	}
}

type UserMatchListResponse struct {
	Items  []UserMatchResponse `json:"items"`
	Limit  int                 `json:"limit"`
	Offset int                 `json:"offset"`
}
