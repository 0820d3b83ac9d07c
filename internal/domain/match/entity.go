package match

import (
	"time"

	"github.com/google/uuid"
)

// Match is a persisted skill swap between two users. Skill1 is what User1
// wants from User2 and Skill2 is what User2 wants from User1. Accept flags are
// owned by the users and start false.
type Match struct {
	ID        uuid.UUID
	User1     uuid.UUID
	User2     uuid.UUID
	Skill1    string
	Skill2    string
	Score     float64
	Accept1   bool
	Accept2   bool
	CreatedAt time.Time
}

// Involves reports whether id is either side of the match.
func (m Match) Involves(id uuid.UUID) bool {
	return m.User1 == id || m.User2 == id
}

// Partner returns the other side of the match for id.
func (m Match) Partner(id uuid.UUID) (uuid.UUID, bool) {
	switch id {
	case m.User1:
		return m.User2, true
	case m.User2:
		return m.User1, true
	default:
		return uuid.Nil, false
	}
}
