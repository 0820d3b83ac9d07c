package repository

import (
	"context"
	"fmt"

	"skill-swap/internal/database"
	"skill-swap/internal/domain/matching"

	"github.com/google/uuid"
)

// UserDirectory supplies the point-in-time user snapshot a matching run works
// on.
type UserDirectory interface {
	ListUsers(ctx context.Context) ([]matching.UserSnapshot, error)
}

type PostgresUserDirectory struct {
	db database.DB
}

func NewPostgresUserDirectory(db database.DB) *PostgresUserDirectory {
	return &PostgresUserDirectory{db: db}
}

// ListUsers reads every user with their requirements in one statement so the
// result reflects a single snapshot.
func (r *PostgresUserDirectory) ListUsers(ctx context.Context) ([]matching.UserSnapshot, error) {
	rows, err := r.db.Query(ctx,
		`SELECT u.id, u.skill_string, sr.id, sr.name
		 FROM users u
		 LEFT JOIN skill_requirements sr ON sr.user_id = u.id
		 ORDER BY u.created_at ASC, u.id ASC, sr.position ASC, sr.id ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	out := make([]matching.UserSnapshot, 0)
	index := make(map[uuid.UUID]int)
	for rows.Next() {
		var (
			userID      uuid.UUID
			skillString string
			reqID       *uuid.UUID
			reqName     *string
		)
		if err := rows.Scan(&userID, &skillString, &reqID, &reqName); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}

		i, ok := index[userID]
		if !ok {
			i = len(out)
			index[userID] = i
			out = append(out, matching.UserSnapshot{
				ID:               userID,
				OfferedSkillsRaw: skillString,
				RequiredSkills:   []matching.RequiredSkill{},
			})
		}
		if reqID != nil && reqName != nil {
			out[i].RequiredSkills = append(out[i].RequiredSkills, matching.RequiredSkill{ID: *reqID, Name: *reqName})
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return out, nil
}

var _ UserDirectory = (*PostgresUserDirectory)(nil)
