package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"skill-swap/internal/database"
	"skill-swap/internal/domain/match"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var ErrMatchNotFound = errors.New("match not found")

// MatchKey identifies a match by its full content. The store keeps users in
// the order the engine emitted them, so lookups check both orderings.
type MatchKey struct {
	User1  uuid.UUID
	User2  uuid.UUID
	Skill1 string
	Skill2 string
	Score  float64
}

// Reversed is the same match seen from User2's side.
func (k MatchKey) Reversed() MatchKey {
	return MatchKey{User1: k.User2, User2: k.User1, Skill1: k.Skill2, Skill2: k.Skill1, Score: k.Score}
}

type MatchRepository interface {
	Exists(ctx context.Context, key MatchKey) (bool, error)
	// Create stores a new match with both accept flags false. It returns
	// created=false when an identical match already exists.
	Create(ctx context.Context, key MatchKey) (id uuid.UUID, created bool, err error)
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]match.Match, error)
	GetByID(ctx context.Context, id uuid.UUID) (match.Match, error)
}

type PostgresMatchRepository struct {
	db  database.DB
	now func() time.Time
}

func NewPostgresMatchRepository(db database.DB) *PostgresMatchRepository {
	return &PostgresMatchRepository{db: db, now: time.Now}
}

func (r *PostgresMatchRepository) Exists(ctx context.Context, key MatchKey) (bool, error) {
	rev := key.Reversed()

	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (
			SELECT 1 FROM matches
			WHERE (user1 = $1 AND user2 = $2 AND skill1 = $3 AND skill2 = $4 AND score = $5)
			   OR (user1 = $6 AND user2 = $7 AND skill1 = $8 AND skill2 = $9 AND score = $5)
		)`,
		key.User1, key.User2, key.Skill1, key.Skill2, key.Score,
		rev.User1, rev.User2, rev.Skill1, rev.Skill2,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("match exists: %w", err)
	}
	return exists, nil
}

func (r *PostgresMatchRepository) Create(ctx context.Context, key MatchKey) (uuid.UUID, bool, error) {
	if key.User1 == uuid.Nil || key.User2 == uuid.Nil {
		return uuid.Nil, false, errors.New("create match: empty user id")
	}

	var id uuid.UUID
	err := r.db.QueryRow(ctx,
		`INSERT INTO matches (id, user1, user2, skill1, skill2, score, accept1, accept2, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, false, false, $7)
		 ON CONFLICT ON CONSTRAINT matches_unique_tuple DO NOTHING
		 RETURNING id`,
		uuid.New(),
		key.User1,
		key.User2,
		key.Skill1,
		key.Skill2,
		key.Score,
		r.now().UTC(),
	).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return uuid.Nil, false, nil
		}
		return uuid.Nil, false, fmt.Errorf("create match: %w", err)
	}
	return id, true, nil
}

func (r *PostgresMatchRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]match.Match, error) {
	if limit <= 0 {
		limit = 50
	}
	if limit > 500 {
		limit = 500
	}
	if offset < 0 {
		offset = 0
	}

	rows, err := r.db.Query(ctx,
		`SELECT id, user1, user2, skill1, skill2, score, accept1, accept2, created_at
		 FROM matches
		 WHERE user1 = $1 OR user2 = $1
		 ORDER BY created_at DESC, id ASC
		 LIMIT $2 OFFSET $3`,
		userID, limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}
	defer rows.Close()

	out := make([]match.Match, 0)
	for rows.Next() {
		m, err := scanMatch(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}
	return out, nil
}

func (r *PostgresMatchRepository) GetByID(ctx context.Context, id uuid.UUID) (match.Match, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, user1, user2, skill1, skill2, score, accept1, accept2, created_at
		 FROM matches WHERE id = $1`,
		id,
	)
	m, err := scanMatch(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return match.Match{}, ErrMatchNotFound
		}
		return match.Match{}, err
	}
	return m, nil
}

func scanMatch(row database.Row) (match.Match, error) {
	var m match.Match
	err := row.Scan(&m.ID, &m.User1, &m.User2, &m.Skill1, &m.Skill2, &m.Score, &m.Accept1, &m.Accept2, &m.CreatedAt)
	if err != nil {
		return match.Match{}, fmt.Errorf("scan match: %w", err)
	}
	return m, nil
}

var _ MatchRepository = (*PostgresMatchRepository)(nil)
