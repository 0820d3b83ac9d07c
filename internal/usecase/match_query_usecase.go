package usecase

import (
	"context"
	"errors"

	"skill-swap/internal/domain/match"
	"skill-swap/internal/repository"

	"github.com/google/uuid"
)

type MatchListParams struct {
	Limit  int
	Offset int
}

type MatchQueryUsecase interface {
	ListUserMatches(ctx context.Context, userID uuid.UUID, p MatchListParams) ([]match.Match, error)
	GetMatch(ctx context.Context, id uuid.UUID) (match.Match, error)
}

type MatchQuery struct {
	matches repository.MatchRepository
}

func NewMatchQueryUsecase(matches repository.MatchRepository) *MatchQuery {
	return &MatchQuery{matches: matches}
}

func (u *MatchQuery) ListUserMatches(ctx context.Context, userID uuid.UUID, p MatchListParams) ([]match.Match, error) {
	if userID == uuid.Nil {
		return nil, ErrInvalidInput
	}
	if p.Limit < 0 || p.Limit > 500 || p.Offset < 0 {
		return nil, ErrInvalidInput
	}
	if p.Limit == 0 {
		p.Limit = 50
	}

	items, err := u.matches.ListByUser(ctx, userID, p.Limit, p.Offset)
	if err != nil {
		return nil, ErrInternal
	}
	return items, nil
}

func (u *MatchQuery) GetMatch(ctx context.Context, id uuid.UUID) (match.Match, error) {
	if id == uuid.Nil {
		return match.Match{}, ErrInvalidInput
	}
	m, err := u.matches.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrMatchNotFound) {
			return match.Match{}, ErrNotFound
		}
		return match.Match{}, ErrInternal
	}
	return m, nil
}
