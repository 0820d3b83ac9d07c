package handler

import (
	"errors"
	"strconv"

	"skill-swap/internal/delivery/http/dto"
	"skill-swap/internal/delivery/http/middleware"
	"skill-swap/internal/pkg/response"
	"skill-swap/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

const defaultMatchLimit = 50

type MatchHandler struct {
	uc usecase.MatchQueryUsecase
}

func NewMatchHandler(uc usecase.MatchQueryUsecase) *MatchHandler {
	return &MatchHandler{uc: uc}
}

func (h *MatchHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/users/:user_id/matches", h.ListUserMatches)
	r.Get("/matches/:match_id", h.GetMatch)
}

func (h *MatchHandler) ListUserMatches(c fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("user_id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid user id", nil, err)
	}

	limit, err := parseQueryIntStrict(c, "limit", defaultMatchLimit)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid limit", nil, err)
	}
	offset, err := parseQueryIntStrict(c, "offset", 0)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid offset", nil, err)
	}

	items, err := h.uc.ListUserMatches(c.Context(), userID, usecase.MatchListParams{Limit: limit, Offset: offset})
	if err != nil {
		return mapMatchQueryError(err)
	}

	out := dto.UserMatchListResponse{
		Items:  make([]dto.UserMatchResponse, 0, len(items)),
		Limit:  limit,
		Offset: offset,
	}
	for _, m := range items {
		partner, _ := m.Partner(userID)
		out.Items = append(out.Items, dto.UserMatchResponse{
			MatchResponse: dto.NewMatchResponse(m),
			PartnerID:     partner,
		})
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func (h *MatchHandler) GetMatch(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("match_id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid match id", nil, err)
	}

	m, err := h.uc.GetMatch(c.Context(), id)
	if err != nil {
		return mapMatchQueryError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewMatchResponse(m))
}

func parseQueryIntStrict(c fiber.Ctx, key string, defaultVal int) (int, error) {
	s := c.Query(key)
	if s == "" {
		return defaultVal, nil
	}
	return strconv.Atoi(s)
}

func mapMatchQueryError(err error) error {
	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	case errors.Is(err, usecase.ErrNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Match not found", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
