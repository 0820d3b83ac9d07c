package handler

import (
	"context"
	"errors"
	"time"

	"skill-swap/internal/delivery/http/dto"
	"skill-swap/internal/delivery/http/middleware"
	"skill-swap/internal/pipeline"
	"skill-swap/internal/pkg/response"
	"skill-swap/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type MatchingRunner interface {
	Run(ctx context.Context) (pipeline.RunSummary, error)
}

type MatchingHandler struct {
	runner  MatchingRunner
	timeout time.Duration
}

func NewMatchingHandler(runner MatchingRunner, timeout time.Duration) *MatchingHandler {
	return &MatchingHandler{runner: runner, timeout: timeout}
}

func (h *MatchingHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Post("/matching/runs", h.TriggerRun)
}

// TriggerRun performs one matching run synchronously and returns its summary.
func (h *MatchingHandler) TriggerRun(c fiber.Ctx) error {
	if h.runner == nil {
		return middleware.NewAppError(fiber.StatusServiceUnavailable, "", nil, nil)
	}

	ctx := c.Context()
	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}

	summary, err := h.runner.Run(ctx)
	if err != nil {
		return mapRunError(err)
	}
	return response.Success(c, fiber.StatusOK, "matching run completed", dto.NewRunSummaryResponse(summary))
}

func mapRunError(err error) error {
	switch {
	case errors.Is(err, usecase.ErrRunInProgress):
		return middleware.NewAppError(fiber.StatusConflict, "Matching run already in progress", nil, err)
	case errors.Is(err, context.DeadlineExceeded):
		return middleware.NewAppError(fiber.StatusServiceUnavailable, "", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
