package handler

import (
	"skill-swap/internal/delivery/http/dto"
	"skill-swap/internal/pkg/response"
	"skill-swap/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type HealthHandler struct {
	uc usecase.HealthUsecase
}

func NewHealthHandler(uc usecase.HealthUsecase) *HealthHandler {
	return &HealthHandler{uc: uc}
}

func (h *HealthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/health", h.Check)
}

// Check answers 200 while the database is reachable and 503 otherwise. Redis
// is reported but optional.
func (h *HealthHandler) Check(c fiber.Ctx) error {
	if h.uc == nil {
		return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
	}

	st := h.uc.Check(c.Context())
	out := dto.NewHealthResponse(st.DatabaseHealthy, st.RedisHealthy, st.CheckedAt)
	if !st.Healthy() {
		return response.Error(c, fiber.StatusServiceUnavailable, response.MessageServiceUnavailable, out)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}
