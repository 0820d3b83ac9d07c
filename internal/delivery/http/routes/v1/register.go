package v1

import (
	"skill-swap/internal/delivery/http/handler"
	"skill-swap/internal/delivery/http/middleware"

	"github.com/gofiber/fiber/v3"
)

type Handlers struct {
	Matching *handler.MatchingHandler
	Matches  *handler.MatchHandler
	Auth     *middleware.AuthMiddleware
}

// Register mounts the operator API. Every route requires a bearer token.
func Register(r fiber.Router, h Handlers) {
	if r == nil {
		return
	}

	auth := middleware.NewAuthMiddleware(nil)
	if h.Auth != nil {
		auth = h.Auth
	}
	protected := r.Group("", auth.Middleware())

	if h.Matching != nil {
		h.Matching.RegisterRoutes(protected)
	}
	if h.Matches != nil {
		h.Matches.RegisterRoutes(protected)
	}
}
