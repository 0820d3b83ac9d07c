package routes

import (
	"skill-swap/internal/delivery/http/handler"
	"skill-swap/internal/delivery/http/middleware"
	v1 "skill-swap/internal/delivery/http/routes/v1"
	"skill-swap/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type Registry struct {
	Health   *handler.HealthHandler
	Matching *handler.MatchingHandler
	Matches  *handler.MatchHandler
	WS       *ws.Handler
	Auth     *middleware.AuthMiddleware
}

func (r *Registry) Register(app *fiber.App) {
	if r == nil || app == nil {
		return
	}

	if r.Health != nil {
		r.Health.RegisterRoutes(app)
	}
	if r.WS != nil {
		app.Get("/ws/matches", r.WS.HandleMatchesWS)
	}

	api := app.Group("/api")
	v1.Register(api.Group("/v1"), v1.Handlers{
		Matching: r.Matching,
		Matches:  r.Matches,
		Auth:     r.Auth,
	})
}
