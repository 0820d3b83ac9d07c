package app

import (
	"context"
	"fmt"
	"strings"

	"skill-swap/internal/config"
	"skill-swap/internal/delivery/http/handler"
	"skill-swap/internal/delivery/http/middleware"
	"skill-swap/internal/delivery/http/routes"
	"skill-swap/internal/logger"
	"skill-swap/internal/ws"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"
)

type App struct {
	Fiber     *fiber.App
	Container *Container
	Hub       *ws.Hub
}

// New builds the HTTP application on top of an existing container.
func New(c *Container, hub *ws.Hub) *App {
	log := logger.Named(c.Logger, "http")
	f := fiber.New(fiber.Config{AppName: c.Config.App.AppName})

	f.Use(middleware.NewAccessLogMiddleware(log).Middleware())
	f.Use(middleware.NewErrorMiddleware(log).Middleware())

	reg := &routes.Registry{
		Health:   handler.NewHealthHandler(c.Health),
		Matching: handler.NewMatchingHandler(c.NewPipeline(nil, ws.NewNotifier(hub, log)), c.Config.Matching.RunTimeout),
		Matches:  handler.NewMatchHandler(c.MatchQuery),
		WS:       ws.NewHandler(hub, c.Config.WS, logger.Named(c.Logger, "ws")),
		Auth:     middleware.NewAuthMiddleware(c.JWT),
	}
	reg.Register(f)

	return &App{Fiber: f, Container: c, Hub: hub}
}

// Bootstrap connects every dependency, starts the websocket hub and returns
// the app with its cleanup function.
func Bootstrap(ctx context.Context, cfg config.Config, log *zap.Logger) (*App, func() error, error) {
	if log == nil {
		log = zap.NewNop()
	}
	c, err := NewContainer(ctx, cfg, log)
	if err != nil {
		return nil, nil, err
	}
	if !c.JWT.Enabled() {
		log.Warn("JWT_ACCESS_SECRET is empty, operator endpoints will reject every request")
	}

	hubCtx, stopHub := context.WithCancel(context.Background())
	hub := ws.NewHub(logger.Named(log, "ws"))
	go hub.Run(hubCtx)

	cleanup := func() error {
		stopHub()
		return c.Close()
	}
	return New(c, hub), cleanup, nil
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
