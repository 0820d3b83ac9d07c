package ws

import (
	"net/http"
	"strings"

	"skill-swap/internal/config"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Handler upgrades subscribers of the run event feed.
type Handler struct {
	hub        *Hub
	logger     *zap.Logger
	maxClients int
	upgrader   websocket.Upgrader
}

func NewHandler(hub *Hub, cfg config.WSConfig, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	origins := make(map[string]struct{}, len(cfg.AllowedOrigins))
	for _, o := range cfg.AllowedOrigins {
		origins[strings.ToLower(strings.TrimRight(o, "/"))] = struct{}{}
	}

	return &Handler{
		hub:        hub,
		logger:     logger,
		maxClients: cfg.MaxClients,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  maxMessageSize,
			WriteBufferSize: 4096,
			CheckOrigin:     originChecker(origins),
		},
	}
}

// originChecker accepts every origin when the list is empty. Requests without
// an Origin header come from non-browser clients and are accepted.
func originChecker(allowed map[string]struct{}) func(*http.Request) bool {
	return func(r *http.Request) bool {
		if len(allowed) == 0 {
			return true
		}
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		_, ok := allowed[strings.ToLower(strings.TrimRight(origin, "/"))]
		return ok
	}
}

// HandleMatchesWS serves GET /ws/matches. Plain HTTP requests get 426 and a
// full hub gets 503.
func (h *Handler) HandleMatchesWS(c fiber.Ctx) error {
	if h == nil || h.hub == nil {
		return fiber.ErrServiceUnavailable
	}
	if !strings.EqualFold(c.Get(fiber.HeaderUpgrade), "websocket") {
		return fiber.NewError(fiber.StatusUpgradeRequired, "websocket upgrade required")
	}
	if h.maxClients > 0 && h.hub.ClientCount() >= h.maxClients {
		h.logger.Warn("ws subscriber rejected", zap.String("reason", "hub full"), zap.Int("max_clients", h.maxClients))
		return fiber.NewError(fiber.StatusServiceUnavailable, "too many subscribers")
	}

	return adaptor.HTTPHandlerFunc(h.serve)(c)
}

func (h *Handler) serve(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written the error response.
		h.logger.Warn("ws upgrade failed", zap.String("origin", r.Header.Get("Origin")), zap.Error(err))
		return
	}

	client := NewClient(h.hub, conn)
	h.hub.Register(client)
	h.logger.Debug("ws subscriber connected", zap.String("remote", r.RemoteAddr))
	go client.WritePump()
	go client.ReadPump()
}
