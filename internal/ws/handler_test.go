package ws

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"skill-swap/internal/config"

	"github.com/gofiber/fiber/v3"
)

func wsStatus(t *testing.T, h *Handler, header map[string]string) int {
	t.Helper()
	app := fiber.New()
	app.Get("/ws/matches", h.HandleMatchesWS)

	req := httptest.NewRequest(http.MethodGet, "/ws/matches", nil)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()
	return resp.StatusCode
}

func TestHandleMatchesWS_RequiresUpgrade(t *testing.T) {
	h := NewHandler(NewHub(nil), config.WSConfig{}, nil)
	if got := wsStatus(t, h, nil); got != fiber.StatusUpgradeRequired {
		t.Fatalf("expected 426, got %d", got)
	}
}

func TestHandleMatchesWS_RejectsWhenHubFull(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := NewHub(nil)
	go hub.Run(ctx)
	hub.Register(NewClient(hub, nil))
	waitFor(t, func() bool { return hub.ClientCount() == 1 })

	h := NewHandler(hub, config.WSConfig{MaxClients: 1}, nil)
	got := wsStatus(t, h, map[string]string{"Connection": "Upgrade", "Upgrade": "websocket"})
	if got != fiber.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", got)
	}
}

func TestHandleMatchesWS_NilHub(t *testing.T) {
	h := NewHandler(nil, config.WSConfig{}, nil)
	if got := wsStatus(t, h, map[string]string{"Upgrade": "websocket"}); got != fiber.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", got)
	}
}

func TestOriginChecker(t *testing.T) {
	allowed := map[string]struct{}{"https://ops.example.com": {}}

	tests := []struct {
		name    string
		allowed map[string]struct{}
		origin  string
		want    bool
	}{
		{name: "no list accepts everything", origin: "https://evil.example", want: true},
		{name: "listed origin", allowed: allowed, origin: "https://OPS.example.com/", want: true},
		{name: "unlisted origin", allowed: allowed, origin: "https://evil.example", want: false},
		{name: "no origin header", allowed: allowed, want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/ws/matches", nil)
			if tt.origin != "" {
				r.Header.Set("Origin", tt.origin)
			}
			if got := originChecker(tt.allowed)(r); got != tt.want {
				t.Fatalf("originChecker(%q) = %v, want %v", tt.origin, got, tt.want)
			}
		})
	}
}
