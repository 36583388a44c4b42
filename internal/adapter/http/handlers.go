package http

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// Pinger is a dependency checked by the readiness probe.
type Pinger func(ctx context.Context) error

type Handler struct {
	checks map[string]Pinger
}

func NewHandler(checks map[string]Pinger) *Handler { return &Handler{checks: checks} }

func (h *Handler) Health(c echo.Context) error {
	body := map[string]any{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339Nano),
	}
	if len(h.checks) == 0 {
		return c.JSON(http.StatusOK, body)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
	defer cancel()
	deps := make(map[string]string, len(h.checks))
	code := http.StatusOK
	for name, ping := range h.checks {
		if err := ping(ctx); err != nil {
			deps[name] = err.Error()
			code = http.StatusServiceUnavailable
			body["status"] = "degraded"
			continue
		}
		deps[name] = "ok"
	}
	body["dependencies"] = deps
	return c.JSON(code, body)
}
