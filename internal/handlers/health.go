package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/dimitrije/todo-api/pkg/dto"
	"github.com/m1z23r/drift/pkg/drift"
)

const healthTimeout = 2 * time.Second

type HealthHandler struct {
	db Pinger
}

func NewHealthHandler(db Pinger) *HealthHandler {
	return &HealthHandler{db: db}
}

func (h *HealthHandler) Check(c *drift.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		slog.Warn("health check failed", "error", err)
		writeDetail(c, http.StatusServiceUnavailable, "database unavailable")
		return
	}

	_ = c.JSON(200, dto.HealthResponse{Status: "ok"})
}
