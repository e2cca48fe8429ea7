package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/bienestar-app/bienestar/internal/render"
)

type HealthHandler struct {
	db *sqlx.DB
}

func NewHealthHandler(db *sqlx.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

// Healthz pings the database so the load balancer drops an instance that lost it.
func (h *HealthHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	err := h.db.PingContext(ctx)
	if err != nil {
		slog.Error("health check failed", "error", err)
		render.JSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}

	render.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func NotFound(w http.ResponseWriter, r *http.Request) {
	render.Error(w, http.StatusNotFound, "not found")
}
