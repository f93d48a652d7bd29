// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/danielhkuo/foxvote/middleware"
	"github.com/danielhkuo/foxvote/models"
)

const dbPingTimeout = 2 * time.Second

type HealthHandler struct {
	db      *sql.DB
	source  ImageSource
	started time.Time
}

func NewHealthHandler(db *sql.DB, source ImageSource) *HealthHandler {
	return &HealthHandler{db: db, source: source, started: time.Now()}
}

// Check handles GET /api/health
// Healthy only when both the database and the fox API respond.
func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	resp := models.HealthResponse{
		Status:    models.HealthHealthy,
		Timestamp: time.Now().UTC(),
		Database:  models.HealthHealthy,
		Uptime:    time.Since(h.started).Round(time.Second).String(),
	}

	ctx, cancel := context.WithTimeout(r.Context(), dbPingTimeout)
	defer cancel()
	if err := h.db.PingContext(ctx); err != nil {
		slog.Warn("database health check failed", "error", err)
		resp.Database = models.HealthUnhealthy
		resp.Status = models.HealthUnhealthy
	}

	resp.FoxAPI = h.source.Health(r.Context())
	if resp.FoxAPI.Status != models.HealthHealthy {
		resp.Status = models.HealthUnhealthy
	}

	status := http.StatusOK
	if resp.Status != models.HealthHealthy {
		status = http.StatusServiceUnavailable
	}
	middleware.JSONResponse(w, status, resp)
}
