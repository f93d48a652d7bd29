// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"net/http"
	"strconv"

	"github.com/danielhkuo/foxvote/cliparse"
	"github.com/danielhkuo/foxvote/middleware"
	"github.com/danielhkuo/foxvote/models"
	"github.com/danielhkuo/foxvote/voting"
)

type StatisticsHandler struct {
	svc *voting.Service
	cfg cliparse.Config
}

func NewStatisticsHandler(db *sql.DB, cfg cliparse.Config) *StatisticsHandler {
	return &StatisticsHandler{svc: voting.NewService(db, cfg), cfg: cfg}
}

// GetStatistics handles GET /api/statistics?limit=N
func (h *StatisticsHandler) GetStatistics(w http.ResponseWriter, r *http.Request) {
	limit := voting.DefaultTopLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > voting.MaxTopLimit {
			middleware.ErrorResponse(w, http.StatusBadRequest, "limit must be a number between 1 and 100")
			return
		}
		limit = n
	}

	top, err := h.svc.TopCandidates(r.Context(), limit)
	if err != nil {
		serviceError(w, h.cfg, err)
		return
	}

	totals, err := h.svc.Totals(r.Context())
	if err != nil {
		serviceError(w, h.cfg, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.StatisticsResponse{
		TopCandidates: top,
		Leader:        voting.LeaderOf(top),
		Totals:        totals,
	})
}
