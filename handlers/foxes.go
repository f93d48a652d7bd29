// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/danielhkuo/foxvote/cliparse"
	"github.com/danielhkuo/foxvote/middleware"
	"github.com/danielhkuo/foxvote/models"
	"github.com/danielhkuo/foxvote/voting"
)

const (
	defaultFoxCount = 2
	maxFoxCount     = 10
)

// ImageSource supplies candidate images. *foxsource.Client implements it.
type ImageSource interface {
	FetchCandidates(ctx context.Context, n int) []models.CandidateRef
	Health(ctx context.Context) models.UpstreamHealth
}

type FoxHandler struct {
	svc    *voting.Service
	source ImageSource
	cfg    cliparse.Config
}

func NewFoxHandler(db *sql.DB, cfg cliparse.Config, source ImageSource) *FoxHandler {
	return &FoxHandler{svc: voting.NewService(db, cfg), source: source, cfg: cfg}
}

// GetFoxes handles GET /api/foxes?count=N
// Always returns exactly N entries; upstream failures become fallback images.
func (h *FoxHandler) GetFoxes(w http.ResponseWriter, r *http.Request) {
	count := defaultFoxCount
	if raw := r.URL.Query().Get("count"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxFoxCount {
			middleware.ErrorResponse(w, http.StatusBadRequest, "count must be a number between 1 and 10")
			return
		}
		count = n
	}

	foxes := h.source.FetchCandidates(r.Context(), count)

	// Display bookkeeping must not cost the voter their images
	if err := h.svc.MarkShown(r.Context(), foxes); err != nil {
		slog.Warn("failed to record shown foxes", "error", err)
	}

	middleware.JSONResponse(w, http.StatusOK, models.FoxesResponse{
		Foxes:     foxes,
		Count:     len(foxes),
		Timestamp: time.Now().UTC(),
	})
}

// GetCandidateVotes handles GET /api/foxes/{id}/votes
func (h *FoxHandler) GetCandidateVotes(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "id is required")
		return
	}

	c, err := h.svc.Candidate(r.Context(), id)
	if err != nil {
		serviceError(w, h.cfg, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.CandidateVotesResponse{
		CandidateID: c.ID,
		SourceURL:   c.SourceURL,
		VoteCount:   c.VoteCount,
	})
}
