// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/foxvote/auth"
	"github.com/danielhkuo/foxvote/cliparse"
	"github.com/danielhkuo/foxvote/middleware"
	"github.com/danielhkuo/foxvote/models"
	"github.com/danielhkuo/foxvote/voting"
)

type VotingHandler struct {
	svc *voting.Service
	cfg cliparse.Config
}

func NewVotingHandler(db *sql.DB, cfg cliparse.Config) *VotingHandler {
	return &VotingHandler{svc: voting.NewService(db, cfg), cfg: cfg}
}

// SubmitVote handles POST /api/vote
func (h *VotingHandler) SubmitVote(w http.ResponseWriter, r *http.Request) {
	voterID, _ := voterIdentity(w, r, h.cfg)

	// Parse request
	var req models.SubmitVoteRequest
	if err := middleware.ParseJSONBody(w, r, &req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			middleware.ErrorResponse(w, http.StatusRequestEntityTooLarge, "Request body too large")
			return
		}
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.ImageURL == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "image_url is required")
		return
	}

	outcome, err := h.svc.SubmitVote(r.Context(), voting.VoteRequest{
		CandidateRef: req.ImageURL,
		VoterID:      voterID,
		IPHash:       auth.HashIP(middleware.GetClientIP(r), h.cfg.IPHashSalt),
		UserAgent:    truncateUserAgent(r.UserAgent()),
	})
	if err != nil {
		serviceError(w, h.cfg, err)
		return
	}

	if !outcome.Admitted() {
		middleware.WriteError(w, http.StatusBadRequest, models.ErrorResponse{
			Message:      "You have already voted! Each user can only vote once.",
			AlreadyVoted: true,
		})
		return
	}

	slog.Info("vote submitted", "candidate_id", outcome.CandidateID, "total_votes", outcome.NewTotal)

	middleware.JSONResponse(w, http.StatusOK, models.SubmitVoteResponse{
		Success:     true,
		Message:     "Vote recorded successfully!",
		CandidateID: outcome.CandidateID,
		TotalVotes:  outcome.NewTotal,
	})
}

// VoteStatus handles GET /api/vote-status
func (h *VotingHandler) VoteStatus(w http.ResponseWriter, r *http.Request) {
	voterID, isNew := voterIdentity(w, r, h.cfg)

	// A voter we have just identified cannot have voted
	var (
		record models.VoteRecord
		voted  bool
	)
	if !isNew {
		var err error
		record, voted, err = h.svc.VoteStatus(r.Context(), voterID)
		if err != nil {
			serviceError(w, h.cfg, err)
			return
		}
	}

	if !voted {
		middleware.JSONResponse(w, http.StatusOK, models.VoteStatusResponse{
			HasVoted: false,
			Message:  "You can vote for your favorite fox!",
		})
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.VoteStatusResponse{
		HasVoted:    true,
		Message:     "You have already voted",
		CandidateID: record.CandidateID,
		VotedAt:     &record.CastAt,
	})
}
