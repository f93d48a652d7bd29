// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/danielhkuo/foxvote/cliparse"
	"github.com/danielhkuo/foxvote/handlers"
	"github.com/danielhkuo/foxvote/middleware"
	"github.com/danielhkuo/foxvote/ratelimit"
)

func NewRouter(db *sql.DB, cfg cliparse.Config, source handlers.ImageSource, limiter ratelimit.Limiter) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	votingHandler := handlers.NewVotingHandler(db, cfg)
	foxHandler := handlers.NewFoxHandler(db, cfg, source)
	statsHandler := handlers.NewStatisticsHandler(db, cfg)
	healthHandler := handlers.NewHealthHandler(db, source)

	limit := middleware.RateLimit(limiter)
	api := func(h http.HandlerFunc) http.HandlerFunc {
		return middleware.WithLogging(limit(h))
	}

	// Liveness
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Images
	mux.HandleFunc("GET /api/foxes", api(foxHandler.GetFoxes))
	mux.HandleFunc("GET /api/foxes/{id}/votes", api(foxHandler.GetCandidateVotes))

	// Voting
	mux.HandleFunc("POST /api/vote", api(votingHandler.SubmitVote))
	mux.HandleFunc("GET /api/vote-status", api(votingHandler.VoteStatus))

	// Statistics and readiness
	mux.HandleFunc("GET /api/statistics", api(statsHandler.GetStatistics))
	mux.HandleFunc("GET /api/health", middleware.WithLogging(healthHandler.Check))

	// Root endpoint
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("foxvote API v1"))
	})

	return mux
}
