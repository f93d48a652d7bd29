// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /health", middleware.WithLogging(handler))

Logs request start (method, path, remote) and completion (status,
duration_ms).

# Rate Limiting

Wrap API handlers with a limiter from package ratelimit:

	limit := middleware.RateLimit(limiter)
	mux.HandleFunc("POST /api/vote", middleware.WithLogging(limit(h.SubmitVote)))

Requests are keyed by client IP and path. Loopback clients are exempt and
limiter failures let the request through.

# Panic Recovery

	handler := middleware.Recover(cfg.IsDevelopment())(mux)

Panics become a 500 JSON error. The panic value is only sent to the client
in development mode.

# CORS Middleware

	server := http.Server{
		Handler: middleware.CORS(cfg.CORSOrigin)(mux),
	}

Echoes the request origin with credentials allowed when it matches the
configured frontend origin (CORS_ORIGIN), so browsers send the voter
cookie. Other origins get no CORS headers.

# JSON Helpers

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")
	middleware.WriteError(w, http.StatusBadRequest, models.ErrorResponse{...})

# Client IP Extraction

Get the original client IP (handles X-Forwarded-For, X-Real-IP):

	ip := middleware.GetClientIP(r)

Used for rate limiting and for the hashed IP stored with each vote.
*/
package middleware
