// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the foxvote API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(db, cfg, foxsource.NewClient(cfg), limiter)

# Endpoints

Liveness:

	GET /health - always "OK" while the process serves

API (logged and rate limited):

	GET  /api/foxes?count=N     - N random fox images (1-10, default 2)
	GET  /api/foxes/{id}/votes  - Vote count for one candidate
	POST /api/vote              - Vote for an image
	GET  /api/vote-status       - Whether this voter has voted
	GET  /api/statistics?limit= - Top candidates, leader and totals

Readiness (logged, not rate limited):

	GET /api/health - Database and fox API health, 503 when either fails

Any other path is 404.
*/
package router
