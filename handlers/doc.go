// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the foxvote API.

# Handler Types

Each handler is a struct built from the database, config and, where it
needs images, an ImageSource:

  - VotingHandler: vote submission and vote status
  - FoxHandler: random fox images and per-candidate vote counts
  - StatisticsHandler: top candidates, leader and totals
  - HealthHandler: database and fox API health

	votingHandler := handlers.NewVotingHandler(db, cfg)
	foxHandler := handlers.NewFoxHandler(db, cfg, foxsource.NewClient(cfg))

# Voter Identity

Voters are identified by the signed foxvoting_user_id cookie. A request
without a valid cookie is given a fresh identity (one year, HttpOnly,
SameSite=Lax). Clearing cookies yields a new identity; that is accepted.

# Voting Flow

	GET  /api/foxes?count=2 → GetFoxes (registers shown images)
	POST /api/vote          → SubmitVote
	GET  /api/vote-status   → VoteStatus

SubmitVote answers 200 when the vote is admitted, 400 with
already_voted=true when this voter has voted before, 400 for an invalid
image, and 503 when storage is unavailable.

# Errors

Errors from package voting are mapped to status codes in one place
(serviceError). Internal error text is added as "detail" only in
development mode.
*/
package handlers
