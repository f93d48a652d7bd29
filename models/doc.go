// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types shared by the
handlers and the voting service.

# Domain Types

  - CandidateRef: an image reference from the fox API (possibly a fallback)
  - Candidate: one distinct votable image with its cached vote count
  - VoteRecord: one admitted vote; VoterID, IPHash and UserAgent are
    never serialized

# Statistics

  - RankedCandidate: a Candidate plus its 1-indexed rank
  - Leader: the current top candidate
  - Totals: vote, voter, and candidate counts

# Errors

ErrorResponse is the body of every non-2xx JSON response:

	{"error": "Bad Request", "message": "Du har allerede stemt!", "already_voted": true}

Detail carries the internal error text and is only filled in development
mode.
*/
package models
