// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// The schema sticks to SQL that PostgreSQL and SQLite both accept.
const schema = `
-- Candidates (one per distinct image)
CREATE TABLE IF NOT EXISTS candidate (
    id TEXT PRIMARY KEY,
    source_url TEXT NOT NULL UNIQUE,
    provider_id TEXT NOT NULL,
    vote_count INTEGER NOT NULL DEFAULT 0 CHECK (vote_count >= 0),
    last_shown_at TIMESTAMP,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_candidate_ranking ON candidate(vote_count DESC, created_at, id);

-- Vote ledger (one row per admitted vote, never updated)
CREATE TABLE IF NOT EXISTS vote_record (
    id TEXT PRIMARY KEY,
    candidate_id TEXT NOT NULL REFERENCES candidate(id),
    voter_id TEXT NOT NULL UNIQUE,
    cast_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    ip_hash TEXT,
    user_agent TEXT
);

CREATE INDEX IF NOT EXISTS idx_vote_record_candidate_id ON vote_record(candidate_id);
CREATE INDEX IF NOT EXISTS idx_vote_record_cast_at ON vote_record(cast_at);
`
