// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles connections and schema creation.

# Connecting

Open selects the driver from the configured database type and pings it:

	conn, err := db.Open(ctx, cfg.DatabaseType, cfg.DatabaseURL)

PostgreSQL goes through lib/pq. SQLite goes through modernc.org/sqlite
(pure Go, no cgo) with busy_timeout and foreign_keys enabled and the pool
limited to one connection.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

  - candidate: One row per distinct image, with a cached vote_count
  - vote_record: One row per admitted vote, UNIQUE on voter_id

	candidate 1──* vote_record

candidate.vote_count always equals the number of vote_record rows that
reference it. Both are written in the same transaction.

# Constraint Errors

IsUniqueViolation recognizes UNIQUE / PRIMARY KEY failures from either
driver, so callers can treat them as an expected outcome:

	if db.IsUniqueViolation(err) {
		// already voted
	}
*/
package db
