// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the foxvote API server.

foxvote shows voters random fox images from randomfox.ca, lets each voter
pick a favorite once, and reports which foxes are winning.

# Starting the Server

The server requires environment variables or CLI flags for configuration.
A .env file in the working directory is read first if present.

	COOKIE_SECRET=... DATABASE_URL=foxvote.db go run .

Or with flags:

	go run . -p 3001 -d "postgres://..." -t postgres -cookie-secret ...

# Configuration

Required settings:

  - DATABASE_URL (-d): SQLite file path or PostgreSQL connection string
  - COOKIE_SECRET (-cookie-secret): Secret for signing voter cookies

Optional settings:

  - PORT (-p): Server port (default: 3001)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - APP_ENV (-env): development or production (default: production)
  - IP_HASH_SALT (-ip-salt): Salt for stored IP hashes (default: cookie secret)
  - COOKIE_SECURE: "true" to mark the voter cookie Secure
  - FOX_API_URL (-fox-api), FOX_IMAGE_HOST, FOX_FALLBACK_URL
  - FOX_FETCH_TIMEOUT (default 5s), FOX_FETCH_ROUNDS (default 3)
  - RATE_LIMIT_REQUESTS (default 100), RATE_LIMIT_WINDOW (default 15m)
  - REDIS_URL (-redis): share the rate limit across instances
  - CORS_ORIGIN (-cors-origin, default http://localhost:3000): frontend origin allowed to send the voter cookie

# Architecture

  - voting: vote admission, duplicate prevention and statistics
  - foxsource: randomfox.ca client with dedup, timeout and fallback
  - handlers: HTTP request handlers
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, recovery, rate limiting, JSON helpers
  - ratelimit: in-memory and Redis limiters
  - models: Request/response and domain types
  - auth: Voter cookie signing, ID generation, IP hashing
  - db: Connection, schema and driver error helpers
  - cliparse: Configuration parsing

The cmd/seed and cmd/checkdata tools populate and inspect a database.
*/
package main
