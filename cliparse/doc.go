// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

A .env file in the working directory is loaded before flags are read.
Variables already present in the environment are not overwritten.

# CLI Flags

	-p              Server port
	-d              Database URL
	-t              Database type (sqlite or postgres)
	-env            Environment (development or production)
	-cookie-secret  Voter cookie signing secret
	-ip-salt        IP hash salt
	-fox-api        Random fox API endpoint
	-redis          Redis URL for shared rate limiting

# Environment Variables

	PORT                 → -p (default 3001)
	DATABASE_URL         → -d (required)
	DATABASE_TYPE        → -t (default sqlite)
	APP_ENV              → -env (default production)
	COOKIE_SECRET        → -cookie-secret (required)
	IP_HASH_SALT         → -ip-salt (default: COOKIE_SECRET)
	FOX_API_URL          → -fox-api (default https://randomfox.ca/floof/)
	REDIS_URL            → -redis

Environment only:

	COOKIE_SECURE        "true" to mark the voter cookie Secure
	FOX_IMAGE_HOST       allowed image host (default randomfox.ca)
	FOX_FALLBACK_URL     image shown when the API is down
	FOX_FETCH_TIMEOUT    per-request upstream timeout (default 5s)
	FOX_FETCH_ROUNDS     dedup retry rounds (default 3)
	RATE_LIMIT_REQUESTS  requests per window per client (default 100)
	RATE_LIMIT_WINDOW    rate limit window (default 15m)

CLI flags take precedence over environment variables.
*/
package cliparse
