// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package ratelimit provides request limiters keyed by an arbitrary string.
//
// Memory keeps a token bucket per key inside the process and is the
// default. Redis keeps a sliding window in a sorted set so several server
// instances share one budget; it is used when REDIS_URL is configured.
//
// Denied requests still count against the Redis window. A client that keeps
// hammering stays limited until it backs off for a full window.
package ratelimit
