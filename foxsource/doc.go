// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package foxsource fetches candidate images from the random fox API.

	client := foxsource.NewClient(cfg)
	refs := client.FetchCandidates(ctx, 2)

FetchCandidates never fails. It fetches in concurrent rounds, drops
duplicate provider IDs, and fills any remaining slots with the configured
fallback image. A fallback ref is displayable but cannot be voted on.

Health probes the API with a single request and reports latency.
*/
package foxsource
