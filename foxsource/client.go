// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package foxsource

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/danielhkuo/foxvote/cliparse"
	"github.com/danielhkuo/foxvote/models"
)

// ErrUpstreamUnavailable means a single fetch from the fox API failed.
// FetchCandidates absorbs it; callers only see it from RandomFox.
var ErrUpstreamUnavailable = errors.New("fox API unavailable")

const (
	userAgent      = "foxvote/1.0"
	maxBodyBytes   = 1 << 20
	defaultTimeout = 5 * time.Second
)

type Client struct {
	httpClient  *http.Client
	apiURL      string
	fallbackURL string
	timeout     time.Duration
	rounds      int
}

func NewClient(cfg cliparse.Config) *Client {
	timeout := cfg.FetchTimeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	rounds := cfg.FetchRounds
	if rounds <= 0 {
		rounds = 1
	}

	return &Client{
		httpClient:  &http.Client{Timeout: timeout},
		apiURL:      cfg.FoxAPIURL,
		fallbackURL: cfg.FoxFallbackURL,
		timeout:     timeout,
		rounds:      rounds,
	}
}

// floof is the randomfox.ca response body
type floof struct {
	Image string `json:"image"`
	Link  string `json:"link"`
}

// RandomFox fetches one random image reference.
// Every failure is wrapped in ErrUpstreamUnavailable.
func (c *Client) RandomFox(ctx context.Context) (models.CandidateRef, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiURL, nil)
	if err != nil {
		return models.CandidateRef{}, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return models.CandidateRef{}, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return models.CandidateRef{}, fmt.Errorf("%w: status %d", ErrUpstreamUnavailable, resp.StatusCode)
	}

	var body floof
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(&body); err != nil {
		return models.CandidateRef{}, fmt.Errorf("%w: invalid response: %v", ErrUpstreamUnavailable, err)
	}

	id := ExtractProviderID(body.Image)
	if id == "" {
		return models.CandidateRef{}, fmt.Errorf("%w: invalid response format", ErrUpstreamUnavailable)
	}

	return models.CandidateRef{ID: id, URL: body.Image}, nil
}

// FetchCandidates returns exactly n references, distinct by provider ID.
//
// Fetches run concurrently in rounds. Duplicates and failed fetches are
// retried in the next round until n distinct references are collected or
// the round budget is spent. A round in which every fetch fails ends the
// loop early. Slots still empty are filled with fallback entries.
func (c *Client) FetchCandidates(ctx context.Context, n int) []models.CandidateRef {
	if n <= 0 {
		return []models.CandidateRef{}
	}

	refs := make([]models.CandidateRef, 0, n)
	seen := make(map[string]bool, n)

	for round := 0; round < c.rounds && len(refs) < n; round++ {
		if ctx.Err() != nil {
			break
		}

		need := n - len(refs)
		results := make([]models.CandidateRef, need)
		fetched := make([]bool, need)

		var g errgroup.Group
		for i := 0; i < need; i++ {
			g.Go(func() error {
				ref, err := c.RandomFox(ctx)
				if err != nil {
					slog.Warn("fox fetch failed", "error", err, "round", round)
					return nil
				}
				results[i] = ref
				fetched[i] = true
				return nil
			})
		}
		g.Wait()

		anyFetched := false
		for i, ref := range results {
			if !fetched[i] {
				continue
			}
			anyFetched = true
			if seen[ref.ID] || len(refs) == n {
				continue
			}
			seen[ref.ID] = true
			refs = append(refs, ref)
		}

		if !anyFetched {
			slog.Warn("fox API unavailable, using fallback images", "missing", n-len(refs))
			break
		}
	}

	for i := len(refs); i < n; i++ {
		refs = append(refs, c.fallback(i))
	}

	return refs
}

func (c *Client) fallback(index int) models.CandidateRef {
	return models.CandidateRef{
		ID:       fmt.Sprintf("fallback-%d", index),
		URL:      c.fallbackURL,
		Fallback: true,
	}
}

// Health performs one fetch against the fox API and reports latency
func (c *Client) Health(ctx context.Context) models.UpstreamHealth {
	start := time.Now()
	_, err := c.RandomFox(ctx)
	if err != nil {
		return models.UpstreamHealth{
			Status:    models.HealthUnhealthy,
			Error:     err.Error(),
			Timestamp: time.Now().UTC(),
		}
	}

	return models.UpstreamHealth{
		Status:         models.HealthHealthy,
		ResponseTimeMS: time.Since(start).Milliseconds(),
		Timestamp:      time.Now().UTC(),
	}
}

// ExtractProviderID returns the image file name without its extension,
// e.g. "61" for https://randomfox.ca/images/61.jpg.
func ExtractProviderID(imageURL string) string {
	u, err := url.Parse(imageURL)
	if err != nil || u.Path == "" {
		return ""
	}

	base := path.Base(u.Path)
	if base == "/" || base == "." {
		return ""
	}
	return strings.TrimSuffix(base, path.Ext(base))
}
