// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package voting

import (
	"database/sql"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/danielhkuo/foxvote/cliparse"
	"github.com/danielhkuo/foxvote/foxsource"
)

type Service struct {
	db          *sql.DB
	imageHost   string
	fallbackURL string
	now         func() time.Time
}

func NewService(db *sql.DB, cfg cliparse.Config) *Service {
	s := &Service{
		db:        db,
		imageHost: strings.ToLower(cfg.FoxImageHost),
		now:       func() time.Time { return time.Now().UTC() },
	}
	if cfg.FoxFallbackURL != "" {
		if u, _, err := s.normalize(cfg.FoxFallbackURL); err == nil {
			s.fallbackURL = u
		}
	}
	return s
}

// NormalizeCandidateURL validates an image URL and returns its canonical
// form (https, lowercase host, no query or fragment) and provider ID.
// The fallback image is never a valid candidate.
func (s *Service) NormalizeCandidateURL(raw string) (string, string, error) {
	normalized, providerID, err := s.normalize(raw)
	if err != nil {
		return "", "", err
	}
	if s.fallbackURL != "" && normalized == s.fallbackURL {
		return "", "", invalidCandidate("fallback image cannot be voted for")
	}
	return normalized, providerID, nil
}

func (s *Service) normalize(raw string) (string, string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", "", invalidCandidate("image URL is required")
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", "", invalidCandidate("malformed image URL")
	}
	if u.Scheme != "https" && u.Scheme != "http" {
		return "", "", invalidCandidate("image URL must be http(s)")
	}
	if u.User != nil {
		return "", "", invalidCandidate("image URL must not carry credentials")
	}

	host := strings.ToLower(u.Hostname())
	if s.imageHost == "" || (host != s.imageHost && !strings.HasSuffix(host, "."+s.imageHost)) {
		return "", "", invalidCandidate("image URL is not from " + s.imageHost)
	}

	p := path.Clean(u.Path)
	if !strings.HasPrefix(p, "/images/") {
		return "", "", invalidCandidate("image URL must point to an image")
	}

	normalized := "https://" + host + p
	providerID := foxsource.ExtractProviderID(normalized)
	if providerID == "" {
		return "", "", invalidCandidate("image URL has no image name")
	}

	return normalized, providerID, nil
}
