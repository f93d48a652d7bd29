// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package voting

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/foxvote/models"
)

const (
	DefaultTopLimit = 10
	MaxTopLimit     = 100
)

// TopCandidates ranks candidates by vote count, highest first.
// Ties go to the candidate created first, then to the lower ID, so the
// order is fully deterministic.
func (s *Service) TopCandidates(ctx context.Context, limit int) ([]models.RankedCandidate, error) {
	if limit <= 0 {
		limit = DefaultTopLimit
	}
	if limit > MaxTopLimit {
		limit = MaxTopLimit
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, source_url, provider_id, vote_count, last_shown_at, created_at
		FROM candidate
		ORDER BY vote_count DESC, created_at ASC, id ASC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, storageError("query top candidates", err)
	}
	defer rows.Close()

	now := s.now()
	ranked := []models.RankedCandidate{}
	for rows.Next() {
		var (
			rc        models.RankedCandidate
			lastShown sql.NullTime
		)
		if err := rows.Scan(&rc.ID, &rc.SourceURL, &rc.ProviderID, &rc.VoteCount, &lastShown, &rc.CreatedAt); err != nil {
			return nil, storageError("scan candidate", err)
		}
		if lastShown.Valid {
			rc.LastShownAt = &lastShown.Time
			rc.LastShownText = humanize.RelTime(lastShown.Time, now, "ago", "from now")
		}
		rc.Rank = len(ranked) + 1
		ranked = append(ranked, rc)
	}
	if err := rows.Err(); err != nil {
		return nil, storageError("iterate candidates", err)
	}

	return ranked, nil
}

// Totals counts votes, distinct voters, and registered candidates in a
// single statement so the three numbers come from one snapshot.
func (s *Service) Totals(ctx context.Context) (models.Totals, error) {
	var t models.Totals
	err := s.db.QueryRowContext(ctx, `
		SELECT
			(SELECT COUNT(*) FROM vote_record),
			(SELECT COUNT(DISTINCT voter_id) FROM vote_record),
			(SELECT COUNT(*) FROM candidate)
	`).Scan(&t.TotalVotes, &t.DistinctVoters, &t.DistinctCandidates)
	if err != nil {
		return models.Totals{}, storageError("query totals", err)
	}
	return t, nil
}

// LeaderOf returns the first ranked candidate with at least one vote
func LeaderOf(ranked []models.RankedCandidate) *models.Leader {
	if len(ranked) == 0 || ranked[0].VoteCount == 0 {
		return nil
	}
	top := ranked[0]
	return &models.Leader{
		CandidateID: top.ID,
		SourceURL:   top.SourceURL,
		VoteCount:   top.VoteCount,
		Message:     fmt.Sprintf("Fox %s is the cutest right now with %s votes!", top.ProviderID, humanize.Comma(top.VoteCount)),
	}
}

// RecentVotes returns the most recently cast votes, newest first
func (s *Service) RecentVotes(ctx context.Context, limit int) ([]models.VoteRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, candidate_id, cast_at, ip_hash
		FROM vote_record
		ORDER BY cast_at DESC, id
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, storageError("query recent votes", err)
	}
	defer rows.Close()

	records := []models.VoteRecord{}
	for rows.Next() {
		var (
			r      models.VoteRecord
			ipHash sql.NullString
		)
		if err := rows.Scan(&r.ID, &r.CandidateID, &r.CastAt, &ipHash); err != nil {
			return nil, storageError("scan vote record", err)
		}
		if ipHash.Valid {
			r.IPHash = &ipHash.String
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, storageError("iterate vote records", err)
	}
	return records, nil
}

// CountMismatch is a candidate whose cached count disagrees with the ledger
type CountMismatch struct {
	CandidateID string
	Cached      int64
	Ledger      int64
}

// VerifyCounts compares every cached vote_count against the ledger.
// An empty result means the counter invariant holds.
func (s *Service) VerifyCounts(ctx context.Context) ([]CountMismatch, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT c.id, c.vote_count, COUNT(v.id)
		FROM candidate c
		LEFT JOIN vote_record v ON v.candidate_id = c.id
		GROUP BY c.id, c.vote_count
		HAVING c.vote_count <> COUNT(v.id)
		ORDER BY c.id
	`)
	if err != nil {
		return nil, storageError("verify counts", err)
	}
	defer rows.Close()

	var mismatches []CountMismatch
	for rows.Next() {
		var m CountMismatch
		if err := rows.Scan(&m.CandidateID, &m.Cached, &m.Ledger); err != nil {
			return nil, storageError("scan count mismatch", err)
		}
		mismatches = append(mismatches, m)
	}
	if err := rows.Err(); err != nil {
		return nil, storageError("iterate count mismatches", err)
	}
	return mismatches, nil
}
