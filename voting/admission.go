// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package voting

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/foxvote/auth"
	"github.com/danielhkuo/foxvote/db"
	"github.com/danielhkuo/foxvote/models"
)

// VoteRequest is one incoming vote. IPHash and UserAgent are stored with
// the record for abuse analysis and play no part in admission.
type VoteRequest struct {
	CandidateRef string
	VoterID      string
	IPHash       string
	UserAgent    string
}

// Outcome is the result of an admission attempt.
// NewTotal is only set when Status is models.OutcomeAdmitted.
type Outcome struct {
	Status      string
	CandidateID string
	NewTotal    int64
}

func (o Outcome) Admitted() bool {
	return o.Status == models.OutcomeAdmitted
}

// SubmitVote admits at most one vote per voter identity.
//
// The vote_record insert and the candidate counter increment commit in one
// transaction. The UNIQUE index on vote_record.voter_id is the concurrency
// gate: when two requests from the same voter race past the pre-check, the
// loser's insert fails, its transaction rolls back before the counter is
// touched, and it reports AlreadyVoted.
func (s *Service) SubmitVote(ctx context.Context, req VoteRequest) (Outcome, error) {
	voterID := strings.TrimSpace(req.VoterID)
	if voterID == "" {
		return Outcome{}, ErrInvalidVoter
	}

	sourceURL, providerID, err := s.NormalizeCandidateURL(req.CandidateRef)
	if err != nil {
		return Outcome{}, err
	}

	// Fast path: most repeat submissions stop here without a write
	voted, err := s.hasVoted(ctx, voterID)
	if err != nil {
		return Outcome{}, err
	}
	if voted {
		return Outcome{Status: models.OutcomeAlreadyVoted}, nil
	}

	now := s.now()
	candidateID, err := s.resolveCandidate(ctx, sourceURL, providerID, now)
	if err != nil {
		return Outcome{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Outcome{}, storageError("begin vote transaction", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO vote_record (id, candidate_id, voter_id, cast_at, ip_hash, user_agent)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, uuid.NewString(), candidateID, voterID, now, nullString(req.IPHash), nullString(req.UserAgent))
	if db.IsUniqueViolation(err) {
		slog.Info("concurrent duplicate vote rejected", "candidate_id", candidateID)
		return Outcome{Status: models.OutcomeAlreadyVoted}, nil
	}
	if err != nil {
		return Outcome{}, storageError("insert vote record", err)
	}

	var total int64
	err = tx.QueryRowContext(ctx, `
		UPDATE candidate SET vote_count = vote_count + 1
		WHERE id = $1
		RETURNING vote_count
	`, candidateID).Scan(&total)
	if err != nil {
		return Outcome{}, storageError("increment vote count", err)
	}

	if err := tx.Commit(); err != nil {
		return Outcome{}, storageError("commit vote", err)
	}

	slog.Info("vote admitted", "candidate_id", candidateID, "total_votes", total)

	return Outcome{
		Status:      models.OutcomeAdmitted,
		CandidateID: candidateID,
		NewTotal:    total,
	}, nil
}

func (s *Service) hasVoted(ctx context.Context, voterID string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM vote_record WHERE voter_id = $1
		)
	`, voterID).Scan(&exists)
	if err != nil {
		return false, storageError("check existing vote", err)
	}
	return exists, nil
}

// resolveCandidate returns the ID of the candidate for sourceURL, creating
// it with a zero count if needed. Concurrent creators converge on one row
// through the UNIQUE source_url constraint.
func (s *Service) resolveCandidate(ctx context.Context, sourceURL, providerID string, now time.Time) (string, error) {
	newID, err := auth.GenerateID(16)
	if err != nil {
		return "", storageError("generate candidate id", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO candidate (id, source_url, provider_id, vote_count, created_at)
		VALUES ($1, $2, $3, 0, $4)
		ON CONFLICT (source_url) DO NOTHING
	`, newID, sourceURL, providerID, now)
	if err != nil {
		return "", storageError("create candidate", err)
	}

	var id string
	err = s.db.QueryRowContext(ctx, `
		SELECT id FROM candidate WHERE source_url = $1
	`, sourceURL).Scan(&id)
	if err != nil {
		return "", storageError("resolve candidate", err)
	}
	return id, nil
}

// MarkShown records that refs were displayed, creating candidates on first
// display. Fallback references are skipped.
func (s *Service) MarkShown(ctx context.Context, refs []models.CandidateRef) error {
	now := s.now()
	for _, ref := range refs {
		if ref.Fallback {
			continue
		}

		sourceURL, providerID, err := s.NormalizeCandidateURL(ref.URL)
		if err != nil {
			slog.Warn("skipping unexpected image URL", "url", ref.URL, "error", err)
			continue
		}

		newID, err := auth.GenerateID(16)
		if err != nil {
			return storageError("generate candidate id", err)
		}

		_, err = s.db.ExecContext(ctx, `
			INSERT INTO candidate (id, source_url, provider_id, vote_count, last_shown_at, created_at)
			VALUES ($1, $2, $3, 0, $4, $4)
			ON CONFLICT (source_url) DO UPDATE SET last_shown_at = excluded.last_shown_at
		`, newID, sourceURL, providerID, now)
		if err != nil {
			return storageError("mark candidate shown", err)
		}
	}
	return nil
}

// VoteStatus returns the voter's vote record, if any
func (s *Service) VoteStatus(ctx context.Context, voterID string) (models.VoteRecord, bool, error) {
	var record models.VoteRecord
	err := s.db.QueryRowContext(ctx, `
		SELECT id, candidate_id, voter_id, cast_at
		FROM vote_record
		WHERE voter_id = $1
	`, voterID).Scan(&record.ID, &record.CandidateID, &record.VoterID, &record.CastAt)

	if errors.Is(err, sql.ErrNoRows) {
		return models.VoteRecord{}, false, nil
	}
	if err != nil {
		return models.VoteRecord{}, false, storageError("query vote status", err)
	}
	return record, true, nil
}

// Candidate looks up one candidate by ID
func (s *Service) Candidate(ctx context.Context, id string) (models.Candidate, error) {
	var (
		c         models.Candidate
		lastShown sql.NullTime
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT id, source_url, provider_id, vote_count, last_shown_at, created_at
		FROM candidate
		WHERE id = $1
	`, id).Scan(&c.ID, &c.SourceURL, &c.ProviderID, &c.VoteCount, &lastShown, &c.CreatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return models.Candidate{}, ErrCandidateNotFound
	}
	if err != nil {
		return models.Candidate{}, storageError("query candidate", err)
	}
	if lastShown.Valid {
		c.LastShownAt = &lastShown.Time
	}
	return c, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
