package models

import "time"

// Vote outcome constants
const (
	OutcomeAdmitted     = "admitted"
	OutcomeAlreadyVoted = "already_voted"
)

// Health status constants
const (
	HealthHealthy   = "healthy"
	HealthUnhealthy = "unhealthy"
)

// Request types

type SubmitVoteRequest struct {
	ImageURL string `json:"image_url"`
}

// Response types

type SubmitVoteResponse struct {
	Success     bool   `json:"success"`
	Message     string `json:"message"`
	CandidateID string `json:"candidate_id"`
	TotalVotes  int64  `json:"total_votes"`
}

type VoteStatusResponse struct {
	HasVoted    bool       `json:"has_voted"`
	Message     string     `json:"message"`
	CandidateID string     `json:"candidate_id,omitempty"`
	VotedAt     *time.Time `json:"voted_at,omitempty"`
}

type FoxesResponse struct {
	Foxes     []CandidateRef `json:"foxes"`
	Count     int            `json:"count"`
	Timestamp time.Time      `json:"timestamp"`
}

type CandidateVotesResponse struct {
	CandidateID string `json:"candidate_id"`
	SourceURL   string `json:"source_url"`
	VoteCount   int64  `json:"vote_count"`
}

type StatisticsResponse struct {
	TopCandidates []RankedCandidate `json:"top_candidates"`
	Leader        *Leader           `json:"leader"`
	Totals        Totals            `json:"totals"`
}

type HealthResponse struct {
	Status    string         `json:"status"`
	Timestamp time.Time      `json:"timestamp"`
	Database  string         `json:"database"`
	FoxAPI    UpstreamHealth `json:"fox_api"`
	Uptime    string         `json:"uptime"`
}

// Domain types

// CandidateRef is one image reference as returned by the image source.
// Fallback entries are placeholders for failed fetches and cannot be voted on.
type CandidateRef struct {
	ID       string `json:"id"`
	URL      string `json:"url"`
	Fallback bool   `json:"fallback"`
}

type Candidate struct {
	ID          string     `json:"id"`
	SourceURL   string     `json:"source_url"`
	ProviderID  string     `json:"provider_id"`
	VoteCount   int64      `json:"vote_count"`
	LastShownAt *time.Time `json:"last_shown_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

type VoteRecord struct {
	ID          string    `json:"id"`
	CandidateID string    `json:"candidate_id"`
	VoterID     string    `json:"-"` // Never expose in JSON
	CastAt      time.Time `json:"cast_at"`
	IPHash      *string   `json:"-"` // Never expose in JSON
	UserAgent   *string   `json:"-"` // Never expose in JSON
}

// Statistics types

type RankedCandidate struct {
	Candidate
	Rank          int    `json:"rank"` // 1-indexed ranking
	LastShownText string `json:"last_shown_text,omitempty"`
}

type Leader struct {
	CandidateID string `json:"candidate_id"`
	SourceURL   string `json:"source_url"`
	VoteCount   int64  `json:"vote_count"`
	Message     string `json:"message"`
}

type Totals struct {
	TotalVotes         int64 `json:"total_votes"`
	DistinctVoters     int64 `json:"distinct_voters"`
	DistinctCandidates int64 `json:"distinct_candidates"`
}

type UpstreamHealth struct {
	Status         string    `json:"status"`
	ResponseTimeMS int64     `json:"response_time_ms,omitempty"`
	Error          string    `json:"error,omitempty"`
	Timestamp      time.Time `json:"timestamp"`
}

// Error response

type ErrorResponse struct {
	Error        string `json:"error"`
	Message      string `json:"message,omitempty"`
	AlreadyVoted bool   `json:"already_voted,omitempty"`
	Detail       string `json:"detail,omitempty"` // development mode only
}
