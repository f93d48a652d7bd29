// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/foxvote/auth"
	"github.com/danielhkuo/foxvote/cliparse"
	"github.com/danielhkuo/foxvote/db"
)

// TestCookieSecret signs voter cookies in tests
const TestCookieSecret = "test-cookie-secret"

// SetupTestDB creates a fresh SQLite database in a temp dir with the full schema
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := db.Open(context.Background(), db.TypeSQLite, filepath.Join(t.TempDir(), "foxvote.db"))
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:              3001,
		DatabaseType:      db.TypeSQLite,
		Environment:       cliparse.EnvProduction,
		CookieSecret:      TestCookieSecret,
		IPHashSalt:        "test-ip-salt",
		FoxAPIURL:         "http://127.0.0.1:0/floof/",
		FoxImageHost:      "randomfox.ca",
		FoxFallbackURL:    "https://randomfox.ca/images/fallback.jpg",
		FetchTimeout:      time.Second,
		FetchRounds:       3,
		RateLimitRequests: 100,
		RateLimitWindow:   15 * time.Minute,
	}
}

// FoxURL returns the canonical image URL for a provider ID
func FoxURL(n int) string {
	return fmt.Sprintf("https://randomfox.ca/images/%d.jpg", n)
}

// CreateTestCandidate inserts a candidate with the given count and matching
// vote records, so the counter invariant holds. Returns the candidate ID.
func CreateTestCandidate(t *testing.T, db *sql.DB, n int, votes int, createdAt time.Time) string {
	t.Helper()

	candidateID, _ := auth.GenerateID(16)
	_, err := db.Exec(`
		INSERT INTO candidate (id, source_url, provider_id, vote_count, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, candidateID, FoxURL(n), fmt.Sprint(n), votes, createdAt.UTC())
	if err != nil {
		t.Fatalf("Failed to create test candidate: %v", err)
	}

	for i := 0; i < votes; i++ {
		_, err := db.Exec(`
			INSERT INTO vote_record (id, candidate_id, voter_id, cast_at)
			VALUES ($1, $2, $3, $4)
		`, uuid.NewString(), candidateID, uuid.NewString(), time.Now().UTC())
		if err != nil {
			t.Fatalf("Failed to create test vote: %v", err)
		}
	}

	return candidateID
}

// CountVotes returns the ledger count and cached count for a candidate
func CountVotes(t *testing.T, db *sql.DB, candidateID string) (ledger, cached int64) {
	t.Helper()

	err := db.QueryRow(`SELECT COUNT(*) FROM vote_record WHERE candidate_id = $1`, candidateID).Scan(&ledger)
	if err != nil {
		t.Fatalf("Failed to count vote records: %v", err)
	}
	err = db.QueryRow(`SELECT vote_count FROM candidate WHERE id = $1`, candidateID).Scan(&cached)
	if err != nil {
		t.Fatalf("Failed to query vote count: %v", err)
	}
	return ledger, cached
}

// VoterCookie builds a signed voter cookie for a fresh or given identity
func VoterCookie(voterID string) *http.Cookie {
	if voterID == "" {
		voterID = auth.NewVoterID()
	}
	return &http.Cookie{
		Name:  auth.VoterCookieName,
		Value: auth.SignVoterID(voterID, TestCookieSecret),
	}
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
