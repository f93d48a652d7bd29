// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/danielhkuo/foxvote/cliparse"
	"github.com/danielhkuo/foxvote/models"
	"github.com/danielhkuo/foxvote/testutil"
)

func TestSubmitVote(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	handler := NewVotingHandler(db, cfg)

	tests := []struct {
		name           string
		body           interface{}
		rawBody        string
		expectedStatus int
		wantMessage    string
	}{
		{
			name:           "valid vote",
			body:           models.SubmitVoteRequest{ImageURL: testutil.FoxURL(1)},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "invalid JSON",
			rawBody:        "{not json",
			expectedStatus: http.StatusBadRequest,
			wantMessage:    "Invalid JSON",
		},
		{
			name:           "oversized body",
			rawBody:        `{"image_url":"` + strings.Repeat("a", 8<<10) + `"}`,
			expectedStatus: http.StatusRequestEntityTooLarge,
			wantMessage:    "Request body too large",
		},
		{
			name:           "missing image_url",
			body:           map[string]string{},
			expectedStatus: http.StatusBadRequest,
			wantMessage:    "image_url is required",
		},
		{
			name:           "foreign host",
			body:           models.SubmitVoteRequest{ImageURL: "https://example.com/images/1.jpg"},
			expectedStatus: http.StatusBadRequest,
			wantMessage:    "Invalid fox image",
		},
		{
			name:           "fallback image",
			body:           models.SubmitVoteRequest{ImageURL: "https://randomfox.ca/images/fallback.jpg"},
			expectedStatus: http.StatusBadRequest,
			wantMessage:    "fallback",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req *http.Request
			if tt.rawBody != "" {
				req = httptest.NewRequest("POST", "/api/vote", bytes.NewReader([]byte(tt.rawBody)))
			} else {
				req = testutil.MakeRequest("POST", "/api/vote", tt.body, nil)
			}
			// Fresh voter per case
			req.AddCookie(testutil.VoterCookie(uuid.NewString()))
			w := httptest.NewRecorder()

			handler.SubmitVote(w, req)

			testutil.AssertStatus(t, w, tt.expectedStatus)

			if tt.expectedStatus == http.StatusOK {
				var resp models.SubmitVoteResponse
				testutil.AssertJSON(t, w, &resp)
				if !resp.Success || resp.CandidateID == "" || resp.TotalVotes != 1 {
					t.Errorf("Unexpected response %+v", resp)
				}
				return
			}

			var resp models.ErrorResponse
			testutil.AssertJSON(t, w, &resp)
			if !strings.Contains(resp.Message, tt.wantMessage) {
				t.Errorf("Expected message containing %q, got %q", tt.wantMessage, resp.Message)
			}
			if resp.AlreadyVoted {
				t.Error("Validation errors must not report already_voted")
			}
		})
	}
}

func TestSubmitVote_IssuesCookie(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	handler := NewVotingHandler(db, testutil.GetTestConfig())

	req := testutil.MakeRequest("POST", "/api/vote", models.SubmitVoteRequest{ImageURL: testutil.FoxURL(1)}, nil)
	w := httptest.NewRecorder()
	handler.SubmitVote(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)
	cookie := issuedVoterCookie(w)
	if cookie == nil {
		t.Fatal("Expected voter cookie on first vote")
	}

	// Replaying the issued cookie is the same voter
	req = testutil.MakeRequest("POST", "/api/vote", models.SubmitVoteRequest{ImageURL: testutil.FoxURL(2)}, nil)
	req.AddCookie(cookie)
	w = httptest.NewRecorder()
	handler.SubmitVote(w, req)

	testutil.AssertStatus(t, w, http.StatusBadRequest)
	var resp models.ErrorResponse
	testutil.AssertJSON(t, w, &resp)
	if !resp.AlreadyVoted {
		t.Error("Expected already_voted for replayed cookie")
	}
}

func TestSubmitVote_AlreadyVoted(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	handler := NewVotingHandler(db, testutil.GetTestConfig())
	voter := testutil.VoterCookie("")

	vote := func(n int) *httptest.ResponseRecorder {
		req := testutil.MakeRequest("POST", "/api/vote", models.SubmitVoteRequest{ImageURL: testutil.FoxURL(n)}, nil)
		req.AddCookie(voter)
		w := httptest.NewRecorder()
		handler.SubmitVote(w, req)
		return w
	}

	testutil.AssertStatus(t, vote(1), http.StatusOK)

	for _, n := range []int{1, 2} {
		w := vote(n)
		testutil.AssertStatus(t, w, http.StatusBadRequest)

		var resp models.ErrorResponse
		testutil.AssertJSON(t, w, &resp)
		if !resp.AlreadyVoted {
			t.Errorf("fox %d: expected already_voted=true", n)
		}
	}

	var records int
	if err := db.QueryRow(`SELECT COUNT(*) FROM vote_record`).Scan(&records); err != nil {
		t.Fatal(err)
	}
	if records != 1 {
		t.Errorf("Expected 1 vote record, got %d", records)
	}
}

func TestSubmitVote_StoresHashedIP(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	handler := NewVotingHandler(db, testutil.GetTestConfig())

	req := testutil.MakeRequest("POST", "/api/vote", models.SubmitVoteRequest{ImageURL: testutil.FoxURL(1)},
		map[string]string{"X-Forwarded-For": "203.0.113.7", "User-Agent": "fox-test/1.0"})
	w := httptest.NewRecorder()
	handler.SubmitVote(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	var ipHash, userAgent string
	if err := db.QueryRow(`SELECT ip_hash, user_agent FROM vote_record`).Scan(&ipHash, &userAgent); err != nil {
		t.Fatal(err)
	}
	if ipHash == "" || strings.Contains(ipHash, "203.0.113.7") {
		t.Errorf("Expected hashed IP, got %q", ipHash)
	}
	if userAgent != "fox-test/1.0" {
		t.Errorf("Expected user agent stored, got %q", userAgent)
	}
}

func TestSubmitVote_StorageUnavailable(t *testing.T) {
	tests := []struct {
		name       string
		env        string
		wantDetail bool
	}{
		{"production", cliparse.EnvProduction, false},
		{"development", cliparse.EnvDevelopment, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := testutil.SetupTestDB(t)
			cfg := testutil.GetTestConfig()
			cfg.Environment = tt.env
			handler := NewVotingHandler(db, cfg)
			db.Close()

			req := testutil.MakeRequest("POST", "/api/vote", models.SubmitVoteRequest{ImageURL: testutil.FoxURL(1)}, nil)
			w := httptest.NewRecorder()
			handler.SubmitVote(w, req)

			testutil.AssertStatus(t, w, http.StatusServiceUnavailable)

			var resp models.ErrorResponse
			testutil.AssertJSON(t, w, &resp)
			if (resp.Detail != "") != tt.wantDetail {
				t.Errorf("detail = %q, wantDetail %v", resp.Detail, tt.wantDetail)
			}
			if resp.AlreadyVoted {
				t.Error("Storage errors must not report already_voted")
			}
		})
	}
}

func TestVoteStatus(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	handler := NewVotingHandler(db, testutil.GetTestConfig())
	voter := testutil.VoterCookie("")

	status := func(cookie *http.Cookie) models.VoteStatusResponse {
		t.Helper()
		req := httptest.NewRequest("GET", "/api/vote-status", nil)
		if cookie != nil {
			req.AddCookie(cookie)
		}
		w := httptest.NewRecorder()
		handler.VoteStatus(w, req)
		testutil.AssertStatus(t, w, http.StatusOK)

		var resp models.VoteStatusResponse
		testutil.AssertJSON(t, w, &resp)
		return resp
	}

	if resp := status(nil); resp.HasVoted {
		t.Error("New visitor should not have voted")
	}
	if resp := status(voter); resp.HasVoted {
		t.Error("Voter should not have voted yet")
	}

	req := testutil.MakeRequest("POST", "/api/vote", models.SubmitVoteRequest{ImageURL: testutil.FoxURL(9)}, nil)
	req.AddCookie(voter)
	w := httptest.NewRecorder()
	handler.SubmitVote(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	var voteResp models.SubmitVoteResponse
	testutil.AssertJSON(t, w, &voteResp)

	resp := status(voter)
	if !resp.HasVoted {
		t.Fatal("Expected has_voted after voting")
	}
	if resp.CandidateID != voteResp.CandidateID {
		t.Errorf("Expected candidate %s, got %s", voteResp.CandidateID, resp.CandidateID)
	}
	if resp.VotedAt == nil {
		t.Error("Expected voted_at to be set")
	}
}
