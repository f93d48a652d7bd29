// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/danielhkuo/foxvote/models"
	"github.com/danielhkuo/foxvote/testutil"
)

// TestConcurrentSameVoterSubmissions verifies that a voter double-clicking
// (or scripting) many simultaneous votes gets exactly one admitted
func TestConcurrentSameVoterSubmissions(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	handler := NewVotingHandler(db, testutil.GetTestConfig())
	voter := testutil.VoterCookie("")

	numRequests := 15
	var okCount, alreadyCount atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < numRequests; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			req := testutil.MakeRequest("POST", "/api/vote",
				models.SubmitVoteRequest{ImageURL: testutil.FoxURL(idx%2 + 1)}, nil)
			req.AddCookie(voter)
			w := httptest.NewRecorder()

			handler.SubmitVote(w, req)

			switch w.Code {
			case http.StatusOK:
				okCount.Add(1)
			case http.StatusBadRequest:
				alreadyCount.Add(1)
			default:
				t.Errorf("Unexpected status %d: %s", w.Code, w.Body.String())
			}
		}(i)
	}

	wg.Wait()

	if okCount.Load() != 1 {
		t.Errorf("Expected exactly 1 admitted vote, got %d", okCount.Load())
	}
	if int(alreadyCount.Load()) != numRequests-1 {
		t.Errorf("Expected %d rejections, got %d", numRequests-1, alreadyCount.Load())
	}
}

// TestConcurrentDifferentVoters verifies no votes are lost when many
// voters pick the same fox at once
func TestConcurrentDifferentVoters(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	votingHandler := NewVotingHandler(db, cfg)
	statsHandler := NewStatisticsHandler(db, cfg)

	numVoters := 20
	var successCount atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < numVoters; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			req := testutil.MakeRequest("POST", "/api/vote",
				models.SubmitVoteRequest{ImageURL: testutil.FoxURL(7)}, nil)
			req.AddCookie(testutil.VoterCookie(""))
			w := httptest.NewRecorder()

			votingHandler.SubmitVote(w, req)

			if w.Code == http.StatusOK {
				successCount.Add(1)
			} else {
				t.Errorf("Vote failed: %d - %s", w.Code, w.Body.String())
			}
		}()
	}

	wg.Wait()

	if int(successCount.Load()) != numVoters {
		t.Errorf("Expected %d successful votes, got %d", numVoters, successCount.Load())
	}

	req := httptest.NewRequest("GET", "/api/statistics", nil)
	w := httptest.NewRecorder()
	statsHandler.GetStatistics(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.StatisticsResponse
	testutil.AssertJSON(t, w, &resp)
	if len(resp.TopCandidates) != 1 || resp.TopCandidates[0].VoteCount != int64(numVoters) {
		t.Errorf("Expected one candidate with %d votes, got %+v", numVoters, resp.TopCandidates)
	}
	if resp.Totals.TotalVotes != int64(numVoters) {
		t.Errorf("Expected %d total votes, got %d", numVoters, resp.Totals.TotalVotes)
	}
}

// TestConcurrentVotesAndReads runs statistics reads alongside admissions
func TestConcurrentVotesAndReads(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	votingHandler := NewVotingHandler(db, cfg)
	statsHandler := NewStatisticsHandler(db, cfg)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func(idx int) {
			defer wg.Done()
			req := testutil.MakeRequest("POST", "/api/vote",
				models.SubmitVoteRequest{ImageURL: testutil.FoxURL(idx%3 + 1)}, nil)
			req.AddCookie(testutil.VoterCookie(""))
			w := httptest.NewRecorder()
			votingHandler.SubmitVote(w, req)
			if w.Code != http.StatusOK {
				t.Errorf("Vote failed: %d", w.Code)
			}
		}(i)
		go func() {
			defer wg.Done()
			w := httptest.NewRecorder()
			statsHandler.GetStatistics(w, httptest.NewRequest("GET", "/api/statistics", nil))
			if w.Code != http.StatusOK {
				t.Errorf("Statistics failed: %d", w.Code)
			}
		}()
	}
	wg.Wait()

	var mismatched int
	err := db.QueryRow(`
		SELECT COUNT(*) FROM candidate c
		WHERE c.vote_count <> (SELECT COUNT(*) FROM vote_record v WHERE v.candidate_id = c.id)
	`).Scan(&mismatched)
	if err != nil {
		t.Fatal(err)
	}
	if mismatched != 0 {
		t.Errorf("Expected counters to match the ledger, %d candidates differ", mismatched)
	}
}
