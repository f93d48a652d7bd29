// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package voting

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/foxvote/models"
	"github.com/danielhkuo/foxvote/testutil"
)

func TestTopCandidates_Ordering(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	svc := NewService(db, testutil.GetTestConfig())
	base := time.Now().Add(-time.Hour)

	// Two ties at 3 votes; the older candidate must win
	newer := testutil.CreateTestCandidate(t, db, 1, 3, base.Add(2*time.Minute))
	older := testutil.CreateTestCandidate(t, db, 2, 3, base)
	leader := testutil.CreateTestCandidate(t, db, 3, 7, base.Add(5*time.Minute))
	zero := testutil.CreateTestCandidate(t, db, 4, 0, base)

	ranked, err := svc.TopCandidates(context.Background(), 10)
	if err != nil {
		t.Fatalf("TopCandidates() error = %v", err)
	}

	wantOrder := []string{leader, older, newer, zero}
	if len(ranked) != len(wantOrder) {
		t.Fatalf("expected %d candidates, got %d", len(wantOrder), len(ranked))
	}
	for i, id := range wantOrder {
		if ranked[i].ID != id {
			t.Errorf("position %d: expected %s, got %s", i, id, ranked[i].ID)
		}
		if ranked[i].Rank != i+1 {
			t.Errorf("position %d: expected rank %d, got %d", i, i+1, ranked[i].Rank)
		}
	}

	for i := 1; i < len(ranked); i++ {
		if ranked[i].VoteCount > ranked[i-1].VoteCount {
			t.Errorf("counts not non-increasing at %d: %d > %d", i, ranked[i].VoteCount, ranked[i-1].VoteCount)
		}
	}

	// Same data, same answer
	again, err := svc.TopCandidates(context.Background(), 10)
	if err != nil {
		t.Fatal(err)
	}
	for i := range ranked {
		if again[i].ID != ranked[i].ID {
			t.Errorf("ordering not deterministic at %d", i)
		}
	}
}

func TestTopCandidates_Limit(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	svc := NewService(db, testutil.GetTestConfig())
	for i := 1; i <= 12; i++ {
		testutil.CreateTestCandidate(t, db, i, i%4, time.Now())
	}

	tests := []struct {
		name  string
		limit int
		want  int
	}{
		{"explicit", 5, 5},
		{"default on zero", 0, DefaultTopLimit},
		{"default on negative", -3, DefaultTopLimit},
		{"clamped to max", 1000, 12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ranked, err := svc.TopCandidates(context.Background(), tt.limit)
			if err != nil {
				t.Fatalf("TopCandidates() error = %v", err)
			}
			if len(ranked) != tt.want {
				t.Errorf("expected %d candidates, got %d", tt.want, len(ranked))
			}
		})
	}
}

func TestTopCandidates_Empty(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	svc := NewService(db, testutil.GetTestConfig())
	ranked, err := svc.TopCandidates(context.Background(), 10)
	if err != nil {
		t.Fatal(err)
	}
	if ranked == nil || len(ranked) != 0 {
		t.Errorf("expected empty non-nil slice, got %v", ranked)
	}
	if LeaderOf(ranked) != nil {
		t.Error("expected no leader for empty ranking")
	}
}

func TestTopCandidates_LastShownText(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	svc := NewService(db, testutil.GetTestConfig())
	fixed := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	if err := svc.MarkShown(context.Background(), []models.CandidateRef{{ID: "8", URL: testutil.FoxURL(8)}}); err != nil {
		t.Fatal(err)
	}
	svc.now = func() time.Time { return fixed.Add(3 * time.Hour) }

	ranked, err := svc.TopCandidates(context.Background(), 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(ranked) != 1 {
		t.Fatalf("expected 1 candidate, got %d", len(ranked))
	}
	if ranked[0].LastShownText != "3 hours ago" {
		t.Errorf("expected %q, got %q", "3 hours ago", ranked[0].LastShownText)
	}
}

func TestTotals(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	svc := NewService(db, testutil.GetTestConfig())
	ctx := context.Background()

	testutil.CreateTestCandidate(t, db, 1, 4, time.Now())
	testutil.CreateTestCandidate(t, db, 2, 2, time.Now())
	testutil.CreateTestCandidate(t, db, 3, 0, time.Now())

	if _, err := svc.SubmitVote(ctx, VoteRequest{CandidateRef: testutil.FoxURL(3), VoterID: uuid.NewString()}); err != nil {
		t.Fatal(err)
	}

	totals, err := svc.Totals(ctx)
	if err != nil {
		t.Fatalf("Totals() error = %v", err)
	}
	want := models.Totals{TotalVotes: 7, DistinctVoters: 7, DistinctCandidates: 3}
	if totals != want {
		t.Errorf("Totals() = %+v, want %+v", totals, want)
	}
}

func TestLeaderOf(t *testing.T) {
	ranked := []models.RankedCandidate{
		{Candidate: models.Candidate{ID: "a", SourceURL: testutil.FoxURL(12), ProviderID: "12", VoteCount: 1234}, Rank: 1},
		{Candidate: models.Candidate{ID: "b", VoteCount: 2}, Rank: 2},
	}

	leader := LeaderOf(ranked)
	if leader == nil {
		t.Fatal("expected a leader")
	}
	if leader.CandidateID != "a" || leader.VoteCount != 1234 {
		t.Errorf("unexpected leader %+v", leader)
	}
	if !strings.Contains(leader.Message, "1,234") {
		t.Errorf("expected formatted count in message, got %q", leader.Message)
	}

	noVotes := []models.RankedCandidate{{Candidate: models.Candidate{ID: "a"}, Rank: 1}}
	if LeaderOf(noVotes) != nil {
		t.Error("expected no leader when nobody has votes")
	}
}

func TestRecentVotes(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	svc := NewService(db, testutil.GetTestConfig())
	ctx := context.Background()
	start := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	var last string
	for i := 0; i < 4; i++ {
		at := start.Add(time.Duration(i) * time.Minute)
		svc.now = func() time.Time { return at }
		out, err := svc.SubmitVote(ctx, VoteRequest{CandidateRef: testutil.FoxURL(i + 1), VoterID: uuid.NewString(), IPHash: "deadbeef"})
		if err != nil {
			t.Fatal(err)
		}
		last = out.CandidateID
	}

	recent, err := svc.RecentVotes(ctx, 2)
	if err != nil {
		t.Fatalf("RecentVotes() error = %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("expected 2 records, got %d", len(recent))
	}
	if recent[0].CandidateID != last {
		t.Errorf("expected newest vote first, got %s", recent[0].CandidateID)
	}
	if recent[0].IPHash == nil || *recent[0].IPHash != "deadbeef" {
		t.Error("expected ip hash to be returned")
	}
	if !recent[0].CastAt.After(recent[1].CastAt) {
		t.Errorf("expected descending cast times, got %v then %v", recent[0].CastAt, recent[1].CastAt)
	}
}

func TestVerifyCounts(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	svc := NewService(db, testutil.GetTestConfig())
	ctx := context.Background()

	for i := 0; i < 10; i++ {
		if _, err := svc.SubmitVote(ctx, VoteRequest{CandidateRef: testutil.FoxURL(i%3 + 1), VoterID: uuid.NewString()}); err != nil {
			t.Fatal(err)
		}
	}

	mismatches, err := svc.VerifyCounts(ctx)
	if err != nil {
		t.Fatalf("VerifyCounts() error = %v", err)
	}
	if len(mismatches) != 0 {
		t.Errorf("expected no mismatches, got %+v", mismatches)
	}

	// Corrupt one counter directly
	broken := testutil.CreateTestCandidate(t, db, 50, 2, time.Now())
	if _, err := db.Exec(`UPDATE candidate SET vote_count = 5 WHERE id = $1`, broken); err != nil {
		t.Fatal(err)
	}

	mismatches, err = svc.VerifyCounts(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(mismatches) != 1 {
		t.Fatalf("expected 1 mismatch, got %+v", mismatches)
	}
	if mismatches[0].CandidateID != broken || mismatches[0].Cached != 5 || mismatches[0].Ledger != 2 {
		t.Errorf("unexpected mismatch %+v", mismatches[0])
	}
}
