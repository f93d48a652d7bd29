// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package voting admits votes and aggregates vote statistics.

# Admission

	svc := voting.NewService(db, cfg)
	outcome, err := svc.SubmitVote(ctx, voting.VoteRequest{
		CandidateRef: "https://randomfox.ca/images/61.jpg",
		VoterID:      voterID,
	})

Each voter identity gets exactly one vote, ever. SubmitVote:

 1. returns AlreadyVoted if the voter already has a vote_record
 2. finds or creates the candidate for the normalized image URL
 3. inserts the vote_record and increments candidate.vote_count in one
    transaction
 4. treats a UNIQUE violation on vote_record.voter_id as AlreadyVoted and
    rolls back, so racing requests never double count
 5. returns Admitted with the candidate's new total

AlreadyVoted is an outcome, not an error. Errors are ErrInvalidCandidate,
ErrInvalidVoter (client errors) and anything wrapping ErrStorage (retryable
infrastructure failures).

The gate is the database constraint. There are no in-process locks, so any
number of server processes may share one database.

# Statistics

	top, err := svc.TopCandidates(ctx, 10)
	totals, err := svc.Totals(ctx)
	leader := voting.LeaderOf(top)

TopCandidates orders by vote_count DESC, created_at ASC, id ASC.
VerifyCounts reports candidates whose cached count differs from the ledger;
it should always return nothing.
*/
package voting
