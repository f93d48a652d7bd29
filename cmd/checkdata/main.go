// Command checkdata prints a summary of a foxvote database: totals, the
// top five foxes, the most recent votes, and any candidate whose cached
// count disagrees with the vote ledger.
//
//	go run ./cmd/checkdata -d foxvote.db
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/foxvote/cliparse"
	"github.com/danielhkuo/foxvote/db"
	"github.com/danielhkuo/foxvote/voting"
)

func main() {
	cfg, err := cliparse.ParseToolFlags("checkdata", os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	conn, err := db.Open(ctx, cfg.DatabaseType, cfg.DatabaseURL)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer conn.Close()

	svc := voting.NewService(conn, cliparse.Config{})
	if err := report(ctx, os.Stdout, svc); err != nil {
		slog.Error("check failed", "error", err)
		os.Exit(1)
	}
}

func report(ctx context.Context, w io.Writer, svc *voting.Service) error {
	totals, err := svc.Totals(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintln(w, "Database statistics:")
	fmt.Fprintf(w, "- Total foxes:  %s\n", humanize.Comma(totals.DistinctCandidates))
	fmt.Fprintf(w, "- Total votes:  %s\n", humanize.Comma(totals.TotalVotes))
	fmt.Fprintf(w, "- Voters:       %s\n", humanize.Comma(totals.DistinctVoters))

	if totals.DistinctCandidates == 0 {
		fmt.Fprintln(w, "\nNo data found. Run go run ./cmd/seed to add sample data.")
		return nil
	}

	top, err := svc.TopCandidates(ctx, 5)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, "\nTop 5 foxes:")
	for _, c := range top {
		fmt.Fprintf(w, "%d. %s - %s votes\n", c.Rank, c.ProviderID, humanize.Comma(c.VoteCount))
	}

	recent, err := svc.RecentVotes(ctx, 5)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, "\nRecent votes:")
	for _, v := range recent {
		from := "unknown"
		if v.IPHash != nil {
			from = *v.IPHash
		}
		fmt.Fprintf(w, "- %s from %s\n", humanize.Time(v.CastAt), from)
	}

	mismatches, err := svc.VerifyCounts(ctx)
	if err != nil {
		return err
	}
	if len(mismatches) == 0 {
		fmt.Fprintln(w, "\nVote counts match the ledger.")
		return nil
	}
	fmt.Fprintf(w, "\n%d foxes have counts that disagree with the ledger:\n", len(mismatches))
	for _, m := range mismatches {
		fmt.Fprintf(w, "- %s: cached %d, ledger %d\n", m.CandidateID, m.Cached, m.Ledger)
	}
	return nil
}
