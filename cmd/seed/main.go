// Command seed fills a foxvote database with sample candidates and votes.
// Existing candidates and votes are deleted first.
//
//	go run ./cmd/seed -d foxvote.db
package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"github.com/danielhkuo/foxvote/auth"
	"github.com/danielhkuo/foxvote/cliparse"
	"github.com/danielhkuo/foxvote/db"
	"github.com/danielhkuo/foxvote/foxsource"
)

// voteDistribution gives fox i (1-based) voteDistribution[i-1] votes
var voteDistribution = []int{
	150, 142, 138, 125, 118, 105, 98, 87, 76, 65,
	54, 43, 32, 28, 21, 15, 12, 8, 5, 2,
}

const (
	createdAgo = 14 * 24 * time.Hour
	voteSpread = 7 * 24 * time.Hour
)

func main() {
	cfg, err := cliparse.ParseToolFlags("seed", os.Args[1:])
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

	if err := db.CreateSchema(conn); err != nil {
		slog.Error("schema creation failed", "error", err)
		os.Exit(1)
	}

	total, err := seed(ctx, conn, time.Now().UTC())
	if err != nil {
		slog.Error("seeding failed", "error", err)
		os.Exit(1)
	}

	fmt.Printf("Seeded %d foxes with %s votes\n", len(voteDistribution), humanize.Comma(total))
}

// seed replaces all candidates and votes with the sample data in one
// transaction and returns the number of votes written.
func seed(ctx context.Context, conn *sql.DB, now time.Time) (int64, error) {
	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM vote_record`); err != nil {
		return 0, fmt.Errorf("clear votes: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM candidate`); err != nil {
		return 0, fmt.Errorf("clear candidates: %w", err)
	}

	var total int64
	for i, votes := range voteDistribution {
		sourceURL := fmt.Sprintf("https://randomfox.ca/images/%d.jpg", i+1)

		candidateID, err := auth.GenerateID(16)
		if err != nil {
			return 0, err
		}

		lastShown := now.Add(-time.Duration(i) * voteSpread / time.Duration(len(voteDistribution)))
		_, err = tx.ExecContext(ctx, `
			INSERT INTO candidate (id, source_url, provider_id, vote_count, last_shown_at, created_at)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, candidateID, sourceURL, foxsource.ExtractProviderID(sourceURL), votes, lastShown, now.Add(-createdAgo))
		if err != nil {
			return 0, fmt.Errorf("insert fox %d: %w", i+1, err)
		}

		// One ledger row per counted vote keeps vote_count honest
		for j := 0; j < votes; j++ {
			castAt := now.Add(-time.Duration(j) * voteSpread / time.Duration(votes))
			ipHash := auth.HashIP(fmt.Sprintf("192.168.1.%d", j%255), "seed")

			_, err = tx.ExecContext(ctx, `
				INSERT INTO vote_record (id, candidate_id, voter_id, cast_at, ip_hash)
				VALUES ($1, $2, $3, $4, $5)
			`, uuid.NewString(), candidateID, uuid.NewString(), castAt, ipHash)
			if err != nil {
				return 0, fmt.Errorf("insert vote for fox %d: %w", i+1, err)
			}
		}

		total += int64(votes)
		slog.Info("created fox", "fox", i+1, "votes", votes)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return total, nil
}
