package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rosepool/rosepool/go/internal/dbconfig"
)

// Contestant mirrors the cast snapshot JSON layout
type Contestant struct {
	ID         uuid.UUID `json:"id"`
	LeagueID   uuid.UUID `json:"league_id"`
	FullName   string    `json:"full_name"`
	Hometown   string    `json:"hometown"`
	Occupation string    `json:"occupation"`
	Status     string    `json:"status"`
	CreatedAt  string    `json:"created_at"`
}

func main() {
	ctx := context.Background()

	// 1) Load the cast snapshot
	path := "go/internal/assets/cast.json"
	if len(os.Args) > 1 {
		path = os.Args[1]
	}
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "read cast JSON: %v\n", err)
		os.Exit(1)
	}
	var cast []Contestant
	if err := json.Unmarshal(data, &cast); err != nil {
		fmt.Fprintf(os.Stderr, "unmarshal cast: %v\n", err)
		os.Exit(1)
	}

	// 2) Connect using shared dbconfig
	cfg := dbconfig.NewConfigFromEnv()
	pool, err := pgxpool.New(ctx, cfg.DSN())
	if err != nil {
		fmt.Fprintf(os.Stderr, "connect error: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	// 3) Upsert and count
	total, inserted, skipped, errs := len(cast), 0, 0, 0
	for _, c := range cast {
		status := c.Status
		if status == "" {
			status = "ACTIVE"
		}
		tag, err := pool.Exec(ctx, `
            INSERT INTO contestants (
              id, league_id, full_name, hometown, occupation, status, created_at
            ) VALUES ($1,$2,$3,$4,$5,$6,$7)
            ON CONFLICT (id) DO NOTHING
        `, c.ID, c.LeagueID, c.FullName, c.Hometown, c.Occupation, status, c.CreatedAt)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error inserting contestant %s: %v\n", c.ID, err)
			errs++
			continue
		}
		if tag.RowsAffected() == 1 {
			inserted++
		} else {
			skipped++
		}
	}

	// 4) Print summary
	fmt.Printf(
		"Cast seed: total=%d inserted=%d skipped=%d errors=%d\n",
		total, inserted, skipped, errs,
	)
}
