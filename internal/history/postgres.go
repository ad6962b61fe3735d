package history

import (
	"context"
	"database/sql"
	"fmt"
)

const schema = `
CREATE TABLE IF NOT EXISTS match_results (
	id          TEXT PRIMARY KEY,
	p1          TEXT NOT NULL,
	p2          TEXT NOT NULL,
	score1      INTEGER NOT NULL,
	score2      INTEGER NOT NULL,
	winner      TEXT NOT NULL,
	rounds      INTEGER NOT NULL,
	finished_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS match_results_p1 ON match_results (p1, finished_at DESC);
CREATE INDEX IF NOT EXISTS match_results_p2 ON match_results (p2, finished_at DESC);
`

type Postgres struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

// Migrate creates the results table if needed.
func (p *Postgres) Migrate(ctx context.Context) error {
	if _, err := p.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("migrate match_results: %w", err)
	}
	return nil
}

func (p *Postgres) Record(ctx context.Context, r Result) error {
	_, err := p.db.ExecContext(ctx,
		`INSERT INTO match_results (id, p1, p2, score1, score2, winner, rounds, finished_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		r.ID, r.P1, r.P2, r.Score1, r.Score2, r.Winner, r.Rounds, r.FinishedAt)
	if err != nil {
		return fmt.Errorf("record match %s: %w", r.ID, err)
	}
	return nil
}

func (p *Postgres) Recent(ctx context.Context, player string, limit int) ([]Result, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	rows, err := p.db.QueryContext(ctx,
		`SELECT id, p1, p2, score1, score2, winner, rounds, finished_at
		 FROM match_results
		 WHERE p1 = $1 OR p2 = $1
		 ORDER BY finished_at DESC
		 LIMIT $2`, player, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Result, 0, limit)
	for rows.Next() {
		var r Result
		if err := rows.Scan(&r.ID, &r.P1, &r.P2, &r.Score1, &r.Score2, &r.Winner, &r.Rounds, &r.FinishedAt); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
