package persist

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
)

// RunRecord is one finished run.
type RunRecord struct {
	StartedAt time.Time
	Duration  float64 // simulation seconds
	Waves     int
	Kills     int
	XP        int
}

// KillRecord is one enemy death, batched into kill_log.
type KillRecord struct {
	KilledAt time.Time
	Template string
	Wave     int
	X, Y     float64
}

// RunRepo persists run results and the kill log.
type RunRepo struct {
	db *DB
}

func NewRunRepo(db *DB) *RunRepo {
	return &RunRepo{db: db}
}

func (r *RunRepo) InsertRun(ctx context.Context, rec RunRecord) error {
	_, err := r.db.Pool.Exec(ctx,
		`INSERT INTO runs (started_at, duration_s, waves, kills, xp)
		 VALUES ($1, $2, $3, $4, $5)`,
		rec.StartedAt, rec.Duration, rec.Waves, rec.Kills, rec.XP)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	return nil
}

// InsertKills writes a batch of kill rows in one round trip.
func (r *RunRepo) InsertKills(ctx context.Context, recs []KillRecord) error {
	if len(recs) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, k := range recs {
		batch.Queue(
			`INSERT INTO kill_log (killed_at, template, wave, x, y)
			 VALUES ($1, $2, $3, $4, $5)`,
			k.KilledAt, k.Template, k.Wave, k.X, k.Y)
	}
	br := r.db.Pool.SendBatch(ctx, batch)
	defer br.Close()
	for range recs {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("insert kills: %w", err)
		}
	}
	return nil
}

// TopRuns returns the best runs by kill count, for the admin/status path.
func (r *RunRepo) TopRuns(ctx context.Context, limit int) ([]RunRecord, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT started_at, duration_s, waves, kills, xp
		 FROM runs ORDER BY kills DESC, duration_s DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("query top runs: %w", err)
	}
	defer rows.Close()

	var out []RunRecord
	for rows.Next() {
		var rec RunRecord
		if err := rows.Scan(&rec.StartedAt, &rec.Duration, &rec.Waves, &rec.Kills, &rec.XP); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
