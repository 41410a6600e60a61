package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// StatsRepository rolls suggestion counts up into a per-day, per-type
// summary table consumed by dashboards.
type StatsRepository struct {
	db *sql.DB
}

// NewStatsRepository creates a new StatsRepository.
func NewStatsRepository(db *sql.DB) *StatsRepository {
	return &StatsRepository{db: db}
}

// RollupDay recomputes the stats rows for the given day from the
// suggestions table. Safe to re-run; the upsert overwrites prior counts.
func (r *StatsRepository) RollupDay(ctx context.Context, day time.Time) error {
	const q = `
INSERT INTO suggestion_stats (day, suggestion_type, total, applied)
SELECT
	$1::date,
	suggestion_type,
	count(*),
	count(*) FILTER (WHERE is_applied)
FROM suggestions
WHERE created_at >= $1::date AND created_at < $1::date + interval '1 day'
GROUP BY suggestion_type
ON CONFLICT (day, suggestion_type) DO UPDATE SET
	total = EXCLUDED.total,
	applied = EXCLUDED.applied;
`
	if _, err := r.db.ExecContext(ctx, q, day.Format("2006-01-02")); err != nil {
		return fmt.Errorf("rollup suggestion stats: %w", err)
	}
	return nil
}
