package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
)

// Query executes a parameterized query and returns the resulting rows.
// Queries slower than the configured threshold are logged at WARN level;
// slowness is never treated as an error.
func (p *Postgres) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	start := time.Now()
	rows, err := p.pool.Query(ctx, sql, args...)
	p.logSlowQuery(sql, time.Since(start))
	if err != nil {
		p.logger.Error("database query failed", err, map[string]interface{}{
			"sql": sql,
		})
		return nil, err
	}
	return rows, nil
}

// QueryRow executes a parameterized query expected to return a single row.
// The error, if any, surfaces on Scan.
func (p *Postgres) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	start := time.Now()
	row := p.pool.QueryRow(ctx, sql, args...)
	p.logSlowQuery(sql, time.Since(start))
	return row
}

// Exec executes a statement and returns the number of rows affected.
func (p *Postgres) Exec(ctx context.Context, sql string, args ...any) (int64, error) {
	start := time.Now()
	tag, err := p.pool.Exec(ctx, sql, args...)
	p.logSlowQuery(sql, time.Since(start))
	if err != nil {
		p.logger.Error("database exec failed", err, map[string]interface{}{
			"sql": sql,
		})
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (p *Postgres) logSlowQuery(sql string, elapsed time.Duration) {
	if elapsed > p.slowQueryThreshold() {
		p.logger.Warn("slow query detected", nil, map[string]interface{}{
			"sql":         sql,
			"duration_ms": elapsed.Milliseconds(),
		})
	}
}
