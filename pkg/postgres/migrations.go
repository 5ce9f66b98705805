package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// Migrate executes the given DDL statements in order, inside a single
// transaction. Statements are expected to be idempotent (CREATE TABLE IF
// NOT EXISTS and friends) so Migrate is safe to run on every startup.
func (p *Postgres) Migrate(ctx context.Context, statements ...string) error {
	return p.WithTransaction(ctx, func(tx pgx.Tx) error {
		for i, stmt := range statements {
			if _, err := tx.Exec(ctx, stmt); err != nil {
				return fmt.Errorf("migration statement %d failed: %w", i, err)
			}
		}
		return nil
	})
}
