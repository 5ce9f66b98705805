// Package postgres provides a thin, dependency-injected wrapper around a
// pgx connection pool, plus helpers for building parameterized SQL
// fragments safely.
//
// # Core Features
//
//   - Managed pgxpool lifecycle with Fx integration
//   - Config struct supporting environment and YAML loading
//   - Connectivity check on startup (fail fast)
//   - Query/Exec wrappers with slow-query logging
//   - Transaction helper with guaranteed rollback on failure
//   - Dynamic WHERE/ORDER BY/pagination builders that never interpolate
//     values into SQL text
//   - Translation of driver errors into standardized sentinels
//
// # Query Building
//
// The builders produce fragments with positional placeholders; values
// travel separately and are bound by the driver:
//
//	clause, values, err := postgres.BuildWhere(postgres.Filters{
//	    "is_active": true,
//	    "type":      "regular",
//	}, 1)
//	// clause: "WHERE is_active = $1 AND type = $2"
//
//	limit, offset := postgres.BuildPagination(2, 25)
//	orderBy, err := postgres.BuildOrderBy("created_at", "DESC")
//
// Column names (identifier position) cannot be parameterized in SQL, so
// they are restricted to an allow-list pattern instead. A value is never
// concatenated into the fragment text.
//
// # Transactions
//
//	err := db.WithTransaction(ctx, func(tx pgx.Tx) error {
//	    if _, err := tx.Exec(ctx, "..."); err != nil {
//	        return err // rolls back
//	    }
//	    return nil // commits
//	})
//
// # FX Module Integration
//
//	app := fx.New(
//	    postgres.FXModule,
//	    // other modules...
//	)
package postgres
