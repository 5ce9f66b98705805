package repository

import (
	"context"

	"go.uber.org/fx"

	"github.com/stocktide/curator/pkg/postgres"
)

var FXModule = fx.Module("repository",
	fx.Provide(
		NewAccounts,
		NewBuckets,
		NewAssociations,
	),
	fx.Invoke(RunMigrations),
)

// RunMigrations applies the schema before the application starts
// serving.
func RunMigrations(lc fx.Lifecycle, db *postgres.Postgres) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return Migrate(ctx, db)
		},
	})
}
