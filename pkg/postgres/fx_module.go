package postgres

import (
	"context"

	"go.uber.org/fx"
)

var FXModule = fx.Module("postgres",
	fx.Provide(
		NewPostgres,
	),
	fx.Invoke(RegisterPostgresLifecycle),
)

// RegisterPostgresLifecycle closes the pool on application shutdown.
func RegisterPostgresLifecycle(lc fx.Lifecycle, db *Postgres) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			db.GracefulShutdown()
			return nil
		},
	})
}
