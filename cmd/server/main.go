package main

import (
	"context"

	"github.com/joho/godotenv"
	"go.uber.org/fx"

	"github.com/stocktide/curator/internal/repository"
	"github.com/stocktide/curator/internal/server"
	"github.com/stocktide/curator/pkg/config"
	"github.com/stocktide/curator/pkg/logger"
	"github.com/stocktide/curator/pkg/metrics"
	"github.com/stocktide/curator/pkg/postgres"
	"github.com/stocktide/curator/pkg/qdrant"
	"github.com/stocktide/curator/pkg/retrieval"
	"github.com/stocktide/curator/pkg/tracer"
)

func main() {
	// Local development reads credentials from a .env file; in
	// production the environment is set by the deployment.
	_ = godotenv.Load()

	app := fx.New(
		config.FXModule,
		logger.FXModule,
		fx.Provide(
			func(l *logger.Logger) postgres.Logger { return l },
			func(l *logger.Logger) qdrant.Logger { return l },
			func(l *logger.Logger) tracer.Logger { return l },
		),
		tracer.FXModule,
		metrics.FXModule,
		postgres.FXModule,
		qdrant.FXModule,
		retrieval.FXModule,
		repository.FXModule,
		server.FXModule,
		fx.Invoke(bootstrapCollections),
	)

	app.Run()
}

// bootstrapCollections ensures every configured vector collection exists
// before the API starts serving. A dimension mismatch against an
// existing collection aborts startup.
func bootstrapCollections(lc fx.Lifecycle, client *qdrant.Client, cfg config.VectorConfig) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			for _, name := range cfg.Collections {
				if err := client.EnsureCollection(ctx, name, cfg.Dimension); err != nil {
					return err
				}
			}
			return nil
		},
	})
}
