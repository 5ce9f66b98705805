package config

import (
	"go.uber.org/fx"

	"github.com/stocktide/curator/pkg/logger"
	"github.com/stocktide/curator/pkg/metrics"
	"github.com/stocktide/curator/pkg/postgres"
	"github.com/stocktide/curator/pkg/qdrant"
	"github.com/stocktide/curator/pkg/retrieval"
	"github.com/stocktide/curator/pkg/tracer"
)

// FXModule loads the configuration once and exposes each section as its
// own type, so downstream modules depend only on the config slice they
// actually consume.
var FXModule = fx.Module("config",
	fx.Provide(
		func() (Config, error) { return Load(GetEnv()) },
		func(c Config) HTTPConfig { return c.HTTP },
		func(c Config) logger.Config { return c.Logger },
		func(c Config) postgres.Config { return c.Postgres },
		func(c Config) qdrant.Config { return c.Qdrant },
		func(c Config) VectorConfig { return c.Vector },
		func(c Config) AuthConfig { return c.Auth },
		func(c Config) retrieval.Config { return c.Retrieval },
		func(c Config) metrics.Config { return c.Metrics },
		func(c Config) tracer.Config { return c.Tracer },
	),
)
