package metrics

import (
	"go.uber.org/fx"
)

var FXModule = fx.Module("metrics",
	fx.Provide(
		NewMetrics,
	),
)
