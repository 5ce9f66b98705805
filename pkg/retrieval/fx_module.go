package retrieval

import (
	"go.uber.org/fx"

	"github.com/stocktide/curator/pkg/logger"
	"github.com/stocktide/curator/pkg/qdrant"
)

// FXModule defines the Fx module for the retriever.
//
// The admin API itself does not consume the Retriever; it exists for the
// content-generation pipeline, which runs outside this service and takes
// the retriever as its entry point.
//
// Dependencies required by this module:
//   - A *qdrant.Client, a retrieval.Config, and a *logger.Logger must be
//     available in the dependency injection container.
var FXModule = fx.Module("retrieval",
	fx.Provide(provideRetriever),
)

func provideRetriever(client *qdrant.Client, cfg Config, log *logger.Logger) *Retriever {
	return NewRetriever(client, cfg, log)
}
