package qdrant

import (
	"context"
	"sync"

	"go.uber.org/fx"
)

// FXModule defines the Fx module for the Qdrant client.
//
// The module:
//  1. Provides the NewClient factory function to the dependency injection
//     container, making the client available to other components.
//  2. Invokes RegisterQdrantLifecycle to handle shutdown of the client.
//
// Usage:
//
//	app := fx.New(
//	    qdrant.FXModule,
//	    // other modules...
//	)
//
// Dependencies required by this module:
//   - A qdrant.Config instance and a qdrant.Logger implementation must be
//     available in the dependency injection container.
var FXModule = fx.Module("qdrant",
	fx.Provide(
		NewClient,
	),
	fx.Invoke(RegisterQdrantLifecycle),
)

// RegisterQdrantLifecycle closes the client connection on application
// shutdown.
func RegisterQdrantLifecycle(lc fx.Lifecycle, client *Client) {
	var once sync.Once

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			once.Do(client.Close)
			return nil
		},
	})
}
