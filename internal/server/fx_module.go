package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/fx"

	"github.com/stocktide/curator/internal/auth"
	"github.com/stocktide/curator/internal/repository"
	"github.com/stocktide/curator/pkg/config"
	"github.com/stocktide/curator/pkg/logger"
	"github.com/stocktide/curator/pkg/metrics"
)

var FXModule = fx.Module("server",
	fx.Provide(
		provideTokenManager,
		provideServer,
	),
	fx.Invoke(RegisterHTTPServer),
)

func provideTokenManager(cfg config.AuthConfig) *auth.Manager {
	return auth.NewManager(cfg.JWTSecret, time.Duration(cfg.TokenTTLHours)*time.Hour)
}

func provideServer(
	accounts *repository.Accounts,
	buckets *repository.Buckets,
	associations *repository.Associations,
	tokens *auth.Manager,
	authCfg config.AuthConfig,
	m *metrics.Metrics,
	log *logger.Logger,
) *Server {
	return NewServer(accounts, buckets, associations, tokens, authCfg, m, log)
}

// RegisterHTTPServer starts the HTTP listener when the application
// starts and drains it on shutdown.
func RegisterHTTPServer(lc fx.Lifecycle, s *Server, cfg config.HTTPConfig, log *logger.Logger) {
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.Routes(),
		ReadTimeout:  time.Duration(cfg.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeoutSec) * time.Second,
	}

	shutdownTimeout := time.Duration(cfg.ShutdownSec) * time.Second
	if shutdownTimeout <= 0 {
		shutdownTimeout = 10 * time.Second
	}

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			log.Info("starting http server", nil, map[string]interface{}{
				"addr": srv.Addr,
			})
			go func() {
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Fatal("http server failed", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("shutting down http server...", nil)
			shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}
