package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Logger defines the logging operations the postgres package needs. Any
// implementation conforming to these methods can be injected.
type Logger interface {
	Info(msg string, err error, fields ...map[string]interface{})
	Debug(msg string, err error, fields ...map[string]interface{})
	Warn(msg string, err error, fields ...map[string]interface{})
	Error(msg string, err error, fields ...map[string]interface{})
	Fatal(msg string, err error, fields ...map[string]interface{})
}

// Postgres wraps a pgx connection pool and provides standardized query,
// transaction, and lifecycle operations.
//
// The pool is constructed once at startup and shared for the process's
// lifetime; there is no lazy initialization, so concurrent first callers
// always see a fully constructed handle.
type Postgres struct {
	pool   *pgxpool.Pool
	cfg    Config
	logger Logger
}

// NewPostgres creates a new Postgres instance with the provided configuration.
// It establishes the connection pool and verifies connectivity with a ping,
// failing fast if the database is unreachable.
//
// Returns *Postgres concrete type (accept interfaces, return structs).
func NewPostgres(cfg Config, logger Logger) (*Postgres, error) {
	poolCfg, err := buildPoolConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("invalid postgres configuration: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(context.Background(), poolCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create postgres pool: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), poolCfg.ConnConfig.ConnectTimeout)
	defer cancel()

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}

	logger.Info("connected to postgres", nil, map[string]interface{}{
		"host":      cfg.Connection.Host,
		"database":  cfg.Connection.DbName,
		"max_conns": poolCfg.MaxConns,
	})

	return &Postgres{
		pool:   pool,
		cfg:    cfg,
		logger: logger,
	}, nil
}

// buildPoolConfig converts package Config into a pgxpool configuration,
// applying package defaults for unset fields.
func buildPoolConfig(cfg Config) (*pgxpool.Config, error) {
	connStr := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.Connection.Host,
		cfg.Connection.Port,
		cfg.Connection.User,
		cfg.Connection.Password,
		cfg.Connection.DbName,
		cfg.Connection.SSLMode)

	poolCfg, err := pgxpool.ParseConfig(connStr)
	if err != nil {
		return nil, err
	}

	maxConns := cfg.Pool.MaxConns
	if maxConns == 0 {
		maxConns = defaultMaxConns
	}
	idleTime := cfg.Pool.MaxConnIdleTime
	if idleTime == 0 {
		idleTime = defaultMaxConnIdleTime
	}
	connectTimeout := cfg.Pool.ConnectTimeout
	if connectTimeout == 0 {
		connectTimeout = defaultConnectTimeout
	}

	poolCfg.MaxConns = maxConns
	poolCfg.MaxConnIdleTime = idleTime
	poolCfg.ConnConfig.ConnectTimeout = connectTimeout

	return poolCfg, nil
}

// slowQueryThreshold returns the configured threshold or the package default.
func (p *Postgres) slowQueryThreshold() time.Duration {
	if p.cfg.SlowQueryThreshold > 0 {
		return p.cfg.SlowQueryThreshold
	}
	return defaultSlowQueryThreshold
}

// Pool returns the underlying pgx pool for cases where direct access is needed.
func (p *Postgres) Pool() *pgxpool.Pool {
	return p.pool
}

// GracefulShutdown closes the connection pool, waiting for checked-out
// connections to be released.
func (p *Postgres) GracefulShutdown() {
	p.logger.Info("closing postgres pool", nil)
	p.pool.Close()
}
