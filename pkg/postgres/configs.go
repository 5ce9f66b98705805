package postgres

import "time"

type Config struct {
	Connection Connection `yaml:"connection"`
	Pool       Pool       `yaml:"pool"`

	// Queries slower than this are logged at WARN level (never failed).
	SlowQueryThreshold time.Duration `yaml:"slow_query_threshold"`
}

type Connection struct {
	Host     string `yaml:"host" env:"POSTGRES_HOST"`
	Port     string `yaml:"port" env:"POSTGRES_PORT"`
	User     string `yaml:"user" env:"POSTGRES_USER"`
	Password string `yaml:"password" env:"POSTGRES_PASSWORD"`
	DbName   string `yaml:"db_name" env:"POSTGRES_DB"`
	SSLMode  string `yaml:"ssl_mode" env:"POSTGRES_SSL_MODE"`
}

type Pool struct {
	// Maximum concurrent connections. Requests beyond the ceiling queue
	// for a free connection until their context deadline.
	MaxConns int32 `yaml:"max_conns"`

	// Idle connections are closed after this duration.
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time"`

	// Establishing a new connection fails after this duration.
	ConnectTimeout time.Duration `yaml:"connect_timeout"`
}

// Package defaults, applied in place of zero config values.
const (
	defaultMaxConns           = 20
	defaultMaxConnIdleTime    = 30 * time.Second
	defaultConnectTimeout     = 2 * time.Second
	defaultSlowQueryThreshold = 1 * time.Second
)
