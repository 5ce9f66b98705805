// Package config loads the service configuration from environment-named
// YAML files with ${VAR} substitution and environment overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/stocktide/curator/pkg/logger"
	"github.com/stocktide/curator/pkg/metrics"
	"github.com/stocktide/curator/pkg/postgres"
	"github.com/stocktide/curator/pkg/qdrant"
	"github.com/stocktide/curator/pkg/retrieval"
	"github.com/stocktide/curator/pkg/tracer"
)

// Config holds the curator API configuration.
type Config struct {
	HTTP      HTTPConfig       `yaml:"http"`
	Logger    logger.Config    `yaml:"logger"`
	Postgres  postgres.Config  `yaml:"postgres"`
	Qdrant    qdrant.Config    `yaml:"qdrant"`
	Vector    VectorConfig     `yaml:"vector"`
	Auth      AuthConfig       `yaml:"auth"`
	Retrieval retrieval.Config `yaml:"retrieval"`
	Metrics   metrics.Config   `yaml:"metrics"`
	Tracer    tracer.Config    `yaml:"tracer"`
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port" env:"HTTP_PORT"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// VectorConfig holds embedding collection settings.
type VectorConfig struct {
	// Dimensionality every collection is created with. Changing it for
	// an existing deployment requires a reindex; startup fails on a
	// mismatch rather than recreating collections.
	Dimension uint64 `yaml:"dimension" env:"VECTOR_DIMENSION"`

	// Collections bootstrapped at startup.
	Collections []string `yaml:"collections"`
}

// AuthConfig holds API authentication settings.
type AuthConfig struct {
	// Secret for signing and verifying JWTs (HS256).
	JWTSecret string `yaml:"jwt_secret" env:"CURATOR_JWT_SECRET"`

	// Issued tokens expire after this many hours.
	TokenTTLHours int `yaml:"token_ttl_hours"`

	// Bootstrap admin credentials checked by the login endpoint.
	AdminEmail    string `yaml:"admin_email" env:"ADMIN_EMAIL"`
	AdminPassword string `yaml:"admin_password" env:"ADMIN_PASSWORD"`
}

// Load reads configuration from a YAML file by environment name (local,
// dev, prod), substitutes ${VAR} references, applies environment
// overrides for the fields that carry env tags, then fills defaults and
// validates.
func Load(env string) (Config, error) {
	configPath := findConfigPath(env)

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()
	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration or panics.
func MustLoad(env string) Config {
	cfg, err := Load(env)
	if err != nil {
		panic(err)
	}
	return cfg
}

// GetEnv returns the current environment from the ENV variable,
// defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.Port <= 0 {
		c.HTTP.Port = 8080
	}
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 10
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.Logger.Level == "" {
		c.Logger.Level = logger.Info
	}
	if c.Qdrant.Endpoint == "" {
		c.Qdrant.Endpoint = "localhost"
	}
	if c.Qdrant.Port == 0 {
		c.Qdrant.Port = 6334
	}
	if c.Vector.Dimension == 0 {
		c.Vector.Dimension = 1024
	}
	if len(c.Vector.Collections) == 0 {
		c.Vector.Collections = []string{"tweets", "summaries", "glossary"}
	}
	if c.Auth.TokenTTLHours <= 0 {
		c.Auth.TokenTTLHours = 168 // 7 days
	}
	if c.Retrieval.MaxContextLength <= 0 {
		c.Retrieval.MaxContextLength = retrieval.DefaultMaxContextLength
	}
	if c.Retrieval.DefaultLimit <= 0 {
		c.Retrieval.DefaultLimit = 5
	}
	if c.Metrics.ServiceName == "" {
		c.Metrics.ServiceName = "curator-api"
	}
	if c.Metrics.Namespace == "" {
		c.Metrics.Namespace = "curator"
	}
	if c.Tracer.ServiceName == "" {
		c.Tracer.ServiceName = "curator-api"
	}
	if c.Tracer.AppEnv == "" {
		c.Tracer.AppEnv = GetEnv()
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	if c.Postgres.Connection.Host == "" {
		return fmt.Errorf("postgres.connection.host is required")
	}
	if c.Postgres.Connection.DbName == "" {
		return fmt.Errorf("postgres.connection.db_name is required")
	}
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("auth.jwt_secret is required")
	}
	return nil
}

// applyEnvOverrides lets deployment environments override the sensitive
// and most commonly changed settings without editing YAML.
func (c *Config) applyEnvOverrides() {
	setString(&c.Postgres.Connection.Host, "POSTGRES_HOST")
	setString(&c.Postgres.Connection.Port, "POSTGRES_PORT")
	setString(&c.Postgres.Connection.User, "POSTGRES_USER")
	setString(&c.Postgres.Connection.Password, "POSTGRES_PASSWORD")
	setString(&c.Postgres.Connection.DbName, "POSTGRES_DB")
	setString(&c.Postgres.Connection.SSLMode, "POSTGRES_SSL_MODE")

	setString(&c.Qdrant.Endpoint, "QDRANT_ENDPOINT")
	setInt(&c.Qdrant.Port, "QDRANT_PORT")
	setString(&c.Qdrant.ApiKey, "QDRANT_API_KEY")

	setString(&c.Auth.JWTSecret, "CURATOR_JWT_SECRET")
	setString(&c.Auth.AdminEmail, "ADMIN_EMAIL")
	setString(&c.Auth.AdminPassword, "ADMIN_PASSWORD")

	setString(&c.Logger.Level, "CURATOR_LOG_LEVEL")
	setInt(&c.HTTP.Port, "HTTP_PORT")
	setUint64(&c.Vector.Dimension, "VECTOR_DIMENSION")
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func setUint64(dst *uint64, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseUint(v, 10, 64); err == nil {
			*dst = n
		}
	}
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // pkg/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment
// variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
