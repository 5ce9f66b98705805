package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testYAML = `
http:
  port: 9000
postgres:
  connection:
    host: db.internal
    port: "5432"
    user: curator
    password: ${TEST_PG_PASSWORD:-fallback}
    db_name: curator
qdrant:
  endpoint: vectors.internal
auth:
  jwt_secret: test-secret
vector:
  dimension: 768
`

func writeTestConfig(t *testing.T, content string) {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "config"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config", "test.yaml"), []byte(content), 0o644))
	t.Chdir(dir)
}

func TestLoad(t *testing.T) {
	writeTestConfig(t, testYAML)

	cfg, err := Load("test")
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.HTTP.Port)
	assert.Equal(t, "db.internal", cfg.Postgres.Connection.Host)
	assert.Equal(t, "vectors.internal", cfg.Qdrant.Endpoint)
	assert.Equal(t, uint64(768), cfg.Vector.Dimension)
}

func TestLoad_EnvSubstitutionWithDefault(t *testing.T) {
	writeTestConfig(t, testYAML)

	cfg, err := Load("test")
	require.NoError(t, err)
	assert.Equal(t, "fallback", cfg.Postgres.Connection.Password)

	t.Setenv("TEST_PG_PASSWORD", "from-env")
	cfg, err = Load("test")
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Postgres.Connection.Password)
}

func TestLoad_EnvOverridesBeatYAML(t *testing.T) {
	writeTestConfig(t, testYAML)
	t.Setenv("POSTGRES_HOST", "override.internal")
	t.Setenv("CURATOR_JWT_SECRET", "override-secret")

	cfg, err := Load("test")
	require.NoError(t, err)

	assert.Equal(t, "override.internal", cfg.Postgres.Connection.Host)
	assert.Equal(t, "override-secret", cfg.Auth.JWTSecret)
}

func TestLoad_Defaults(t *testing.T) {
	writeTestConfig(t, testYAML)

	cfg, err := Load("test")
	require.NoError(t, err)

	assert.Equal(t, []string{"tweets", "summaries", "glossary"}, cfg.Vector.Collections)
	assert.Equal(t, 168, cfg.Auth.TokenTTLHours)
	assert.Equal(t, 2000, cfg.Retrieval.MaxContextLength)
	assert.Equal(t, "curator-api", cfg.Metrics.ServiceName)
	assert.Equal(t, 10, cfg.HTTP.ShutdownSec)
}

func TestLoad_MissingJWTSecretFails(t *testing.T) {
	writeTestConfig(t, `
http:
  port: 9000
postgres:
  connection:
    host: db.internal
    db_name: curator
`)

	_, err := Load("test")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "jwt_secret")
}

func TestLoad_MissingFileFails(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := Load("does-not-exist")
	require.Error(t, err)
}
