package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zoobr/csxhasura/clients/hasura"
)

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("HASURA_GRAPHQL_ENDPOINT", "http://hasura:8080/v1/graphql")
	t.Setenv("HASURA_GRAPHQL_ADMIN_SECRET", "s3cr3t")
	t.Setenv("HTTP_ADDR", ":9000")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "http://hasura:8080/v1/graphql", cfg.Hasura.GraphQLEndpoint)
	assert.Equal(t, "s3cr3t", cfg.Hasura.AdminSecret)
	assert.Equal(t, ":9000", cfg.HTTPAddr)
	assert.Equal(t, "dev", cfg.LoggerMode)
	assert.Equal(t, "hasura_gateway", cfg.Metrics.Subsystem)
	assert.Empty(t, cfg.Tracer.JaegerURL)
}

func TestLoadEnvFile(t *testing.T) {
	t.Setenv("HASURA_GRAPHQL_ENDPOINT", "")
	t.Setenv("LOGGER_MODE", "prod")
	// variables loaded from file must be cleaned up after test
	t.Setenv("HASURA_GRAPHQL_ADMIN_SECRET", "")
	os.Unsetenv("HASURA_GRAPHQL_ENDPOINT")
	os.Unsetenv("HASURA_GRAPHQL_ADMIN_SECRET")

	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("HASURA_GRAPHQL_ENDPOINT=http://from-file/v1/graphql\nHASURA_GRAPHQL_ADMIN_SECRET=file-secret\nLOGGER_MODE=testing\n"), 0o600))

	cfg, err := Load(envFile)
	require.NoError(t, err)
	assert.Equal(t, "http://from-file/v1/graphql", cfg.Hasura.GraphQLEndpoint)
	assert.Equal(t, "file-secret", cfg.Hasura.AdminSecret)
	assert.Equal(t, "prod", cfg.LoggerMode) // environment wins
}

func TestLoadMissingEndpoint(t *testing.T) {
	t.Setenv("HASURA_GRAPHQL_ENDPOINT", "")

	_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.Error(t, err)
	assert.Equal(t, hasura.ErrMissingEndpoint, errors.Cause(err))
}
