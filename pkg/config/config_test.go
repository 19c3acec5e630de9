package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// writeConfigFile marshals a config fragment to YAML in a temp dir and
// returns the file path.
func writeConfigFile(t *testing.T, doc map[string]any) string {
	t.Helper()

	data, err := yaml.Marshal(doc)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestGetDefaultConfig(t *testing.T) {
	cfg := GetDefaultConfig()

	require.Equal(t, "INFO", cfg.Logging.Level)
	require.Equal(t, "text", cfg.Logging.Format)
	require.Equal(t, ":8080", cfg.Server.ListenAddress)
	require.Equal(t, 30*time.Second, cfg.Server.ShutdownTimeout)
	require.Equal(t, 7*24*time.Hour, cfg.Auth.TokenTTL)
	require.Equal(t, "memory", cfg.Store.Type)
	require.Equal(t, "memory", cfg.Objects.Type)
	require.False(t, cfg.Store.UniqueNames)

	// No default secret: the default config must not validate as-is
	require.Error(t, Validate(cfg))
}

func TestLoad_FromFile(t *testing.T) {
	path := writeConfigFile(t, map[string]any{
		"logging": map[string]any{"level": "debug"},
		"server": map[string]any{
			"listen_address":  ":9090",
			"metrics_address": ":9091",
		},
		"auth": map[string]any{
			"jwt_secret": "super-secret-test-value",
			"token_ttl":  "24h",
		},
		"store": map[string]any{
			"type":         "badger",
			"unique_names": true,
			"badger":       map[string]any{"in_memory": true},
		},
	})

	cfg, err := Load(path)
	require.NoError(t, err)

	require.Equal(t, "DEBUG", cfg.Logging.Level, "level should be normalized to uppercase")
	require.Equal(t, ":9090", cfg.Server.ListenAddress)
	require.Equal(t, 24*time.Hour, cfg.Auth.TokenTTL)
	require.Equal(t, "badger", cfg.Store.Type)
	require.True(t, cfg.Store.UniqueNames)
	require.Equal(t, true, cfg.Store.Badger["in_memory"])

	// Unset fields fall back to defaults
	require.Equal(t, "text", cfg.Logging.Format)
	require.Equal(t, "memory", cfg.Objects.Type)
	require.Equal(t, 30*time.Second, cfg.Server.ShutdownTimeout)
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	t.Setenv("PIXVAULT_AUTH_JWT_SECRET", "environment-provided-secret")

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, "memory", cfg.Store.Type)
	require.Equal(t, "environment-provided-secret", cfg.Auth.JWTSecret)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfigFile(t, map[string]any{
		"auth":   map[string]any{"jwt_secret": "file-provided-secret"},
		"server": map[string]any{"listen_address": ":9090"},
	})

	t.Setenv("PIXVAULT_SERVER_LISTEN_ADDRESS", ":7070")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, ":7070", cfg.Server.ListenAddress)
	require.Equal(t, "file-provided-secret", cfg.Auth.JWTSecret)
}

func TestValidate_RejectsMissingSecret(t *testing.T) {
	cfg := GetDefaultConfig()
	cfg.Auth.JWTSecret = ""

	err := Validate(cfg)
	require.Error(t, err)
	require.Contains(t, err.Error(), "JWTSecret")
}

func TestValidate_RejectsShortSecret(t *testing.T) {
	cfg := GetDefaultConfig()
	cfg.Auth.JWTSecret = "short"

	require.Error(t, Validate(cfg))
}

func TestValidate_RejectsBadStoreType(t *testing.T) {
	cfg := GetDefaultConfig()
	cfg.Auth.JWTSecret = "super-secret-test-value"
	cfg.Store.Type = "postgres"

	require.Error(t, Validate(cfg))
}

func TestValidate_BadgerRequiresPath(t *testing.T) {
	cfg := GetDefaultConfig()
	cfg.Auth.JWTSecret = "super-secret-test-value"
	cfg.Store.Type = "badger"

	err := Validate(cfg)
	require.Error(t, err)
	require.Contains(t, err.Error(), "path is required")

	cfg.Store.Badger["in_memory"] = true
	require.NoError(t, Validate(cfg))
}

func TestValidate_S3RequiresBucketAndRegion(t *testing.T) {
	cfg := GetDefaultConfig()
	cfg.Auth.JWTSecret = "super-secret-test-value"
	cfg.Objects.Type = "s3"

	err := Validate(cfg)
	require.Error(t, err)
	require.Contains(t, err.Error(), "bucket")

	cfg.Objects.S3["bucket"] = "pixvault-images"
	err = Validate(cfg)
	require.Error(t, err)
	require.Contains(t, err.Error(), "region")

	cfg.Objects.S3["region"] = "eu-west-1"
	require.NoError(t, Validate(cfg))
}

func TestValidate_RejectsMetricsAddressCollision(t *testing.T) {
	cfg := GetDefaultConfig()
	cfg.Auth.JWTSecret = "super-secret-test-value"
	cfg.Server.MetricsAddress = cfg.Server.ListenAddress

	require.Error(t, Validate(cfg))
}
