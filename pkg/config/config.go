package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config represents the complete pixvault configuration.
//
// This structure captures all configurable aspects of the pixvault server including:
//   - Logging configuration
//   - Server-wide settings (listen addresses, shutdown behavior)
//   - Authentication settings (token signing, password hashing)
//   - Drive store selection and configuration (store-specific)
//   - Object store selection and configuration (store-specific)
//
// Configuration sources (in order of precedence):
//  1. Environment variables (PIXVAULT_*)
//  2. Configuration file (YAML or TOML)
//  3. Default values (lowest priority)
//
// Store Configuration Pattern:
// Each store implementation defines its own configuration type and factory function.
// The Config struct contains type-specific sections (e.g., store.badger) and only
// the section matching the selected type is used.
type Config struct {
	// Logging controls log output behavior
	Logging LoggingConfig `mapstructure:"logging"`

	// Server contains server-wide settings
	Server ServerConfig `mapstructure:"server"`

	// Auth contains session token and password hashing settings
	Auth AuthConfig `mapstructure:"auth"`

	// Store specifies the drive store type and type-specific configuration
	Store StoreConfig `mapstructure:"store"`

	// Objects specifies the object store type and type-specific configuration
	Objects ObjectsConfig `mapstructure:"objects"`
}

// LoggingConfig controls logging behavior.
type LoggingConfig struct {
	// Level is the minimum log level to output
	// Valid values: DEBUG, INFO, WARN, ERROR (case-insensitive, normalized to uppercase)
	Level string `mapstructure:"level" validate:"required,oneof=DEBUG INFO WARN ERROR debug info warn error"`

	// Format specifies the log output format
	// Valid values: text, json
	Format string `mapstructure:"format" validate:"required,oneof=text json"`
}

// ServerConfig contains server-wide settings.
type ServerConfig struct {
	// ListenAddress is the address the HTTP API listens on (e.g., ":8080")
	ListenAddress string `mapstructure:"listen_address" validate:"required"`

	// MetricsAddress is the address the Prometheus /metrics endpoint listens on.
	// Empty disables the metrics listener.
	MetricsAddress string `mapstructure:"metrics_address"`

	// ShutdownTimeout is the maximum time to wait for graceful shutdown
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"required,gt=0"`
}

// AuthConfig contains session token and password hashing settings.
type AuthConfig struct {
	// JWTSecret signs session tokens. Required; there is no safe default.
	JWTSecret string `mapstructure:"jwt_secret" validate:"required,min=16"`

	// TokenTTL is the session token lifetime
	TokenTTL time.Duration `mapstructure:"token_ttl" validate:"gte=0"`

	// BcryptCost is the bcrypt work factor for password hashing
	BcryptCost int `mapstructure:"bcrypt_cost" validate:"gte=0,lte=31"`
}

// StoreConfig specifies drive store configuration.
//
// The Type field determines which store implementation is used.
// Only the corresponding type-specific configuration section is used.
type StoreConfig struct {
	// Type specifies which drive store implementation to use
	// Valid values: memory, badger
	Type string `mapstructure:"type" validate:"required,oneof=memory badger"`

	// UniqueNames rejects duplicate sibling names when true
	UniqueNames bool `mapstructure:"unique_names"`

	// Badger contains BadgerDB-specific configuration
	// Only used when Type = "badger"
	Badger map[string]any `mapstructure:"badger"`
}

// ObjectsConfig specifies object store configuration.
//
// The Type field determines which store implementation is used.
// Only the corresponding type-specific configuration section is used.
type ObjectsConfig struct {
	// Type specifies which object store implementation to use
	// Valid values: memory, s3
	Type string `mapstructure:"type" validate:"required,oneof=memory s3"`

	// S3 contains S3-specific configuration
	// Only used when Type = "s3"
	S3 map[string]any `mapstructure:"s3"`
}

// Load loads configuration from file, environment, and defaults.
//
// Configuration precedence (highest to lowest):
//  1. Environment variables (PIXVAULT_*)
//  2. Configuration file
//  3. Default values
//
// Parameters:
//   - configPath: Path to config file (empty string uses default location)
//
// Returns:
//   - *Config: Loaded and validated configuration
//   - error: Configuration loading or validation error
func Load(configPath string) (*Config, error) {
	v := viper.New()

	setupViper(v, configPath)

	if err := readConfigFile(v); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	ApplyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// setupViper configures viper with environment variables and config file settings.
func setupViper(v *viper.Viper, configPath string) {
	// Environment variables use PIXVAULT_ prefix and underscores
	// Example: PIXVAULT_LOGGING_LEVEL=DEBUG
	v.SetEnvPrefix("PIXVAULT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Unmarshal only sees keys viper knows about, so bind the scalar keys
	// explicitly to make env-only configuration work without a config file
	for _, key := range []string{
		"logging.level", "logging.format",
		"server.listen_address", "server.metrics_address", "server.shutdown_timeout",
		"auth.jwt_secret", "auth.token_ttl", "auth.bcrypt_cost",
		"store.type", "store.unique_names",
		"objects.type",
	} {
		_ = v.BindEnv(key)
	}

	if configPath != "" {
		// Use explicitly specified config file
		v.SetConfigFile(configPath)
	} else {
		// Use default location: $XDG_CONFIG_HOME/pixvault/config.{yaml,toml}
		v.AddConfigPath(getConfigDir())
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
}

// readConfigFile reads the configuration file if it exists.
func readConfigFile(v *viper.Viper) error {
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// Config file not found is acceptable - use defaults
			return nil
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}

	return nil
}

// getConfigDir returns the configuration directory path.
//
// Uses XDG_CONFIG_HOME if set, otherwise ~/.config, or falls back to current
// directory (.) if home directory cannot be determined.
func getConfigDir() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "pixvault")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}

	return filepath.Join(home, ".config", "pixvault")
}

// GetDefaultConfigPath returns the default configuration file path.
func GetDefaultConfigPath() string {
	return filepath.Join(getConfigDir(), "config.yaml")
}
