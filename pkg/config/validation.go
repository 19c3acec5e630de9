package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// validate is the singleton validator instance
var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Validate validates the configuration using struct tags and custom rules.
//
// This function uses go-playground/validator for declarative validation
// via struct tags, with additional custom validation for complex rules
// that cannot be expressed in tags.
//
// Note: Log level normalization is handled in ApplyDefaults, not here.
// Validation accepts both uppercase and lowercase log levels.
//
// Returns an error describing validation failures.
func Validate(cfg *Config) error {
	// Run struct tag validation
	if err := validate.Struct(cfg); err != nil {
		return formatValidationError(err)
	}

	// Custom validation rules that can't be expressed in tags
	if err := validateCustomRules(cfg); err != nil {
		return err
	}

	return nil
}

// validateCustomRules performs custom validation beyond struct tags.
func validateCustomRules(cfg *Config) error {
	// The badger store needs either a path or explicit in-memory mode
	if cfg.Store.Type == "badger" {
		path, _ := cfg.Store.Badger["path"].(string)
		inMemory, _ := cfg.Store.Badger["in_memory"].(bool)
		if path == "" && !inMemory {
			return fmt.Errorf("store.badger: path is required unless in_memory is true")
		}
	}

	// The S3 object store needs a bucket and region up front
	if cfg.Objects.Type == "s3" {
		if bucket, _ := cfg.Objects.S3["bucket"].(string); bucket == "" {
			return fmt.Errorf("objects.s3: bucket is required")
		}
		if region, _ := cfg.Objects.S3["region"].(string); region == "" {
			return fmt.Errorf("objects.s3: region is required")
		}
	}

	// The metrics listener must not collide with the API listener
	if cfg.Server.MetricsAddress != "" && cfg.Server.MetricsAddress == cfg.Server.ListenAddress {
		return fmt.Errorf("server: metrics_address must differ from listen_address")
	}

	return nil
}

// formatValidationError converts validator errors into user-friendly messages.
func formatValidationError(err error) error {
	if validationErrs, ok := err.(validator.ValidationErrors); ok {
		// Return the first validation error with context
		if len(validationErrs) > 0 {
			e := validationErrs[0]
			return fmt.Errorf("%s: validation failed on '%s' tag (value: %v)",
				e.Namespace(), e.Tag(), e.Value())
		}
	}
	return err
}
