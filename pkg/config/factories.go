package config

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/aws/retry"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/mitchellh/mapstructure"

	"github.com/marmos91/pixvault/internal/logger"
	"github.com/marmos91/pixvault/pkg/drive"
	driveBadger "github.com/marmos91/pixvault/pkg/drive/badger"
	driveMemory "github.com/marmos91/pixvault/pkg/drive/memory"
	"github.com/marmos91/pixvault/pkg/objectstore"
	objectsMemory "github.com/marmos91/pixvault/pkg/objectstore/memory"
	objectsS3 "github.com/marmos91/pixvault/pkg/objectstore/s3"
)

// CreateStore creates a drive store based on configuration.
//
// This factory function uses the Type field to determine which store
// implementation to create, then decodes the type-specific configuration from
// the corresponding map and passes it to the store's constructor.
//
// Supported types:
//   - "memory": Uses pkg/drive/memory (in-memory storage, ephemeral)
//   - "badger": Uses pkg/drive/badger (BadgerDB storage, persistent)
//
// Parameters:
//   - ctx: Context for initialization operations
//   - cfg: Drive store configuration
//
// Returns:
//   - drive.Store: Initialized drive store
//   - error: Configuration or initialization error
func CreateStore(ctx context.Context, cfg *StoreConfig) (drive.Store, error) {
	opts := drive.StoreOptions{UniqueNames: cfg.UniqueNames}

	switch cfg.Type {
	case "memory":
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return driveMemory.NewMemoryStore(opts), nil
	case "badger":
		return createBadgerStore(ctx, cfg.Badger, opts)
	default:
		return nil, fmt.Errorf("unknown drive store type: %q (supported: memory, badger)", cfg.Type)
	}
}

// createBadgerStore creates a BadgerDB-backed persistent drive store.
func createBadgerStore(ctx context.Context, options map[string]any, opts drive.StoreOptions) (drive.Store, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var storeCfg driveBadger.Config
	if err := mapstructure.Decode(options, &storeCfg); err != nil {
		return nil, fmt.Errorf("failed to decode badger store config: %w", err)
	}

	if storeCfg.Path == "" && !storeCfg.InMemory {
		return nil, fmt.Errorf("badger store: path is required unless in_memory is true")
	}

	store, err := driveBadger.NewBadgerStore(storeCfg, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to create badger store: %w", err)
	}

	return store, nil
}

// CreateObjectStore creates an object store based on configuration.
//
// Supported types:
//   - "memory": Uses pkg/objectstore/memory (in-memory storage, ephemeral)
//   - "s3": Uses pkg/objectstore/s3 (Amazon S3 or compatible storage)
//
// Parameters:
//   - ctx: Context for initialization operations
//   - cfg: Object store configuration
//
// Returns:
//   - objectstore.ObjectStore: Initialized object store
//   - error: Configuration or initialization error
func CreateObjectStore(ctx context.Context, cfg *ObjectsConfig) (objectstore.ObjectStore, error) {
	switch cfg.Type {
	case "memory":
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return objectsMemory.NewMemoryObjectStore(), nil
	case "s3":
		return createS3ObjectStore(ctx, cfg.S3)
	default:
		return nil, fmt.Errorf("unknown object store type: %q (supported: memory, s3)", cfg.Type)
	}
}

// createS3ObjectStore creates an S3-based object store.
func createS3ObjectStore(ctx context.Context, options map[string]any) (objectstore.ObjectStore, error) {
	// Define the configuration struct for the S3 object store
	type S3Options struct {
		Region          string `mapstructure:"region"`
		Bucket          string `mapstructure:"bucket"`
		KeyPrefix       string `mapstructure:"key_prefix"`
		PublicBaseURL   string `mapstructure:"public_base_url"`
		Endpoint        string `mapstructure:"endpoint"`
		AccessKeyID     string `mapstructure:"access_key_id"`
		SecretAccessKey string `mapstructure:"secret_access_key"`
		MaxRetries      int    `mapstructure:"max_retries"`
	}

	var storeCfg S3Options
	if err := mapstructure.Decode(options, &storeCfg); err != nil {
		return nil, fmt.Errorf("failed to decode S3 object store config: %w", err)
	}

	if storeCfg.Bucket == "" {
		return nil, fmt.Errorf("S3 object store: bucket is required")
	}
	if storeCfg.Region == "" {
		return nil, fmt.Errorf("S3 object store: region is required")
	}

	// ========================================================================
	// Step 1: Build AWS Config
	// ========================================================================

	var configOptions []func(*awsConfig.LoadOptions) error

	configOptions = append(configOptions, awsConfig.WithRegion(storeCfg.Region))

	// Set custom endpoint if provided (for MinIO, Localstack, etc.)
	if storeCfg.Endpoint != "" {
		//nolint:staticcheck // TODO: migrate to BaseEndpoint when AWS SDK v2 stabilizes the new API
		customResolver := aws.EndpointResolverWithOptionsFunc(
			func(service, region string, options ...interface{}) (aws.Endpoint, error) {
				//nolint:staticcheck // TODO: migrate to BaseEndpoint when AWS SDK v2 stabilizes the new API
				return aws.Endpoint{
					URL:               storeCfg.Endpoint,
					HostnameImmutable: true,
					Source:            aws.EndpointSourceCustom,
				}, nil
			},
		)
		//nolint:staticcheck // TODO: migrate to BaseEndpoint when AWS SDK v2 stabilizes the new API
		configOptions = append(configOptions, awsConfig.WithEndpointResolverWithOptions(customResolver))
	}

	// Set credentials if provided, otherwise use default credential chain
	if storeCfg.AccessKeyID != "" && storeCfg.SecretAccessKey != "" {
		credProvider := credentials.NewStaticCredentialsProvider(
			storeCfg.AccessKeyID,
			storeCfg.SecretAccessKey,
			"", // session token (empty for static credentials)
		)
		configOptions = append(configOptions, awsConfig.WithCredentialsProvider(credProvider))
	}

	// Configure retries for better resilience against temporary S3 failures
	maxRetries := storeCfg.MaxRetries
	if maxRetries == 0 {
		maxRetries = 10
	}
	configOptions = append(configOptions, awsConfig.WithRetryer(func() aws.Retryer {
		return retry.NewStandard(func(o *retry.StandardOptions) {
			o.MaxAttempts = maxRetries
		})
	}))

	awsCfg, err := awsConfig.LoadDefaultConfig(ctx, configOptions...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	// ========================================================================
	// Step 2: Create S3 Client
	// ========================================================================

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		// Force path-style addressing for compatibility with MinIO/Localstack
		if storeCfg.Endpoint != "" {
			o.UsePathStyle = true
		}
	})

	// ========================================================================
	// Step 3: Create S3 Object Store
	// ========================================================================

	// Default the public URL to the virtual-hosted bucket endpoint
	publicURL := storeCfg.PublicBaseURL
	if publicURL == "" {
		publicURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", storeCfg.Bucket, storeCfg.Region)
	}

	store, err := objectsS3.NewS3ObjectStore(ctx, objectsS3.S3ObjectStoreConfig{
		Client:        client,
		Bucket:        storeCfg.Bucket,
		KeyPrefix:     storeCfg.KeyPrefix,
		PublicBaseURL: publicURL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create S3 object store: %w", err)
	}

	logger.Info("S3 object store initialized: bucket=%s, region=%s, prefix=%s",
		storeCfg.Bucket, storeCfg.Region, storeCfg.KeyPrefix)

	return store, nil
}
