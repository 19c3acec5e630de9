// Package s3 implements objectstore.ObjectStore on Amazon S3 or any
// S3-compatible service (MinIO, Localstack, Cubbit DS3, ...).
package s3

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/marmos91/pixvault/pkg/drive"
	"github.com/marmos91/pixvault/pkg/objectstore"
)

// S3ObjectStore stores image bytes as S3 objects.
//
// Key Design:
// Keys are "<prefix><uuid>/<name>": the UUID guarantees uniqueness while
// the trailing display name keeps the bucket human-inspectable. The
// ExternalRef returned to the metadata layer IS the object key, so deletion
// needs no reverse mapping.
//
// Thread Safety: the S3 client is safe for concurrent use; the store holds
// no other state.
type S3ObjectStore struct {
	client    *s3.Client
	bucket    string
	keyPrefix string
	publicURL string
}

// S3ObjectStoreConfig contains configuration for the S3 object store.
type S3ObjectStoreConfig struct {
	// Client is the configured S3 client
	Client *s3.Client

	// Bucket is the S3 bucket name (must already exist)
	Bucket string

	// KeyPrefix is an optional prefix for all object keys
	KeyPrefix string

	// PublicBaseURL is the base URL objects are served from (CDN or
	// bucket endpoint). Retrieval URLs are PublicBaseURL + "/" + key.
	PublicBaseURL string
}

// NewS3ObjectStore creates the store and verifies bucket access with a
// HeadBucket call.
func NewS3ObjectStore(ctx context.Context, cfg S3ObjectStoreConfig) (*S3ObjectStore, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if cfg.Client == nil {
		return nil, fmt.Errorf("s3 object store: client is required")
	}
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("s3 object store: bucket is required")
	}
	if cfg.PublicBaseURL == "" {
		return nil, fmt.Errorf("s3 object store: public_base_url is required")
	}

	_, err := cfg.Client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(cfg.Bucket),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to access bucket %q: %w", cfg.Bucket, err)
	}

	return &S3ObjectStore{
		client:    cfg.Client,
		bucket:    cfg.Bucket,
		keyPrefix: cfg.KeyPrefix,
		publicURL: strings.TrimRight(cfg.PublicBaseURL, "/"),
	}, nil
}

// Upload writes the object and returns its key as the external reference.
func (s *S3ObjectStore) Upload(ctx context.Context, name, contentType string, data []byte) (*objectstore.UploadResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	key := s.keyPrefix + uuid.New().String() + "/" + sanitizeName(name)

	input := &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   bytes.NewReader(data),
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	if _, err := s.client.PutObject(ctx, input); err != nil {
		return nil, &drive.StoreError{
			Code:    drive.ErrExternalService,
			Message: fmt.Sprintf("failed to upload object: %v", err),
			Path:    name,
		}
	}

	return &objectstore.UploadResult{
		ExternalRef: key,
		URL:         s.publicURL + "/" + key,
	}, nil
}

// Delete removes the object behind an external reference. S3 DeleteObject
// is idempotent, so a missing key is not an error.
func (s *S3ObjectStore) Delete(ctx context.Context, externalRef string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(externalRef),
	})
	if err != nil {
		return &drive.StoreError{
			Code:    drive.ErrExternalService,
			Message: fmt.Sprintf("failed to delete object: %v", err),
			Path:    externalRef,
		}
	}
	return nil
}

// sanitizeName strips path separators from a display name so it cannot
// escape its key segment.
func sanitizeName(name string) string {
	name = strings.ReplaceAll(name, "/", "_")
	if name == "" {
		name = "unnamed"
	}
	return name
}
