// Package objectstore abstracts the external service that holds uploaded
// image bytes.
//
// The drive only stores an opaque external reference and a retrieval URL;
// the bytes themselves live behind this interface. Record creation happens
// AFTER a successful upload, and a failed record creation does not roll the
// upload back — reconciling orphaned objects is the caller's concern.
package objectstore

import "context"

// UploadResult identifies an object written to external storage.
type UploadResult struct {
	// ExternalRef is the opaque identifier used for later deletion
	ExternalRef string

	// URL is the public retrieval URL
	URL string
}

// ObjectStore is the external object storage collaborator.
//
// Implementations must be safe for concurrent use.
type ObjectStore interface {
	// Upload writes the object bytes and returns its reference and URL.
	// name is the display name used to derive a readable key; contentType
	// may be empty.
	Upload(ctx context.Context, name, contentType string, data []byte) (*UploadResult, error)

	// Delete releases the object behind an external reference. Deleting a
	// reference that no longer exists is not an error.
	Delete(ctx context.Context, externalRef string) error
}
