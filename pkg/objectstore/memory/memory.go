// Package memory provides an in-memory objectstore.ObjectStore for tests
// and development.
package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/marmos91/pixvault/pkg/drive"
	"github.com/marmos91/pixvault/pkg/objectstore"
)

// MemoryObjectStore keeps uploaded bytes in a map.
type MemoryObjectStore struct {
	mu      sync.RWMutex
	objects map[string][]byte

	// baseURL is prepended to object refs to form retrieval URLs
	baseURL string
}

// NewMemoryObjectStore creates an empty in-memory object store.
func NewMemoryObjectStore() *MemoryObjectStore {
	return &MemoryObjectStore{
		objects: make(map[string][]byte),
		baseURL: "memory://objects",
	}
}

// Upload stores the bytes under a fresh reference.
func (s *MemoryObjectStore) Upload(ctx context.Context, name, contentType string, data []byte) (*objectstore.UploadResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, &drive.StoreError{Code: drive.ErrInvalidArgument, Message: "object name is required"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ref := uuid.New().String() + "/" + name
	buf := make([]byte, len(data))
	copy(buf, data)
	s.objects[ref] = buf

	return &objectstore.UploadResult{
		ExternalRef: ref,
		URL:         s.baseURL + "/" + ref,
	}, nil
}

// Delete removes the object. Unknown references are ignored, matching the
// idempotent semantics of the S3 implementation.
func (s *MemoryObjectStore) Delete(ctx context.Context, externalRef string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, externalRef)
	return nil
}

// Get returns the stored bytes, for test assertions.
func (s *MemoryObjectStore) Get(externalRef string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.objects[externalRef]
	return data, ok
}

// Len returns the number of stored objects, for test assertions.
func (s *MemoryObjectStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.objects)
}
