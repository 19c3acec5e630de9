package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCreateStore_Memory(t *testing.T) {
	store, err := CreateStore(t.Context(), &StoreConfig{Type: "memory"})
	require.NoError(t, err)
	require.NotNil(t, store)
	require.NoError(t, store.Close())
}

func TestCreateStore_BadgerInMemory(t *testing.T) {
	store, err := CreateStore(t.Context(), &StoreConfig{
		Type:   "badger",
		Badger: map[string]any{"in_memory": true},
	})
	require.NoError(t, err)
	require.NotNil(t, store)
	require.NoError(t, store.Close())
}

func TestCreateStore_BadgerRequiresPath(t *testing.T) {
	_, err := CreateStore(t.Context(), &StoreConfig{
		Type:   "badger",
		Badger: map[string]any{},
	})
	require.Error(t, err)
	require.Contains(t, err.Error(), "path is required")
}

func TestCreateStore_UnknownType(t *testing.T) {
	_, err := CreateStore(t.Context(), &StoreConfig{Type: "cassandra"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "unknown drive store type")
}

func TestCreateObjectStore_Memory(t *testing.T) {
	store, err := CreateObjectStore(t.Context(), &ObjectsConfig{Type: "memory"})
	require.NoError(t, err)
	require.NotNil(t, store)
}

func TestCreateObjectStore_S3RequiresBucket(t *testing.T) {
	_, err := CreateObjectStore(t.Context(), &ObjectsConfig{
		Type: "s3",
		S3:   map[string]any{"region": "eu-west-1"},
	})
	require.Error(t, err)
	require.Contains(t, err.Error(), "bucket is required")
}

func TestCreateObjectStore_UnknownType(t *testing.T) {
	_, err := CreateObjectStore(t.Context(), &ObjectsConfig{Type: "gcs"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "unknown object store type")
}
