package testing

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/marmos91/pixvault/pkg/drive"
	"github.com/stretchr/testify/require"
)

// AssertErrorCode fails the test unless err is a StoreError with the given
// code.
func AssertErrorCode(t *testing.T, want drive.ErrorCode, err error) {
	t.Helper()
	require.Error(t, err)
	se, ok := err.(*drive.StoreError)
	require.True(t, ok, "expected *drive.StoreError, got %T: %v", err, err)
	require.Equal(t, want, se.Code, "unexpected error code: %v", err)
}

// createTestUser registers an account and returns its id.
func createTestUser(t *testing.T, store drive.Store, email string) uuid.UUID {
	t.Helper()
	user, err := store.CreateUser(context.Background(), "Test User", email, "$2a$10$hash")
	require.NoError(t, err)
	return user.ID
}

// createTestFolder creates a folder and returns it.
func createTestFolder(t *testing.T, store drive.Store, owner uuid.UUID, name string, parentID *uuid.UUID) *drive.Folder {
	t.Helper()
	folder, err := store.CreateFolder(context.Background(), owner, name, parentID)
	require.NoError(t, err)
	return folder
}

// createTestFile creates a file record and returns it.
func createTestFile(t *testing.T, store drive.Store, owner uuid.UUID, name string, folderID *uuid.UUID) *drive.File {
	t.Helper()
	file, err := store.CreateFile(context.Background(), owner, name, "ext-"+name, "https://cdn.example.com/"+name, folderID)
	require.NoError(t, err)
	return file
}

// folderIDs extracts the id set from a folder list.
func folderIDs(folders []*drive.Folder) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(folders))
	for _, f := range folders {
		ids = append(ids, f.ID)
	}
	return ids
}

// fileIDs extracts the id set from a file list.
func fileIDs(files []*drive.File) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(files))
	for _, f := range files {
		ids = append(ids, f.ID)
	}
	return ids
}
