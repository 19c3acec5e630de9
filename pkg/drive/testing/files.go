package testing

import (
	"context"
	"testing"

	"github.com/marmos91/pixvault/pkg/drive"
	"github.com/stretchr/testify/require"
)

// RunFileTests executes all file operation tests.
func (suite *StoreTestSuite) RunFileTests(t *testing.T) {
	t.Run("CreateRootLevel", suite.testCreateRootFile)
	t.Run("CreateInFolder", suite.testCreateFileInFolder)
	t.Run("MissingFields", suite.testCreateFileMissingFields)
	t.Run("FolderNotFound", suite.testCreateFileFolderNotFound)
	t.Run("FolderWrongOwner", suite.testCreateFileFolderWrongOwner)
	t.Run("Delete", suite.testDeleteFile)
	t.Run("DeleteNotFound", suite.testDeleteFileNotFound)
	t.Run("DeleteWrongOwner", suite.testDeleteFileWrongOwner)
	t.Run("ListScopedByOwner", suite.testListFilesScopedByOwner)
}

func (suite *StoreTestSuite) testCreateRootFile(t *testing.T) {
	store := suite.NewStore(t)
	owner := createTestUser(t, store, "a@example.com")

	file := createTestFile(t, store, owner, "cat.png", nil)
	require.Equal(t, "cat.png", file.Name)
	require.Nil(t, file.FolderID)
	require.Equal(t, owner, file.OwnerID)
	require.NotEmpty(t, file.ExternalRef)
	require.NotEmpty(t, file.URL)

	got, err := store.GetFile(context.Background(), file.ID)
	require.NoError(t, err)
	require.Equal(t, file.ID, got.ID)
}

func (suite *StoreTestSuite) testCreateFileInFolder(t *testing.T) {
	store := suite.NewStore(t)
	owner := createTestUser(t, store, "a@example.com")

	folder := createTestFolder(t, store, owner, "Photos", nil)
	file := createTestFile(t, store, owner, "cat.png", &folder.ID)

	require.NotNil(t, file.FolderID)
	require.Equal(t, folder.ID, *file.FolderID)
}

func (suite *StoreTestSuite) testCreateFileMissingFields(t *testing.T) {
	store := suite.NewStore(t)
	owner := createTestUser(t, store, "a@example.com")
	ctx := context.Background()

	_, err := store.CreateFile(ctx, owner, "", "ref", "https://x/y", nil)
	AssertErrorCode(t, drive.ErrInvalidArgument, err)

	_, err = store.CreateFile(ctx, owner, "cat.png", "", "https://x/y", nil)
	AssertErrorCode(t, drive.ErrInvalidArgument, err)

	_, err = store.CreateFile(ctx, owner, "cat.png", "ref", "", nil)
	AssertErrorCode(t, drive.ErrInvalidArgument, err)
}

func (suite *StoreTestSuite) testCreateFileFolderNotFound(t *testing.T) {
	store := suite.NewStore(t)
	owner := createTestUser(t, store, "a@example.com")

	gone := createTestFolder(t, store, owner, "tmp", nil)
	_, err := store.DeleteFolderTree(context.Background(), owner, gone.ID)
	require.NoError(t, err)

	_, err = store.CreateFile(context.Background(), owner, "cat.png", "ref", "https://x/y", &gone.ID)
	AssertErrorCode(t, drive.ErrNotFound, err)
}

func (suite *StoreTestSuite) testCreateFileFolderWrongOwner(t *testing.T) {
	store := suite.NewStore(t)
	ownerA := createTestUser(t, store, "a@example.com")
	ownerB := createTestUser(t, store, "b@example.com")

	folder := createTestFolder(t, store, ownerA, "Photos", nil)

	_, err := store.CreateFile(context.Background(), ownerB, "cat.png", "ref", "https://x/y", &folder.ID)
	AssertErrorCode(t, drive.ErrForbidden, err)
}

func (suite *StoreTestSuite) testDeleteFile(t *testing.T) {
	store := suite.NewStore(t)
	owner := createTestUser(t, store, "a@example.com")

	file := createTestFile(t, store, owner, "cat.png", nil)

	removed, err := store.DeleteFile(context.Background(), owner, file.ID)
	require.NoError(t, err)
	require.Equal(t, file.ExternalRef, removed.ExternalRef)

	_, err = store.GetFile(context.Background(), file.ID)
	AssertErrorCode(t, drive.ErrNotFound, err)
}

func (suite *StoreTestSuite) testDeleteFileNotFound(t *testing.T) {
	store := suite.NewStore(t)
	owner := createTestUser(t, store, "a@example.com")

	file := createTestFile(t, store, owner, "cat.png", nil)
	_, err := store.DeleteFile(context.Background(), owner, file.ID)
	require.NoError(t, err)

	_, err = store.DeleteFile(context.Background(), owner, file.ID)
	AssertErrorCode(t, drive.ErrNotFound, err)
}

func (suite *StoreTestSuite) testDeleteFileWrongOwner(t *testing.T) {
	store := suite.NewStore(t)
	ownerA := createTestUser(t, store, "a@example.com")
	ownerB := createTestUser(t, store, "b@example.com")

	file := createTestFile(t, store, ownerA, "cat.png", nil)

	// Deleting A's file as B fails and the record survives.
	_, err := store.DeleteFile(context.Background(), ownerB, file.ID)
	AssertErrorCode(t, drive.ErrForbidden, err)

	got, err := store.GetFile(context.Background(), file.ID)
	require.NoError(t, err)
	require.Equal(t, file.ID, got.ID)
}

func (suite *StoreTestSuite) testListFilesScopedByOwner(t *testing.T) {
	store := suite.NewStore(t)
	ownerA := createTestUser(t, store, "a@example.com")
	ownerB := createTestUser(t, store, "b@example.com")

	fileA := createTestFile(t, store, ownerA, "mine.png", nil)
	createTestFile(t, store, ownerB, "theirs.png", nil)

	filesA, err := store.ListFiles(context.Background(), ownerA)
	require.NoError(t, err)
	require.ElementsMatch(t, fileIDs(filesA), fileIDs([]*drive.File{fileA}))
}
