package testing

import (
	"context"
	"testing"

	"github.com/marmos91/pixvault/pkg/drive"
	"github.com/stretchr/testify/require"
)

// RunCascadeTests executes all recursive folder deletion tests.
func (suite *StoreTestSuite) RunCascadeTests(t *testing.T) {
	t.Run("SingleEmptyFolder", suite.testCascadeSingleEmptyFolder)
	t.Run("DeepSubtree", suite.testCascadeDeepSubtree)
	t.Run("SiblingSubtreeUntouched", suite.testCascadeSiblingUntouched)
	t.Run("RootLevelFilesUntouched", suite.testCascadeRootFilesUntouched)
	t.Run("NotFound", suite.testCascadeNotFound)
	t.Run("WrongOwner", suite.testCascadeWrongOwner)
	t.Run("ReturnsExternalRefs", suite.testCascadeReturnsExternalRefs)
}

func (suite *StoreTestSuite) testCascadeSingleEmptyFolder(t *testing.T) {
	store := suite.NewStore(t)
	owner := createTestUser(t, store, "a@example.com")

	folder := createTestFolder(t, store, owner, "Photos", nil)

	result, err := store.DeleteFolderTree(context.Background(), owner, folder.ID)
	require.NoError(t, err)
	require.Equal(t, 1, result.FoldersRemoved)
	require.Equal(t, 0, result.FilesRemoved)

	_, err = store.GetFolder(context.Background(), folder.ID)
	AssertErrorCode(t, drive.ErrNotFound, err)
}

func (suite *StoreTestSuite) testCascadeDeepSubtree(t *testing.T) {
	store := suite.NewStore(t)
	owner := createTestUser(t, store, "a@example.com")
	ctx := context.Background()

	// Photos/2024/summer with files at every level plus one at the root.
	photos := createTestFolder(t, store, owner, "Photos", nil)
	year := createTestFolder(t, store, owner, "2024", &photos.ID)
	summer := createTestFolder(t, store, owner, "summer", &year.ID)
	createTestFile(t, store, owner, "cover.png", &photos.ID)
	createTestFile(t, store, owner, "cat.png", &year.ID)
	createTestFile(t, store, owner, "beach.png", &summer.ID)

	result, err := store.DeleteFolderTree(ctx, owner, photos.ID)
	require.NoError(t, err)
	require.Equal(t, 3, result.FoldersRemoved)
	require.Equal(t, 3, result.FilesRemoved)

	// No folder or file record with the deleted root as an ancestor remains.
	folders, err := store.ListFolders(ctx, owner)
	require.NoError(t, err)
	require.Empty(t, folders)

	files, err := store.ListFiles(ctx, owner)
	require.NoError(t, err)
	require.Empty(t, files)
}

func (suite *StoreTestSuite) testCascadeSiblingUntouched(t *testing.T) {
	store := suite.NewStore(t)
	owner := createTestUser(t, store, "a@example.com")
	ctx := context.Background()

	doomed := createTestFolder(t, store, owner, "doomed", nil)
	doomedChild := createTestFolder(t, store, owner, "inner", &doomed.ID)
	createTestFile(t, store, owner, "gone.png", &doomedChild.ID)

	kept := createTestFolder(t, store, owner, "kept", nil)
	keptFile := createTestFile(t, store, owner, "stays.png", &kept.ID)

	_, err := store.DeleteFolderTree(ctx, owner, doomed.ID)
	require.NoError(t, err)

	folders, err := store.ListFolders(ctx, owner)
	require.NoError(t, err)
	require.ElementsMatch(t, folderIDs(folders), folderIDs([]*drive.Folder{kept}))

	files, err := store.ListFiles(ctx, owner)
	require.NoError(t, err)
	require.ElementsMatch(t, fileIDs(files), fileIDs([]*drive.File{keptFile}))
}

func (suite *StoreTestSuite) testCascadeRootFilesUntouched(t *testing.T) {
	store := suite.NewStore(t)
	owner := createTestUser(t, store, "a@example.com")
	ctx := context.Background()

	folder := createTestFolder(t, store, owner, "Photos", nil)
	rootFile := createTestFile(t, store, owner, "loose.png", nil)

	_, err := store.DeleteFolderTree(ctx, owner, folder.ID)
	require.NoError(t, err)

	got, err := store.GetFile(ctx, rootFile.ID)
	require.NoError(t, err)
	require.Equal(t, rootFile.ID, got.ID)
}

func (suite *StoreTestSuite) testCascadeNotFound(t *testing.T) {
	store := suite.NewStore(t)
	owner := createTestUser(t, store, "a@example.com")

	folder := createTestFolder(t, store, owner, "tmp", nil)
	_, err := store.DeleteFolderTree(context.Background(), owner, folder.ID)
	require.NoError(t, err)

	_, err = store.DeleteFolderTree(context.Background(), owner, folder.ID)
	AssertErrorCode(t, drive.ErrNotFound, err)
}

func (suite *StoreTestSuite) testCascadeWrongOwner(t *testing.T) {
	store := suite.NewStore(t)
	ownerA := createTestUser(t, store, "a@example.com")
	ownerB := createTestUser(t, store, "b@example.com")
	ctx := context.Background()

	folder := createTestFolder(t, store, ownerA, "Photos", nil)
	file := createTestFile(t, store, ownerA, "cat.png", &folder.ID)

	_, err := store.DeleteFolderTree(ctx, ownerB, folder.ID)
	AssertErrorCode(t, drive.ErrForbidden, err)

	// Nothing was removed.
	_, err = store.GetFolder(ctx, folder.ID)
	require.NoError(t, err)
	_, err = store.GetFile(ctx, file.ID)
	require.NoError(t, err)
}

func (suite *StoreTestSuite) testCascadeReturnsExternalRefs(t *testing.T) {
	store := suite.NewStore(t)
	owner := createTestUser(t, store, "a@example.com")

	folder := createTestFolder(t, store, owner, "Photos", nil)
	a := createTestFile(t, store, owner, "a.png", &folder.ID)
	b := createTestFile(t, store, owner, "b.png", &folder.ID)

	result, err := store.DeleteFolderTree(context.Background(), owner, folder.ID)
	require.NoError(t, err)
	require.ElementsMatch(t, []string{a.ExternalRef, b.ExternalRef}, result.ExternalRefs)
}
