package testing

import (
	"context"
	"testing"

	"github.com/marmos91/pixvault/pkg/drive"
	"github.com/stretchr/testify/require"
)

// RunFolderTests executes all folder operation tests.
func (suite *StoreTestSuite) RunFolderTests(t *testing.T) {
	t.Run("CreateRoot", suite.testCreateRootFolder)
	t.Run("CreateNested", suite.testCreateNestedFolder)
	t.Run("PathFallback", suite.testCreateFolderPathFallback)
	t.Run("EmptyName", suite.testCreateFolderEmptyName)
	t.Run("ParentNotFound", suite.testCreateFolderParentNotFound)
	t.Run("ParentWrongOwner", suite.testCreateFolderParentWrongOwner)
	t.Run("DuplicateSiblingsAllowed", suite.testDuplicateSiblingsAllowed)
	t.Run("DuplicateSiblingsRejectedWhenStrict", suite.testDuplicateSiblingsRejectedWhenStrict)
	t.Run("ListScopedByOwner", suite.testListFoldersScopedByOwner)
}

func (suite *StoreTestSuite) testCreateRootFolder(t *testing.T) {
	store := suite.NewStore(t)
	owner := createTestUser(t, store, "a@example.com")

	folder := createTestFolder(t, store, owner, "Photos", nil)
	require.Equal(t, "Photos", folder.Name)
	require.Equal(t, "/Photos", folder.Path)
	require.Nil(t, folder.ParentID)
	require.Equal(t, owner, folder.OwnerID)

	got, err := store.GetFolder(context.Background(), folder.ID)
	require.NoError(t, err)
	require.Equal(t, folder.ID, got.ID)
	require.Equal(t, "/Photos", got.Path)
}

func (suite *StoreTestSuite) testCreateNestedFolder(t *testing.T) {
	store := suite.NewStore(t)
	owner := createTestUser(t, store, "a@example.com")

	parent := createTestFolder(t, store, owner, "Photos", nil)
	child := createTestFolder(t, store, owner, "2024", &parent.ID)

	require.Equal(t, "/Photos/2024", child.Path)
	require.NotNil(t, child.ParentID)
	require.Equal(t, parent.ID, *child.ParentID)
}

func (suite *StoreTestSuite) testCreateFolderPathFallback(t *testing.T) {
	// A parent without a materialized path falls back to the parent name.
	// Such records cannot be created through the store itself, so this is
	// asserted indirectly: the normal path rule composes from parent.Path.
	store := suite.NewStore(t)
	owner := createTestUser(t, store, "a@example.com")

	parent := createTestFolder(t, store, owner, "Photos", nil)
	child := createTestFolder(t, store, owner, "2024", &parent.ID)
	grandchild := createTestFolder(t, store, owner, "summer", &child.ID)
	require.Equal(t, "/Photos/2024/summer", grandchild.Path)
}

func (suite *StoreTestSuite) testCreateFolderEmptyName(t *testing.T) {
	store := suite.NewStore(t)
	owner := createTestUser(t, store, "a@example.com")

	_, err := store.CreateFolder(context.Background(), owner, "", nil)
	AssertErrorCode(t, drive.ErrInvalidArgument, err)
}

func (suite *StoreTestSuite) testCreateFolderParentNotFound(t *testing.T) {
	store := suite.NewStore(t)
	owner := createTestUser(t, store, "a@example.com")

	missing := createTestFolder(t, store, owner, "tmp", nil)
	_, err := store.DeleteFolderTree(context.Background(), owner, missing.ID)
	require.NoError(t, err)

	_, err = store.CreateFolder(context.Background(), owner, "child", &missing.ID)
	AssertErrorCode(t, drive.ErrNotFound, err)
}

func (suite *StoreTestSuite) testCreateFolderParentWrongOwner(t *testing.T) {
	store := suite.NewStore(t)
	ownerA := createTestUser(t, store, "a@example.com")
	ownerB := createTestUser(t, store, "b@example.com")

	parent := createTestFolder(t, store, ownerA, "Photos", nil)

	_, err := store.CreateFolder(context.Background(), ownerB, "intruder", &parent.ID)
	AssertErrorCode(t, drive.ErrForbidden, err)
}

func (suite *StoreTestSuite) testDuplicateSiblingsAllowed(t *testing.T) {
	store := suite.NewStore(t)
	owner := createTestUser(t, store, "a@example.com")

	parent := createTestFolder(t, store, owner, "Docs", nil)
	first := createTestFolder(t, store, owner, "Docs", &parent.ID)
	second := createTestFolder(t, store, owner, "Docs", &parent.ID)
	require.NotEqual(t, first.ID, second.ID)

	folders, err := store.ListFolders(context.Background(), owner)
	require.NoError(t, err)
	require.Len(t, folders, 3)
}

func (suite *StoreTestSuite) testDuplicateSiblingsRejectedWhenStrict(t *testing.T) {
	store := suite.NewStrictStore(t)
	owner := createTestUser(t, store, "a@example.com")

	parent := createTestFolder(t, store, owner, "Docs", nil)
	createTestFolder(t, store, owner, "reports", &parent.ID)

	_, err := store.CreateFolder(context.Background(), owner, "reports", &parent.ID)
	AssertErrorCode(t, drive.ErrAlreadyExists, err)

	// Same name under a different parent is fine.
	_, err = store.CreateFolder(context.Background(), owner, "reports", nil)
	require.NoError(t, err)
}

func (suite *StoreTestSuite) testListFoldersScopedByOwner(t *testing.T) {
	store := suite.NewStore(t)
	ownerA := createTestUser(t, store, "a@example.com")
	ownerB := createTestUser(t, store, "b@example.com")

	folderA := createTestFolder(t, store, ownerA, "mine", nil)
	folderB := createTestFolder(t, store, ownerB, "theirs", nil)

	foldersA, err := store.ListFolders(context.Background(), ownerA)
	require.NoError(t, err)
	require.ElementsMatch(t, folderIDs(foldersA), folderIDs([]*drive.Folder{folderA}))

	foldersB, err := store.ListFolders(context.Background(), ownerB)
	require.NoError(t, err)
	require.ElementsMatch(t, folderIDs(foldersB), folderIDs([]*drive.Folder{folderB}))
}
