package badger

import (
	"testing"

	"github.com/marmos91/pixvault/pkg/drive"
	storetesting "github.com/marmos91/pixvault/pkg/drive/testing"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T, opts drive.StoreOptions) drive.Store {
	t.Helper()
	store, err := NewBadgerStore(Config{InMemory: true}, opts)
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, store.Close())
	})
	return store
}

func TestBadgerStore_Conformance(t *testing.T) {
	suite := &storetesting.StoreTestSuite{
		NewStore: func(t *testing.T) drive.Store {
			return newTestStore(t, drive.StoreOptions{})
		},
		NewStrictStore: func(t *testing.T) drive.Store {
			return newTestStore(t, drive.StoreOptions{UniqueNames: true})
		},
	}
	suite.Run(t)
}

func TestBadgerStore_PersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()

	store, err := NewBadgerStore(Config{Path: dir}, drive.StoreOptions{})
	require.NoError(t, err)

	user, err := store.CreateUser(t.Context(), "Ada", "ada@example.com", "$2a$10$hash")
	require.NoError(t, err)
	folder, err := store.CreateFolder(t.Context(), user.ID, "Photos", nil)
	require.NoError(t, err)
	require.NoError(t, store.Close())

	reopened, err := NewBadgerStore(Config{Path: dir}, drive.StoreOptions{})
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.GetFolder(t.Context(), folder.ID)
	require.NoError(t, err)
	require.Equal(t, "/Photos", got.Path)

	folders, err := reopened.ListFolders(t.Context(), user.ID)
	require.NoError(t, err)
	require.Len(t, folders, 1)
}
