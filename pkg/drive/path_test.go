package drive

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestReconcilePath_FullPathSurvives(t *testing.T) {
	a := testFolder("a", "/a", nil)
	b := testFolder("b", "/a/b", &a.ID)
	c := testFolder("c", "/a/b/c", &b.ID)

	tree, err := Assemble([]*Folder{a, b, c}, nil, AssembleOptions{})
	require.NoError(t, err)

	path := ReconcilePath(tree, []uuid.UUID{a.ID, b.ID, c.ID})
	require.Len(t, path, 3)
	require.Equal(t, a.ID, path[0].ID)
	require.Equal(t, b.ID, path[1].ID)
	require.Equal(t, c.ID, path[2].ID)
}

func TestReconcilePath_TruncatesAtDeletedFolder(t *testing.T) {
	// Path [A, B, C] where B was deleted: reconciliation yields exactly [A].
	a := testFolder("a", "/a", nil)
	b := testFolder("b", "/a/b", &a.ID)
	c := testFolder("c", "/a/b/c", &b.ID)
	bID, cID := b.ID, c.ID

	// The fresh tree no longer contains B or C.
	tree, err := Assemble([]*Folder{a}, nil, AssembleOptions{})
	require.NoError(t, err)

	path := ReconcilePath(tree, []uuid.UUID{a.ID, bID, cID})
	require.Len(t, path, 1)
	require.Equal(t, a.ID, path[0].ID)
}

func TestReconcilePath_EmptyWhenRootDeleted(t *testing.T) {
	a := testFolder("a", "/a", nil)
	other := testFolder("other", "/other", nil)

	tree, err := Assemble([]*Folder{other}, nil, AssembleOptions{})
	require.NoError(t, err)

	path := ReconcilePath(tree, []uuid.UUID{a.ID})
	require.Empty(t, path)
}

func TestReconcilePath_EmptyPriorPath(t *testing.T) {
	a := testFolder("a", "/a", nil)
	tree, err := Assemble([]*Folder{a}, nil, AssembleOptions{})
	require.NoError(t, err)

	require.Empty(t, ReconcilePath(tree, nil))
}

func TestReconcilePath_IgnoresFileNodesWithMatchingID(t *testing.T) {
	// A file never counts as a path element even if an id collides.
	a := testFolder("a", "/a", nil)
	file := testFile("a.png", nil)

	tree, err := Assemble([]*Folder{a}, []*File{file}, AssembleOptions{})
	require.NoError(t, err)

	path := ReconcilePath(tree, []uuid.UUID{file.ID})
	require.Empty(t, path)
}

func TestReconcilePath_DescendsIntoFreshChildren(t *testing.T) {
	// The reconciled nodes come from the fresh tree, so newly created
	// children are visible through the returned path.
	a := testFolder("a", "/a", nil)
	b := testFolder("b", "/a/b", &a.ID)
	added := testFolder("new", "/a/b/new", &b.ID)

	tree, err := Assemble([]*Folder{a, b, added}, nil, AssembleOptions{})
	require.NoError(t, err)

	path := ReconcilePath(tree, []uuid.UUID{a.ID, b.ID})
	require.Len(t, path, 2)
	require.Len(t, path[1].Children, 1)
	require.Equal(t, added.ID, path[1].Children[0].ID)
}
