package drive

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func testFolder(name, path string, parentID *uuid.UUID) *Folder {
	return &Folder{
		ID:        uuid.New(),
		OwnerID:   uuid.Nil,
		Name:      name,
		ParentID:  parentID,
		Path:      path,
		CreatedAt: time.Now().Truncate(time.Second),
	}
}

func testFile(name string, folderID *uuid.UUID) *File {
	return &File{
		ID:          uuid.New(),
		OwnerID:     uuid.Nil,
		Name:        name,
		ExternalRef: "ext-" + name,
		URL:         "https://cdn.example.com/" + name,
		FolderID:    folderID,
		CreatedAt:   time.Now().Truncate(time.Second),
	}
}

func TestAssemble_NestedFolders(t *testing.T) {
	photos := testFolder("Photos", "/Photos", nil)
	year := testFolder("2024", "/Photos/2024", &photos.ID)

	tree, err := Assemble([]*Folder{photos, year}, nil, AssembleOptions{})
	require.NoError(t, err)

	require.Len(t, tree, 1)
	root := tree[0]
	require.Equal(t, photos.ID, root.ID)
	require.Equal(t, NodeFolder, root.Type)
	require.Len(t, root.Children, 1)
	require.Equal(t, year.ID, root.Children[0].ID)
	require.Empty(t, root.Children[0].Children)
	require.NotNil(t, root.Children[0].Children)
}

func TestAssemble_RootFoldersBeforeRootFiles(t *testing.T) {
	folder := testFolder("Photos", "/Photos", nil)
	file := testFile("loose.png", nil)

	tree, err := Assemble([]*Folder{folder}, []*File{file}, AssembleOptions{})
	require.NoError(t, err)

	require.Len(t, tree, 2)
	require.Equal(t, NodeFolder, tree[0].Type)
	require.Equal(t, NodeImage, tree[1].Type)
	require.Equal(t, file.URL, tree[1].URL)
	require.Equal(t, file.ExternalRef, tree[1].Ref)
}

func TestAssemble_FilesAttachToFolder(t *testing.T) {
	folder := testFolder("Photos", "/Photos", nil)
	file := testFile("cat.png", &folder.ID)

	tree, err := Assemble([]*Folder{folder}, []*File{file}, AssembleOptions{})
	require.NoError(t, err)

	require.Len(t, tree, 1)
	require.Len(t, tree[0].Children, 1)
	require.Equal(t, file.ID, tree[0].Children[0].ID)
}

func TestAssemble_OrphanFolderPromotedToRoot(t *testing.T) {
	missing := uuid.New()
	orphan := testFolder("lost", "/gone/lost", &missing)

	tree, err := Assemble([]*Folder{orphan}, nil, AssembleOptions{})
	require.NoError(t, err)
	require.Len(t, tree, 1)
	require.Equal(t, orphan.ID, tree[0].ID)
}

func TestAssemble_OrphanRejectedInStrictMode(t *testing.T) {
	missing := uuid.New()
	orphan := testFolder("lost", "/gone/lost", &missing)

	_, err := Assemble([]*Folder{orphan}, nil, AssembleOptions{Strict: true})
	require.Error(t, err)
	require.Equal(t, ErrInvalidArgument, CodeOf(err))

	orphanFile := testFile("lost.png", &missing)
	_, err = Assemble(nil, []*File{orphanFile}, AssembleOptions{Strict: true})
	require.Error(t, err)
	require.Equal(t, ErrInvalidArgument, CodeOf(err))
}

func TestAssemble_FlattenRoundTrip(t *testing.T) {
	photos := testFolder("Photos", "/Photos", nil)
	year := testFolder("2024", "/Photos/2024", &photos.ID)
	docs := testFolder("Docs", "/Docs", nil)
	inYear := testFile("cat.png", &year.ID)
	loose := testFile("loose.png", nil)

	folders := []*Folder{photos, year, docs}
	files := []*File{inYear, loose}

	tree, err := Assemble(folders, files, AssembleOptions{})
	require.NoError(t, err)

	gotFolders, gotFiles := Flatten(tree)
	require.ElementsMatch(t, idsOfFolders(folders), idsOfFolders(gotFolders))
	require.ElementsMatch(t, idsOfFiles(files), idsOfFiles(gotFiles))

	// Paths and parent references survive the round trip.
	byID := make(map[uuid.UUID]*Folder)
	for _, f := range gotFolders {
		byID[f.ID] = f
	}
	require.Equal(t, "/Photos/2024", byID[year.ID].Path)
	require.Equal(t, photos.ID, *byID[year.ID].ParentID)
}

func TestAssemble_NoFolderIsItsOwnAncestor(t *testing.T) {
	// Creation requires an existing parent and there is no move operation,
	// so any valid record set is acyclic. Assert the property over an
	// assembled tree by walking ancestor chains.
	photos := testFolder("Photos", "/Photos", nil)
	year := testFolder("2024", "/Photos/2024", &photos.ID)
	summer := testFolder("summer", "/Photos/2024/summer", &year.ID)
	folders := []*Folder{photos, year, summer}

	byID := make(map[uuid.UUID]*Folder)
	for _, f := range folders {
		byID[f.ID] = f
	}
	for _, f := range folders {
		seen := map[uuid.UUID]bool{f.ID: true}
		for cur := f.ParentID; cur != nil; {
			require.False(t, seen[*cur], "folder %s appears in its own ancestor chain", f.Name)
			seen[*cur] = true
			parent, ok := byID[*cur]
			require.True(t, ok)
			cur = parent.ParentID
		}
	}
}

func idsOfFolders(folders []*Folder) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(folders))
	for _, f := range folders {
		ids = append(ids, f.ID)
	}
	return ids
}

func idsOfFiles(files []*File) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(files))
	for _, f := range files {
		ids = append(ids, f.ID)
	}
	return ids
}
