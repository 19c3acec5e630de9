package drive

import (
	"time"

	"github.com/google/uuid"
)

// User is an account that exclusively owns folders and files.
//
// Every folder and file record carries the owner's UUID, and every read or
// mutation is scoped to that owner. There is no sharing or cross-user
// visibility of any kind.
type User struct {
	// ID is the unique account identifier
	ID uuid.UUID `json:"id"`

	// Name is the display name shown in the dashboard
	Name string `json:"name"`

	// Email is the login identifier (unique across all accounts)
	Email string `json:"email"`

	// PasswordHash is the bcrypt hash of the account password.
	// Never serialized in API responses.
	PasswordHash string `json:"-"`

	// CreatedAt is the account creation time
	CreatedAt time.Time `json:"createdAt"`
}

// Folder is a node in an owner's hierarchy.
//
// The parent relation is acyclic by construction: a folder's parent must
// exist at creation time and there is no move/rename operation, so a folder
// can never become its own ancestor.
//
// Path is materialized once at creation from the parent's path. It is NOT
// kept in sync if ancestors were ever renamed; rename/move is deliberately
// unimplemented (see DESIGN.md).
type Folder struct {
	// ID is the unique folder identifier
	ID uuid.UUID `json:"id"`

	// OwnerID is the account this folder belongs to
	OwnerID uuid.UUID `json:"ownerId"`

	// Name is the display name
	Name string `json:"name"`

	// ParentID references the containing folder; nil means root level
	ParentID *uuid.UUID `json:"parentId"`

	// Path is the human-readable materialized path (e.g. "/photos/2024"),
	// computed from the parent's path at creation time
	Path string `json:"path"`

	// CreatedAt is the folder creation time
	CreatedAt time.Time `json:"createdAt"`
}

// File is an uploaded image record. The binary bytes live in external
// object storage; the record only holds the opaque reference and the
// retrieval URL.
type File struct {
	// ID is the unique file identifier
	ID uuid.UUID `json:"id"`

	// OwnerID is the account this file belongs to
	OwnerID uuid.UUID `json:"ownerId"`

	// Name is the display name
	Name string `json:"name"`

	// ExternalRef is the opaque identifier of the object in external storage
	ExternalRef string `json:"externalRef"`

	// URL is the public retrieval URL for the object
	URL string `json:"url"`

	// FolderID references the containing folder; nil means root level
	FolderID *uuid.UUID `json:"folderId"`

	// CreatedAt is the upload time
	CreatedAt time.Time `json:"createdAt"`
}

// NodeType discriminates assembled tree nodes.
type NodeType string

const (
	// NodeFolder marks a folder node (carries Children)
	NodeFolder NodeType = "folder"

	// NodeImage marks a file leaf node
	NodeImage NodeType = "image"
)

// Node is an element of the assembled tree returned to clients.
//
// It is derived state: built fresh from flat Folder/File records on every
// read, never persisted and never cached. Folder nodes always carry a
// non-nil Children slice (possibly empty); image nodes leave it nil.
type Node struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	Type      NodeType   `json:"type"`
	Path      string     `json:"path,omitempty"`
	URL       string     `json:"url,omitempty"`
	Ref       string     `json:"externalRef,omitempty"`
	ParentID  *uuid.UUID `json:"parentId,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
	Children  []*Node    `json:"children,omitempty"`
}

// CascadeResult reports what a recursive folder deletion removed.
//
// ExternalRefs lists the object storage references of every deleted file so
// the caller can release the underlying objects after the records are gone.
type CascadeResult struct {
	// FoldersRemoved is the number of folder records deleted (root included)
	FoldersRemoved int

	// FilesRemoved is the number of file records deleted
	FilesRemoved int

	// ExternalRefs holds the storage references of the deleted files
	ExternalRefs []string
}
