package drive

import (
	"context"

	"github.com/google/uuid"
)

// StoreOptions tune optional store behavior.
type StoreOptions struct {
	// UniqueNames enforces name uniqueness per (owner, parent, name) for
	// both folders and files. The original behavior leaves this to an
	// advisory client-side check, so it defaults to off.
	UniqueNames bool
}

// Store is the ground truth for each owner's folder/file hierarchy.
//
// All records are flat; the nested tree is derived per request by Assemble.
// Every operation that touches a record is scoped by owner: a mismatched
// owner yields ErrForbidden, a missing record ErrNotFound, and neither case
// ever leaks another owner's data.
//
// Thread safety: implementations must be safe for concurrent use by
// multiple goroutines. No cross-operation isolation is promised beyond what
// each method documents; concurrent mutations of overlapping subtrees race
// benignly (the loser observes ErrNotFound, never corruption).
type Store interface {
	// CreateUser creates an account. The email must be unique;
	// ErrAlreadyExists is returned otherwise.
	CreateUser(ctx context.Context, name, email, passwordHash string) (*User, error)

	// FindUserByEmail looks up an account by login email.
	// Returns ErrNotFound if no account matches.
	FindUserByEmail(ctx context.Context, email string) (*User, error)

	// GetUser returns an account by id, or ErrNotFound.
	GetUser(ctx context.Context, id uuid.UUID) (*User, error)

	// CreateFolder creates a folder for owner, optionally under parentID.
	//
	// The materialized path is computed from the parent at creation time:
	// parent.Path + "/" + name, falling back to "/" + parent.Name + "/" +
	// name when the parent has no path, or "/" + name at the root.
	//
	// Fails with ErrNotFound if the parent doesn't exist and ErrForbidden
	// if it belongs to a different owner. With UniqueNames enabled a
	// sibling name collision yields ErrAlreadyExists.
	CreateFolder(ctx context.Context, owner uuid.UUID, name string, parentID *uuid.UUID) (*Folder, error)

	// GetFolder returns a folder by id regardless of owner, or ErrNotFound.
	// Callers are responsible for the ownership check when acting on it.
	GetFolder(ctx context.Context, id uuid.UUID) (*Folder, error)

	// ListFolders returns every folder belonging to owner.
	ListFolders(ctx context.Context, owner uuid.UUID) ([]*Folder, error)

	// CreateFile records an uploaded object for owner, optionally inside
	// folderID. Name, externalRef and url must all be non-empty
	// (ErrInvalidArgument). Parent checks match CreateFolder.
	//
	// Record creation is the commit point of an upload: the external
	// object is NOT rolled back if this fails.
	CreateFile(ctx context.Context, owner uuid.UUID, name, externalRef, url string, folderID *uuid.UUID) (*File, error)

	// GetFile returns a file by id regardless of owner, or ErrNotFound.
	GetFile(ctx context.Context, id uuid.UUID) (*File, error)

	// ListFiles returns every file belonging to owner.
	ListFiles(ctx context.Context, owner uuid.UUID) ([]*File, error)

	// DeleteFile removes a single file record. ErrNotFound if the id is
	// unknown, ErrForbidden if the record belongs to someone else. The
	// removed record is returned so the caller can release the external
	// object (a separate, non-atomic step).
	DeleteFile(ctx context.Context, owner uuid.UUID, id uuid.UUID) (*File, error)

	// DeleteFolderTree removes a folder and every descendant folder and
	// file. ErrNotFound/ErrForbidden semantics match DeleteFile.
	//
	// Ordering: within one invocation every child folder and every file
	// inside a folder is removed before the folder itself. Persistent
	// implementations run the whole cascade in a single transaction.
	DeleteFolderTree(ctx context.Context, owner uuid.UUID, id uuid.UUID) (*CascadeResult, error)

	// Close releases store resources.
	Close() error
}
