// Package memory provides an in-memory drive.Store implementation.
//
// Intended for tests and development. All state is lost on restart.
package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/marmos91/pixvault/pkg/drive"
)

// MemoryStore implements drive.Store with mutex-guarded maps.
//
// A single read-write mutex protects all state. This coarse locking is
// simple and correct; it also gives the cascade deletion the same
// all-or-nothing visibility the badger implementation gets from a
// transaction, since the write lock is held for the whole walk.
type MemoryStore struct {
	mu sync.RWMutex

	opts drive.StoreOptions

	users        map[uuid.UUID]*drive.User
	usersByEmail map[string]uuid.UUID

	folders     map[uuid.UUID]*drive.Folder
	folderOrder []uuid.UUID

	files     map[uuid.UUID]*drive.File
	fileOrder []uuid.UUID
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore(opts drive.StoreOptions) *MemoryStore {
	return &MemoryStore{
		opts:         opts,
		users:        make(map[uuid.UUID]*drive.User),
		usersByEmail: make(map[string]uuid.UUID),
		folders:      make(map[uuid.UUID]*drive.Folder),
		files:        make(map[uuid.UUID]*drive.File),
	}
}

// CreateUser creates an account with a unique email.
func (s *MemoryStore) CreateUser(ctx context.Context, name, email, passwordHash string) (*drive.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if name == "" || email == "" || passwordHash == "" {
		return nil, &drive.StoreError{Code: drive.ErrInvalidArgument, Message: "name, email and password are required"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := strings.ToLower(email)
	if _, taken := s.usersByEmail[key]; taken {
		return nil, &drive.StoreError{Code: drive.ErrAlreadyExists, Message: "email already registered", Path: email}
	}

	user := &drive.User{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now(),
	}
	s.users[user.ID] = user
	s.usersByEmail[key] = user.ID

	copied := *user
	return &copied, nil
}

// FindUserByEmail looks up an account by login email.
func (s *MemoryStore) FindUserByEmail(ctx context.Context, email string) (*drive.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.usersByEmail[strings.ToLower(email)]
	if !ok {
		return nil, &drive.StoreError{Code: drive.ErrNotFound, Message: "user not found", Path: email}
	}
	copied := *s.users[id]
	return &copied, nil
}

// GetUser returns an account by id.
func (s *MemoryStore) GetUser(ctx context.Context, id uuid.UUID) (*drive.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return nil, &drive.StoreError{Code: drive.ErrNotFound, Message: "user not found"}
	}
	copied := *user
	return &copied, nil
}

// CreateFolder creates a folder with a path materialized from its parent.
func (s *MemoryStore) CreateFolder(ctx context.Context, owner uuid.UUID, name string, parentID *uuid.UUID) (*drive.Folder, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, &drive.StoreError{Code: drive.ErrInvalidArgument, Message: "folder name is required"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	path := "/" + name
	if parentID != nil {
		parent, ok := s.folders[*parentID]
		if !ok {
			return nil, &drive.StoreError{Code: drive.ErrNotFound, Message: "parent folder not found"}
		}
		if parent.OwnerID != owner {
			return nil, &drive.StoreError{Code: drive.ErrForbidden, Message: "parent folder belongs to another owner"}
		}
		if parent.Path != "" {
			path = parent.Path + "/" + name
		} else {
			// Legacy records without a materialized path fall back to the
			// parent name.
			path = "/" + parent.Name + "/" + name
		}
	}

	if s.opts.UniqueNames && s.siblingNameTaken(owner, parentID, name) {
		return nil, &drive.StoreError{Code: drive.ErrAlreadyExists, Message: "name already exists in this folder", Path: path}
	}

	folder := &drive.Folder{
		ID:        uuid.New(),
		OwnerID:   owner,
		Name:      name,
		ParentID:  parentID,
		Path:      path,
		CreatedAt: time.Now(),
	}
	s.folders[folder.ID] = folder
	s.folderOrder = append(s.folderOrder, folder.ID)

	copied := *folder
	return &copied, nil
}

// GetFolder returns a folder by id regardless of owner.
func (s *MemoryStore) GetFolder(ctx context.Context, id uuid.UUID) (*drive.Folder, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	folder, ok := s.folders[id]
	if !ok {
		return nil, &drive.StoreError{Code: drive.ErrNotFound, Message: "folder not found"}
	}
	copied := *folder
	return &copied, nil
}

// ListFolders returns every folder belonging to owner in creation order.
func (s *MemoryStore) ListFolders(ctx context.Context, owner uuid.UUID) ([]*drive.Folder, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*drive.Folder
	for _, id := range s.folderOrder {
		folder, ok := s.folders[id]
		if !ok || folder.OwnerID != owner {
			continue
		}
		copied := *folder
		out = append(out, &copied)
	}
	return out, nil
}

// CreateFile records an uploaded object.
func (s *MemoryStore) CreateFile(ctx context.Context, owner uuid.UUID, name, externalRef, url string, folderID *uuid.UUID) (*drive.File, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if name == "" || externalRef == "" || url == "" {
		return nil, &drive.StoreError{Code: drive.ErrInvalidArgument, Message: "name, externalRef and url are required"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if folderID != nil {
		parent, ok := s.folders[*folderID]
		if !ok {
			return nil, &drive.StoreError{Code: drive.ErrNotFound, Message: "folder not found"}
		}
		if parent.OwnerID != owner {
			return nil, &drive.StoreError{Code: drive.ErrForbidden, Message: "folder belongs to another owner"}
		}
	}

	if s.opts.UniqueNames && s.siblingNameTaken(owner, folderID, name) {
		return nil, &drive.StoreError{Code: drive.ErrAlreadyExists, Message: "name already exists in this folder", Path: name}
	}

	file := &drive.File{
		ID:          uuid.New(),
		OwnerID:     owner,
		Name:        name,
		ExternalRef: externalRef,
		URL:         url,
		FolderID:    folderID,
		CreatedAt:   time.Now(),
	}
	s.files[file.ID] = file
	s.fileOrder = append(s.fileOrder, file.ID)

	copied := *file
	return &copied, nil
}

// GetFile returns a file by id regardless of owner.
func (s *MemoryStore) GetFile(ctx context.Context, id uuid.UUID) (*drive.File, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	file, ok := s.files[id]
	if !ok {
		return nil, &drive.StoreError{Code: drive.ErrNotFound, Message: "file not found"}
	}
	copied := *file
	return &copied, nil
}

// ListFiles returns every file belonging to owner in creation order.
func (s *MemoryStore) ListFiles(ctx context.Context, owner uuid.UUID) ([]*drive.File, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*drive.File
	for _, id := range s.fileOrder {
		file, ok := s.files[id]
		if !ok || file.OwnerID != owner {
			continue
		}
		copied := *file
		out = append(out, &copied)
	}
	return out, nil
}

// DeleteFile removes a single file record.
func (s *MemoryStore) DeleteFile(ctx context.Context, owner uuid.UUID, id uuid.UUID) (*drive.File, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	file, ok := s.files[id]
	if !ok {
		return nil, &drive.StoreError{Code: drive.ErrNotFound, Message: "file not found"}
	}
	if file.OwnerID != owner {
		return nil, &drive.StoreError{Code: drive.ErrForbidden, Message: "file belongs to another owner"}
	}

	delete(s.files, id)
	copied := *file
	return &copied, nil
}

// DeleteFolderTree removes a folder and every descendant folder and file.
//
// Traversal uses an explicit work stack: folders are collected in discovery
// order (parents before children) and deleted in reverse, so every child is
// gone before its parent. The write lock is held throughout, making the
// cascade atomic with respect to other operations on this store.
func (s *MemoryStore) DeleteFolderTree(ctx context.Context, owner uuid.UUID, id uuid.UUID) (*drive.CascadeResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	root, ok := s.folders[id]
	if !ok {
		return nil, &drive.StoreError{Code: drive.ErrNotFound, Message: "folder not found"}
	}
	if root.OwnerID != owner {
		return nil, &drive.StoreError{Code: drive.ErrForbidden, Message: "folder belongs to another owner"}
	}

	// Discovery pass: parents always enter the list before their children.
	// Child queries re-scope by owner as defense in depth.
	order := []uuid.UUID{id}
	stack := []uuid.UUID{id}
	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, folderID := range s.folderOrder {
			folder, ok := s.folders[folderID]
			if !ok || folder.OwnerID != owner || folder.ParentID == nil || *folder.ParentID != current {
				continue
			}
			order = append(order, folderID)
			stack = append(stack, folderID)
		}
	}

	result := &drive.CascadeResult{}
	for i := len(order) - 1; i >= 0; i-- {
		folderID := order[i]

		// Files inside the folder go first, then the folder itself.
		for _, fileID := range s.fileOrder {
			file, ok := s.files[fileID]
			if !ok || file.OwnerID != owner || file.FolderID == nil || *file.FolderID != folderID {
				continue
			}
			delete(s.files, fileID)
			result.FilesRemoved++
			result.ExternalRefs = append(result.ExternalRefs, file.ExternalRef)
		}

		delete(s.folders, folderID)
		result.FoldersRemoved++
	}

	return result, nil
}

// Close is a no-op for the in-memory store.
func (s *MemoryStore) Close() error {
	return nil
}

// siblingNameTaken reports whether owner already has a folder or file with
// this name under the same parent. Caller must hold the lock.
func (s *MemoryStore) siblingNameTaken(owner uuid.UUID, parentID *uuid.UUID, name string) bool {
	sameParent := func(a *uuid.UUID) bool {
		if a == nil || parentID == nil {
			return a == nil && parentID == nil
		}
		return *a == *parentID
	}
	for _, folder := range s.folders {
		if folder.OwnerID == owner && folder.Name == name && sameParent(folder.ParentID) {
			return true
		}
	}
	for _, file := range s.files {
		if file.OwnerID == owner && file.Name == name && sameParent(file.FolderID) {
			return true
		}
	}
	return false
}
