package badger

import (
	"context"
	"errors"
	"fmt"
	"time"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/marmos91/pixvault/pkg/drive"
)

// CreateFolder creates a folder record plus its owner, child and sibling
// name index entries inside one transaction.
//
// The materialized path is computed from the parent at creation time and
// never updated afterwards.
func (s *BadgerStore) CreateFolder(ctx context.Context, owner uuid.UUID, name string, parentID *uuid.UUID) (*drive.Folder, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, &drive.StoreError{Code: drive.ErrInvalidArgument, Message: "folder name is required"}
	}

	folder := &drive.Folder{
		ID:        uuid.New(),
		OwnerID:   owner,
		Name:      name,
		ParentID:  parentID,
		CreatedAt: time.Now(),
	}

	err := s.db.Update(func(txn *badger.Txn) error {
		folder.Path = "/" + name
		if parentID != nil {
			parent, err := getFolder(txn, *parentID)
			if err != nil {
				return err
			}
			if parent.OwnerID != owner {
				return forbidden("parent folder")
			}
			if parent.Path != "" {
				folder.Path = parent.Path + "/" + name
			} else {
				// Legacy records without a materialized path fall back to
				// the parent name.
				folder.Path = "/" + parent.Name + "/" + name
			}
		}

		if s.opts.UniqueNames {
			if err := checkSiblingName(txn, owner, parentOrNil(parentID), name); err != nil {
				return err
			}
		}

		data, err := encodeFolder(folder)
		if err != nil {
			return err
		}
		if err := txn.Set(keyFolder(folder.ID), data); err != nil {
			return fmt.Errorf("failed to store folder: %w", err)
		}
		if err := txn.Set(keyOwnerFolder(owner, folder.ID), nil); err != nil {
			return fmt.Errorf("failed to store owner index: %w", err)
		}
		if err := txn.Set(keyChildFolder(parentOrNil(parentID), folder.ID), nil); err != nil {
			return fmt.Errorf("failed to store child index: %w", err)
		}
		if err := txn.Set(keySiblingName(owner, parentOrNil(parentID), name), folder.ID[:]); err != nil {
			return fmt.Errorf("failed to store name index: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return folder, nil
}

// GetFolder returns a folder by id regardless of owner.
func (s *BadgerStore) GetFolder(ctx context.Context, id uuid.UUID) (*drive.Folder, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var folder *drive.Folder
	err := s.db.View(func(txn *badger.Txn) error {
		var err error
		folder, err = getFolder(txn, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	return folder, nil
}

// ListFolders returns every folder belonging to owner via an owner index
// prefix scan. Order follows the index (UUID-lexicographic), which is
// stable but unrelated to creation order; no sort order is guaranteed.
func (s *BadgerStore) ListFolders(ctx context.Context, owner uuid.UUID) ([]*drive.Folder, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var folders []*drive.Folder
	err := s.db.View(func(txn *badger.Txn) error {
		prefix := keyOwnerFolderPrefix(owner)
		it := txn.NewIterator(badger.IteratorOptions{Prefix: prefix})
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			id, err := idFromIndexKey(it.Item().Key(), prefix)
			if err != nil {
				return fmt.Errorf("malformed owner index key: %w", err)
			}
			folder, err := getFolder(txn, id)
			if err != nil {
				return err
			}
			folders = append(folders, folder)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return folders, nil
}

// getFolder loads and decodes a folder record inside a transaction.
func getFolder(txn *badger.Txn, id uuid.UUID) (*drive.Folder, error) {
	item, err := txn.Get(keyFolder(id))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, notFound("folder")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read folder: %w", err)
	}

	var folder *drive.Folder
	if err := item.Value(func(val []byte) error {
		decoded, err := decodeFolder(val)
		if err != nil {
			return err
		}
		folder = decoded
		return nil
	}); err != nil {
		return nil, err
	}

	return folder, nil
}

// checkSiblingName rejects a (owner, parent, name) collision.
func checkSiblingName(txn *badger.Txn, owner, parent uuid.UUID, name string) error {
	_, err := txn.Get(keySiblingName(owner, parent, name))
	if err == nil {
		return &drive.StoreError{Code: drive.ErrAlreadyExists, Message: "name already exists in this folder", Path: name}
	}
	if !errors.Is(err, badger.ErrKeyNotFound) {
		return fmt.Errorf("failed to check name index: %w", err)
	}
	return nil
}
