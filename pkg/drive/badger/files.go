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

// CreateFile records an uploaded object inside one transaction.
//
// This is the commit point of an upload: if it fails, the object already
// written to external storage is not rolled back here.
func (s *BadgerStore) CreateFile(ctx context.Context, owner uuid.UUID, name, externalRef, url string, folderID *uuid.UUID) (*drive.File, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if name == "" || externalRef == "" || url == "" {
		return nil, &drive.StoreError{Code: drive.ErrInvalidArgument, Message: "name, externalRef and url are required"}
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

	err := s.db.Update(func(txn *badger.Txn) error {
		if folderID != nil {
			parent, err := getFolder(txn, *folderID)
			if err != nil {
				return err
			}
			if parent.OwnerID != owner {
				return forbidden("folder")
			}
		}

		if s.opts.UniqueNames {
			if err := checkSiblingName(txn, owner, parentOrNil(folderID), name); err != nil {
				return err
			}
		}

		data, err := encodeFile(file)
		if err != nil {
			return err
		}
		if err := txn.Set(keyFile(file.ID), data); err != nil {
			return fmt.Errorf("failed to store file: %w", err)
		}
		if err := txn.Set(keyOwnerFile(owner, file.ID), nil); err != nil {
			return fmt.Errorf("failed to store owner index: %w", err)
		}
		if err := txn.Set(keyFolderFile(parentOrNil(folderID), file.ID), nil); err != nil {
			return fmt.Errorf("failed to store folder index: %w", err)
		}
		if err := txn.Set(keySiblingName(owner, parentOrNil(folderID), name), file.ID[:]); err != nil {
			return fmt.Errorf("failed to store name index: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return file, nil
}

// GetFile returns a file by id regardless of owner.
func (s *BadgerStore) GetFile(ctx context.Context, id uuid.UUID) (*drive.File, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var file *drive.File
	err := s.db.View(func(txn *badger.Txn) error {
		var err error
		file, err = getFile(txn, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	return file, nil
}

// ListFiles returns every file belonging to owner via an owner index
// prefix scan. No sort order is guaranteed.
func (s *BadgerStore) ListFiles(ctx context.Context, owner uuid.UUID) ([]*drive.File, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var files []*drive.File
	err := s.db.View(func(txn *badger.Txn) error {
		prefix := keyOwnerFilePrefix(owner)
		it := txn.NewIterator(badger.IteratorOptions{Prefix: prefix})
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			id, err := idFromIndexKey(it.Item().Key(), prefix)
			if err != nil {
				return fmt.Errorf("malformed owner index key: %w", err)
			}
			file, err := getFile(txn, id)
			if err != nil {
				return err
			}
			files = append(files, file)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return files, nil
}

// DeleteFile removes a single file record and its index entries.
//
// Only the local record is touched; releasing the external object is a
// separate step owned by the caller.
func (s *BadgerStore) DeleteFile(ctx context.Context, owner uuid.UUID, id uuid.UUID) (*drive.File, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var file *drive.File
	err := s.db.Update(func(txn *badger.Txn) error {
		var err error
		file, err = getFile(txn, id)
		if err != nil {
			return err
		}
		if file.OwnerID != owner {
			return forbidden("file")
		}
		return deleteFileRecord(txn, file)
	})
	if err != nil {
		return nil, err
	}

	return file, nil
}

// getFile loads and decodes a file record inside a transaction.
func getFile(txn *badger.Txn, id uuid.UUID) (*drive.File, error) {
	item, err := txn.Get(keyFile(id))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, notFound("file")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var file *drive.File
	if err := item.Value(func(val []byte) error {
		decoded, err := decodeFile(val)
		if err != nil {
			return err
		}
		file = decoded
		return nil
	}); err != nil {
		return nil, err
	}

	return file, nil
}

// deleteFileRecord removes a file record and all of its index entries.
func deleteFileRecord(txn *badger.Txn, file *drive.File) error {
	if err := txn.Delete(keyFile(file.ID)); err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	if err := txn.Delete(keyOwnerFile(file.OwnerID, file.ID)); err != nil {
		return fmt.Errorf("failed to delete owner index: %w", err)
	}
	if err := txn.Delete(keyFolderFile(parentOrNil(file.FolderID), file.ID)); err != nil {
		return fmt.Errorf("failed to delete folder index: %w", err)
	}
	if err := txn.Delete(keySiblingName(file.OwnerID, parentOrNil(file.FolderID), file.Name)); err != nil {
		return fmt.Errorf("failed to delete name index: %w", err)
	}
	return nil
}
