package badger

import (
	"context"
	"fmt"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/marmos91/pixvault/pkg/drive"
)

// DeleteFolderTree removes a folder and every descendant folder and file
// inside a single BadgerDB transaction.
//
// Traversal uses an explicit work stack instead of recursion, so hierarchy
// depth is bounded only by memory, not by the goroutine stack. Folders are
// collected in discovery order (a parent is always discovered before its
// children) and deleted in reverse, which removes every subfolder and every
// file inside a folder before the folder itself. Child scans re-scope by
// owner as defense in depth even though ownership is validated at the root.
//
// Because the whole walk commits atomically, a storage failure or crash
// midway leaves the subtree untouched rather than partially removed.
func (s *BadgerStore) DeleteFolderTree(ctx context.Context, owner uuid.UUID, id uuid.UUID) (*drive.CascadeResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result := &drive.CascadeResult{}
	err := s.db.Update(func(txn *badger.Txn) error {
		root, err := getFolder(txn, id)
		if err != nil {
			return err
		}
		if root.OwnerID != owner {
			return forbidden("folder")
		}

		// Discovery pass: collect the subtree's folder ids, parents first.
		order := []uuid.UUID{id}
		stack := []uuid.UUID{id}
		for len(stack) > 0 {
			current := stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			children, err := childFolderIDs(txn, current, owner)
			if err != nil {
				return err
			}
			order = append(order, children...)
			stack = append(stack, children...)
		}

		// Deletion pass: reverse discovery order, files before their folder.
		for i := len(order) - 1; i >= 0; i-- {
			folderID := order[i]

			fileIDs, err := folderFileIDs(txn, folderID)
			if err != nil {
				return err
			}
			for _, fileID := range fileIDs {
				file, err := getFile(txn, fileID)
				if err != nil {
					return err
				}
				if file.OwnerID != owner {
					continue
				}
				if err := deleteFileRecord(txn, file); err != nil {
					return err
				}
				result.FilesRemoved++
				result.ExternalRefs = append(result.ExternalRefs, file.ExternalRef)
			}

			folder, err := getFolder(txn, folderID)
			if err != nil {
				return err
			}
			if err := deleteFolderRecord(txn, folder); err != nil {
				return err
			}
			result.FoldersRemoved++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// childFolderIDs lists the direct subfolders of parent owned by owner.
func childFolderIDs(txn *badger.Txn, parent, owner uuid.UUID) ([]uuid.UUID, error) {
	prefix := keyChildFolderPrefix(parent)
	it := txn.NewIterator(badger.IteratorOptions{Prefix: prefix})
	defer it.Close()

	var ids []uuid.UUID
	for it.Rewind(); it.Valid(); it.Next() {
		id, err := idFromIndexKey(it.Item().KeyCopy(nil), prefix)
		if err != nil {
			return nil, fmt.Errorf("malformed child index key: %w", err)
		}
		folder, err := getFolder(txn, id)
		if err != nil {
			return nil, err
		}
		if folder.OwnerID != owner {
			continue
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// folderFileIDs lists the files directly inside a folder.
func folderFileIDs(txn *badger.Txn, folder uuid.UUID) ([]uuid.UUID, error) {
	prefix := keyFolderFilePrefix(folder)
	it := txn.NewIterator(badger.IteratorOptions{Prefix: prefix})
	defer it.Close()

	var ids []uuid.UUID
	for it.Rewind(); it.Valid(); it.Next() {
		id, err := idFromIndexKey(it.Item().KeyCopy(nil), prefix)
		if err != nil {
			return nil, fmt.Errorf("malformed folder file index key: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// deleteFolderRecord removes a folder record and all of its index entries.
func deleteFolderRecord(txn *badger.Txn, folder *drive.Folder) error {
	if err := txn.Delete(keyFolder(folder.ID)); err != nil {
		return fmt.Errorf("failed to delete folder: %w", err)
	}
	if err := txn.Delete(keyOwnerFolder(folder.OwnerID, folder.ID)); err != nil {
		return fmt.Errorf("failed to delete owner index: %w", err)
	}
	if err := txn.Delete(keyChildFolder(parentOrNil(folder.ParentID), folder.ID)); err != nil {
		return fmt.Errorf("failed to delete child index: %w", err)
	}
	if err := txn.Delete(keySiblingName(folder.OwnerID, parentOrNil(folder.ParentID), folder.Name)); err != nil {
		return fmt.Errorf("failed to delete name index: %w", err)
	}
	return nil
}
