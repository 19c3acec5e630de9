package badger

import (
	"strings"

	"github.com/google/uuid"
)

// Database Key Namespace Design
// ==============================
//
// BadgerDB is a key-value store, so prefixed keys organize the different
// record types into logical namespaces. This design:
//   - Prevents key collisions between record types
//   - Enables efficient range scans (all folders of an owner, all children
//     of a folder) without secondary storage
//   - Makes the database structure self-documenting
//
// Records are identified by UUID v4, which gives collision resistance
// without coordination and stable identity for client navigation paths.
//
// Key Namespace Prefixes:
//
// Record Type          Prefix   Key Format                          Value
// =========================================================================
// User                 "u:"     u:<uuid>                            User (JSON)
// Email Index          "ue:"    ue:<lowercased email>               user UUID (16 bytes)
// Folder               "fo:"    fo:<uuid>                           Folder (JSON)
// File                 "fi:"    fi:<uuid>                           File (JSON)
// Owner Folder Index   "ofo:"   ofo:<ownerUUID>:<folderUUID>        (empty)
// Owner File Index     "ofi:"   ofi:<ownerUUID>:<fileUUID>          (empty)
// Child Folder Index   "cfo:"   cfo:<parentUUID>:<folderUUID>       (empty)
// Folder File Index    "cfi:"   cfi:<folderUUID>:<fileUUID>         (empty)
// Sibling Name Index   "n:"     n:<ownerUUID>:<parentUUID>:<name>   record UUID (16 bytes)
//
// Root-level records use the zero UUID as their parent in the child and
// name indexes, so "children of the root" is an ordinary prefix scan.
//
// The index entries are written in the same transaction as their record,
// so a prefix scan never observes a dangling index entry. The sibling name
// index is maintained unconditionally but consulted only when server-side
// name uniqueness is enabled; duplicates created while the check is off
// share one entry, matching the advisory nature of the check.

const (
	prefixUser        = "u:"
	prefixEmail       = "ue:"
	prefixFolder      = "fo:"
	prefixFile        = "fi:"
	prefixOwnerFolder = "ofo:"
	prefixOwnerFile   = "ofi:"
	prefixChildFolder = "cfo:"
	prefixFolderFile  = "cfi:"
	prefixName        = "n:"
)

// keyUser generates the key for a user record.
func keyUser(id uuid.UUID) []byte {
	return []byte(prefixUser + id.String())
}

// keyEmail generates the key for the unique email index.
func keyEmail(email string) []byte {
	return []byte(prefixEmail + strings.ToLower(email))
}

// keyFolder generates the key for a folder record.
func keyFolder(id uuid.UUID) []byte {
	return []byte(prefixFolder + id.String())
}

// keyFile generates the key for a file record.
func keyFile(id uuid.UUID) []byte {
	return []byte(prefixFile + id.String())
}

// keyOwnerFolder generates an owner index entry for a folder.
func keyOwnerFolder(owner, folder uuid.UUID) []byte {
	return []byte(prefixOwnerFolder + owner.String() + ":" + folder.String())
}

// keyOwnerFolderPrefix generates the scan prefix for an owner's folders.
func keyOwnerFolderPrefix(owner uuid.UUID) []byte {
	return []byte(prefixOwnerFolder + owner.String() + ":")
}

// keyOwnerFile generates an owner index entry for a file.
func keyOwnerFile(owner, file uuid.UUID) []byte {
	return []byte(prefixOwnerFile + owner.String() + ":" + file.String())
}

// keyOwnerFilePrefix generates the scan prefix for an owner's files.
func keyOwnerFilePrefix(owner uuid.UUID) []byte {
	return []byte(prefixOwnerFile + owner.String() + ":")
}

// keyChildFolder generates a child index entry under a parent folder.
// Root-level folders use uuid.Nil as parent.
func keyChildFolder(parent, child uuid.UUID) []byte {
	return []byte(prefixChildFolder + parent.String() + ":" + child.String())
}

// keyChildFolderPrefix generates the scan prefix for a folder's subfolders.
func keyChildFolderPrefix(parent uuid.UUID) []byte {
	return []byte(prefixChildFolder + parent.String() + ":")
}

// keyFolderFile generates an index entry for a file inside a folder.
// Root-level files use uuid.Nil as folder.
func keyFolderFile(folder, file uuid.UUID) []byte {
	return []byte(prefixFolderFile + folder.String() + ":" + file.String())
}

// keyFolderFilePrefix generates the scan prefix for a folder's files.
func keyFolderFilePrefix(folder uuid.UUID) []byte {
	return []byte(prefixFolderFile + folder.String() + ":")
}

// keySiblingName generates the sibling name index entry.
func keySiblingName(owner, parent uuid.UUID, name string) []byte {
	return []byte(prefixName + owner.String() + ":" + parent.String() + ":" + name)
}

// idFromIndexKey extracts the trailing UUID from an index key given its
// scan prefix.
func idFromIndexKey(key, prefix []byte) (uuid.UUID, error) {
	return uuid.Parse(string(key[len(prefix):]))
}

// parentOrNil converts an optional parent reference to its index UUID.
func parentOrNil(id *uuid.UUID) uuid.UUID {
	if id == nil {
		return uuid.Nil
	}
	return *id
}
