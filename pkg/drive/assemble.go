package drive

import (
	"fmt"

	"github.com/google/uuid"
)

// AssembleOptions control orphan handling during tree assembly.
type AssembleOptions struct {
	// Strict makes assembly fail with ErrInvalidArgument when a record
	// references a parent folder that is not in the record set. The
	// default (lenient) mode promotes such records to the root, which
	// tolerates the window left by a non-atomic delete.
	Strict bool
}

// Assemble builds the nested node tree from flat folder and file records.
//
// The result is root folder nodes (in input order) followed by root-level
// file nodes. Cost is O(folders + files); nothing is cached between calls.
//
// A folder or file whose declared parent is missing from the record set is
// promoted to the root in lenient mode and rejected in strict mode.
func Assemble(folders []*Folder, files []*File, opts AssembleOptions) ([]*Node, error) {
	// Pass 1: a node per folder, children initialized empty so folder
	// nodes always serialize with a children array.
	byID := make(map[uuid.UUID]*Node, len(folders))
	for _, f := range folders {
		byID[f.ID] = &Node{
			ID:        f.ID,
			Name:      f.Name,
			Type:      NodeFolder,
			Path:      f.Path,
			ParentID:  f.ParentID,
			CreatedAt: f.CreatedAt,
			Children:  []*Node{},
		}
	}

	// Pass 2: attach folders to parents, or collect roots.
	var roots []*Node
	for _, f := range folders {
		node := byID[f.ID]
		if f.ParentID != nil {
			if parent, ok := byID[*f.ParentID]; ok {
				parent.Children = append(parent.Children, node)
				continue
			}
			if opts.Strict {
				return nil, &StoreError{
					Code:    ErrInvalidArgument,
					Message: fmt.Sprintf("folder %s references missing parent %s", f.ID, *f.ParentID),
					Path:    f.Path,
				}
			}
		}
		roots = append(roots, node)
	}

	// Pass 3: attach files to their folder, or collect root files.
	var rootFiles []*Node
	for _, file := range files {
		node := &Node{
			ID:        file.ID,
			Name:      file.Name,
			Type:      NodeImage,
			URL:       file.URL,
			Ref:       file.ExternalRef,
			ParentID:  file.FolderID,
			CreatedAt: file.CreatedAt,
		}
		if file.FolderID != nil {
			if parent, ok := byID[*file.FolderID]; ok {
				parent.Children = append(parent.Children, node)
				continue
			}
			if opts.Strict {
				return nil, &StoreError{
					Code:    ErrInvalidArgument,
					Message: fmt.Sprintf("file %s references missing folder %s", file.ID, *file.FolderID),
					Path:    file.Name,
				}
			}
		}
		rootFiles = append(rootFiles, node)
	}

	return append(roots, rootFiles...), nil
}

// Flatten is the inverse of Assemble: it walks the tree (folders pre-order,
// files attached to the folder node they hang off) and emits the flat
// record views. Timestamps and paths round-trip; for any record set without
// orphaned parent references, Flatten(Assemble(x)) == x as a set.
//
// The walk uses an explicit work stack rather than recursion so arbitrarily
// deep hierarchies cannot exhaust the goroutine stack.
func Flatten(tree []*Node) ([]*Folder, []*File) {
	var folders []*Folder
	var files []*File

	stack := make([]*Node, 0, len(tree))
	for i := len(tree) - 1; i >= 0; i-- {
		stack = append(stack, tree[i])
	}

	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		switch node.Type {
		case NodeFolder:
			folders = append(folders, &Folder{
				ID:        node.ID,
				Name:      node.Name,
				ParentID:  node.ParentID,
				Path:      node.Path,
				CreatedAt: node.CreatedAt,
			})
			for i := len(node.Children) - 1; i >= 0; i-- {
				stack = append(stack, node.Children[i])
			}
		case NodeImage:
			files = append(files, &File{
				ID:          node.ID,
				Name:        node.Name,
				ExternalRef: node.Ref,
				URL:         node.URL,
				FolderID:    node.ParentID,
				CreatedAt:   node.CreatedAt,
			})
		}
	}

	return folders, files
}
