package drive

import "github.com/google/uuid"

// ReconcilePath re-derives a navigation path against a freshly assembled
// tree.
//
// priorIDs is the breadcrumb the client held before the tree changed shape
// (ordered root-first). Each id is looked up among the current level's
// folder nodes; a hit appends the fresh node and descends into its
// children, a miss stops the walk immediately and returns the prefix
// accumulated so far. Truncation, not an error: a folder in the path may
// have been deleted by this client or by a concurrent session, and the
// correct view is the deepest surviving ancestor.
//
// The function is pure. Callers must run it against a re-fetched tree after
// every mutation rather than patching a local copy; the server's tree is
// the single source of truth.
func ReconcilePath(tree []*Node, priorIDs []uuid.UUID) []*Node {
	path := make([]*Node, 0, len(priorIDs))
	level := tree

	for _, id := range priorIDs {
		var found *Node
		for _, node := range level {
			if node.Type == NodeFolder && node.ID == id {
				found = node
				break
			}
		}
		if found == nil {
			break
		}
		path = append(path, found)
		level = found.Children
	}

	return path
}
