package mcts

// catchup relocates the search root to the child matching the action the
// caller reports actually happened, so a fresh Execute call reuses the
// statistics accumulated for that subtree instead of discarding the whole
// tree. Grounded on original_source/src/cc/mcts.hpp's catchup(), which
// walks the same match-by-action logic before every non-first move.
//
// If none of node's existing children carry the requested action (the
// caller's action is off-tree, or the store never got a chance to see it —
// e.g. an opponent played a move outside the engine's own search),
// catchup attaches a freshly created child (N=0, W=0, P=0) and descends
// into it, exactly as original_source's catchup() calls
// TTree::addNode(node, history[time]) on a miss rather than resetting to
// the tree's root. catchup never returns nil.
func catchup[A Action](store Store[A], node *Node[A], action A) *Node[A] {
	for _, child := range store.Children(node) {
		if child.Action() == action {
			return child
		}
	}
	return store.AddChild(node, action)
}
