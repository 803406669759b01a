package mcts

// backpropagate walks from leaf to the root, adding one visit and value
// to every node on the path and undoing the virtual loss selection
// applied on the way down. Unlike the teacher's DefaultBackprop
// (pkg/mcts/strategy.go, deleted) this never flips value across levels:
// spec's W is already signed from the searching player's perspective by
// construction (Problem.Wp/Value always take an explicit player
// argument), so no alternating negation is needed or correct here.
func backpropagate[A Action](leaf *Node[A], value float64) {
	for node := leaf; node != nil; node = node.Parent() {
		node.addVisit()
		node.addValue(value)
		if node.Parent() != nil {
			undoVirtualLoss(node)
		}
	}
}

// applyVirtualLoss and undoVirtualLoss bracket a single goroutine's
// descent through node during selection, discouraging a second goroutine
// from picking the same branch before the first one backpropagates.
func applyVirtualLoss[A Action](node *Node[A]) {
	node.addVisit()
	node.addValue(-VirtualLoss)
}

func undoVirtualLoss[A Action](node *Node[A]) {
	node.n.Add(-1)
	node.addValue(VirtualLoss)
}
