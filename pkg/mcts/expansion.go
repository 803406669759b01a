package mcts

import "runtime"

// expand generates node's children the first time it is reached, using
// double-checked locking so exactly one goroutine ever calls the
// Problem's LegalActions/Wp for a given node: the fast path checks
// node.expanded() before touching the mutex-free CAS gate, and the CAS
// only succeeds from the pending state, so a goroutine that wins it knows
// no other goroutine has started or finished the expansion. Concurrent
// losers spin on
// node.expanding() rather than blocking on a mutex, matching the
// teacher's Selection loop (pkg/mcts/search.go, since removed in favor of
// this file, which generalizes it to a Problem-shaped priors call).
//
// state is the state AT node (post-Apply of every action from the root),
// already advanced by the caller.
func expand[P Problem[P, A], A Action](store Store[A], node *Node[A], state P) {
	if node.expanded() {
		return
	}
	if !node.tryBeginExpand() {
		for node.expanding() {
			runtime.Gosched()
		}
		return
	}
	defer node.finishExpand()

	if state.IsFinished() {
		node.setTerminal(true)
		return
	}

	player := state.CurrentPlayer()
	actions := state.LegalActions(player)
	if len(actions) == 0 {
		node.setTerminal(true)
		return
	}

	priors, _ := state.Wp(player, actions)
	for i, a := range actions {
		child := store.AddChild(node, a)
		child.setPrior(priors[i])
	}
}
