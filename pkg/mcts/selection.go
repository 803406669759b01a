package mcts

import (
	"math"
	"math/rand"
)

// puctEpsilon avoids division by zero for an unvisited child (n = N + ε),
// matching original_source/src/cc/mcts.hpp's getUCB, which folds the same
// small constant into its denominator rather than special-casing N==0.
const puctEpsilon = 1e-8

// selectChild picks the child to descend into from an expanded node
// (the sub-root included) using PUCT. Ported from the teacher's
// UCB1.Select (pkg/mcts/ucb.go) but generalized to a prior-weighted
// formula, and — unlike ucb.go and strategy.go — this file never flips the
// value across levels: W is already signed from the searching player's
// perspective, since rollout evaluates every leaf for that player and
// backpropagate adds the value unchanged at every level.
//
// PUCT(child) = q + uctC*p*sqrtN/(1+n), sqrtN = sqrt(max(N(parent), 1)),
// n = N(child) + ε
//
// Every child, visited or not, is scored by the same formula: an unvisited
// child's q is 0, so it is differentiated from another unvisited child only
// by prior P; only when the priors are equal too does the first child in
// insertion order win. The max(N(parent), 1) clamp matters
// at the sub-root itself: a freshly expanded, never-visited parent has
// N==0, and without the clamp sqrtN would be 0, zeroing the whole PUCT u
// term and collapsing every child back to insertion-order tie-breaking on
// their shared q=0 — exactly the bug this clamp exists to prevent.
func selectChild[A Action](parent *Node[A], children []*Node[A], uctC float64) *Node[A] {
	sqrtParentN := math.Sqrt(math.Max(float64(parent.N()), 1))

	best := children[0]
	bestScore := math.Inf(-1)

	for _, child := range children {
		n := float64(child.N()) + puctEpsilon
		score := child.Q() + uctC*child.P()*sqrtParentN/(1+n)
		if score > bestScore {
			bestScore = score
			best = child
		}
	}
	return best
}

// selectChildUCB1 is the exploration-only fallback used when the Problem
// declares no priors (every P equal), matching the teacher's plain UCB1
// formula (pkg/mcts/ucb.go) rather than PUCT's prior-weighted one. Like
// selectChild, every child is scored uniformly with n = N + ε so a tie
// between unvisited children breaks on insertion order rather than on
// whichever one the scan reaches first for an unrelated reason.
func selectChildUCB1[A Action](parent *Node[A], children []*Node[A], uctC float64) *Node[A] {
	lnParentN := math.Log(math.Max(float64(parent.N()), 1))

	best := children[0]
	bestScore := math.Inf(-1)

	for _, child := range children {
		n := float64(child.N()) + puctEpsilon
		score := child.Q() + uctC*math.Sqrt(lnParentN/n)
		if score > bestScore {
			bestScore = score
			best = child
		}
	}
	return best
}

// applyDirichletNoise mixes Dirichlet(alpha) noise into the sub-root's
// child priors, in place, weighted by eps. Grounded on
// original_source/src/cc/mcts.hpp's computeDirichlet. Execute calls it at
// the start of every call, right after making sure the sub-root is
// expanded, whether that expansion happened now or in an earlier search.
func applyDirichletNoise[A Action](rng *rand.Rand, children []*Node[A], alpha, eps float64) {
	if len(children) == 0 || alpha <= 0 || eps <= 0 {
		return
	}
	noise := dirichlet(rng, alpha, len(children))
	for i, child := range children {
		child.p = (1-eps)*child.p + eps*noise[i]
	}
}
