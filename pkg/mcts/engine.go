package mcts

import (
	"context"
	"math/rand"
	"sync"
	"sync/atomic"
)

// Option configures an Engine at construction time. Grounded on
// christopherWilliams98-risk-agent's searcher/mcts.go functional-options
// pattern (Option func(*MCTS), WithDuration, WithEpisodes, ...), adapted
// from duration/episode budgets to spec's iteration-count budget.
type Option[P Problem[P, A], A Action] func(*Engine[P, A])

// WithThreads sets how many goroutines share the iteration budget.
// Values below 1 are clamped to 1.
func WithThreads[P Problem[P, A], A Action](n int) Option[P, A] {
	return func(e *Engine[P, A]) {
		if n < 1 {
			n = 1
		}
		e.threads = n
	}
}

// WithMaxRolloutDepth bounds how many random plies the rollout phase
// plays past a freshly expanded leaf before falling back to
// Problem.Value. Zero disables rollout, trusting Wp's value outright.
func WithMaxRolloutDepth[P Problem[P, A], A Action](depth int) Option[P, A] {
	return func(e *Engine[P, A]) { e.maxRolloutDepth = depth }
}

// WithDirichletEps sets the root-noise mixing weight (0 disables noise).
func WithDirichletEps[P Problem[P, A], A Action](eps float64) Option[P, A] {
	return func(e *Engine[P, A]) { e.dirichletEps = eps }
}

// WithSeed pins the base seed for every goroutine's random source,
// overriding SeedGeneratorFn for this Engine only. Needed for
// deterministic self-play sample generation and for tests.
func WithSeed[P Problem[P, A], A Action](seed int64) Option[P, A] {
	return func(e *Engine[P, A]) { e.seed, e.seedSet = seed, true }
}

// WithStore lets the caller pick a storage layout other than the default
// OwnedStore. ArrayStore and LinkedStore are single-threaded; pairing one
// of them with WithThreads(>1) is a caller error the Engine does not
// try to detect, matching the reference implementation's assumption that
// the caller picks a tree type appropriate to its execution model.
func WithStore[P Problem[P, A], A Action](store Store[A]) Option[P, A] {
	return func(e *Engine[P, A]) { e.store = store }
}

// Engine runs iterations of catchup/selection+expansion/rollout/
// backpropagation against a Problem and hands back a Decision. It is the
// generalization of the teacher's MCTS[T,S,R] engine type
// (pkg/mcts/mcts.go, deleted) to spec's Problem[P,A] contract.
type Engine[P Problem[P, A], A Action] struct {
	store           Store[A]
	root            *Node[A]
	threads         int
	maxRolloutDepth int
	dirichletEps    float64
	seed            int64
	seedSet         bool
}

// New constructs an Engine with an owned-pointer store by default.
func New[P Problem[P, A], A Action](opts ...Option[P, A]) *Engine[P, A] {
	e := &Engine[P, A]{
		threads:         1,
		maxRolloutDepth: 0,
		dirichletEps:    0.25,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.store == nil {
		e.store = NewOwnedStore[A]()
	}
	e.root = e.store.Root()
	return e
}

// Store exposes the engine's storage layout, mainly so callers can feed
// Decision.Root into WriteResults after Execute returns.
func (e *Engine[P, A]) Store() Store[A] { return e.store }

// Catchup relocates the engine's root to the child reached by action;
// sibling subtrees stay in the store but are no longer searched. See
// catchup() for the off-tree case,
// which attaches a freshly created node rather than losing position.
func (e *Engine[P, A]) Catchup(action A) {
	e.root = catchup(e.store, e.root, action)
}

// Execute runs up to n iterations against state (which the Engine deep
// clones per iteration via Problem.Clone, never mutating the caller's
// copy) and returns the resulting Decision. ctx cancellation stops the
// search early, reporting StopCancelled.
func (e *Engine[P, A]) Execute(ctx context.Context, state P, n int) Decision[A] {
	player := state.CurrentPlayer()

	if state.IsFinished() {
		return Decision[A]{StopReason: StopNoLegalActions, Root: e.root}
	}
	legal := state.LegalActions(player)
	if len(legal) == 0 {
		return Decision[A]{StopReason: StopNoLegalActions, Root: e.root}
	}

	// Ensure the root itself is expanded before fanning out, so every
	// worker sees the same set of first-level children and dirichlet
	// noise (applied once, below) is visible to all of them.
	expand[P, A](e.store, e.root, state)

	baseSeed := SeedGeneratorFn()
	if e.seedSet {
		baseSeed = e.seed
	}
	rootRng := rand.New(rand.NewSource(baseSeed))
	applyDirichletNoise(rootRng, e.store.Children(e.root), state.DirichletAlpha(), e.dirichletEps)

	// A single-threaded warm iteration always runs first, mirroring
	// original_source/src/cc/mcts.hpp::execute, which calls policy()
	// and backprop() unconditionally before ever checking whether the
	// tree collapsed to one child. Only after this iteration has run
	// does a lone remaining child short-circuit the rest of the budget.
	e.iterate(state.Clone(), player, rootRng)

	var completed atomic.Int64
	completed.Store(1)

	if e.store.ChildCount(e.root) == 1 {
		only := e.store.Children(e.root)[0]
		action := only.Action()
		return Decision[A]{
			Action:     action,
			Pi:         []ActionProb[A]{{Action: action, Pi: 1}},
			Iterations: int(completed.Load()),
			StopReason: StopSingleAction,
			Root:       e.root,
		}
	}

	var cancelled atomic.Bool
	var wg sync.WaitGroup

	remaining := int64(n) - 1
	var claimed atomic.Int64

	worker := func(threadID int) {
		defer wg.Done()
		rng := rand.New(rand.NewSource(baseSeed + int64(threadID) + 1))
		for {
			if claimed.Add(1) > remaining {
				return
			}
			select {
			case <-ctx.Done():
				cancelled.Store(true)
				return
			default:
			}
			clone := state.Clone()
			e.iterate(clone, player, rng)
			completed.Add(1)
		}
	}

	for t := 0; t < e.threads; t++ {
		wg.Add(1)
		go worker(t)
	}
	wg.Wait()

	best := selectBestChild(e.store.Children(e.root))
	pi := visitDistribution(e.store.Children(e.root))

	reason := StopIterations
	if cancelled.Load() {
		reason = StopCancelled
	}
	return Decision[A]{
		Action:     best.Action(),
		Pi:         pi,
		Iterations: int(completed.Load()),
		StopReason: reason,
		Root:       e.root,
	}
}

// iterate runs one selection/expansion/rollout/backpropagation cycle
// starting at the engine's root against a private state clone. It follows
// the shape of the teacher's Selection (pkg/mcts/search.go, deleted):
// descend through already-expanded nodes via the selection policy, then
// expand the first not-yet-expanded node reached if its N is above zero.
// Each selection step applies virtual loss, which adds one to the chosen
// child's N, so a node reached by descent always passes that check and is
// expanded on its first arrival; the iteration then steps into one
// uniformly random child of it and evaluates that child by rollout.
func (e *Engine[P, A]) iterate(state P, rootPlayer int, rng *rand.Rand) {
	node := e.root
	for node.expanded() {
		children := e.store.Children(node)
		if len(children) == 0 {
			break
		}
		var next *Node[A]
		if hasUniformPriors(children) {
			next = selectChildUCB1(node, children, state.UctC())
		} else {
			next = selectChild(node, children, state.UctC())
		}
		applyVirtualLoss(next)
		state.Apply(next.Action())
		node = next
	}

	if node.N() > 0 && !node.Terminal() {
		expand[P, A](e.store, node, state)
		if children := e.store.Children(node); len(children) > 0 {
			next := children[rng.Intn(len(children))]
			applyVirtualLoss(next)
			state.Apply(next.Action())
			node = next
		}
	}

	priorValue := 0.0
	if !node.Terminal() {
		player := state.CurrentPlayer()
		_, priorValue = state.Wp(rootPlayer, state.LegalActions(player))
	}
	value := rollout[P, A](state, rootPlayer, priorValue, e.maxRolloutDepth, rng)

	backpropagate(node, value)
}

// hasUniformPriors reports whether every child carries the same prior,
// the signal that the Problem never wired a priors service and PUCT
// should degrade to plain UCB1 (spec's UCB1 fallback).
func hasUniformPriors[A Action](children []*Node[A]) bool {
	if len(children) == 0 {
		return true
	}
	first := children[0].P()
	for _, c := range children[1:] {
		if c.P() != first {
			return false
		}
	}
	return true
}

func selectBestChild[A Action](children []*Node[A]) *Node[A] {
	best := children[0]
	for _, c := range children[1:] {
		if c.N() > best.N() {
			best = c
		}
	}
	return best
}

func visitDistribution[A Action](children []*Node[A]) []ActionProb[A] {
	total := int64(0)
	for _, c := range children {
		total += c.N()
	}
	out := make([]ActionProb[A], len(children))
	for i, c := range children {
		pi := 0.0
		if total > 0 {
			pi = float64(c.N()) / float64(total)
		}
		out[i] = ActionProb[A]{Action: c.Action(), Pi: pi}
	}
	return out
}
