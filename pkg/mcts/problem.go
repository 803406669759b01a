package mcts

// Action is the label attached to a tree edge. It must be comparable so
// catchup (§4.9) can match a history entry against a node's existing
// children, and so a node's children can be checked for pairwise-distinct
// labels (invariant 6).
type Action comparable

// ActionProb pairs an action with the visit-derived probability the action
// selector assigned it, ready to hand to Problem.PolicyTensor.
type ActionProb[A Action] struct {
	Action A
	Pi     float64
}

// Problem is the narrow contract the engine is polymorphic over. P is the
// concrete state/rules type; it must be able to clone itself, since the
// engine deep-copies the current state before every iteration (§6.1) and
// never mutates the caller's original.
//
// A Problem instance doubles as the state it operates on: Apply mutates it
// in place, mirroring how the reference C++ implementation folded "problem"
// and "state" into one object (see original_source/src/chess.hpp,
// connect4.hpp, hearts.hpp, tsp.hpp).
type Problem[P any, A Action] interface {
	// IsFinished reports whether the current state is terminal.
	IsFinished() bool

	// CurrentPlayer returns whose turn it is at the current state.
	CurrentPlayer() int

	// LegalActions returns every rule-respecting next action for forPlayer,
	// in the order that becomes child insertion order at this state's node.
	LegalActions(forPlayer int) []A

	// Apply advances the state by playing action. The engine only calls
	// this on its own per-iteration clone, never on the caller's state.
	Apply(action A)

	// Wp returns the expansion priors (parallel to actions, summing to 1)
	// and the scalar value for the state, from the searching player's
	// perspective. Problems without a priors service must return P[i]=1
	// for every action and a score-based value.
	Wp(player int, actions []A) (priors []float64, value float64)

	// Value is the fallback scalar used at a rollout's terminal or
	// depth-capped state, same range and sign convention as Wp's value.
	Value(player int) float64

	// MaxActions is a static upper bound on LegalActions' length.
	MaxActions() int

	// MaxChildPerNode is a static upper bound on a node's child count;
	// for most problems this equals MaxActions.
	MaxChildPerNode() int

	// UctC is the exploration constant used by both PUCT and UCB1.
	UctC() float64

	// DirichletAlpha is the root-noise concentration parameter.
	DirichletAlpha() float64

	// StateTensor projects the current state into a flat feature vector
	// for the priors/value service request and for self-play samples.
	StateTensor(player int) []float32

	// PolicyTensor projects a visit-count distribution over actions into
	// a fixed-length training target tensor.
	PolicyTensor(player int, pi []ActionProb[A]) []float32

	// ActionToString renders an action for the result writer.
	ActionToString(action A) string

	// Clone returns a state that shares no mutable memory with the
	// receiver. The engine calls this once per iteration.
	Clone() P
}

// PriorsClient is the optional priors/value network endpoint (§6.2), as a
// per-player dial target. Nothing in this module calls Endpoint: the
// engine never talks to a priors service, and pkg/priors.Dial takes the
// endpoint string directly; a Problem's own Wp (connect4's, for instance)
// calls the dialed pkg/priors client.
type PriorsClient interface {
	// Endpoint returns the dial target for this player's priors service,
	// or the sentinel "0" to skip the network call entirely.
	Endpoint(player int) string
}
