package mcts

// StopReason records why an Execute call returned, mirroring the teacher's
// StopReason bitmask (pkg/mcts/limiter.go) but reduced to the four ways
// spec's iteration-count driver can end.
type StopReason int

const (
	// StopIterations means the requested iteration budget was exhausted.
	StopIterations StopReason = iota
	// StopCancelled means the caller's context was cancelled mid-search.
	StopCancelled
	// StopNoLegalActions means the root had zero legal actions to begin
	// with, so Execute returned without running any iterations.
	StopNoLegalActions
	// StopSingleAction means the root had exactly one legal action; the
	// engine returns it after the single warm iteration, without spending
	// the rest of the budget.
	StopSingleAction
)

// Decision is the outcome of one Execute call: the chosen action, the
// resulting visit-count distribution over the root's children (for
// PolicyTensor / self-play sample emission), and bookkeeping the CLI
// driver and result writer consume.
type Decision[A Action] struct {
	Action     A
	Pi         []ActionProb[A]
	Iterations int
	StopReason StopReason
	Root       *Node[A]
}
