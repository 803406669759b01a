// Package accel defines the optional batch-rollout accelerator contract:
// a way for a Problem to hand a whole batch of leaf states to a GPU or
// remote inference service in one call instead of evaluating them one at
// a time on the goroutine that reached each leaf. Wiring this in is
// opportunistic — a full slot never blocks the caller, since a search
// goroutine that can't get a batch slot should just fall back to its own
// local evaluation rather than stall waiting for a batch to fill.
package accel

import "context"

// Evaluator batches a slice of state tensors into one priors/value call.
// Implementations are expected to be safe for concurrent use.
type Evaluator interface {
	// EvaluateBatch returns priors (parallel to states, and to each
	// state's own action count) and values, one row per input state.
	EvaluateBatch(ctx context.Context, states [][]float32) (priors [][]float64, values []float64, err error)
}

// Batcher dispatches batches of states to an Evaluator while bounding how
// many batches are in flight at once, following the bounded worker-pool
// pattern in christopherWilliams98-risk-agent/searcher/mcts.go's
// channel-buffered iterate/countdown goroutines. Each TryBatchRollout call
// evaluates exactly the states it is given, in one EvaluateBatch call;
// requests from different goroutines are not merged into a shared batch,
// and the size given to NewBatcher is stored but not consulted by
// TryBatchRollout. A goroutine that calls TryBatchRollout
// when no batch slot is free gets ok=false immediately and should fall
// back to evaluating its own leaf locally — this accelerator is a
// throughput optimization, never a correctness dependency.
type Batcher struct {
	eval    Evaluator
	size    int
	slotSem chan struct{}
}

// NewBatcher constructs a Batcher that dispatches to eval, holding at most
// `concurrency` batches in flight at once. size is clamped to at least 1
// and stored; TryBatchRollout does not use it.
func NewBatcher(eval Evaluator, size, concurrency int) *Batcher {
	if size < 1 {
		size = 1
	}
	if concurrency < 1 {
		concurrency = 1
	}
	return &Batcher{
		eval:    eval,
		size:    size,
		slotSem: make(chan struct{}, concurrency),
	}
}

// TryBatchRollout attempts to evaluate states as one batch without
// blocking the caller. ok is false when every in-flight batch slot is
// already taken; the caller should evaluate locally instead of waiting.
func (b *Batcher) TryBatchRollout(ctx context.Context, states [][]float32) (priors [][]float64, values []float64, ok bool, err error) {
	select {
	case b.slotSem <- struct{}{}:
	default:
		return nil, nil, false, nil
	}
	defer func() { <-b.slotSem }()

	priors, values, err = b.eval.EvaluateBatch(ctx, states)
	if err != nil {
		return nil, nil, true, err
	}
	return priors, values, true, nil
}

// NoopEvaluator is the CPU default: EvaluateBatch returns nil priors, nil
// values and a nil error for every batch. A Batcher wrapping it still
// reports ok=true, so a caller sees empty results rather than a refusal.
type NoopEvaluator struct{}

func (NoopEvaluator) EvaluateBatch(context.Context, [][]float32) ([][]float64, []float64, error) {
	return nil, nil, nil
}
