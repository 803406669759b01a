package mcts

import (
	"math"
	"math/rand"
)

// Sample is one training example emitted by a stochastic decision: the
// state features and the visit-derived policy target, ready to hand to
// pkg/selfplay's sink client. Deterministic decisions never emit samples
// (there is nothing to learn from an argmax with no exploration signal).
type Sample struct {
	State  []float32
	Policy []float32
	Player int
}

// SelectDeterministic returns the action with the highest visit share,
// breaking ties by keeping the first candidate in pi's insertion order.
// Grounded on original_source/src/cc/mcts.hpp's selectMoveDeterministic, a
// plain strict most_visit < child->N argmax with no random tie-break.
func SelectDeterministic[A Action](pi []ActionProb[A]) A {
	best := pi[0]
	for _, ap := range pi[1:] {
		if ap.Pi > best.Pi {
			best = ap
		}
	}
	return best.Action
}

// SelectStochastic samples an action from the visit distribution raised
// to 1/temperature, matching the reference implementation's
// selectMoveStochastic. temperature <= 0 degenerates to a deterministic
// argmax. Returns the chosen action and the sample to emit to the
// self-play sink, built from state/policy tensors the Problem projects.
func SelectStochastic[P Problem[P, A], A Action](rng *rand.Rand, state P, player int, pi []ActionProb[A], temperature float64) (A, Sample) {
	sample := Sample{
		State:  state.StateTensor(player),
		Policy: state.PolicyTensor(player, pi),
		Player: player,
	}
	if temperature <= 0 {
		return SelectDeterministic(pi), sample
	}

	weights := make([]float64, len(pi))
	total := 0.0
	for i, ap := range pi {
		w := ap.Pi
		if temperature != 1 {
			w = math.Pow(w, 1/temperature)
		}
		weights[i] = w
		total += w
	}

	action := pi[len(pi)-1].Action
	if total > 0 {
		target := rng.Float64() * total
		cum := 0.0
		for i, w := range weights {
			cum += w
			if target <= cum {
				action = pi[i].Action
				break
			}
		}
	}
	return action, sample
}
