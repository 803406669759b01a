package mcts

import "time"

// VirtualLoss is subtracted from a node's W (alongside one extra visit on
// its N) while a goroutine is descending through it, and both are undone
// once that goroutine backpropagates, discouraging concurrent workers from
// piling onto the same branch.
// Grounded on the teacher's VirtualLoss constant (pkg/mcts/vars.go),
// generalized from int32 to float64 since spec's values are unbounded
// reals rather than the teacher's [0,1] outcome.
var VirtualLoss float64 = 1.0

// SetVirtualLoss overrides the default virtual loss magnitude.
func SetVirtualLoss(v float64) {
	if v >= 0 {
		VirtualLoss = v
	}
}

// SeedGeneratorFn produces the base seed for a search's per-goroutine
// random number generators. Overridable for deterministic tests, same
// pattern as the teacher's SeedGeneratorFn.
var SeedGeneratorFn func() int64 = func() int64 {
	return time.Now().UnixNano()
}

// SetSeedGeneratorFn overrides the default seed source.
func SetSeedGeneratorFn(f func() int64) {
	if f != nil {
		SeedGeneratorFn = f
	}
}
