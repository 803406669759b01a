package mcts

import (
	"math"
	"math/rand"
)

// sampleGamma draws from a Gamma(shape, 1) distribution using the
// Marsaglia-Tsang method. No third-party statistics package appears
// anywhere in the retrieved pack (the closest, golang.org/x/exp, is not
// imported by any example repo), so this is one of the few pieces of the
// engine built directly on math/rand rather than a pack library; see
// DESIGN.md for the justification.
func sampleGamma(rng *rand.Rand, shape float64) float64 {
	if shape < 1 {
		// Boost by one and correct with a Uniform(0,1)^(1/shape) factor.
		u := rng.Float64()
		return sampleGamma(rng, shape+1) * math.Pow(u, 1/shape)
	}

	d := shape - 1.0/3.0
	c := 1.0 / math.Sqrt(9*d)

	for {
		x := rng.NormFloat64()
		v := 1 + c*x
		if v <= 0 {
			continue
		}
		v = v * v * v
		u := rng.Float64()
		x2 := x * x
		if u < 1-0.0331*x2*x2 {
			return d * v
		}
		if math.Log(u) < 0.5*x2+d*(1-v+math.Log(v)) {
			return d * v
		}
	}
}

// dirichlet draws a length-n sample from Dirichlet(alpha, ..., alpha) by
// normalizing n independent Gamma(alpha, 1) draws, the standard
// construction used by the reference implementation's computeDirichlet
// (original_source/src/cc/mcts.hpp).
func dirichlet(rng *rand.Rand, alpha float64, n int) []float64 {
	out := make([]float64, n)
	sum := 0.0
	for i := range out {
		out[i] = sampleGamma(rng, alpha)
		sum += out[i]
	}
	if sum <= 0 {
		// Degenerate case: fall back to a uniform split.
		for i := range out {
			out[i] = 1.0 / float64(n)
		}
		return out
	}
	for i := range out {
		out[i] /= sum
	}
	return out
}
