// Package routing is a reference Problem implementation for a
// single-agent traveling-salesman-style routing task: visit every vertex
// exactly once, minimizing total edge weight. Grounded on
// original_source/src/tsp.hpp's TSP_Vertex: getPlayer always returns 0
// (single-agent), UctC=1.4 (routing needs more exploration than the
// two-player game adapters, per the original's own tuning), and
// computeMCTSWin's linear normalization between a lower and upper tour
// length bound.
package routing

import (
	"strconv"

	"github.com/adamp87/mcts/pkg/mcts"
)

const uctC = 1.4
const dirichletAlpha = 0.3

// State is a partial tour over a fixed set of vertices with symmetric
// edge weights.
type State struct {
	weights []float64 // n*n row-major
	n       int
	tour    []int
	visited []bool
	lb, ub  float64
}

// New builds a routing problem over weights (n*n, row-major, weights[i*n+j]
// the cost of edge i-j), starting the tour at vertex 0. ub is set to twice
// the sum of each vertex's minimum outgoing edge, a cheap upper bound in
// the spirit of the original's data-file-supplied bound.
func New(weights []float64, n int) *State {
	s := &State{
		weights: weights,
		n:       n,
		tour:    []int{0},
		visited: make([]bool, n),
	}
	s.visited[0] = true
	s.ub = s.crudeUpperBound()
	return s
}

func (s *State) crudeUpperBound() float64 {
	total := 0.0
	for i := 0; i < s.n; i++ {
		min := -1.0
		for j := 0; j < s.n; j++ {
			if i == j {
				continue
			}
			w := s.weights[i*s.n+j]
			if min < 0 || w < min {
				min = w
			}
		}
		if min > 0 {
			total += min
		}
	}
	return total * 2
}

func (s *State) IsFinished() bool { return len(s.tour) == s.n }

// CurrentPlayer is always 0: routing is single-agent.
func (s *State) CurrentPlayer() int { return 0 }

func (s *State) LegalActions(int) []int {
	if s.IsFinished() {
		return nil
	}
	moves := make([]int, 0, s.n-len(s.tour))
	for v := 0; v < s.n; v++ {
		if !s.visited[v] {
			moves = append(moves, v)
		}
	}
	return moves
}

func (s *State) Apply(vertex int) {
	s.visited[vertex] = true
	s.tour = append(s.tour, vertex)
}

func (s *State) Wp(player int, actions []int) ([]float64, float64) {
	uniform := make([]float64, len(actions))
	for i := range uniform {
		uniform[i] = 1
	}
	return uniform, s.Value(player)
}

func (s *State) tourLength() float64 {
	sum := 0.0
	for i := 1; i < len(s.tour); i++ {
		sum += s.weights[s.tour[i-1]*s.n+s.tour[i]]
	}
	if len(s.tour) == s.n {
		sum += s.weights[s.tour[len(s.tour)-1]*s.n+s.tour[0]]
	}
	return sum
}

// Value linearly maps the current tour length into [-1, 1]: shorter
// tours score higher, mirroring computeMCTSWin's (ub-sum)/(ub-lb) but
// remapped from [0,1] to the signed range every other adapter uses.
func (s *State) Value(int) float64 {
	if s.ub <= s.lb {
		return 0
	}
	win := (s.ub - s.tourLength()) / (s.ub - s.lb)
	return 2*win - 1
}

func (s *State) MaxActions() int         { return s.n }
func (s *State) MaxChildPerNode() int    { return s.n }
func (s *State) UctC() float64           { return uctC }
func (s *State) DirichletAlpha() float64 { return dirichletAlpha }

func (s *State) StateTensor(int) []float32 {
	out := make([]float32, s.n)
	for i, v := range s.visited {
		if v {
			out[i] = 1
		}
	}
	return out
}

func (s *State) PolicyTensor(player int, pi []mcts.ActionProb[int]) []float32 {
	out := make([]float32, s.n)
	for _, ap := range pi {
		out[ap.Action] = float32(ap.Pi)
	}
	return out
}

func (s *State) ActionToString(vertex int) string { return strconv.Itoa(vertex) }

func (s *State) Clone() *State {
	clone := *s
	clone.tour = append([]int(nil), s.tour...)
	clone.visited = append([]bool(nil), s.visited...)
	return &clone
}
