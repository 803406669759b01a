package mcts_test

import "github.com/adamp87/mcts/pkg/mcts"

// nimState is a tiny two-player Nim variant used across the engine test
// files: players alternately remove 1-3 stones from a shared pile, and
// whoever takes the last stone wins. It exists purely to exercise
// Engine[P,A] independently of any internal/games adapter.
type nimState struct {
	stones int
	turn   int // 0 or 1
	winner int // -1 none, else the winner
}

func newNim(stones int) *nimState { return &nimState{stones: stones, winner: -1} }

func (s *nimState) IsFinished() bool { return s.winner != -1 }

func (s *nimState) CurrentPlayer() int { return s.turn }

func (s *nimState) LegalActions(int) []int {
	if s.winner != -1 {
		return nil
	}
	n := s.stones
	if n > 3 {
		n = 3
	}
	actions := make([]int, n)
	for i := range actions {
		actions[i] = i + 1
	}
	return actions
}

func (s *nimState) Apply(take int) {
	s.stones -= take
	if s.stones <= 0 {
		s.winner = s.turn
		s.stones = 0
		return
	}
	s.turn = 1 - s.turn
}

func (s *nimState) Wp(player int, actions []int) ([]float64, float64) {
	uniform := make([]float64, len(actions))
	for i := range uniform {
		uniform[i] = 1
	}
	return uniform, s.Value(player)
}

func (s *nimState) Value(player int) float64 {
	switch s.winner {
	case player:
		return 1
	case -1:
		return 0
	default:
		return -1
	}
}

func (s *nimState) MaxActions() int         { return 3 }
func (s *nimState) MaxChildPerNode() int    { return 3 }
func (s *nimState) UctC() float64           { return 1.4 }
func (s *nimState) DirichletAlpha() float64 { return 0.5 }

func (s *nimState) StateTensor(int) []float32 { return []float32{float32(s.stones)} }

func (s *nimState) PolicyTensor(player int, pi []mcts.ActionProb[int]) []float32 {
	out := make([]float32, 4)
	for _, ap := range pi {
		out[ap.Action] = float32(ap.Pi)
	}
	return out
}

func (s *nimState) ActionToString(take int) string {
	return string(rune('0' + take))
}

func (s *nimState) Clone() *nimState {
	clone := *s
	return &clone
}
