// Package connect4 is a reference Problem implementation for the search
// engine: gravity-drop Connect Four on a 7-wide, 6-tall grid. Grounded on
// original_source/src/connect4.hpp, whose UctC and DirichletAlpha
// constants this adapter reuses; MaxActions is set to 7 (the number of
// columns a player can actually drop into on any given turn) rather than
// the original's more conservative MaxActions=6*7=42 (a fixed-array
// capacity bound the C++ engine happened to size off the board's cell
// count) — see DESIGN.md.
package connect4

import (
	"fmt"

	"github.com/adamp87/mcts/pkg/mcts"
	"github.com/adamp87/mcts/pkg/priors"
)

const (
	Width  = 7
	Height = 6

	uctC           = 1.0
	dirichletAlpha = 1.0 / 7.0
)

// cell values: 0 empty, 1 player one, 2 player two.
type Board [Width * Height]uint8

// State is a Connect Four position. It satisfies mcts.Problem[*State, int]
// where an action is the column index dropped into.
type State struct {
	board   Board
	heights [Width]int8
	turn    int // 0 or 1
	winner  int // -1 none, 0/1 a player, 2 draw
	client  *priors.Client
}

// New starts an empty board. client may be nil, or a disabled client
// (priors.Dial with the "0" sentinel), to skip the network priors call.
func New(client *priors.Client) *State {
	return &State{winner: -1, client: client}
}

func (s *State) IsFinished() bool { return s.winner != -1 }

func (s *State) CurrentPlayer() int { return s.turn }

func (s *State) LegalActions(int) []int {
	if s.winner != -1 {
		return nil
	}
	actions := make([]int, 0, Width)
	for c := 0; c < Width; c++ {
		if s.heights[c] < Height {
			actions = append(actions, c)
		}
	}
	return actions
}

func (s *State) Apply(action int) {
	row := s.heights[action]
	s.board[int(row)*Width+action] = uint8(s.turn + 1)
	s.heights[action]++

	if s.checkWin(action, int(row)) {
		s.winner = s.turn
	} else if s.boardFull() {
		s.winner = 2
	}
	s.turn = 1 - s.turn
}

func (s *State) boardFull() bool {
	for c := 0; c < Width; c++ {
		if s.heights[c] < Height {
			return false
		}
	}
	return true
}

func (s *State) checkWin(col, row int) bool {
	player := s.board[row*Width+col]
	dirs := [4][2]int{{1, 0}, {0, 1}, {1, 1}, {1, -1}}
	for _, d := range dirs {
		count := 1
		count += s.countDir(col, row, d[0], d[1], player)
		count += s.countDir(col, row, -d[0], -d[1], player)
		if count >= 4 {
			return true
		}
	}
	return false
}

func (s *State) countDir(col, row, dc, dr int, player uint8) int {
	count := 0
	c, r := col+dc, row+dr
	for c >= 0 && c < Width && r >= 0 && r < Height && s.board[r*Width+c] == player {
		count++
		c += dc
		r += dr
	}
	return count
}

// Wp asks the priors/value service for expansion priors and a scalar
// value, falling back to a uniform prior and s.Value(player) (0 for an
// undecided board, ±1 once it is decided) when no service is wired in or
// the service call fails, matching spec's "problems without a
// priors service must return P[i]=1" contract.
func (s *State) Wp(player int, actions []int) ([]float64, float64) {
	if s.client != nil && s.client.Enabled() {
		resp, err := s.client.Evaluate(s.StateTensor(player))
		if err == nil && len(resp.Priors) == len(actions) {
			return resp.Priors, resp.Value
		}
	}
	uniform := make([]float64, len(actions))
	for i := range uniform {
		uniform[i] = 1
	}
	return uniform, s.Value(player)
}

// Value returns +1/-1/0 from player's perspective once the game ends, and
// 0 for a non-terminal state reached only through a depth-capped rollout.
func (s *State) Value(player int) float64 {
	switch s.winner {
	case player:
		return 1
	case 1 - player:
		return -1
	case 2:
		return 0
	default:
		return 0
	}
}

func (s *State) MaxActions() int        { return Width }
func (s *State) MaxChildPerNode() int   { return Width }
func (s *State) UctC() float64          { return uctC }
func (s *State) DirichletAlpha() float64 { return dirichletAlpha }

// StateTensor is a one-hot-per-cell-per-player encoding, Width*Height*2
// long, from player's perspective (player's own stones first).
func (s *State) StateTensor(player int) []float32 {
	out := make([]float32, Width*Height*2)
	me := uint8(player + 1)
	for i, v := range s.board {
		if v == 0 {
			continue
		}
		if v == me {
			out[i] = 1
		} else {
			out[Width*Height+i] = 1
		}
	}
	return out
}

// PolicyTensor projects a visit distribution onto a length-Width vector
// indexed by column, zero for columns that were not legal at this state.
func (s *State) PolicyTensor(player int, pi []mcts.ActionProb[int]) []float32 {
	out := make([]float32, Width)
	for _, ap := range pi {
		out[ap.Action] = float32(ap.Pi)
	}
	return out
}

func (s *State) ActionToString(action int) string {
	return fmt.Sprintf("col%d", action)
}

// Clone deep-copies the state; board and heights are plain arrays so a
// value copy already shares no memory with the receiver.
func (s *State) Clone() *State {
	clone := *s
	return &clone
}
