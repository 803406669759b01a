// Package hearts is a reference Problem implementation for a simplified
// 4-player trick-taking Hearts game: standard 52-card deck, no passing
// phase, penalty cards are hearts (1 point each) and the queen of spades
// (13 points), first to lead has the two of clubs. Grounded on
// original_source/src/hearts.hpp for card/trick structure and
// original_source/src/mcts.hpp for the value convention, but the
// original's 28-bucket exponential-distribution-weighted score histogram
// is folded here into a direct linear normalization of total points to
// [-1, 1] — see DESIGN.md for why that weighting scheme doesn't survive
// the port. Shooting-the-moon is not scored specially (documented
// simplification, not a spec Non-goal).
package hearts

import "github.com/adamp87/mcts/pkg/mcts"

const (
	NumPlayers = 4
	NumCards   = 52
	uctC       = 1.0
	// Hearts has no natural branching-factor analogue to a game's board
	// size; DirichletAlpha follows the reference's tsp.hpp default for
	// problems without its own tuned constant.
	dirichletAlpha = 0.3
)

// Card is rank*4+suit, suit 0=clubs,1=diamonds,2=hearts,3=spades.
type Card uint8

func (c Card) suit() int { return int(c) % 4 }
func (c Card) rank() int { return int(c) / 4 }

func isPenalty(c Card) bool { return c.suit() == 2 || c == Card(4*10+3) } // hearts, or queen of spades

func penaltyValue(c Card) int {
	if c.suit() == 2 {
		return 1
	}
	if c == Card(4*10+3) {
		return 13
	}
	return 0
}

// State is one deal of Hearts.
type State struct {
	hands       [NumPlayers][]Card // remaining cards per player
	trick       []Card             // cards played so far this trick, in play order
	trickLeader int
	turn        int
	scores      [NumPlayers]int
	heartsBroken bool
	finished    bool
}

// New deals deck as given, round-robin (card i goes to player i%4),
// without shuffling it; a randomized deal comes from shuffling deck before
// calling New, since Problem itself does not own randomness beyond what
// the engine's rollout supplies.
func New(deck [NumCards]Card) *State {
	s := &State{}
	for i, c := range deck {
		p := i % NumPlayers
		s.hands[p] = append(s.hands[p], c)
	}
	for p := 0; p < NumPlayers; p++ {
		for _, c := range s.hands[p] {
			if c == Card(0) { // two of clubs: rank 0, suit 0
				s.trickLeader = p
				s.turn = p
			}
		}
	}
	return s
}

func (s *State) IsFinished() bool { return s.finished }

func (s *State) CurrentPlayer() int { return s.turn }

func (s *State) LegalActions(player int) []Card {
	hand := s.hands[player]
	if len(s.trick) == 0 {
		if !s.heartsBroken {
			if nonHearts := filterSuit(hand, 2, false); len(nonHearts) > 0 {
				return nonHearts
			}
		}
		return append([]Card(nil), hand...)
	}
	lead := s.trick[0].suit()
	var follow []Card
	for _, c := range hand {
		if c.suit() == lead {
			follow = append(follow, c)
		}
	}
	if len(follow) > 0 {
		return follow
	}
	return append([]Card(nil), hand...)
}

func (s *State) Apply(card Card) {
	hand := s.hands[s.turn]
	for i, c := range hand {
		if c == card {
			s.hands[s.turn] = append(hand[:i], hand[i+1:]...)
			break
		}
	}
	if isPenalty(card) {
		s.heartsBroken = true
	}
	s.trick = append(s.trick, card)

	if len(s.trick) < NumPlayers {
		s.turn = (s.turn + 1) % NumPlayers
		return
	}

	winner := s.trickWinner()
	for _, c := range s.trick {
		s.scores[winner] += penaltyValue(c)
	}
	s.trick = nil
	s.trickLeader = winner
	s.turn = winner

	if len(s.hands[0]) == 0 {
		s.finished = true
	}
}

func filterSuit(hand []Card, suit int, keep bool) []Card {
	var out []Card
	for _, c := range hand {
		if (c.suit() == suit) == keep {
			out = append(out, c)
		}
	}
	return out
}

func (s *State) trickWinner() int {
	lead := s.trick[0].suit()
	best := 0
	bestRank := -1
	for i, c := range s.trick {
		if c.suit() == lead && c.rank() > bestRank {
			bestRank = c.rank()
			best = i
		}
	}
	return (s.trickLeader + best) % NumPlayers
}

func (s *State) Wp(player int, actions []Card) ([]float64, float64) {
	uniform := make([]float64, len(actions))
	for i := range uniform {
		uniform[i] = 1
	}
	return uniform, s.Value(player)
}

// Value normalizes player's total penalty points (0-26) to [-1, 1],
// where fewer points (the goal in Hearts) maps to a higher value.
func (s *State) Value(player int) float64 {
	const maxPoints = 26.0
	return 1 - 2*float64(s.scores[player])/maxPoints
}

func (s *State) MaxActions() int         { return 13 }
func (s *State) MaxChildPerNode() int    { return 13 }
func (s *State) UctC() float64           { return uctC }
func (s *State) DirichletAlpha() float64 { return dirichletAlpha }

func (s *State) StateTensor(player int) []float32 {
	out := make([]float32, NumCards*2)
	for _, c := range s.hands[player] {
		out[c] = 1
	}
	for _, c := range s.trick {
		out[NumCards+int(c)] = 1
	}
	return out
}

func (s *State) PolicyTensor(player int, pi []mcts.ActionProb[Card]) []float32 {
	out := make([]float32, NumCards)
	for _, ap := range pi {
		out[ap.Action] = float32(ap.Pi)
	}
	return out
}

func (s *State) ActionToString(card Card) string {
	suits := "CDHS"
	ranks := "23456789TJQKA"
	return string(ranks[card.rank()]) + string(suits[card.suit()])
}

func (s *State) Clone() *State {
	clone := *s
	for p := range s.hands {
		clone.hands[p] = append([]Card(nil), s.hands[p]...)
	}
	clone.trick = append([]Card(nil), s.trick...)
	return &clone
}
