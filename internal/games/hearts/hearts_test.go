package hearts

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// orderedDeck returns a fixed-seed shuffle so every player's dealt hand
// mixes suits realistically; a purely sequential deck would hand each
// player exactly one suit under round-robin dealing (index%4 == suit),
// which is too degenerate to exercise the follow-suit rules below.
func orderedDeck() [NumCards]Card {
	var deck [NumCards]Card
	for i := range deck {
		deck[i] = Card(i)
	}
	rng := rand.New(rand.NewSource(11))
	rng.Shuffle(len(deck), func(i, j int) { deck[i], deck[j] = deck[j], deck[i] })
	return deck
}

func TestNewDealsThirteenCardsEach(t *testing.T) {
	s := New(orderedDeck())
	for p := 0; p < NumPlayers; p++ {
		assert.Len(t, s.hands[p], 13)
	}
}

func TestTwoOfClubsHolderLeads(t *testing.T) {
	s := New(orderedDeck())
	holdsTwoOfClubs := false
	for _, c := range s.hands[s.CurrentPlayer()] {
		if c == Card(0) {
			holdsTwoOfClubs = true
		}
	}
	assert.True(t, holdsTwoOfClubs)
}

func TestCannotLeadHeartsBeforeBroken(t *testing.T) {
	s := New(orderedDeck())
	legal := s.LegalActions(s.CurrentPlayer())
	for _, c := range legal {
		assert.NotEqual(t, 2, c.suit(), "hearts led before broken")
	}
}

func TestMustFollowSuitWhenPossible(t *testing.T) {
	s := New(orderedDeck())
	lead := s.LegalActions(s.CurrentPlayer())[0]
	s.Apply(lead)

	legal := s.LegalActions(s.CurrentPlayer())
	hasLeadSuit := false
	for _, c := range s.hands[s.CurrentPlayer()] {
		if c.suit() == lead.suit() {
			hasLeadSuit = true
		}
	}
	if hasLeadSuit {
		for _, c := range legal {
			assert.Equal(t, lead.suit(), c.suit())
		}
	}
}

func TestQueenOfSpadesPenaltyValue(t *testing.T) {
	queen := Card(4*10 + 3)
	assert.Equal(t, 3, queen.suit())
	assert.Equal(t, 10, queen.rank())
	assert.True(t, isPenalty(queen))
	assert.Equal(t, 13, penaltyValue(queen))
}

func TestValueRewardsFewerPenaltyPoints(t *testing.T) {
	s := New(orderedDeck())
	s.scores[0] = 0
	s.scores[1] = 26
	assert.InDelta(t, 1.0, s.Value(0), 1e-9)
	assert.InDelta(t, -1.0, s.Value(1), 1e-9)
}

func TestCloneDoesNotShareHands(t *testing.T) {
	s := New(orderedDeck())
	clone := s.Clone()
	before := len(clone.hands[0])
	s.Apply(s.LegalActions(s.CurrentPlayer())[0])
	require.Equal(t, before, len(clone.hands[0]))
}
