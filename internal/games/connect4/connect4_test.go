package connect4

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBoardHasSevenLegalColumns(t *testing.T) {
	s := New(nil)
	assert.Len(t, s.LegalActions(0), Width)
}

func TestHorizontalWinIsDetected(t *testing.T) {
	s := New(nil)
	// player 0 drops in columns 0,1,2,3; player 1 drops elsewhere between.
	moves := []int{0, 6, 1, 6, 2, 6, 3}
	for _, m := range moves {
		s.Apply(m)
	}
	assert.True(t, s.IsFinished())
	assert.Equal(t, 0, s.winner)
}

func TestDrawWhenBoardFillsWithoutAWin(t *testing.T) {
	s := New(nil)
	// Fill columns one at a time, but drop a single disc in column 4 before
	// columns 2 and 3, so that the player owning each column's bottom disc
	// runs 0,0,1,1,0,0,1 from column 0 to column 6. Players alternate every
	// ply, so colours alternate up each column (no vertical run), and that
	// bottom-row pattern leaves no run of three in any row or diagonal.
	order := []struct{ col, n int }{
		{0, 6}, {1, 6}, {4, 1}, {2, 6}, {3, 6}, {6, 6}, {4, 5}, {5, 6},
	}
	for _, step := range order {
		for i := 0; i < step.n; i++ {
			require.False(t, s.IsFinished())
			s.Apply(step.col)
		}
	}
	assert.True(t, s.IsFinished())
	assert.Equal(t, 2, s.winner)
}

func TestWpFallsBackToUniformWithoutClient(t *testing.T) {
	s := New(nil)
	actions := s.LegalActions(0)
	priors, value := s.Wp(0, actions)
	require.Len(t, priors, len(actions))
	for _, p := range priors {
		assert.Equal(t, 1.0, p)
	}
	assert.Equal(t, 0.0, value)
}

func TestCloneIsIndependent(t *testing.T) {
	s := New(nil)
	s.Apply(3)
	clone := s.Clone()
	clone.Apply(3)

	assert.NotEqual(t, s.heights[3], clone.heights[3])
}

func TestActionToString(t *testing.T) {
	s := New(nil)
	assert.Equal(t, "col2", s.ActionToString(2))
}
