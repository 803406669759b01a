package chess

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPositionHasTwentyLegalMoves(t *testing.T) {
	s := New()
	// standard opening position: 16 pawn moves (8 single + 8 double) + 4
	// knight moves = 20.
	assert.Len(t, s.LegalActions(0), 20)
}

func TestLegalMovesNeverLandOnAFriendlyPiece(t *testing.T) {
	s := New()
	for _, m := range s.LegalActions(0) {
		target := s.board[m.To]
		if !target.isEmpty() {
			assert.NotEqual(t, white, target.color())
		}
	}
}

func TestCapturingTheKingEndsTheGame(t *testing.T) {
	s := New()
	s.board = [64]Piece{}
	s.board[4] = king | white
	s.board[60] = king | black
	s.board[3] = queen | black // one square left of the white king
	s.turn = 1

	s.Apply(Move{From: 3, To: 4})
	assert.True(t, s.IsFinished())
	assert.Equal(t, 1, s.winner)
}

func TestPromotionAlwaysBecomesQueen(t *testing.T) {
	s := New()
	s.board = [64]Piece{}
	s.board[48] = pawn | white // a7
	s.turn = 0

	s.Apply(Move{From: 48, To: 56})
	assert.Equal(t, queen|white, s.board[56])
}

func TestValueIsMaterialRatioWhenUndecided(t *testing.T) {
	s := New()
	assert.Equal(t, 0.0, s.Value(0))
}

func TestActionToStringUsesAlgebraicSquares(t *testing.T) {
	s := New()
	assert.Equal(t, "e2e4", s.ActionToString(Move{From: 12, To: 28}))
}
