package bench

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/adamp87/mcts/internal/games/connect4"
	"github.com/adamp87/mcts/pkg/mcts"
)

func TestVersusArenaPlaysEveryGameToCompletion(t *testing.T) {
	mcts.SetSeedGeneratorFn(func() int64 { return 7 })

	weak := &Contestant[*connect4.State, int]{
		Name:          "weak",
		Iterations:    16,
		Deterministic: true,
		Opts:          []mcts.Option[*connect4.State, int]{mcts.WithThreads[*connect4.State, int](1)},
	}
	strong := &Contestant[*connect4.State, int]{
		Name:          "strong",
		Iterations:    64,
		Deterministic: true,
		Opts:          []mcts.Option[*connect4.State, int]{mcts.WithThreads[*connect4.State, int](1)},
	}

	arena := NewVersusArena[*connect4.State, int](connect4.New(nil), weak, strong)
	arena.NGames = 4
	arena.NThreads = 2

	summary := arena.Run(nil)

	assert.Equal(t, 4, summary.TotalGames)
	assert.Equal(t, summary.TotalGames, summary.P1Wins+summary.P2Wins+summary.Draws)
}

func TestVersusArenaStatsStartAtZero(t *testing.T) {
	var stats VersusArenaStats
	assert.Equal(t, 0, stats.Total())
	assert.Equal(t, 0, stats.P1Wins())
}
