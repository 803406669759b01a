// Command mctsctl drives one search decision against the connect4
// reference Problem from the command line, per spec §6.5. Flag layout and
// cobra usage follow jinterlante1206-AleutianLocal's cmd/aleutian
// (cmd.Flags().GetString/GetInt style), while the engine plumbing and
// colored summary line come from the teacher, IlikeChooros-go-mcts (whose
// go.mod declares muesli/termenv for exactly this kind of console output).
package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/muesli/termenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/adamp87/mcts/internal/games/connect4"
	"github.com/adamp87/mcts/pkg/mcts"
	"github.com/adamp87/mcts/pkg/priors"
	"github.com/adamp87/mcts/pkg/selfplay"
)

var (
	iterations      int
	deterministic   bool
	seed            int64
	portPriors      string
	portSink        string
	writeTree       bool
	workDir         string
	maxRolloutDepth int
	threads         int
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	if err := rootCmd.Execute(); err != nil {
		log.Fatal().Err(err).Msg("mctsctl failed")
	}
}

var rootCmd = &cobra.Command{
	Use:   "mctsctl",
	Short: "Run a single MCTS decision against the connect4 reference problem",
	RunE:  runSearch,
}

func init() {
	flags := rootCmd.Flags()
	flags.IntVar(&iterations, "iterations", 10000, "iteration budget for the decision")
	flags.BoolVar(&deterministic, "deterministic", true, "select the most-visited action instead of sampling")
	flags.Int64Var(&seed, "seed", 0, "base RNG seed (0 picks a time-based seed)")
	flags.StringVar(&portPriors, "port-priors", "0", "priors/value service endpoint, or 0 to disable")
	flags.StringVar(&portSink, "port-sink", "0", "self-play sample sink endpoint, or 0 to disable")
	flags.BoolVar(&writeTree, "write-tree", false, "dump the search tree as CSV to work-dir")
	flags.StringVar(&workDir, "work-dir", ".", "directory for --write-tree output")
	flags.IntVar(&maxRolloutDepth, "max-rollout-depth", 0, "random-playout depth past a freshly expanded leaf")
	flags.IntVar(&threads, "threads", 1, "search goroutines sharing the iteration budget")
}

func runSearch(cmd *cobra.Command, args []string) error {
	priorsClient, err := priors.Dial(portPriors, 5*time.Second)
	if err != nil {
		return fmt.Errorf("connect priors service: %w", err)
	}
	defer priorsClient.Close()

	sinkClient, err := selfplay.Dial(portSink, 5*time.Second)
	if err != nil {
		return fmt.Errorf("connect self-play sink: %w", err)
	}
	defer sinkClient.Close()

	state := connect4.New(priorsClient)

	opts := []mcts.Option[*connect4.State, int]{
		mcts.WithThreads[*connect4.State, int](threads),
		mcts.WithMaxRolloutDepth[*connect4.State, int](maxRolloutDepth),
	}
	if seed != 0 {
		opts = append(opts, mcts.WithSeed[*connect4.State, int](seed))
	}
	engine := mcts.New(opts...)

	log.Info().Int("iterations", iterations).Bool("deterministic", deterministic).Msg("starting search")

	decision := engine.Execute(context.Background(), state, iterations)
	if decision.StopReason == mcts.StopNoLegalActions {
		return fmt.Errorf("run search: %w", mcts.ErrNoLegalActions)
	}

	rng := seededRand()
	var chosen int
	if deterministic {
		chosen = mcts.SelectDeterministic(decision.Pi)
	} else {
		var sample mcts.Sample
		chosen, sample = mcts.SelectStochastic[*connect4.State, int](rng, state, state.CurrentPlayer(), decision.Pi, 1.0)
		if sinkClient.Enabled() {
			if err := sinkClient.Send(sample.State, sample.Player, sample.Policy, 0); err != nil {
				log.Warn().Err(err).Msg("self-play sample rejected by sink")
			}
		}
	}

	line := termenv.String(fmt.Sprintf("chose column %d after %d iterations (%s)",
		chosen, decision.Iterations, stopReasonString(decision.StopReason))).Foreground(termenv.ANSIGreen)
	fmt.Println(line)

	if writeTree {
		path := filepath.Join(workDir, "tree.csv")
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("open %s: %w", path, err)
		}
		defer f.Close()

		filteredPath := filepath.Join(workDir, "tree_filtered.csv")
		ff, err := os.Create(filteredPath)
		if err != nil {
			return fmt.Errorf("open %s: %w", filteredPath, err)
		}
		defer ff.Close()

		searchingPlayer := state.CurrentPlayer()
		history := []int{chosen}
		players := []int{searchingPlayer}
		maxIter := float64(decision.Iterations)
		if err := mcts.WriteResults[int](f, ff, engine.Store(), decision.Root, searchingPlayer, history, players, maxIter, state.ActionToString); err != nil {
			return fmt.Errorf("write tree: %w", err)
		}
		log.Info().Str("path", path).Str("filtered", filteredPath).Msg("wrote search tree")
	}

	return nil
}

// seededRand backs the client-side action selection (SelectDeterministic /
// SelectStochastic), independent of the per-worker RNGs the Engine seeds
// internally for tree search itself.
func seededRand() *rand.Rand {
	s := seed
	if s == 0 {
		s = mcts.SeedGeneratorFn()
	}
	return rand.New(rand.NewSource(s))
}

func stopReasonString(r mcts.StopReason) string {
	switch r {
	case mcts.StopIterations:
		return "iterations exhausted"
	case mcts.StopCancelled:
		return "cancelled"
	case mcts.StopNoLegalActions:
		return "no legal actions"
	case mcts.StopSingleAction:
		return "single legal action"
	default:
		return "unknown"
	}
}
