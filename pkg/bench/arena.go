// Package bench runs many games between two Engine configurations and
// tallies results, generalized from the teacher's pkg/bench VersusArena
// (versus_arena.go, deleted) off mcts.MCTS[T,S,R] onto spec's
// Problem[P,A]/Engine[P,A] contract. Restricted to two-player zero-sum
// problems, since a win/loss/draw tally needs Value's sign convention to
// mean something at game end; Hearts (4-player) is not a valid Position
// here.
package bench

import (
	"context"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/adamp87/mcts/pkg/mcts"
)

// VersusMatchResult is the outcome of one game from Player1's perspective.
type VersusMatchResult int

const (
	VersusPl1Win VersusMatchResult = 1
	VersusPl2Win VersusMatchResult = -1
	VersusDraw   VersusMatchResult = 0
)

// Position is the subset of mcts.Problem an arena game needs, named the
// way the teacher named its own PositionLike constraint.
type Position[P any, A mcts.Action] interface {
	mcts.Problem[P, A]
}

// VersusArenaStats accumulates match results across every worker, mirroring
// the teacher's VersusArenaStats (atomic counters, no locking needed since
// each field is only ever incremented).
type VersusArenaStats struct {
	p1Wins atomic.Uint32
	p2Wins atomic.Uint32
	draws  atomic.Uint32
}

func (s *VersusArenaStats) Total() int  { return s.P1Wins() + s.P2Wins() + s.Draws() }
func (s *VersusArenaStats) P1Wins() int { return int(s.p1Wins.Load()) }
func (s *VersusArenaStats) P2Wins() int { return int(s.p2Wins.Load()) }
func (s *VersusArenaStats) Draws() int  { return int(s.draws.Load()) }

// VersusSummaryInfo is the tally handed to Listener.Summary once every
// worker finishes.
type VersusSummaryInfo struct {
	TotalGames int
	P1Wins     int
	P2Wins     int
	Draws      int
	Workers    int
}

// Listener observes arena progress. DefaultListener implements every method
// as a no-op, matching the teacher's DefaultListener.
type Listener interface {
	OnStart()
	OnGameStart()
	OnFinishedGame(workerID, finishedGames int)
	OnFinishedWork(workerID int, stats VersusSummaryInfo)
	Summary(info VersusSummaryInfo)
	OnEnd()
	Clone() Listener
	SetRow(row int)
}

// DefaultListener discards every event.
type DefaultListener struct{ row int }

func (d *DefaultListener) OnStart()                                   {}
func (d *DefaultListener) OnGameStart()                               {}
func (d *DefaultListener) OnFinishedGame(int, int)                    {}
func (d *DefaultListener) OnFinishedWork(int, VersusSummaryInfo)      {}
func (d *DefaultListener) Summary(VersusSummaryInfo)                  {}
func (d *DefaultListener) OnEnd()                                     {}
func (d *DefaultListener) SetRow(row int)                             { d.row = row }
func (d *DefaultListener) Clone() Listener                            { return &DefaultListener{} }

// Contestant is one side of a versus match: an Engine configuration plus
// how many iterations it spends per move and whether it plays
// deterministically. Two Contestants built from different Option sets
// (e.g. WithThreads, or a hand-rolled Problem.UctC override) are how the
// arena answers "does config A beat config B".
type Contestant[P Position[P, A], A mcts.Action] struct {
	Name          string
	Iterations    int
	Deterministic bool
	Opts          []mcts.Option[P, A]
}

func (c *Contestant[P, A]) newEngine() *mcts.Engine[P, A] {
	return mcts.New(c.Opts...)
}

// VersusArena plays NGames between Player1 and Player2 over NThreads
// workers, picking at random which contestant moves first in each game,
// and tallies results.
type VersusArena[P Position[P, A], A mcts.Action] struct {
	VersusArenaStats
	Player1  *Contestant[P, A]
	Player2  *Contestant[P, A]
	NGames   int
	NThreads int
	Position P

	wg  sync.WaitGroup
	ctx context.Context
}

// NewVersusArena builds an arena seeded from position, defaulting to a
// single-threaded 100-game match.
func NewVersusArena[P Position[P, A], A mcts.Action](position P, p1, p2 *Contestant[P, A]) *VersusArena[P, A] {
	return &VersusArena[P, A]{
		Player1:  p1,
		Player2:  p2,
		NGames:   100,
		NThreads: 1,
		Position: position,
		ctx:      context.Background(),
	}
}

// WithContext lets the caller cancel an in-progress arena early.
func (va *VersusArena[P, A]) WithContext(ctx context.Context) *VersusArena[P, A] {
	va.ctx = ctx
	return va
}

// Run plays every game to completion, spreading NGames as evenly as
// possible across NThreads workers, and blocks until they all finish.
func (va *VersusArena[P, A]) Run(listener Listener) VersusSummaryInfo {
	if listener == nil {
		listener = &DefaultListener{}
	}
	listener.OnStart()

	perWorker := va.NGames / va.NThreads
	rest := va.NGames % va.NThreads

	var finished atomic.Int64
	for i := 0; i < va.NThreads; i++ {
		n := perWorker
		if rest > 0 {
			n++
			rest--
		}
		va.wg.Add(1)
		l := listener.Clone()
		l.SetRow(i)
		go va.worker(i, n, l, &finished)
	}
	va.wg.Wait()

	summary := VersusSummaryInfo{
		TotalGames: va.Total(),
		P1Wins:     va.P1Wins(),
		P2Wins:     va.P2Wins(),
		Draws:      va.Draws(),
		Workers:    va.NThreads,
	}
	listener.Summary(summary)
	listener.OnEnd()
	return summary
}

func (va *VersusArena[P, A]) worker(id, nGames int, listener Listener, finished *atomic.Int64) {
	defer va.wg.Done()
	rng := rand.New(rand.NewSource(time.Now().UnixNano() + int64(id)))

	for g := 0; g < nGames; g++ {
		select {
		case <-va.ctx.Done():
			return
		default:
		}

		p1First := rng.Intn(2) == 0
		result := va.playGame(listener, id, p1First, rng)

		switch result {
		case VersusDraw:
			va.draws.Add(1)
		case VersusPl1Win:
			va.p1Wins.Add(1)
		case VersusPl2Win:
			va.p2Wins.Add(1)
		}
		listener.OnFinishedGame(id, int(finished.Add(1)))
	}
}

// playGame runs one game to a terminal state and reports it from Player1's
// perspective, regardless of which contestant actually moved first.
func (va *VersusArena[P, A]) playGame(listener Listener, workerID int, p1First bool, rng *rand.Rand) VersusMatchResult {
	listener.OnGameStart()

	state := va.Position.Clone()
	e1, e2 := va.Player1.newEngine(), va.Player2.newEngine()

	first, second := va.Player1, va.Player2
	firstEngine, secondEngine := e1, e2
	if !p1First {
		first, second = va.Player2, va.Player1
		firstEngine, secondEngine = e2, e1
	}

	for !state.IsFinished() {
		mover, engine := first, firstEngine
		if state.CurrentPlayer() == 1 {
			mover, engine = second, secondEngine
		}

		decision := engine.Execute(va.ctx, state, mover.Iterations)
		var action A
		if mover.Deterministic {
			action = mcts.SelectDeterministic(decision.Pi)
		} else {
			action, _ = mcts.SelectStochastic[P, A](rng, state, state.CurrentPlayer(), decision.Pi, 1.0)
		}

		e1.Catchup(action)
		e2.Catchup(action)
		state.Apply(action)
	}

	value := state.Value(0)
	switch {
	case value > 0:
		if p1First {
			return VersusPl1Win
		}
		return VersusPl2Win
	case value < 0:
		if p1First {
			return VersusPl2Win
		}
		return VersusPl1Win
	default:
		return VersusDraw
	}
}
