package mcts

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNodeQIsZeroBeforeAnyVisit(t *testing.T) {
	n := newNode[int](0, nil, 5)
	assert.Equal(t, int64(0), n.N())
	assert.Equal(t, 0.0, n.Q())
}

func TestNodeAddValueIsConcurrencySafe(t *testing.T) {
	n := newNode[int](0, nil, 0)
	var wg sync.WaitGroup
	for i := 0; i < 200; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			n.addVisit()
			n.addValue(1.0)
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(200), n.N())
	assert.InDelta(t, 200.0, n.W(), 1e-9)
	assert.InDelta(t, 1.0, n.Q(), 1e-9)
}

func TestNodeExpansionGateAdmitsExactlyOneWinner(t *testing.T) {
	n := newNode[int](0, nil, 0)
	var wg sync.WaitGroup
	wins := 0
	var mu sync.Mutex

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if n.tryBeginExpand() {
				mu.Lock()
				wins++
				mu.Unlock()
				n.finishExpand()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, wins)
	assert.True(t, n.expanded())
}

func TestNodeSetPriorThenQAfterBackprop(t *testing.T) {
	root := newNode[int](0, nil, 0)
	child := newNode[int](1, root, 1)
	child.setPrior(0.5)

	assert.Equal(t, 0.5, child.P())

	child.addVisit()
	child.addValue(0.8)
	assert.InDelta(t, 0.8, child.Q(), 1e-9)
}
