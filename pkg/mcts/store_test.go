package mcts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStoreChildOrderAndCatchup(t *testing.T, store Store[int]) {
	root := store.Root()
	require.NotNil(t, root)
	assert.Same(t, root, store.Root(), "Root must be idempotent")

	for _, action := range []int{3, 1, 2} {
		store.AddChild(root, action)
	}

	children := store.Children(root)
	require.Len(t, children, 3)
	assert.Equal(t, 3, store.ChildCount(root))
	assert.Equal(t, []int{3, 1, 2}, []int{children[0].Action(), children[1].Action(), children[2].Action()})

	for _, c := range children {
		assert.Same(t, root, c.Parent())
	}
}

func TestOwnedStoreChildOrderAndCatchup(t *testing.T) {
	testStoreChildOrderAndCatchup(t, NewOwnedStore[int]())
}

func TestArrayStoreChildOrderAndCatchup(t *testing.T) {
	testStoreChildOrderAndCatchup(t, NewArrayStore[int](8, 0))
}

func TestLinkedStoreChildOrderAndCatchup(t *testing.T) {
	testStoreChildOrderAndCatchup(t, NewLinkedStore[int](8))
}

func TestArrayStorePanicsPastCapacity(t *testing.T) {
	store := NewArrayStore[int](8, 2)
	root := store.Root()
	store.AddChild(root, 1)
	store.AddChild(root, 2)

	assert.Panics(t, func() { store.AddChild(root, 3) })
}

func TestArrayStoreAllocatesAcrossSlabBoundaries(t *testing.T) {
	store := NewArrayStore[int](2, 0)
	root := store.Root()
	for i := 0; i < 5; i++ {
		store.AddChild(root, i)
	}
	assert.Len(t, store.slabs, 3)
	assert.Equal(t, 5, store.ChildCount(root))
}

func TestIDsAreUniqueAndMonotonic(t *testing.T) {
	store := NewOwnedStore[int]()
	root := store.Root()
	prev := root.ID()
	for i := 0; i < 10; i++ {
		child := store.AddChild(root, i)
		assert.Greater(t, child.ID(), prev)
		prev = child.ID()
	}
}
