package fsm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type state int

const (
	stateA state = iota
	stateB
	stateC
	stateD
)

type event int

const (
	eventAB event = iota
	eventBC
	eventCA
	eventAD
	eventDC
	eventReset
	eventUnknown
)

func newTestMachine() *Machine[state, event] {
	return New[state, event](stateA).
		Add(stateA, eventAB, stateB).
		Add(stateB, eventBC, stateC).
		Add(stateC, eventCA, stateA).
		Add(stateA, eventAD, stateD).
		Add(stateD, eventDC, stateC)
}

func TestInitialState(t *testing.T) {
	m := newTestMachine()
	assert.Equal(t, stateA, m.Current())
	assert.True(t, m.Is(stateA))
	assert.False(t, m.Is(stateB))
}

func TestTransitions(t *testing.T) {
	m := newTestMachine()

	require.True(t, m.Dispatch(eventAB))
	assert.Equal(t, stateB, m.Current())

	require.True(t, m.Dispatch(eventBC))
	assert.Equal(t, stateC, m.Current())

	require.True(t, m.Dispatch(eventCA))
	assert.Equal(t, stateA, m.Current())

	require.True(t, m.Dispatch(eventAD))
	assert.Equal(t, stateD, m.Current())

	require.True(t, m.Dispatch(eventDC))
	assert.Equal(t, stateC, m.Current())
}

func TestUnknownPairIsNoOp(t *testing.T) {
	m := newTestMachine()

	assert.False(t, m.Dispatch(eventBC)) // only legal from stateB
	assert.Equal(t, stateA, m.Current())

	assert.False(t, m.Dispatch(eventUnknown))
	assert.Equal(t, stateA, m.Current())
}

func TestTransitionLoop(t *testing.T) {
	m := newTestMachine()
	for i := 0; i < 10; i++ {
		require.True(t, m.Dispatch(eventAB))
		require.True(t, m.Dispatch(eventBC))
		require.True(t, m.Dispatch(eventCA))
	}
	assert.Equal(t, stateA, m.Current())
}

func TestWildcardTransition(t *testing.T) {
	m := newTestMachine().AddFromAny(eventReset, stateA)

	require.True(t, m.Dispatch(eventAB))
	require.True(t, m.Dispatch(eventReset))
	assert.Equal(t, stateA, m.Current())

	require.True(t, m.Dispatch(eventAD))
	require.True(t, m.Dispatch(eventReset))
	assert.Equal(t, stateA, m.Current())
}

func TestExactBeatsWildcard(t *testing.T) {
	m := New[state, event](stateA).
		Add(stateA, eventReset, stateB).
		AddFromAny(eventReset, stateD)

	require.True(t, m.Dispatch(eventReset))
	assert.Equal(t, stateB, m.Current())

	// from a state with no exact entry the wildcard applies
	require.True(t, m.Dispatch(eventReset))
	assert.Equal(t, stateD, m.Current())
}

func TestOverwriteTransition(t *testing.T) {
	m := New[state, event](stateA).
		Add(stateA, eventAB, stateB).
		Add(stateA, eventAB, stateC)

	require.True(t, m.Dispatch(eventAB))
	assert.Equal(t, stateC, m.Current())
}
