package actor

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fat-complex/oxherd/message"
)

func TestRefDeliversDirectlyWithWarmCache(t *testing.T) {
	system := newTestSystem(t)
	b := &trackingBehavior{}
	a := system.CreateActor("direct", b)
	startActor(t, a)

	ref := RefFor(a, system)
	require.True(t, ref.Valid())
	assert.Equal(t, a.ID(), ref.ID())

	ref.Tell(message.New[userMessage]())
	require.Eventually(t, func() bool { return b.behaviourCalls.Load() == 1 }, 2*time.Second, time.Millisecond)
}

func TestRefResolvesThroughRegistryAndCaches(t *testing.T) {
	system := newTestSystem(t)
	b := &trackingBehavior{}
	a := system.CreateActor("resolvable", b)
	startActor(t, a)

	ref := NewRef(a.ID(), system)
	assert.False(t, ref.Valid(), "cold reference has no cached target")

	ref.Tell(message.New[userMessage]())
	require.Eventually(t, func() bool { return b.behaviourCalls.Load() == 1 }, 2*time.Second, time.Millisecond)

	// resolution warmed the shared cache
	require.Eventually(t, ref.Valid, 2*time.Second, time.Millisecond)

	// the second delivery goes direct
	ref.Tell(message.New[userMessage]())
	require.Eventually(t, func() bool { return b.behaviourCalls.Load() == 2 }, 2*time.Second, time.Millisecond)
}

func TestRefCopiesShareResolvedCache(t *testing.T) {
	system := newTestSystem(t)
	b := &trackingBehavior{}
	a := system.CreateActor("shared", b)
	startActor(t, a)

	ref := NewRef(a.ID(), system)
	copied := ref

	ref.Tell(message.New[userMessage]())
	require.Eventually(t, copied.Valid, 2*time.Second, time.Millisecond)
}

func TestRefToTerminatedActorIsInvalid(t *testing.T) {
	system := newTestSystem(t)
	a := system.CreateActor("shortlived", &trackingBehavior{})
	ref := RefFor(a, system)
	startActor(t, a)

	require.True(t, ref.Valid())
	a.Receive(message.New[GoTerminateActor]())
	require.Eventually(t, func() bool { return !ref.Valid() }, 2*time.Second, time.Millisecond)
}

func TestRefUnknownIDGoesNowhere(t *testing.T) {
	type ghostMessage struct {
		message.Base
		N int
	}

	system := newTestSystem(t)

	ref := NewRef(ID(888888), system)
	ref.Tell(message.New[ghostMessage]())
	waitIdle(t, system.registry)

	// the registry miss absorbed the message and released it
	stats := message.StatsOf[ghostMessage]()
	assert.Equal(t, stats.Allocations, stats.Deallocations)
}

func TestRefAfterSystemStopDeadLetters(t *testing.T) {
	system := newTestSystem(t)
	a := system.CreateActor("grounded", &trackingBehavior{})
	ref := NewRef(a.ID(), system)

	system.Stop()

	ref.Tell(message.New[userMessage]())
	assert.Equal(t, int64(1), system.DeadLetters().Size())

	letters := system.DeadLetters().Drain()
	require.Len(t, letters, 1)
	assert.Equal(t, uint64(a.ID()), letters[0].ActorID)
	message.Release(letters[0].Message)
}

func TestZeroRefTellIsSafe(t *testing.T) {
	var ref ActorRef
	assert.False(t, ref.Valid())
	assert.NotPanics(t, func() { ref.Tell(message.New[userMessage]()) })
}
