package actor

import (
	"fmt"

	"github.com/fat-complex/oxherd/message"
)

// Behavior is the user-supplied half of an actor: the lifecycle hooks and
// the user message handler. Implementations embed Base, which provides the
// hooks as no-ops and carries the binding to the running actor; Behaviour is
// the one mandatory method.
//
// Every method runs within the actor's serial slot, so implementations may
// read and mutate actor-local state without synchronisation. Hooks observe
// the lifecycle state after the transition has been committed.
type Behavior interface {
	binder

	OnInitialize()
	OnStart()
	OnStarted()
	OnStop()
	OnStopped()
	OnPause()
	OnResume()
	OnTerminate()
	OnTerminated()

	// Behaviour handles a user message. It is invoked only while the actor
	// is Running. A non-nil error, or a panic, is reported to the parent as
	// an ActorFailureEvent.
	Behaviour(m message.Message) error
}

type binder interface {
	bind(a *Actor)
}

// Base is the mandatory embed for Behavior implementations. Its hook methods
// do nothing; override the ones you need.
type Base struct {
	actor *Actor
}

func (b *Base) bind(a *Actor) { b.actor = a }

// Self returns the runtime actor this behavior is bound to.
func (b *Base) Self() *Actor { return b.actor }

func (b *Base) OnInitialize() {}
func (b *Base) OnStart()      {}
func (b *Base) OnStarted()    {}
func (b *Base) OnStop()       {}
func (b *Base) OnStopped()    {}
func (b *Base) OnPause()      {}
func (b *Base) OnResume()     {}
func (b *Base) OnTerminate()  {}
func (b *Base) OnTerminated() {}

// PanicError wraps a panic recovered from a Behaviour invocation.
type PanicError struct {
	Value any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("behaviour panic: %v", e.Value)
}
