// Package actor implements the core of the runtime: supervised, serially
// dispatched actors exchanging typed messages on a shared worker pool.
package actor

import (
	"errors"

	"github.com/fat-complex/oxherd/internal/executor"
	"github.com/fat-complex/oxherd/log"
	"github.com/fat-complex/oxherd/message"
)

// ErrContextUnset reports access to an actor context before the system has
// installed one. User code cannot observe it from a correctly constructed
// actor.
var ErrContextUnset = errors.New("actor: context is not set")

// Actor is a serial message consumer bound to a strand on the system's
// worker pool. All mutation happens from within the strand; external
// interaction goes through Receive.
type Actor struct {
	id        ID
	name      string
	strand    *executor.Strand
	lifecycle *Lifecycle

	systemHandlers map[message.TypeID]func(m message.Message)
	dispatcher     *message.Dispatcher
	behavior       Behavior
	ctx            *Context
	logger         log.Logger
}

func newActor(pool *executor.Pool, name string, id ID, behavior Behavior, logger log.Logger) *Actor {
	a := &Actor{
		id:         id,
		name:       name,
		lifecycle:  NewLifecycle(),
		dispatcher: message.NewDispatcher(),
		behavior:   behavior,
		logger:     logger,
	}
	a.strand = executor.NewStrand(pool, func(item any) {
		a.processMessage(item.(message.Message))
	})
	a.initSystemHandlers()
	behavior.bind(a)
	return a
}

func (a *Actor) initSystemHandlers() {
	a.systemHandlers = map[message.TypeID]func(message.Message){
		message.TypeOf[GoStartActor]():      func(message.Message) { a.handleGoStart() },
		message.TypeOf[GoStopActor]():       func(message.Message) { a.handleGoStop() },
		message.TypeOf[GoPauseActor]():      func(message.Message) { a.handleGoPause() },
		message.TypeOf[GoResumeActor]():     func(message.Message) { a.handleGoResume() },
		message.TypeOf[GoTerminateActor]():  func(message.Message) { a.handleGoTerminate() },
		message.TypeOf[ActorFailureEvent](): a.handleFailureEvent,
	}
}

// Receive enqueues m into the actor's serial slot and returns immediately.
// The actor takes over the caller's reference. Deliveries after the actor
// has terminated, or after the system stopped, are discarded.
func (a *Actor) Receive(m message.Message) {
	err := a.strand.Post(m)
	switch {
	case err == nil:
	case errors.Is(err, executor.ErrDisposed) || errors.Is(err, executor.ErrStopped):
		message.Release(m)
	default:
		// enqueueing onto a live executor must not fail; there is no
		// recoverable program state past this point
		a.logger.Fatalf("actor %s/%d: failed to enqueue message type=%d: %v",
			a.name, a.id, m.TypeID(), err)
	}
}

// State returns the current lifecycle state.
func (a *Actor) State() State { return a.lifecycle.Current() }

// Lifecycle exposes the lifecycle predicates.
func (a *Actor) Lifecycle() *Lifecycle { return a.lifecycle }

func (a *Actor) ID() ID { return a.id }

func (a *Actor) Name() string { return a.name }

// Dispatcher returns the actor's user message dispatcher. Register handlers
// from within the actor's slot, typically in OnInitialize.
func (a *Actor) Dispatcher() *message.Dispatcher { return a.dispatcher }

// SetContext installs the actor's context. One-shot; the system calls it at
// construction.
func (a *Actor) SetContext(ctx *Context) {
	if a.ctx != nil {
		a.logger.Warnf("actor %s/%d: context already set", a.name, a.id)
		return
	}
	a.ctx = ctx
}

// Context returns the actor's context. It panics with ErrContextUnset when
// the context has not been installed.
func (a *Actor) Context() *Context {
	if a.ctx == nil {
		panic(ErrContextUnset)
	}
	return a.ctx
}

func (a *Actor) processMessage(m message.Message) {
	defer message.Release(m)

	if handler, ok := a.systemHandlers[m.TypeID()]; ok {
		handler(m)
		return
	}
	a.handleUserMessage(m)
}

// A single start command advances through every step that is legal from the
// current state, invoking each hook once per committed transition.
func (a *Actor) handleGoStart() {
	if a.lifecycle.Is(Created) {
		a.lifecycle.dispatch(eventInitialize)
		a.behavior.OnInitialize()
	}
	if a.lifecycle.Is(Initializing) || a.lifecycle.Is(Stopped) {
		a.lifecycle.dispatch(eventStart)
		a.behavior.OnStart()
	}
	if a.lifecycle.Is(Starting) {
		a.lifecycle.dispatch(eventStarted)
		a.behavior.OnStarted()
	}
}

func (a *Actor) handleGoStop() {
	if a.lifecycle.Is(Running) || a.lifecycle.Is(Paused) || a.lifecycle.Is(Starting) {
		a.lifecycle.dispatch(eventStop)
		a.behavior.OnStop()
	}
	if a.lifecycle.Is(Stopping) {
		a.lifecycle.dispatch(eventStopped)
		a.behavior.OnStopped()
	}
}

func (a *Actor) handleGoPause() {
	if a.lifecycle.Is(Running) {
		a.lifecycle.dispatch(eventPause)
		a.behavior.OnPause()
	}
}

func (a *Actor) handleGoResume() {
	if a.lifecycle.Is(Paused) {
		a.lifecycle.dispatch(eventResume)
		a.behavior.OnResume()
	}
}

func (a *Actor) handleGoTerminate() {
	if !a.lifecycle.IsTerminated() {
		a.lifecycle.dispatch(eventTerminate)
		a.behavior.OnTerminate()
	}
	if a.lifecycle.Is(Terminating) {
		a.lifecycle.dispatch(eventTerminated)
		a.behavior.OnTerminated()
		a.dropPending()
	}
}

// dropPending seals the mailbox of a terminated actor and releases whatever
// was still queued.
func (a *Actor) dropPending() {
	for _, item := range a.strand.Dispose() {
		if m, ok := item.(message.Message); ok {
			message.Release(m)
		}
	}
}

func (a *Actor) handleFailureEvent(m message.Message) {
	event := message.Cast[ActorFailureEvent](m)
	if event == nil || a.ctx == nil {
		return
	}
	a.ctx.handleChildFailure(event)
}

func (a *Actor) handleUserMessage(m message.Message) {
	if !a.lifecycle.IsRunning() {
		return
	}
	err := a.invokeBehaviour(m)
	if err == nil {
		return
	}

	a.lifecycle.dispatch(eventFailure)

	failure := message.New[ActorFailureEvent]()
	failure.ActorID = a.id
	failure.ActorName = a.name
	failure.Cause = err
	failure.FailedMessage = message.Retain(m)

	if a.ctx != nil && a.ctx.Parent() != nil {
		a.ctx.Parent().Receive(failure)
		return
	}
	a.logger.Errorf("actor %s/%d: behaviour failed with no supervisor: %v", a.name, a.id, err)
	message.Release(failure)
}

func (a *Actor) invokeBehaviour(m message.Message) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &PanicError{Value: r}
		}
	}()
	return a.behavior.Behaviour(m)
}
