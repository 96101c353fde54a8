package actor

import (
	"go.uber.org/atomic"

	"github.com/fat-complex/oxherd/deadletter"
	"github.com/fat-complex/oxherd/message"
)

// SystemFacade is the system surface actors and references depend on.
type SystemFacade interface {
	// ActorRegistry returns a reference to the root registry actor.
	ActorRegistry() ActorRef
	// DispatchMessage sends m to the actor registered under id.
	DispatchMessage(id ID, m message.Message)
	// DeadLetters returns the system's dead-letter sink.
	DeadLetters() *deadletter.Sink
	// Stopped reports whether the system has been stopped.
	Stopped() bool
}

// ActorRef is a cheap, copyable handle addressing an actor by identity.
// Copies share the cached target, so a resolution through the registry
// benefits every copy. Safe for concurrent use.
type ActorRef struct {
	id     ID
	system SystemFacade
	cached *atomic.Pointer[Actor]
}

// NewRef builds a reference from a bare identifier; delivery resolves the
// target through the system registry on first use.
func NewRef(id ID, system SystemFacade) ActorRef {
	return ActorRef{id: id, system: system, cached: atomic.NewPointer[Actor](nil)}
}

// RefFor builds a reference with a warm cache for direct delivery.
func RefFor(target *Actor, system SystemFacade) ActorRef {
	return ActorRef{id: target.ID(), system: system, cached: atomic.NewPointer(target)}
}

// ID returns the identity the reference addresses.
func (r ActorRef) ID() ID { return r.id }

// Valid reports whether the cached actor handle is still deliverable.
func (r ActorRef) Valid() bool { return r.target() != nil }

func (r ActorRef) target() *Actor {
	if r.cached == nil {
		return nil
	}
	t := r.cached.Load()
	if t == nil || t.State() == Terminated {
		return nil
	}
	return t
}

// Tell delivers m to the referenced actor and returns immediately. When the
// cached handle has gone stale the delivery is re-posted through the system
// registry, refreshing the cache on resolution; with the system gone the
// message goes to the dead-letter sink.
func (r ActorRef) Tell(m message.Message) {
	if target := r.target(); target != nil {
		target.Receive(m)
		return
	}
	if r.system == nil || r.system.Stopped() {
		r.deadLetter(m, "system stopped")
		return
	}
	registry := r.system.ActorRegistry()
	if registry.id == r.id || !registry.Valid() {
		// the registry cannot resolve itself; re-posting would loop
		r.deadLetter(m, "registry unavailable")
		return
	}

	req := message.New[FindActorWithCallbackMessage]()
	req.ActorID = r.id
	req.Payload = m
	cached := r.cached
	system := r.system
	req.Callback = func(found ActorRef) {
		payload := req.TakePayload()
		if payload == nil {
			return
		}
		target := found.target()
		if target == nil {
			system.DeadLetters().Deposit(uint64(found.id), payload, "resolved actor expired")
			return
		}
		if cached != nil {
			cached.Store(target)
		}
		target.Receive(payload)
	}
	registry.Tell(req)
}

func (r ActorRef) deadLetter(m message.Message, reason string) {
	if r.system != nil {
		r.system.DeadLetters().Deposit(uint64(r.id), m, reason)
		return
	}
	message.Release(m)
}
