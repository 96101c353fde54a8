package actor

import (
	"github.com/fat-complex/oxherd/internal/executor"
	"github.com/fat-complex/oxherd/log"
	"github.com/fat-complex/oxherd/message"
	"github.com/fat-complex/oxherd/supervision"
)

// childInfo binds a child actor to its supervision strategy and the factory
// that recreates it on restart.
type childInfo struct {
	actor    *Actor
	strategy supervision.Strategy
	factory  func() Behavior
}

// Context is the parent-side view of an actor: its place in the supervision
// tree and the registry of its children. Children are owned exclusively by
// their parent's context; the root registry holds only non-owning
// references.
//
// The child map is mutated only from within the owning actor's serial slot.
type Context struct {
	self   *Actor
	parent *Actor
	system SystemFacade
	pool   *executor.Pool
	logger log.Logger

	children map[ID]*childInfo
}

func newContext(self, parent *Actor, system SystemFacade, pool *executor.Pool, logger log.Logger) *Context {
	return &Context{
		self:     self,
		parent:   parent,
		system:   system,
		pool:     pool,
		logger:   logger,
		children: make(map[ID]*childInfo),
	}
}

// Self returns the actor this context belongs to.
func (c *Context) Self() *Actor { return c.self }

// Parent returns the supervising actor, or nil at the root.
func (c *Context) Parent() *Actor { return c.parent }

// System returns the owning system facade.
func (c *Context) System() SystemFacade { return c.system }

// SpawnChild creates a supervised child actor with a fresh identifier and
// registers it with the root registry. The factory must produce a fresh
// Behavior with the same construction arguments every time it is called; it
// is stored and reused on restart. The child is not started.
func (c *Context) SpawnChild(name string, strategy supervision.Strategy, factory func() Behavior) ActorRef {
	child := c.createChild(name, factory())
	c.children[child.id] = &childInfo{actor: child, strategy: strategy, factory: factory}
	c.register(child)
	c.logger.Debugf("actor %s/%d: spawned child %s/%d", c.self.name, c.self.id, child.name, child.id)
	return RefFor(child, c.system)
}

func (c *Context) createChild(name string, behavior Behavior) *Actor {
	child := newActor(c.pool, name, nextID(), behavior, c.logger)
	child.SetContext(newContext(child, c.self, c.system, c.pool, c.logger))
	return child
}

// handleChildFailure routes a failure event from child C through the
// supervision strategy installed for C. An unknown child, or a child with no
// strategy, escalates.
func (c *Context) handleChildFailure(event *ActorFailureEvent) {
	info, ok := c.children[event.ActorID]
	if !ok || info.strategy == nil {
		c.escalate(event)
		return
	}

	failure := &supervision.Failure{
		ActorID:   uint64(event.ActorID),
		ActorName: event.ActorName,
		Cause:     event.Cause,
		Message:   event.FailedMessage,
	}
	directive := info.strategy.Decide(failure)
	c.logger.Debugf("actor %s/%d: child %s/%d failed (%v), directive=%v",
		c.self.name, c.self.id, event.ActorName, event.ActorID, event.Cause, directive)

	switch directive {
	case supervision.Resume:
		info.actor.Receive(message.New[GoResumeActor]())
	case supervision.Restart:
		c.restartChild(info)
	case supervision.Stop:
		info.actor.Receive(message.New[GoStopActor]())
	case supervision.Escalate:
		c.escalate(event)
	}
}

// escalate re-emits the failure up the parent chain, naming self and
// carrying the received event as the failed message. At the root the event
// goes to the dead-letter sink.
func (c *Context) escalate(event *ActorFailureEvent) {
	if c.parent == nil {
		if c.system != nil {
			c.system.DeadLetters().Deposit(uint64(event.ActorID), message.Retain(event), "failure escalated past root")
		}
		return
	}
	escalation := message.New[ActorFailureEvent]()
	escalation.ActorID = c.self.id
	escalation.ActorName = c.self.name
	escalation.Cause = event.Cause
	escalation.FailedMessage = message.Retain(event)
	c.parent.Receive(escalation)
}

// restartChild terminates the failed child and installs a fresh instance
// built by the stored factory: same name and construction arguments, new
// identifier. The replacement is re-registered with the root registry; the
// old identifier is retired.
func (c *Context) restartChild(info *childInfo) {
	old := info.actor
	old.Receive(message.New[GoTerminateActor]())
	delete(c.children, old.id)
	c.unregister(old.id)

	fresh := c.createChild(old.name, info.factory())
	c.children[fresh.id] = &childInfo{actor: fresh, strategy: info.strategy, factory: info.factory}
	c.register(fresh)
	c.logger.Infof("actor %s restarted: id %d -> %d", old.name, old.id, fresh.id)
}

func (c *Context) register(child *Actor) {
	registry, ok := c.registryRef()
	if !ok {
		return
	}
	msg := message.New[RegisterActorMessage]()
	msg.ActorID = child.id
	msg.Ref = RefFor(child, c.system)
	registry.Tell(msg)
}

func (c *Context) unregister(id ID) {
	registry, ok := c.registryRef()
	if !ok {
		return
	}
	msg := message.New[UnregisterActorMessage]()
	msg.ActorID = id
	registry.Tell(msg)
}

func (c *Context) registryRef() (ActorRef, bool) {
	if c.system == nil {
		return ActorRef{}, false
	}
	registry := c.system.ActorRegistry()
	return registry, registry.id != 0
}
