package actor

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/rs/xid"
	"go.uber.org/atomic"
	"go.uber.org/multierr"

	"github.com/fat-complex/oxherd/deadletter"
	"github.com/fat-complex/oxherd/internal/executor"
	"github.com/fat-complex/oxherd/log"
	"github.com/fat-complex/oxherd/message"
)

// RegistryName is the well-known name of the root registry actor.
const RegistryName = "system/actor-registry"

// System owns the shared worker pool, the root registry and the dead-letter
// sink, and acts as the facade the rest of the runtime depends on.
type System struct {
	name       string
	instanceID xid.ID

	pool        *executor.Pool
	registry    *Actor
	registryRef ActorRef
	deadLetters *deadletter.Sink
	logger      log.Logger
	stopped     atomic.Bool
}

var _ SystemFacade = (*System)(nil)

type config struct {
	threadCount int
	logger      log.Logger
}

// Option configures a System.
type Option func(*config)

// WithThreadCount sets the number of worker threads. Zero is treated as one;
// unset defaults to the hardware concurrency hint.
func WithThreadCount(n int) Option {
	return func(c *config) {
		if n < 1 {
			n = 1
		}
		c.threadCount = n
	}
}

// WithLogger replaces the default logger.
func WithLogger(logger log.Logger) Option {
	return func(c *config) { c.logger = logger }
}

func (c *config) validate(name string) error {
	var err error
	if name == "" {
		err = multierr.Append(err, errors.New("actor system name must not be empty"))
	}
	if c.logger == nil {
		err = multierr.Append(err, errors.New("actor system logger must not be nil"))
	}
	return err
}

// NewSystem constructs a running actor system: worker pool up, root registry
// started. The name is informational and appears in diagnostics only.
func NewSystem(name string, opts ...Option) (*System, error) {
	cfg := &config{
		threadCount: runtime.NumCPU(),
		logger:      log.DefaultLogger,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if err := cfg.validate(name); err != nil {
		return nil, fmt.Errorf("actor system config: %w", err)
	}

	s := &System{
		name:       name,
		instanceID: xid.New(),
	}
	s.logger = cfg.logger.With("system", name, "instance", s.instanceID.String())
	s.pool = executor.NewPool(cfg.threadCount, s.logger)
	s.deadLetters = deadletter.NewSink(s.logger)
	s.initServices()

	s.logger.Infof("actor system %q started with %d workers", name, s.pool.Workers())
	return s, nil
}

func (s *System) initServices() {
	s.registry = s.createActor(RegistryName, NewRegistry(s.logger))
	s.registryRef = RefFor(s.registry, s)
	s.registry.Receive(message.New[GoStartActor]())
}

// Name returns the informational system name.
func (s *System) Name() string { return s.name }

// CreateActor instantiates behavior as a root-level actor with a fresh
// identifier, installs a root context and registers the actor with the root
// registry. The actor is not started; send GoStartActor to bring it to
// Running.
func (s *System) CreateActor(name string, behavior Behavior) *Actor {
	a := s.createActor(name, behavior)
	msg := message.New[RegisterActorMessage]()
	msg.ActorID = a.ID()
	msg.Ref = RefFor(a, s)
	s.registryRef.Tell(msg)
	return a
}

func (s *System) createActor(name string, behavior Behavior) *Actor {
	a := newActor(s.pool, name, nextID(), behavior, s.logger)
	a.SetContext(newContext(a, nil, s, s.pool, s.logger))
	return a
}

// ActorRegistry returns a reference to the root registry actor.
func (s *System) ActorRegistry() ActorRef { return s.registryRef }

// DeadLetters returns the system's dead-letter sink.
func (s *System) DeadLetters() *deadletter.Sink { return s.deadLetters }

// DispatchMessage sends m to the actor registered under id. Unknown
// identifiers are silently absorbed; the message is released.
func (s *System) DispatchMessage(id ID, m message.Message) {
	req := message.New[FindActorWithCallbackMessage]()
	req.ActorID = id
	req.Payload = m
	req.Callback = func(ref ActorRef) {
		if payload := req.TakePayload(); payload != nil {
			ref.Tell(payload)
		}
	}
	s.registry.Receive(req)
}

// Stop releases the pool's work queue, cancels all not-yet-started tasks and
// joins the worker threads. Messages already delivered to an actor may or
// may not be observed. Idempotent.
func (s *System) Stop() {
	if !s.stopped.CompareAndSwap(false, true) {
		return
	}
	s.logger.Infof("actor system %q stopping", s.name)
	s.pool.Stop()
}

// Stopped reports whether Stop has been called.
func (s *System) Stopped() bool { return s.stopped.Load() }
