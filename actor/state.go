package actor

import (
	"go.uber.org/atomic"

	"github.com/fat-complex/oxherd/fsm"
)

// State is the lifecycle state of an actor.
type State uint8

const (
	Created State = iota
	Initializing
	Starting
	Running
	Paused
	Stopping
	Stopped
	Terminating
	Terminated
)

func (s State) String() string {
	switch s {
	case Created:
		return "created"
	case Initializing:
		return "initializing"
	case Starting:
		return "starting"
	case Running:
		return "running"
	case Paused:
		return "paused"
	case Stopping:
		return "stopping"
	case Stopped:
		return "stopped"
	case Terminating:
		return "terminating"
	case Terminated:
		return "terminated"
	default:
		return "unknown"
	}
}

// lifecycleEvent drives the lifecycle machine.
type lifecycleEvent uint8

const (
	eventInitialize lifecycleEvent = iota
	eventStart
	eventStarted
	eventStop
	eventStopped
	eventPause
	eventResume
	eventTerminate
	eventTerminated
	eventFailure
)

// Lifecycle is the nine-state actor lifecycle machine. Events are dispatched
// only from within the owning actor's serial slot; the current state may be
// read from any goroutine. Unlisted (state, event) pairs are no-ops.
type Lifecycle struct {
	machine *fsm.Machine[State, lifecycleEvent]
	current *atomic.Int32
}

func NewLifecycle() *Lifecycle {
	machine := fsm.New[State, lifecycleEvent](Created).
		Add(Created, eventInitialize, Initializing).
		Add(Initializing, eventStart, Starting).
		Add(Stopped, eventStart, Starting).
		Add(Starting, eventStarted, Running).
		Add(Running, eventStop, Stopping).
		Add(Paused, eventStop, Stopping).
		Add(Running, eventPause, Paused).
		Add(Paused, eventResume, Running).
		Add(Stopping, eventStopped, Stopped).
		Add(Terminating, eventTerminated, Terminated).
		AddFromAny(eventTerminate, Terminating).
		AddFromAny(eventFailure, Stopping)
	return &Lifecycle{
		machine: machine,
		current: atomic.NewInt32(int32(Created)),
	}
}

func (l *Lifecycle) dispatch(e lifecycleEvent) bool {
	if !l.machine.Dispatch(e) {
		return false
	}
	l.current.Store(int32(l.machine.Current()))
	return true
}

// Current returns the current lifecycle state.
func (l *Lifecycle) Current() State {
	return State(l.current.Load())
}

// Is reports whether the actor is currently in the given state.
func (l *Lifecycle) Is(s State) bool { return l.Current() == s }

func (l *Lifecycle) IsRunning() bool    { return l.Is(Running) }
func (l *Lifecycle) IsPaused() bool     { return l.Is(Paused) }
func (l *Lifecycle) IsStopped() bool    { return l.Is(Stopped) }
func (l *Lifecycle) IsTerminated() bool { return l.Is(Terminated) }
