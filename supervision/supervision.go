// Package supervision defines how a parent actor reacts to a child failure.
package supervision

import (
	"github.com/fat-complex/oxherd/message"
)

// Directive is the outcome of a supervision decision.
type Directive int

const (
	// Resume delivers a resume command to the failing child; its state is
	// kept.
	Resume Directive = iota
	// Restart terminates the failing child and replaces it with a fresh
	// instance built from the same construction arguments.
	Restart
	// Stop delivers a stop command to the failing child.
	Stop
	// Escalate re-emits the failure to the supervisor's own parent.
	Escalate
)

func (d Directive) String() string {
	switch d {
	case Resume:
		return "resume"
	case Restart:
		return "restart"
	case Stop:
		return "stop"
	case Escalate:
		return "escalate"
	default:
		return "unknown"
	}
}

// Failure describes a child actor failure as seen by its supervisor.
type Failure struct {
	ActorID   uint64
	ActorName string
	Cause     error
	Message   message.Message
}

// Strategy decides what to do about a child failure. Only the failing child
// is subject to the directive.
type Strategy interface {
	Decide(failure *Failure) Directive
}
