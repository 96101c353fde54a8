package actor

import "go.uber.org/atomic"

// ID identifies an actor within one process instance. Identifiers are
// assigned monotonically; equality is the only defined operation. Zero is
// reserved for "unassigned".
type ID uint64

var lastID atomic.Uint64

func nextID() ID {
	return ID(lastID.Inc())
}
