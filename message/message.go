// Package message implements the typed, reference-counted message system:
// per-variant type identifiers, a per-variant pooled allocator with
// allocation statistics, runtime-checked downcasts and a handler dispatcher.
//
// A message variant is a struct embedding Base. Instances are obtained from
// New, shared by reference, and returned to their variant's pool when the
// last reference is released.
package message

import (
	"go.uber.org/atomic"
)

// Message is the interface of every pooled message variant. It is satisfied
// by embedding Base; values must originate from New.
type Message interface {
	TypeID() TypeID
	header() *Base
}

// Base carries the variant's type identifier and the embedded reference
// counter, so that a single pointer to the payload is a complete shared
// handle.
type Base struct {
	typeID TypeID
	refs   atomic.Int64
	home   *typePool
}

func (b *Base) TypeID() TypeID { return b.typeID }

func (b *Base) header() *Base { return b }

// RefCount returns the current reference count. Advisory; it can change
// concurrently.
func (b *Base) RefCount() int64 { return b.refs.Load() }

// Disposer is implemented by variants that hold references to other
// messages. Dispose runs exactly once, when the last reference is released
// and before the payload returns to its pool.
type Disposer interface {
	Dispose()
}

// ptr constrains P to a pointer to a concrete message variant.
type ptr[T any] interface {
	*T
	Message
}

// New allocates a T from its per-variant pool. The returned message carries
// a reference count of one; Release hands it back to the pool.
func New[T any, P ptr[T]]() P {
	home := poolFor[T]()
	var p P
	if recycled := home.get(); recycled != nil {
		p = recycled.(P)
	} else {
		p = P(new(T))
	}
	home.recordAlloc()

	h := p.header()
	h.typeID = TypeOf[T]()
	h.home = home
	h.refs.Store(1)
	return p
}

// Retain adds a reference and returns the same handle.
func Retain[M Message](m M) M {
	m.header().refs.Inc()
	return m
}

// Release drops one reference. When the count reaches zero the variant's
// Dispose hook (if any) runs, the payload is zeroed and the memory returns
// to the pool. Releasing below zero panics.
func Release(m Message) {
	h := m.header()
	switch n := h.refs.Dec(); {
	case n == 0:
		if d, ok := m.(Disposer); ok {
			d.Dispose()
		}
		h.home.put(m)
	case n < 0:
		panic("message: release of an already destroyed message")
	}
}
