package message

// Handler consumes a dispatched message. The dispatcher borrows the message
// for the duration of the call; handlers that keep it must Retain it.
type Handler func(Message)

// Dispatcher maps type identifiers to handlers. It is owned by a single
// actor and mutated only from within that actor's serial slot.
type Dispatcher struct {
	handlers map[TypeID]Handler
}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{handlers: make(map[TypeID]Handler)}
}

// RegisterHandler binds handler to the variant M. A second registration for
// the same variant overwrites the first.
func RegisterHandler[M any, P ptr[M]](d *Dispatcher, handler func(P)) *Dispatcher {
	d.handlers[TypeOf[M]()] = func(m Message) {
		handler(Cast[M, P](m))
	}
	return d
}

// Dispatch invokes the handler registered for m's type identifier and
// reports whether one ran. Messages with no handler are dropped; the
// enclosing actor is free to apply its own default.
func (d *Dispatcher) Dispatch(m Message) bool {
	if m == nil {
		return false
	}
	h, ok := d.handlers[m.TypeID()]
	if !ok {
		return false
	}
	h(m)
	return true
}
