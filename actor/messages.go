package actor

import "github.com/fat-complex/oxherd/message"

// Lifecycle commands. Sending one of these to an actor drives its lifecycle
// machine through the legal transitions for the current state; see state.go.
type (
	GoStartActor     struct{ message.Base }
	GoStopActor      struct{ message.Base }
	GoPauseActor     struct{ message.Base }
	GoResumeActor    struct{ message.Base }
	GoTerminateActor struct{ message.Base }
)

// ActorFailureEvent reports a Behaviour failure to the parent actor. It is
// synthesised by the runtime and routed to the parent's supervision
// handling.
type ActorFailureEvent struct {
	message.Base
	ActorID       ID
	ActorName     string
	Cause         error
	FailedMessage message.Message
}

func (e *ActorFailureEvent) Dispose() {
	if e.FailedMessage != nil {
		message.Release(e.FailedMessage)
		e.FailedMessage = nil
	}
}

// RegisterActorMessage installs or overwrites the registry mapping for
// ActorID.
type RegisterActorMessage struct {
	message.Base
	ActorID ID
	Ref     ActorRef
}

// UnregisterActorMessage removes the registry mapping for ActorID.
type UnregisterActorMessage struct {
	message.Base
	ActorID ID
}

// FindActorMessage asks the registry to reply to ReplyTo with either an
// ActorFoundResponseMessage or an ActorNotFoundResponseMessage.
type FindActorMessage struct {
	message.Base
	ActorID ID
	ReplyTo ActorRef
}

// FindActorWithCallbackMessage resolves ActorID and invokes Callback with
// the reference inside the registry's serial slot. On a miss the callback is
// not invoked; any caller-side timeout is the caller's responsibility.
//
// Payload, when set, is the message the callback intends to forward; the
// request releases it if the callback never runs.
type FindActorWithCallbackMessage struct {
	message.Base
	ActorID  ID
	Callback func(ActorRef)
	Payload  message.Message
}

// TakePayload transfers ownership of the pending payload to the caller.
func (m *FindActorWithCallbackMessage) TakePayload() message.Message {
	p := m.Payload
	m.Payload = nil
	return p
}

func (m *FindActorWithCallbackMessage) Dispose() {
	if m.Payload != nil {
		message.Release(m.Payload)
		m.Payload = nil
	}
}

// ActorFoundResponseMessage is the registry's positive reply to a
// FindActorMessage.
type ActorFoundResponseMessage struct {
	message.Base
	Ref ActorRef
}

// ActorNotFoundResponseMessage is the registry's negative reply to a
// FindActorMessage.
type ActorNotFoundResponseMessage struct {
	message.Base
	ActorID ID
}
