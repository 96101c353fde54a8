package actor

import (
	"github.com/fat-complex/oxherd/log"
	"github.com/fat-complex/oxherd/message"
)

// Registry is the address book from actor identity to reference. It is
// itself a Behavior installed on a system actor, so its table needs no lock:
// every mutation happens inside the registry actor's serial slot. The table
// holds only non-owning references.
type Registry struct {
	Base
	actors map[ID]ActorRef
	logger log.Logger
}

// NewRegistry creates the registry behavior. The system installs it at boot
// under a well-known name.
func NewRegistry(logger log.Logger) *Registry {
	return &Registry{
		actors: make(map[ID]ActorRef),
		logger: logger,
	}
}

func (r *Registry) OnInitialize() {
	d := r.Self().Dispatcher()
	message.RegisterHandler(d, r.handleRegister)
	message.RegisterHandler(d, r.handleUnregister)
	message.RegisterHandler(d, r.handleFind)
	message.RegisterHandler(d, r.handleFindWithCallback)
}

func (r *Registry) Behaviour(m message.Message) error {
	r.Self().Dispatcher().Dispatch(m)
	return nil
}

// the map is cleared whenever the registry leaves service
func (r *Registry) OnStop()      { r.actors = make(map[ID]ActorRef) }
func (r *Registry) OnTerminate() { r.actors = make(map[ID]ActorRef) }

func (r *Registry) handleRegister(m *RegisterActorMessage) {
	r.actors[m.ActorID] = m.Ref
	r.logger.Debugf("registry: registered actor %d", m.ActorID)
}

func (r *Registry) handleUnregister(m *UnregisterActorMessage) {
	delete(r.actors, m.ActorID)
}

func (r *Registry) handleFind(m *FindActorMessage) {
	if ref, ok := r.actors[m.ActorID]; ok {
		found := message.New[ActorFoundResponseMessage]()
		found.Ref = ref
		m.ReplyTo.Tell(found)
		return
	}
	missing := message.New[ActorNotFoundResponseMessage]()
	missing.ActorID = m.ActorID
	m.ReplyTo.Tell(missing)
}

func (r *Registry) handleFindWithCallback(m *FindActorWithCallbackMessage) {
	if ref, ok := r.actors[m.ActorID]; ok && m.Callback != nil {
		m.Callback(ref)
	}
	// silent on a miss; the caller owns any timeout
}
