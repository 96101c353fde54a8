// Package deadletter collects messages that could not be delivered to any
// actor, so that undeliverable traffic is observable instead of vanishing.
package deadletter

import (
	"time"

	mpsc "github.com/t3rm1n4l/go-mpscqueue"
	"go.uber.org/atomic"

	"github.com/fat-complex/oxherd/log"
	"github.com/fat-complex/oxherd/message"
)

// Letter records one undeliverable message.
type Letter struct {
	ActorID uint64
	Message message.Message
	Reason  string
	At      time.Time
}

// Sink accumulates letters. Deposit is safe from any goroutine; Drain must
// be called from a single goroutine at a time.
type Sink struct {
	letters *mpsc.MPSCQueue
	size    atomic.Int64
	logger  log.Logger
}

func NewSink(logger log.Logger) *Sink {
	return &Sink{
		letters: mpsc.New(),
		logger:  logger,
	}
}

// Deposit records m as undeliverable. The sink takes over the caller's
// reference; it is released when the letter is drained and released by the
// consumer.
func (s *Sink) Deposit(actorID uint64, m message.Message, reason string) {
	s.letters.Push(Letter{
		ActorID: actorID,
		Message: m,
		Reason:  reason,
		At:      time.Now(),
	})
	s.size.Inc()
	s.logger.Debugf("deadletter: actor=%d reason=%s", actorID, reason)
}

// Size returns the number of letters currently held.
func (s *Sink) Size() int64 {
	return s.size.Load()
}

// Drain removes and returns all currently held letters. The caller owns the
// message references carried by the result.
func (s *Sink) Drain() []Letter {
	var out []Letter
	for s.letters.Size() != 0 {
		letter, ok := s.letters.Pop().(Letter)
		if !ok {
			break
		}
		s.size.Dec()
		out = append(out, letter)
	}
	return out
}

// Discard drains the sink and releases every held message reference.
func (s *Sink) Discard() {
	for _, letter := range s.Drain() {
		if letter.Message != nil {
			message.Release(letter.Message)
		}
	}
}
