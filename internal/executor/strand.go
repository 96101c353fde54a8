package executor

import (
	"errors"

	"github.com/Workiva/go-datastructures/queue"
	"go.uber.org/atomic"
)

// ErrDisposed is reported by Post after the strand has been disposed.
var ErrDisposed = errors.New("executor: strand disposed")

const (
	strandProcessing int32 = iota
	strandIdle
)

const strandQueueHint = 16

// Strand is a serial sub-executor layered on a pool: items posted to it are
// consumed one at a time, in FIFO order, with at most one pool worker
// draining the strand at any instant.
type Strand struct {
	pool    *Pool
	items   *queue.Queue
	status  *atomic.Int32
	consume func(item any)
}

// NewStrand creates a strand whose items are handed to consume on a pool
// worker.
func NewStrand(pool *Pool, consume func(item any)) *Strand {
	return &Strand{
		pool:    pool,
		items:   queue.New(strandQueueHint),
		status:  atomic.NewInt32(strandIdle),
		consume: consume,
	}
}

// Post appends an item to the strand and returns immediately. ErrDisposed
// means the strand no longer accepts work; ErrStopped means the underlying
// pool is gone.
func (s *Strand) Post(item any) error {
	if err := s.items.Put(item); err != nil {
		return ErrDisposed
	}
	return s.schedule()
}

func (s *Strand) schedule() error {
	if s.status.CompareAndSwap(strandIdle, strandProcessing) {
		if err := s.pool.Submit(s.drain); err != nil {
			s.status.Store(strandIdle)
			return err
		}
	}
	return nil
}

func (s *Strand) drain() {
	for s.items.Len() != 0 {
		items, err := s.items.Get(1)
		if err != nil {
			break
		}
		s.consume(items[0])
	}
	s.status.Store(strandIdle)
	// an item may have slipped in after the loop saw an empty queue
	if s.items.Len() != 0 && !s.items.Disposed() {
		_ = s.schedule()
	}
}

// Dispose drops all queued items and returns them; later posts report
// ErrDisposed.
func (s *Strand) Dispose() []any {
	return s.items.Dispose()
}

// Len returns the number of queued items.
func (s *Strand) Len() int64 {
	if s.items.Disposed() {
		return 0
	}
	return s.items.Len()
}

// Idle reports whether the strand has no queued items and no active drain.
func (s *Strand) Idle() bool {
	return s.status.Load() == strandIdle && s.Len() == 0
}
