// Package executor provides the shared worker pool the actor system runs on
// and the serial sub-executor (strand) each actor owns on top of it.
package executor

import (
	"errors"
	"sync"

	"github.com/Workiva/go-datastructures/queue"
	"go.uber.org/atomic"

	"github.com/fat-complex/oxherd/log"
)

// ErrStopped is reported by Submit after the pool has been stopped.
var ErrStopped = errors.New("executor: pool stopped")

const runQueueHint = 64

// Pool runs submitted tasks on a fixed set of workers draining one unbounded
// run queue.
type Pool struct {
	tasks   *queue.Queue
	workers int
	wg      sync.WaitGroup
	stopped atomic.Bool
	logger  log.Logger
}

// NewPool starts a pool with the given number of workers; values below one
// are raised to one.
func NewPool(workers int, logger log.Logger) *Pool {
	if workers < 1 {
		workers = 1
	}
	p := &Pool{
		tasks:   queue.New(runQueueHint),
		workers: workers,
		logger:  logger,
	}
	p.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go p.work()
	}
	return p
}

// Workers returns the number of worker goroutines.
func (p *Pool) Workers() int { return p.workers }

// Submit appends a task to the run queue. It never blocks.
func (p *Pool) Submit(task func()) error {
	if err := p.tasks.Put(task); err != nil {
		return ErrStopped
	}
	return nil
}

// Stop cancels all not-yet-started tasks and joins the workers. Tasks
// already running complete. Idempotent.
func (p *Pool) Stop() {
	if !p.stopped.CompareAndSwap(false, true) {
		return
	}
	p.tasks.Dispose()
	p.wg.Wait()
}

// Stopped reports whether Stop has been called.
func (p *Pool) Stopped() bool { return p.stopped.Load() }

func (p *Pool) work() {
	defer p.wg.Done()
	for {
		items, err := p.tasks.Get(1)
		if err != nil {
			return
		}
		p.run(items[0].(func()))
	}
}

func (p *Pool) run(task func()) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Errorf("executor: task panic: %v", r)
		}
	}()
	task()
}
