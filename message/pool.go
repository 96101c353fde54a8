package message

import (
	"reflect"
	"sync"

	"go.uber.org/atomic"
)

// Stats is a snapshot of one variant pool's counters. The counters are
// advisory: they are updated with relaxed atomics and converge only once no
// live references exist for the variant.
type Stats struct {
	Allocations      uint64
	Deallocations    uint64
	BytesAllocated   uint64
	BytesDeallocated uint64
}

// typePool is the process-wide freelist servicing every allocation of one
// message variant.
type typePool struct {
	mu   sync.Mutex
	free []Message

	size         uint64 // payload size in bytes
	allocs       atomic.Uint64
	deallocs     atomic.Uint64
	bytesAlloc   atomic.Uint64
	bytesDealloc atomic.Uint64
}

var pools sync.Map // TypeID -> *typePool

func poolFor[T any]() *typePool {
	id := TypeOf[T]()
	if p, ok := pools.Load(id); ok {
		return p.(*typePool)
	}
	fresh := &typePool{size: uint64(reflect.TypeOf((*T)(nil)).Elem().Size())}
	p, _ := pools.LoadOrStore(id, fresh)
	return p.(*typePool)
}

func (p *typePool) get() Message {
	p.mu.Lock()
	defer p.mu.Unlock()
	if n := len(p.free); n > 0 {
		m := p.free[n-1]
		p.free[n-1] = nil
		p.free = p.free[:n-1]
		return m
	}
	return nil
}

func (p *typePool) put(m Message) {
	p.deallocs.Inc()
	p.bytesDealloc.Add(p.size)

	// zero the payload so recycled blocks carry no stale references
	reflect.ValueOf(m).Elem().SetZero()

	p.mu.Lock()
	p.free = append(p.free, m)
	p.mu.Unlock()
}

func (p *typePool) recordAlloc() {
	p.allocs.Inc()
	p.bytesAlloc.Add(p.size)
}

func (p *typePool) stats() Stats {
	return Stats{
		Allocations:      p.allocs.Load(),
		Deallocations:    p.deallocs.Load(),
		BytesAllocated:   p.bytesAlloc.Load(),
		BytesDeallocated: p.bytesDealloc.Load(),
	}
}

func (p *typePool) release() {
	p.mu.Lock()
	p.free = nil
	p.mu.Unlock()
}

// StatsOf returns the current counters of T's pool.
func StatsOf[T any, P ptr[T]]() Stats {
	return poolFor[T]().stats()
}

// ReleasePool returns T's currently free blocks to the runtime. Counters are
// preserved.
func ReleasePool[T any, P ptr[T]]() {
	poolFor[T]().release()
}

// ReleaseAllPools releases the free blocks of every variant pool.
func ReleaseAllPools() {
	pools.Range(func(_, v any) bool {
		v.(*typePool).release()
		return true
	})
}
