// Package pool provides a small round-robin resource pool with per-resource
// cooldown. It backs both the fetcher's client-identifier rotation and the
// scorer's API-key rotation.
package pool

import (
	"sync"
	"time"
)

// Pool hands out resources round-robin, skipping resources that are cooling down.
type Pool[T any] struct {
	mu    sync.Mutex
	items []entry[T]
	next  int
}

type entry[T any] struct {
	value    T
	cooldown time.Time // zero means usable
}

// Lease is a handle to an acquired resource. Suspend puts the underlying
// resource into cooldown, typically after a rate-limit or auth failure.
type Lease[T any] struct {
	Value T
	pool  *Pool[T]
	idx   int
}

// New creates a pool over the given resources
func New[T any](items ...T) *Pool[T] {
	p := &Pool[T]{items: make([]entry[T], len(items))}
	for i, it := range items {
		p.items[i] = entry[T]{value: it}
	}
	return p
}

// Acquire returns the next usable resource in round-robin order.
// Returns false when every resource is cooling down or the pool is empty.
func (p *Pool[T]) Acquire(now time.Time) (*Lease[T], bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for i := 0; i < len(p.items); i++ {
		idx := (p.next + i) % len(p.items)
		if p.items[idx].cooldown.After(now) {
			continue
		}
		p.next = (idx + 1) % len(p.items)
		return &Lease[T]{Value: p.items[idx].value, pool: p, idx: idx}, true
	}
	return nil, false
}

// Suspend disables the leased resource until the given time
func (l *Lease[T]) Suspend(until time.Time) {
	l.pool.mu.Lock()
	defer l.pool.mu.Unlock()
	l.pool.items[l.idx].cooldown = until
}

// Active counts resources usable at the given time
func (p *Pool[T]) Active(now time.Time) int {
	p.mu.Lock()
	defer p.mu.Unlock()

	count := 0
	for _, it := range p.items {
		if !it.cooldown.After(now) {
			count++
		}
	}
	return count
}

// Size returns the total number of resources in the pool
func (p *Pool[T]) Size() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.items)
}
