// Package idgen implements the fileset-wide node id source (spec.md §4.2).
//
// A Generator is thread-unsafe by contract when the pipeline runs phase 1
// sequentially; Atomic upgrades it to the concurrency-safe variant spec.md §5
// requires before single-file passes may be sharded across workers. Both
// share the same Generator interface so passes never know which one they got.
package idgen

import (
	"sync/atomic"

	"fortio.org/safecast"
)

// ID is a node id, unique per fileset and never reused (spec.md §3).
type ID uint64

// NoID is the zero value; no real node ever carries it.
const NoID ID = 0

// Generator hands out fresh, monotonically increasing node ids.
type Generator interface {
	Next() ID
}

// Sequential is the default, single-threaded generator used while phase 1
// runs one file at a time.
type Sequential struct {
	next uint64
}

// NewSequential returns a Generator starting at id 1.
func NewSequential() *Sequential {
	return &Sequential{next: 1}
}

// Next returns the next id and advances the counter.
func (g *Sequential) Next() ID {
	id := g.next
	g.next++
	return ID(id)
}

// Peek returns the id that the next call to Next will return, without
// consuming it. Used by tests asserting id-uniqueness invariants.
func (g *Sequential) Peek() ID {
	return ID(g.next)
}

// Atomic is a concurrency-safe Generator, used when the manager shards
// phase-1 single-file passes across goroutines (spec.md §5).
type Atomic struct {
	next atomic.Uint64
}

// NewAtomic returns an Atomic generator starting at id 1.
func NewAtomic() *Atomic {
	a := &Atomic{}
	a.next.Store(1)
	return a
}

// Next returns the next id and advances the counter atomically.
func (a *Atomic) Next() ID {
	return ID(a.next.Add(1) - 1)
}

// Count returns how many ids an Atomic has handed out so far, as a safely
// narrowed int for reporting/telemetry.
func (a *Atomic) Count() (int, error) {
	return safecast.Conv[int](a.next.Load() - 1)
}
