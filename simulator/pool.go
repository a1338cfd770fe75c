package simulator

import "sync/atomic"

// handle pairs a Simulator with an advisory reference count, so Pool can
// hand out the currently least-loaded instance without the caller
// holding any lock across its simulation (spec.md §3 "Ownership
// summary", §5, §9 "Simulator pool with least-loaded dispatch").
type handle struct {
	sim  Simulator
	refs atomic.Int64
}

// Pool is a bounded, reference-counted vector of Simulators. Get()
// returns the one with the fewest outstanding references; this is
// advisory only — multiple callers may race and receive the same
// handle, which the design tolerates because Simulators are internally
// thread-safe.
type Pool struct {
	handles []*handle
}

// NewPool wraps sims in a least-loaded dispatch pool.
func NewPool(sims []Simulator) *Pool {
	handles := make([]*handle, len(sims))
	for i, s := range sims {
		handles[i] = &handle{sim: s}
	}
	return &Pool{handles: handles}
}

// Leased is a borrowed Simulator that must be returned via Release when
// the caller is done with it.
type Leased struct {
	Simulator
	h *handle
}

// Release decrements the advisory reference count.
func (l Leased) Release() {
	l.h.refs.Add(-1)
}

// Get returns the Simulator with the lowest current reference count.
func (p *Pool) Get() Leased {
	best := p.handles[0]
	for _, h := range p.handles[1:] {
		if h.refs.Load() < best.refs.Load() {
			best = h
		}
	}
	best.refs.Add(1)
	return Leased{Simulator: best.sim, h: best}
}

// Len reports the pool's configured size.
func (p *Pool) Len() int {
	return len(p.handles)
}
