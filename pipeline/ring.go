// Package pipeline wires the three event sources, the dedup/TTL arb
// cache, and the worker pool together into the opportunity pipeline
// described in spec.md §4.G: ingest swap events, derive work items,
// drive workers through the grid/GSS search, and emit final
// transactions.
package pipeline

import (
	"sync"

	"github.com/luxfi/sui-arb/model"
)

// RecentArbs is a fixed-size ring buffer of recently-dispatched coins,
// used by the dispatch policy to skip near-duplicate public/private-tx
// work (spec.md §4.G "skip coins seen in a bounded recent arbs ring
// unless the source is a sealed-auction opportunity"). Grounded in the
// teacher's own idiom of a simple ring buffer for a bounded in-memory
// working set (SPEC_FULL.md §4.G).
type RecentArbs struct {
	mu    sync.Mutex
	slots []model.Coin
	count map[model.Coin]int
	next  int
}

// NewRecentArbs returns an empty ring of the given capacity.
func NewRecentArbs(size int) *RecentArbs {
	return &RecentArbs{
		slots: make([]model.Coin, size),
		count: make(map[model.Coin]int),
	}
}

// Seen reports whether coin currently occupies a slot in the ring.
func (r *RecentArbs) Seen(coin model.Coin) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count[coin] > 0
}

// Record inserts coin at the write cursor, evicting whatever coin
// previously occupied that slot.
func (r *RecentArbs) Record(coin model.Coin) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.slots) == 0 {
		return
	}
	r.evictSlotLocked(r.next)
	r.slots[r.next] = coin
	r.count[coin]++
	r.next = (r.next + 1) % len(r.slots)
}

// Evict removes every occurrence of coin from the ring, used to keep
// the ring in sync with the arb cache's own TTL expiry (spec.md §4.G
// "Always ... sync the ring buffer").
func (r *RecentArbs) Evict(coin model.Coin) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, c := range r.slots {
		if c == coin {
			r.slots[i] = ""
		}
	}
	delete(r.count, coin)
}

func (r *RecentArbs) evictSlotLocked(i int) {
	evicted := r.slots[i]
	if evicted == "" {
		return
	}
	r.count[evicted]--
	if r.count[evicted] <= 0 {
		delete(r.count, evicted)
	}
}
