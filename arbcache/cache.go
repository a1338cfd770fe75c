// Package arbcache deduplicates and expires in-flight arbitrage
// opportunities keyed by coin, grounded on the original
// implementation's bin/arb/src/strategy/arb_cache.rs. At most one
// opportunity per coin is ever live: inserting again for the same coin
// supersedes the previous entry rather than queuing both (spec.md §4.F,
// invariant "at most one live entry per coin").
package arbcache

import (
	"container/heap"
	"sync"
	"time"

	"github.com/luxfi/sui-arb/model"
)

// heapItem is the min-heap's element: earliest expiration first, ties
// broken by the lower (older) generation first (Go's container/heap is
// a min-heap by Less).
type heapItem struct {
	expiresAt  time.Time
	generation uint64
	coin       model.Coin
	poolID     *model.ObjectID
}

type itemHeap []heapItem

func (h itemHeap) Len() int { return len(h) }
func (h itemHeap) Less(i, j int) bool {
	if !h[i].expiresAt.Equal(h[j].expiresAt) {
		return h[i].expiresAt.Before(h[j].expiresAt)
	}
	return h[i].generation < h[j].generation
}
func (h itemHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }
func (h *itemHeap) Push(x any)   { *h = append(*h, x.(heapItem)) }
func (h *itemHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// Cache holds at most one live ArbEntry per coin, with TTL-based
// expiration driven by a min-heap rather than a periodic full scan
// (spec.md §4.F).
type Cache struct {
	mu         sync.Mutex
	entries    map[model.Coin]model.ArbEntry
	heap       itemHeap
	generation uint64
	ttl        time.Duration
}

// New returns an empty Cache with the given entry time-to-live.
func New(ttl time.Duration) *Cache {
	return &Cache{entries: make(map[model.Coin]model.ArbEntry), ttl: ttl}
}

// Insert records or replaces the live opportunity for coin. A prior
// entry for the same coin is superseded: its heap record becomes
// stale and is discarded the next time it reaches the top (spec.md §4.F
// scenario "insert twice for the same coin").
func (c *Cache) Insert(coin model.Coin, poolID *model.ObjectID, digest model.Digest, simCtx model.SimulateCtx, source model.Source) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.generation++
	generation := c.generation
	expiresAt := time.Now().Add(c.ttl)

	c.entries[coin] = model.ArbEntry{
		TriggerTxDigest: digest,
		SimCtx:          simCtx,
		Generation:      generation,
		ExpiresAt:       expiresAt,
		Source:          source,
		PoolID:          poolID,
	}
	heap.Push(&c.heap, heapItem{expiresAt: expiresAt, generation: generation, coin: coin, poolID: poolID})
}

// Get returns the live entry for coin, if any, without removing it.
func (c *Cache) Get(coin model.Coin) (model.Digest, model.SimulateCtx, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[coin]
	if !ok {
		return model.Digest{}, model.SimulateCtx{}, false
	}
	return e.TriggerTxDigest, e.SimCtx, true
}

// RemoveExpired pops every expired entry off the top of the heap,
// discarding stale heap records (superseded by a later Insert) along
// the way, and returns the coins that actually expired (spec.md §4.F
// scenario "expiry").
func (c *Cache) RemoveExpired() []model.Coin {
	c.mu.Lock()
	defer c.mu.Unlock()

	var expired []model.Coin
	now := time.Now()
	for c.heap.Len() > 0 {
		top := c.heap[0]
		entry, ok := c.entries[top.coin]
		if !ok {
			heap.Pop(&c.heap)
			continue
		}
		if entry.Generation != top.generation {
			heap.Pop(&c.heap)
			continue
		}
		if !entry.ExpiresAt.After(now) {
			expired = append(expired, top.coin)
			delete(c.entries, top.coin)
			heap.Pop(&c.heap)
			continue
		}
		break
	}
	return expired
}

// PopOne removes and returns the opportunity with the earliest
// expiration among entries that are still current and unexpired, or
// false if none exist.
func (c *Cache) PopOne() (model.ArbItem, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	for c.heap.Len() > 0 {
		top := heap.Pop(&c.heap).(heapItem)
		entry, ok := c.entries[top.coin]
		if !ok {
			continue
		}
		if entry.Generation != top.generation {
			continue
		}
		if !entry.ExpiresAt.After(now) {
			delete(c.entries, top.coin)
			continue
		}
		delete(c.entries, top.coin)
		return model.ArbItem{
			Coin:            top.coin,
			PoolID:          top.poolID,
			TriggerTxDigest: entry.TriggerTxDigest,
			SimCtx:          entry.SimCtx,
			Source:          entry.Source,
		}, true
	}
	return model.ArbItem{}, false
}

// Len reports the number of live (not yet superseded) entries.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
