// Package pool implements the DEX topology index (spec.md §4.A): the
// process-wide PoolCache plus per-protocol event backfill and live
// tracking.
package pool

import (
	"sync"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/luxfi/sui-arb/model"
)

// Cache is the three-map PoolCache from spec.md §3: coin -> set<Pool>,
// (coinA,coinB) -> set<Pool>, pool_id -> Pool. Following the
// append-only-arena design noted in spec.md §9 ("own Pools in an
// append-only arena indexed by pool_id, storing indices in the
// secondary maps"), byPoolID is the sole owner of each Pool value;
// byCoin/byPair/byProto are pool_id set<Pool> indices proper — a
// mapset.Set[model.ObjectID] per key — rather than a second copy of the
// map. A Pool present in any one index is present in all three (the
// cache's core invariant); every mutating method below holds the
// single cache-wide lock for the duration of the update so that
// invariant is never observable as violated by a concurrent reader.
//
// Reads are lock-free-ish in spirit (short RLock critical sections);
// writes are serialized by the embedded mutex, matching spec.md §5's
// "concurrent read, serialized write" resource model. The sets
// themselves are the thread-unsafe variant: the cache's own mutex is
// the only synchronization they ever need.
type Cache struct {
	mu       sync.RWMutex
	byCoin   map[model.Coin]mapset.Set[model.ObjectID]
	byPair   map[[2]model.Coin]mapset.Set[model.ObjectID]
	byProto  map[model.Protocol]mapset.Set[model.ObjectID]
	byPoolID map[model.ObjectID]*model.Pool
}

// NewCache returns an empty Cache.
func NewCache() *Cache {
	return &Cache{
		byCoin:   make(map[model.Coin]mapset.Set[model.ObjectID]),
		byPair:   make(map[[2]model.Coin]mapset.Set[model.ObjectID]),
		byProto:  make(map[model.Protocol]mapset.Set[model.ObjectID]),
		byPoolID: make(map[model.ObjectID]*model.Pool),
	}
}

// Insert adds p to all three (four, counting the per-protocol listing
// used by get_all_pools) indices. Re-inserting the same pool id is
// idempotent.
func (c *Cache) Insert(p model.Pool) error {
	if err := p.Validate(); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	pp := new(model.Pool)
	*pp = p

	c.byPoolID[p.PoolID] = pp

	protoSet, ok := c.byProto[p.Protocol]
	if !ok {
		protoSet = mapset.NewThreadUnsafeSet[model.ObjectID]()
		c.byProto[p.Protocol] = protoSet
	}
	protoSet.Add(p.PoolID)

	for _, coin := range p.Tokens {
		coinSet, ok := c.byCoin[coin]
		if !ok {
			coinSet = mapset.NewThreadUnsafeSet[model.ObjectID]()
			c.byCoin[coin] = coinSet
		}
		coinSet.Add(p.PoolID)
	}

	for i := 0; i < len(p.Tokens); i++ {
		for j := i + 1; j < len(p.Tokens); j++ {
			key := model.UnorderedPairKey(p.Tokens[i], p.Tokens[j])
			pairSet, ok := c.byPair[key]
			if !ok {
				pairSet = mapset.NewThreadUnsafeSet[model.ObjectID]()
				c.byPair[key] = pairSet
			}
			pairSet.Add(p.PoolID)
		}
	}
	return nil
}

// GetPoolsByCoin returns every pool touching coin, or (nil, false) if
// none are indexed.
func (c *Cache) GetPoolsByCoin(coin model.Coin) ([]model.Pool, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	s, ok := c.byCoin[coin]
	if !ok {
		return nil, false
	}
	return c.resolveLocked(s), true
}

// GetPoolsByCoinPair returns every pool linking a and b directly.
func (c *Cache) GetPoolsByCoinPair(a, b model.Coin) ([]model.Pool, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	s, ok := c.byPair[model.UnorderedPairKey(a, b)]
	if !ok {
		return nil, false
	}
	return c.resolveLocked(s), true
}

// GetPoolByID returns the pool with the given id.
func (c *Cache) GetPoolByID(id model.ObjectID) (model.Pool, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	p, ok := c.byPoolID[id]
	if !ok {
		return model.Pool{}, false
	}
	return *p, true
}

// GetAllPools returns every pool indexed for protocol. Count of the
// returned slice is an exact count of persisted records for that
// protocol (spec.md §4.A).
func (c *Cache) GetAllPools(protocol model.Protocol) []model.Pool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	s, ok := c.byProto[protocol]
	if !ok {
		return nil
	}
	return c.resolveLocked(s)
}

// Count returns the number of pools indexed for protocol.
func (c *Cache) Count(protocol model.Protocol) int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	s, ok := c.byProto[protocol]
	if !ok {
		return 0
	}
	return s.Cardinality()
}

// resolveLocked dereferences a set<pool_id> index through the byPoolID
// arena into the Pool values callers actually want. Must be called
// with c.mu held (for reading or writing).
func (c *Cache) resolveLocked(ids mapset.Set[model.ObjectID]) []model.Pool {
	idSlice := ids.ToSlice()
	out := make([]model.Pool, 0, len(idSlice))
	for _, id := range idSlice {
		if p, ok := c.byPoolID[id]; ok {
			out = append(out, *p)
		}
	}
	return out
}
