package pipeline

import (
	"github.com/luxfi/sui-arb/arbcache"
	"github.com/luxfi/sui-arb/internal/chainlog"
	"github.com/luxfi/sui-arb/model"
)

// maxInFlight bounds the number of items handed to workers at once
// (spec.md §4.G dispatch policy "at most 10 in-flight").
const maxInFlight = 10

// itemsBufferSize is the dispatch channel's capacity. The channel must
// have room for a full in-flight batch plus slack so a burst of
// PopOne calls never blocks the dispatch loop itself (spec.md §5
// "Backpressure").
const itemsBufferSize = 1024

// Dispatcher turns cache insertions into dispatched work items,
// applying the recent-arbs skip policy and syncing the ring buffer
// with the cache's own TTL expiry (spec.md §4.G "Dispatch policy").
type Dispatcher struct {
	Cache      *arbcache.Cache
	RecentArbs *RecentArbs
	Items      chan model.ArbItem
	Log        chainlog.Logger
}

// NewDispatcher returns a Dispatcher backed by cache and recent, ready
// to feed workers through its Items channel.
func NewDispatcher(cache *arbcache.Cache, recent *RecentArbs, log chainlog.Logger) *Dispatcher {
	return &Dispatcher{
		Cache:      cache,
		RecentArbs: recent,
		Items:      make(chan model.ArbItem, itemsBufferSize),
		Log:        log,
	}
}

// HandleEvent records a newly observed opportunity and immediately
// tries to dispatch it (spec.md §4.G "Public"/"Shio" per-event
// handling both end with "insert into the arb cache, then run the
// dispatch policy").
func (d *Dispatcher) HandleEvent(coin model.Coin, poolID *model.ObjectID, triggerDigest model.Digest, simCtx model.SimulateCtx, source model.Source) {
	d.Cache.Insert(coin, poolID, triggerDigest, simCtx, source)
	d.Dispatch()
}

// Dispatch hands at most maxInFlight items (by this dispatcher's own
// channel occupancy) to the worker pool, skipping coins already seen
// in the recent-arbs ring unless the source is a sealed-auction
// opportunity, then always removes expired cache entries and syncs the
// ring buffer (spec.md §4.G "Always call remove_expired afterward and
// sync the ring buffer").
func (d *Dispatcher) Dispatch() {
	for len(d.Items) < maxInFlight {
		item, ok := d.Cache.PopOne()
		if !ok {
			break
		}
		if d.RecentArbs.Seen(item.Coin) && !item.Source.IsSealedAuction() {
			continue
		}
		select {
		case d.Items <- item:
			d.RecentArbs.Record(item.Coin)
		default:
			d.Log.Warn("pipeline: dispatch channel full, dropping item", "coin", item.Coin)
		}
	}

	for _, coin := range d.Cache.RemoveExpired() {
		d.RecentArbs.Evict(coin)
	}
}
