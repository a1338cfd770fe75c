package model

import "time"

// Epoch carries the chain epoch metadata needed to decide gas price and
// staleness.
type Epoch struct {
	EpochID     uint64
	StartMs     int64
	DurationMs  int64
	GasPrice    uint64
}

// Stale reports whether the epoch must be refreshed from chain: wall
// clock has moved past StartMs+DurationMs (spec.md §3 SimulateCtx).
func (e Epoch) Stale(now time.Time) bool {
	return now.UnixMilli() > e.StartMs+e.DurationMs
}

// BorrowedCoin models a flash loan pretended into existence for
// simulation purposes: an object plus the amount it is assumed to hold.
type BorrowedCoin struct {
	Object ObjectID
	Amount uint64
}

// ObjectReadResult is a caller-supplied overlay entry: either a full
// object, or an explicit tombstone for a shared object the caller knows
// has been deleted.
type ObjectReadResult struct {
	Object  *Object // nil iff Deleted
	Deleted bool
}

// SimulateCtx is the per-simulation context: {epoch, override_objects[],
// borrowed_coin?} from spec.md §3.
type SimulateCtx struct {
	Epoch           Epoch
	OverrideObjects map[ObjectID]ObjectReadResult
	BorrowedCoin    *BorrowedCoin
}

// NewSimulateCtx returns a SimulateCtx with an empty overlay.
func NewSimulateCtx(epoch Epoch) SimulateCtx {
	return SimulateCtx{Epoch: epoch, OverrideObjects: map[ObjectID]ObjectReadResult{}}
}

// WithOverride returns a copy of ctx with one additional override
// object merged in (copy-on-write so concurrent trials sharing a base
// SimulateCtx never race on the overlay map).
func (c SimulateCtx) WithOverride(id ObjectID, obj ObjectReadResult) SimulateCtx {
	merged := make(map[ObjectID]ObjectReadResult, len(c.OverrideObjects)+1)
	for k, v := range c.OverrideObjects {
		merged[k] = v
	}
	merged[id] = obj
	c.OverrideObjects = merged
	return c
}

// Clone returns a deep-enough copy of ctx suitable for handing to an
// independent trial goroutine.
func (c SimulateCtx) Clone() SimulateCtx {
	merged := make(map[ObjectID]ObjectReadResult, len(c.OverrideObjects))
	for k, v := range c.OverrideObjects {
		merged[k] = v
	}
	c.OverrideObjects = merged
	return c
}
