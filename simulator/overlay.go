package simulator

import (
	"context"
	"sync"
	"time"

	"github.com/luxfi/sui-arb/model"
)

// clockObjectID is the well-known id of the system clock object, always
// synthesized from wall time in the overlay (spec.md §4.B).
var clockObjectID = model.ObjectID{0x06}

// BaseStore is the read-only chain-state source consulted when the
// overlay has no entry. In production this is a local replica of the
// chain database; in tests it is an in-memory fake.
type BaseStore interface {
	GetObject(ctx context.Context, id model.ObjectID) (*model.Object, error)
	GetObjectAtVersion(ctx context.Context, id model.ObjectID, version uint64) (*model.Object, error)
	GetObjectLayout(ctx context.Context, id model.ObjectID) (*StructLayout, error)
}

// overlayReader implements the per-simulation object read path: overlay
// first, then base, honoring deletion markers and memoizing
// version-qualified base reads so a simulation sees consistent state
// throughout (spec.md §4.B "Overlay cache semantics").
type overlayReader struct {
	base  BaseStore
	simCtx model.SimulateCtx

	mu        sync.Mutex
	memo      map[versionKey]*model.Object
	misses    uint64
}

type versionKey struct {
	id      model.ObjectID
	version uint64
}

func newOverlayReader(base BaseStore, simCtx model.SimulateCtx) *overlayReader {
	return &overlayReader{
		base: base,
		simCtx: simCtx,
		memo: make(map[versionKey]*model.Object),
	}
}

// GetObject resolves id through the overlay-then-base lookup order.
func (r *overlayReader) GetObject(ctx context.Context, id model.ObjectID) (*model.Object, error) {
	if id == clockObjectID {
		return r.syntheticClock(), nil
	}

	r.mu.Lock()
	override, hasOverride := r.simCtx.OverrideObjects[id]
	r.mu.Unlock()

	if hasOverride {
		if override.Deleted {
			return nil, nil
		}
		return override.Object, nil
	}

	r.mu.Lock()
	r.misses++
	r.mu.Unlock()

	obj, err := r.base.GetObject(ctx, id)
	if err != nil || obj == nil {
		return obj, err
	}

	r.mu.Lock()
	r.memo[versionKey{id: id, version: obj.Version}] = obj
	r.mu.Unlock()
	return obj, nil
}

// GetObjectAtVersion resolves a specific historical version, consulting
// the memoization table before falling through to base. Shared-object
// tombstones are still resolvable here for balance-change
// reconstruction even when the live overlay entry says deleted (spec.md
// §4.B).
func (r *overlayReader) GetObjectAtVersion(ctx context.Context, id model.ObjectID, version uint64) (*model.Object, error) {
	key := versionKey{id: id, version: version}
	r.mu.Lock()
	if obj, ok := r.memo[key]; ok {
		r.mu.Unlock()
		return obj, nil
	}
	r.mu.Unlock()

	r.mu.Lock()
	r.misses++
	r.mu.Unlock()
	obj, err := r.base.GetObjectAtVersion(ctx, id, version)
	if err != nil || obj == nil {
		return obj, err
	}
	r.mu.Lock()
	r.memo[key] = obj
	r.mu.Unlock()
	return obj, nil
}

func (r *overlayReader) cacheMisses() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.misses
}

// syntheticClock builds the always-present clock object from wall time.
func (r *overlayReader) syntheticClock() *model.Object {
	now := time.Now().UnixMilli()
	contents := make([]byte, 8)
	for i := 0; i < 8; i++ {
		contents[i] = byte(now >> (8 * i))
	}
	return &model.Object{
		ID:       clockObjectID,
		Owner:    model.Owner{Kind: model.OwnerShared},
		Contents: contents,
	}
}
