package simulator

import (
	"context"
	"testing"

	"github.com/luxfi/sui-arb/model"
)

func TestOverlayReaderPrefersOverrideOverBase(t *testing.T) {
	id := model.ObjectID{1}
	base := &fakeBase{objects: map[model.ObjectID]*model.Object{
		id: {ID: id, Version: 1},
	}}
	overridden := &model.Object{ID: id, Version: 2}
	simCtx := model.NewSimulateCtx(model.Epoch{})
	simCtx.OverrideObjects[id] = model.ObjectReadResult{Object: overridden}

	r := newOverlayReader(base, simCtx)
	got, err := r.GetObject(context.Background(), id)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Version != 2 {
		t.Errorf("expected overlay version 2, got %d", got.Version)
	}
	if r.cacheMisses() != 0 {
		t.Errorf("expected no cache misses when overlay satisfies the read, got %d", r.cacheMisses())
	}
}

func TestOverlayReaderFallsThroughToBaseAndMemoizes(t *testing.T) {
	id := model.ObjectID{1}
	base := &fakeBase{objects: map[model.ObjectID]*model.Object{
		id: {ID: id, Version: 5},
	}}
	simCtx := model.NewSimulateCtx(model.Epoch{})

	r := newOverlayReader(base, simCtx)
	if _, err := r.GetObject(context.Background(), id); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.cacheMisses() != 1 {
		t.Errorf("expected 1 cache miss, got %d", r.cacheMisses())
	}

	got, err := r.GetObjectAtVersion(context.Background(), id, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == nil || got.Version != 5 {
		t.Fatal("expected memoized version-qualified read to succeed")
	}
	if r.cacheMisses() != 1 {
		t.Errorf("memoized read must not count as a new cache miss, got %d", r.cacheMisses())
	}
}

func TestOverlayReaderHonorsDeletionMarker(t *testing.T) {
	id := model.ObjectID{1}
	base := &fakeBase{objects: map[model.ObjectID]*model.Object{
		id: {ID: id, Version: 1},
	}}
	simCtx := model.NewSimulateCtx(model.Epoch{})
	simCtx.OverrideObjects[id] = model.ObjectReadResult{Deleted: true}

	r := newOverlayReader(base, simCtx)
	got, err := r.GetObject(context.Background(), id)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != nil {
		t.Error("expected not-found for a deletion marker")
	}
}

func TestOverlayReaderSynthesizesClock(t *testing.T) {
	base := &fakeBase{objects: map[model.ObjectID]*model.Object{}}
	simCtx := model.NewSimulateCtx(model.Epoch{})
	r := newOverlayReader(base, simCtx)

	got, err := r.GetObject(context.Background(), clockObjectID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == nil || len(got.Contents) != 8 {
		t.Fatal("expected synthesized clock object with 8-byte wall-time contents")
	}
}
