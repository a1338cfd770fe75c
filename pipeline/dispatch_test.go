package pipeline

import (
	"testing"
	"time"

	"github.com/luxfi/sui-arb/arbcache"
	"github.com/luxfi/sui-arb/internal/chainlog"
	"github.com/luxfi/sui-arb/model"
)

func TestDispatchHandsOffUnseenCoin(t *testing.T) {
	cache := arbcache.New(time.Minute)
	d := NewDispatcher(cache, NewRecentArbs(8), chainlog.New())

	d.HandleEvent("coin-a", nil, model.Digest{}, model.SimulateCtx{}, model.NewPublicSource())

	select {
	case item := <-d.Items:
		if item.Coin != "coin-a" {
			t.Errorf("expected coin-a, got %s", item.Coin)
		}
	default:
		t.Fatalf("expected an item to be dispatched")
	}
}

func TestDispatchSkipsRecentlySeenNonAuctionCoin(t *testing.T) {
	cache := arbcache.New(time.Minute)
	d := NewDispatcher(cache, NewRecentArbs(8), chainlog.New())

	d.RecentArbs.Record("coin-a")
	d.HandleEvent("coin-a", nil, model.Digest{}, model.SimulateCtx{}, model.NewPublicSource())

	select {
	case <-d.Items:
		t.Fatalf("expected a recently seen public-source coin to be skipped")
	default:
	}
}

func TestDispatchNeverSkipsSealedAuctionEvenIfRecentlySeen(t *testing.T) {
	cache := arbcache.New(time.Minute)
	d := NewDispatcher(cache, NewRecentArbs(8), chainlog.New())

	d.RecentArbs.Record("coin-a")
	source := model.NewShioSource(model.Digest{}, 0, 9_999_999_999_999)
	d.HandleEvent("coin-a", nil, model.Digest{}, model.SimulateCtx{}, source)

	select {
	case item := <-d.Items:
		if item.Coin != "coin-a" {
			t.Errorf("expected coin-a, got %s", item.Coin)
		}
	default:
		t.Fatalf("expected a sealed-auction coin to bypass the recent-arbs skip")
	}
}

func TestDispatchSyncsRingBufferWithExpiry(t *testing.T) {
	cache := arbcache.New(time.Millisecond)
	d := NewDispatcher(cache, NewRecentArbs(8), chainlog.New())

	// Fill the dispatch channel to the in-flight cap directly, so
	// Dispatch's own PopOne loop exits immediately without touching the
	// cache, leaving the soon-to-expire entry inserted below for
	// RemoveExpired (not PopOne) to discover.
	for i := 0; i < maxInFlight; i++ {
		d.Items <- model.ArbItem{Coin: model.Coin("filler")}
	}

	cache.Insert("coin-a", nil, model.Digest{}, model.SimulateCtx{}, model.NewPublicSource())
	d.RecentArbs.Record("coin-a")
	time.Sleep(5 * time.Millisecond)

	d.Dispatch() // Items is already full, so this must still run RemoveExpired

	if d.RecentArbs.Seen("coin-a") {
		t.Errorf("expected coin-a evicted from the ring once its cache entry expired")
	}
}
