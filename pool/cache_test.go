package pool

import (
	"testing"

	"github.com/luxfi/sui-arb/model"
)

func testPool(id byte) model.Pool {
	return model.Pool{
		Protocol: model.ProtocolCetus,
		PoolID:   model.ObjectID{id},
		Tokens:   []model.Coin{"A", model.NativeCoin},
	}
}

func TestCacheInsertVisibleInAllIndices(t *testing.T) {
	c := NewCache()
	p := testPool(1)
	if err := c.Insert(p); err != nil {
		t.Fatalf("insert: %v", err)
	}

	if _, ok := c.GetPoolByID(p.PoolID); !ok {
		t.Error("pool missing from by-id index")
	}
	if pools, ok := c.GetPoolsByCoin("A"); !ok || len(pools) != 1 {
		t.Error("pool missing from by-coin index")
	}
	if pools, ok := c.GetPoolsByCoinPair("A", model.NativeCoin); !ok || len(pools) != 1 {
		t.Error("pool missing from by-pair index")
	}
	if pools, ok := c.GetPoolsByCoinPair(model.NativeCoin, "A"); !ok || len(pools) != 1 {
		t.Error("by-pair index must be order independent")
	}
	if got := c.GetAllPools(model.ProtocolCetus); len(got) != 1 {
		t.Errorf("GetAllPools = %d, want 1", len(got))
	}
	if got := c.Count(model.ProtocolCetus); got != 1 {
		t.Errorf("Count = %d, want 1", got)
	}
}

func TestCacheRejectsTooFewTokens(t *testing.T) {
	c := NewCache()
	bad := model.Pool{Protocol: model.ProtocolCetus, PoolID: model.ObjectID{9}, Tokens: []model.Coin{"A"}}
	if err := c.Insert(bad); err == nil {
		t.Fatal("expected validation error for single-token pool")
	}
}

func TestCacheMissingLookupsReturnFalse(t *testing.T) {
	c := NewCache()
	if _, ok := c.GetPoolByID(model.ObjectID{42}); ok {
		t.Error("expected miss")
	}
	if _, ok := c.GetPoolsByCoin("nope"); ok {
		t.Error("expected miss")
	}
}
