package arbcache

import (
	"testing"
	"time"

	"github.com/luxfi/sui-arb/model"
)

func TestInsertTwiceForSameCoinSupersedesFirst(t *testing.T) {
	c := New(time.Hour)
	coin := model.Coin("0x2::usdc::USDC")

	var d1, d2 model.Digest
	d1[0] = 1
	d2[0] = 2

	c.Insert(coin, nil, d1, model.SimulateCtx{}, model.Source{})
	c.Insert(coin, nil, d2, model.SimulateCtx{}, model.Source{})

	if c.Len() != 1 {
		t.Fatalf("expected exactly one live entry per coin, got %d", c.Len())
	}
	digest, _, ok := c.Get(coin)
	if !ok {
		t.Fatalf("expected entry to be present")
	}
	if digest != d2 {
		t.Errorf("expected the second insert to win, got digest %v", digest)
	}

	item, ok := c.PopOne()
	if !ok {
		t.Fatalf("expected PopOne to return the live entry")
	}
	if item.TriggerTxDigest != d2 {
		t.Errorf("expected popped item to carry the superseding digest")
	}
	if _, ok := c.PopOne(); ok {
		t.Errorf("expected the stale first insert's heap record to be discarded, not returned")
	}
}

func TestRemoveExpiredReturnsOnlyStaleCoins(t *testing.T) {
	c := New(10 * time.Millisecond)
	coinA := model.Coin("A")
	coinB := model.Coin("B")

	c.Insert(coinA, nil, model.Digest{}, model.SimulateCtx{}, model.Source{})
	time.Sleep(20 * time.Millisecond)
	c.Insert(coinB, nil, model.Digest{}, model.SimulateCtx{}, model.Source{})

	expired := c.RemoveExpired()
	if len(expired) != 1 || expired[0] != coinA {
		t.Errorf("expected only coinA expired, got %v", expired)
	}
	if _, _, ok := c.Get(coinB); !ok {
		t.Errorf("expected coinB to remain live")
	}
}

func TestPopOneReturnsFalseWhenEmpty(t *testing.T) {
	c := New(time.Second)
	if _, ok := c.PopOne(); ok {
		t.Errorf("expected PopOne on an empty cache to return false")
	}
}

func TestPopOneSkipsExpiredEntries(t *testing.T) {
	c := New(5 * time.Millisecond)
	c.Insert("A", nil, model.Digest{}, model.SimulateCtx{}, model.Source{})
	time.Sleep(15 * time.Millisecond)
	if _, ok := c.PopOne(); ok {
		t.Errorf("expected PopOne to skip an expired entry and return false")
	}
}
