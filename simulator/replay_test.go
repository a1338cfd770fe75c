package simulator

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/luxfi/geth/log"
	"github.com/luxfi/sui-arb/model"
)

type countingReloader struct {
	count atomic.Int64
}

func (c *countingReloader) Reload(ctx context.Context) error {
	c.count.Add(1)
	return nil
}

func TestReplaySwitchesToShortCadenceOnNotify(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reloader := &countingReloader{}
	r := NewReplay(ctx, NewLocal(&fakeBase{objects: map[model.ObjectID]*model.Object{}}, &fakeExecutor{}), reloader, 5*time.Millisecond, 200*time.Millisecond, 3, log.Root())
	defer r.Stop()

	// At the long cadence, very few reloads happen in this window.
	time.Sleep(20 * time.Millisecond)
	before := reloader.count.Load()

	r.NotifyBidSubmitted()
	time.Sleep(60 * time.Millisecond)
	after := reloader.count.Load()

	if after <= before {
		t.Errorf("expected additional reloads after notify, before=%d after=%d", before, after)
	}
}
