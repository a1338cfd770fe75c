package botcmd

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/luxfi/sui-arb/internal/chainclient"
	"github.com/luxfi/sui-arb/internal/chainlog"
	"github.com/luxfi/sui-arb/model"
)

// epochPollInterval bounds how often epochTracker re-checks staleness
// against wall time, independent of model.Epoch.Stale's own
// start+duration math (spec.md §3 SimulateCtx "epoch ... is stale iff
// wall-clock > start_ms + duration_ms and must then be refreshed from
// chain").
const epochPollInterval = 2 * time.Second

// epochTracker is the pipeline's single-writer, many-reader epoch
// cache (spec.md §5 "Shared resources: Epoch cache: single-writer (the
// pipeline), many-reader; refreshed lazily when stale"). A background
// goroutine keeps the cached epoch fresh so that every worker's
// SimulateCtx and gasPrice() read a recent value without each one
// hitting the RPC endpoint itself.
type epochTracker struct {
	client *chainclient.Client
	log    chainlog.Logger

	mu    sync.RWMutex
	epoch model.Epoch

	gasPriceAtomic atomic.Uint64
}

// newEpochTracker returns a tracker with a zero-value epoch; callers
// must run it (via run) before relying on currentEpoch()/gasPrice() to
// return anything meaningful.
func newEpochTracker(client *chainclient.Client, log chainlog.Logger) *epochTracker {
	return &epochTracker{client: client, log: log}
}

// run blocks, refreshing the cached epoch once immediately and then on
// every staleness check, until ctx is cancelled.
func (t *epochTracker) run(ctx context.Context) error {
	if err := t.refresh(ctx); err != nil {
		return err
	}
	ticker := time.NewTicker(epochPollInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if t.currentEpoch().Stale(time.Now()) {
				if err := t.refresh(ctx); err != nil {
					t.log.Warn("botcmd: epoch refresh failed", "err", err)
				}
			}
		}
	}
}

func (t *epochTracker) refresh(ctx context.Context) error {
	epoch, err := t.client.CurrentEpoch(ctx)
	if err != nil {
		return err
	}
	t.mu.Lock()
	t.epoch = epoch
	t.mu.Unlock()
	t.gasPriceAtomic.Store(epoch.GasPrice)
	return nil
}

// currentEpoch returns the most recently fetched epoch.
func (t *epochTracker) currentEpoch() model.Epoch {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.epoch
}

// gasPrice is the func() uint64 pipeline.Worker.GasPrice needs.
func (t *epochTracker) gasPrice() uint64 {
	return t.gasPriceAtomic.Load()
}

// simCtx builds a fresh SimulateCtx (empty overlay) at the currently
// cached epoch, the func() model.SimulateCtx shape
// pipeline.Dispatcher's RunPublicFeed/RunPrivateFeed/RunShioFeed want
// for their epoch parameter.
func (t *epochTracker) simCtx() model.SimulateCtx {
	return model.NewSimulateCtx(t.currentEpoch())
}
