package pipeline

import (
	"context"
	"sync"
	"time"

	"github.com/luxfi/sui-arb/dex"
	"github.com/luxfi/sui-arb/internal/chainlog"
	"github.com/luxfi/sui-arb/model"
	"github.com/luxfi/sui-arb/simulator"
)

// shioDeadlineSlackMs is subtracted from a sealed auction's advertised
// deadline so a bid built right at the wire still has time to reach
// the auctioneer (spec.md §4.G "apply a small safety slack to the
// deadline").
const shioDeadlineSlackMs = 20

// PublicTxSource yields the next executed transaction's trigger digest
// and emitted events off the public effects feed (spec.md §6 "Local
// sockets", internal/wire's PublicTxFrame). Decoding the opaque
// TransactionEffects bytes into a digest and events is this
// interface's implementation's job, not this package's: the pipeline
// only ever needs the digest and the events, per internal/wire's own
// framing-only scope.
type PublicTxSource interface {
	Next(ctx context.Context) (digest model.Digest, events []simulator.Event, err error)
}

// PrivateTxSource yields the next transaction observed before it
// executes, off the private-tx websocket feed (spec.md §4.G event
// source 2). It hasn't run yet, so the pipeline must simulate it
// itself to learn what events it would emit.
type PrivateTxSource interface {
	Next(ctx context.Context) (tx simulator.Transaction, err error)
}

// AuctionStarted is one sealed auction opening off the Shio feed
// (spec.md §4.G event source 3): the triggering transaction's digest,
// gas price, deadline, and the simulated state needed to replay it.
type AuctionStarted struct {
	TriggerDigest model.Digest
	GasPrice      uint64
	DeadlineMs    int64
	Overlay       map[model.ObjectID]model.ObjectReadResult
	Events        []simulator.Event
}

// ShioSource yields the next sealed-auction opening.
type ShioSource interface {
	Next(ctx context.Context) (AuctionStarted, error)
}

// CoinPoolMatch is one swap event successfully decoded by some
// protocol's EventDecoder.
type CoinPoolMatch struct {
	Coin   model.Coin
	PoolID model.ObjectID
}

// DecodeSwapEvents fans each event out to every decoder concurrently
// and collects the matches (spec.md §4.G "decode any events matching a
// known swap event type, recovering coin and pool id without a full
// BCS decode" — dex.DecodeTwoSidedSwapEvent's technique, exposed here
// per-event across the whole decoder set).
func DecodeSwapEvents(ctx context.Context, decoders []dex.EventDecoder, events []simulator.Event) []CoinPoolMatch {
	var (
		mu      sync.Mutex
		matches []CoinPoolMatch
		wg      sync.WaitGroup
	)
	for _, event := range events {
		event := event
		wg.Add(1)
		go func() {
			defer wg.Done()
			for _, d := range decoders {
				coin, poolID, ok := d.DecodeSwapEvent(event)
				if !ok {
					continue
				}
				mu.Lock()
				matches = append(matches, CoinPoolMatch{Coin: coin, PoolID: poolID})
				mu.Unlock()
				return
			}
		}()
	}
	wg.Wait()
	return matches
}

// RunPublicFeed drains source forever, decoding each transaction's
// events and handing any swap matches to the dispatcher (spec.md §4.G
// event source 1, "Public" per-event handling). It reconnects by
// simply continuing the loop: source.Next is expected to retry its own
// connection internally, matching spec.md §5 "reconnect forever,
// logging and continuing on transient errors".
func (d *Dispatcher) RunPublicFeed(ctx context.Context, source PublicTxSource, decoders []dex.EventDecoder, epoch func() model.SimulateCtx, log chainlog.Logger) {
	for {
		if ctx.Err() != nil {
			return
		}
		digest, events, err := source.Next(ctx)
		if err != nil {
			log.Warn("pipeline: public feed read failed", "err", err)
			continue
		}
		simCtx := epoch()
		for _, m := range DecodeSwapEvents(ctx, decoders, events) {
			poolID := m.PoolID
			d.HandleEvent(m.Coin, &poolID, digest, simCtx, model.NewPublicSource())
		}
	}
}

// RunPrivateFeed drains source forever, simulating each not-yet-run
// transaction to learn its events before decoding them the same way as
// the public feed (spec.md §4.G event source 2; the simulate-first step
// is this package's own resolution of that source's event-handling,
// which spec.md leaves unspecified beyond "observe before execution").
func (d *Dispatcher) RunPrivateFeed(ctx context.Context, source PrivateTxSource, sim simulator.Simulator, decoders []dex.EventDecoder, epoch func() model.SimulateCtx, log chainlog.Logger) {
	for {
		if ctx.Err() != nil {
			return
		}
		tx, err := source.Next(ctx)
		if err != nil {
			log.Warn("pipeline: private feed read failed", "err", err)
			continue
		}
		simCtx := epoch()
		result, err := sim.Simulate(ctx, tx, simCtx)
		if err != nil || !result.Effects.Success {
			continue
		}
		digest := model.Digest{} // unsigned; this transaction has not executed yet
		for _, m := range DecodeSwapEvents(ctx, decoders, result.Events) {
			poolID := m.PoolID
			d.HandleEvent(m.Coin, &poolID, digest, simCtx, model.NewPublicSource())
		}
	}
}

// RunShioFeed drains source forever, building a Shio-sourced arb entry
// for every swap event the auction's triggering transaction emits
// (spec.md §4.G event source 3, "Shio" per-event handling).
func (d *Dispatcher) RunShioFeed(ctx context.Context, source ShioSource, decoders []dex.EventDecoder, epoch func() model.SimulateCtx, log chainlog.Logger) {
	for {
		if ctx.Err() != nil {
			return
		}
		auction, err := source.Next(ctx)
		if err != nil {
			log.Warn("pipeline: shio feed read failed", "err", err)
			continue
		}
		simCtx := epoch()
		simCtx.Epoch.GasPrice = auction.GasPrice
		for id, ov := range auction.Overlay {
			simCtx = simCtx.WithOverride(id, ov)
		}
		startMs := time.Now().UnixMilli()
		source := model.NewShioSource(auction.TriggerDigest, startMs, auction.DeadlineMs-shioDeadlineSlackMs)
		for _, m := range DecodeSwapEvents(ctx, decoders, auction.Events) {
			poolID := m.PoolID
			d.HandleEvent(m.Coin, &poolID, auction.TriggerDigest, simCtx, source)
		}
	}
}
