package pipeline

import (
	"context"
	"fmt"

	"github.com/luxfi/sui-arb/dex"
	"github.com/luxfi/sui-arb/internal/chainlog"
	"github.com/luxfi/sui-arb/internal/jsonrpc"
	"github.com/luxfi/sui-arb/internal/telemetry"
	"github.com/luxfi/sui-arb/model"
	"github.com/luxfi/sui-arb/router"
	"github.com/luxfi/sui-arb/simulator"
)

// Executor submits a finalized transaction for on-chain execution (the
// public-source path of spec.md §4.G worker protocol step 4). This is
// an external-collaborator seam: signing and broadcast are out of this
// package's scope.
type Executor interface {
	Execute(ctx context.Context, tx simulator.Transaction) error
}

// BidSubmitter posts a sealed-auction bid (the Shio-source path of
// spec.md §4.G worker protocol step 4), wrapping jsonrpc.Client's
// shio_submitBid call behind an interface so workers can be tested
// without a live RPC endpoint.
type BidSubmitter interface {
	SubmitBid(ctx context.Context, params jsonrpc.SubmitBidParams) (jsonrpc.SubmitBidResult, error)
}

// GasCoinSource supplies the wallet's current gas coin set immediately
// before a dry run, so gas-coin references are fresh even if the chain
// indexer lags behind the wallet's own view (spec.md §4.G "rewrite
// gas-coin refs to the wallet's current coins to sidestep RPC indexing
// lag").
type GasCoinSource interface {
	GasCoins(ctx context.Context) ([]model.ObjectRef, error)
}

// DryRunner is the subset of *simulator.Replay a worker's dry run
// needs: simulate the finalized transaction, then (on success) signal
// that the replica's refresh cadence should tighten. Kept as an
// interface so a worker can be tested without a live Replay.
type DryRunner interface {
	Simulate(ctx context.Context, tx simulator.Transaction, simCtx model.SimulateCtx) (simulator.SimulateResult, error)
	NotifyBidSubmitted()
}

// Worker runs the find_opportunity -> dry-run -> submit -> notify
// protocol (spec.md §4.G) against a shared dispatch channel.
type Worker struct {
	ID       int
	Searcher router.DexSearcher
	Trader   *dex.Trader
	Flash    dex.FlashLoanProvider
	Digester TxDigester
	Replay   DryRunner
	Executor Executor
	BidRPC   BidSubmitter
	Telegram *telemetry.TelegramSink
	Log      chainlog.Logger
	GasPrice func() uint64
	GasCoins GasCoinSource

	UseGSS bool
}

// Run drains items until ctx is cancelled or the channel closes.
func (w *Worker) Run(ctx context.Context, items <-chan model.ArbItem, sender simulator.Address, fallbackGasCoins []model.ObjectRef) {
	for {
		select {
		case <-ctx.Done():
			return
		case item, ok := <-items:
			if !ok {
				return
			}
			w.process(ctx, item, sender, fallbackGasCoins)
		}
	}
}

func (w *Worker) process(ctx context.Context, item model.ArbItem, sender simulator.Address, fallbackGasCoins []model.ObjectRef) {
	opp, err := FindOpportunity(ctx, w.Searcher, w.Trader, OpportunityParams{
		Sender:   sender,
		Coin:     item.Coin,
		PoolID:   item.PoolID,
		GasCoins: fallbackGasCoins,
		SimCtx:   item.SimCtx,
		UseGSS:   w.UseGSS,
		Source:   item.Source,
	})
	if err != nil {
		w.Log.Debug("pipeline: find_opportunity found nothing", "worker", w.ID, "coin", item.Coin, "err", err)
		return
	}

	if opp.Source.DeadlineMissed() {
		// spec.md §4.G Open Question recommendation: skip submission,
		// still emit telemetry, for a sealed-auction opportunity found
		// too close to (or past) its deadline.
		w.Log.Warn("pipeline: sealed-auction deadline missed, skipping submission", "worker", w.ID, "coin", item.Coin)
		w.Telegram.Send(ctx, fmt.Sprintf("deadline missed: coin=%s profit=%d", item.Coin, opp.Profit))
		return
	}

	gasCoins := fallbackGasCoins
	if gcs, err := w.gasCoins(ctx); err == nil && len(gcs) > 0 {
		gasCoins = gcs
	}

	tx, err := BuildFinalTxData(ctx, w.Flash, w.Digester, sender, opp.AmountIn, opp.Path, gasCoins, w.gasPrice(), opp.Source, opp.Source.OppTxDigest)
	if err != nil {
		w.Log.Warn("pipeline: build_final_tx_data failed", "worker", w.ID, "coin", item.Coin, "err", err)
		return
	}

	result, err := w.Replay.Simulate(ctx, tx, item.SimCtx)
	if err != nil {
		w.Log.Warn("pipeline: dry run failed", "worker", w.ID, "coin", item.Coin, "err", err)
		return
	}
	if !result.Effects.Success || result.NativeBalanceChange(sender) <= 0 {
		w.Log.Debug("pipeline: dry run not profitable", "worker", w.ID, "coin", item.Coin)
		return
	}

	if opp.Source.IsSealedAuction() {
		if w.BidRPC == nil {
			w.Log.Warn("pipeline: sealed-auction opportunity but no bid submitter configured", "worker", w.ID, "coin", item.Coin)
			return
		}
		if _, err := w.BidRPC.SubmitBid(ctx, jsonrpc.SubmitBidParams{
			OppTxDigest: opp.Source.OppTxDigest.String(),
			BidAmount:   opp.Source.BidAmount,
		}); err != nil {
			w.Log.Warn("pipeline: submit_bid failed", "worker", w.ID, "coin", item.Coin, "err", err)
			return
		}
	} else {
		if w.Executor == nil {
			w.Log.Warn("pipeline: no executor configured", "worker", w.ID, "coin", item.Coin)
			return
		}
		if err := w.Executor.Execute(ctx, tx); err != nil {
			w.Log.Warn("pipeline: execute failed", "worker", w.ID, "coin", item.Coin, "err", err)
			return
		}
	}

	w.Telegram.ProfitFound(ctx, string(item.Coin), opp.Profit, opp.Source.OppTxDigest.String())
	w.Replay.NotifyBidSubmitted()
}

func (w *Worker) gasCoins(ctx context.Context) ([]model.ObjectRef, error) {
	if w.GasCoins == nil {
		return nil, fmt.Errorf("pipeline: no gas coin source configured")
	}
	return w.GasCoins.GasCoins(ctx)
}

func (w *Worker) gasPrice() uint64 {
	if w.GasPrice == nil {
		return 1000
	}
	return w.GasPrice()
}
