package router

import (
	"context"
	"fmt"

	"github.com/luxfi/sui-arb/dex"
	"github.com/luxfi/sui-arb/model"
	"github.com/luxfi/sui-arb/simulator"
	"golang.org/x/sync/errgroup"
)

// PathTradeResult is the outcome of evaluating one candidate path at a
// fixed amount_in: the path itself, the trade size, what it returned,
// its gas cost, and the cache-miss count the trader reported (spec.md
// §4.D, §4.E).
type PathTradeResult struct {
	Path        dex.Path
	AmountIn    uint64
	AmountOut   uint64
	GasCost     int64
	CacheMisses uint64
}

// Profit reports the trade's contribution to realized native-coin
// profit. A path that starts and ends at the native coin (the
// round-trip arbitrage shape) already reports AmountOut net of gas —
// the trader folds the split's deduction and the final transfer's
// proceeds into the same native balance delta — so profit is simply
// amount_out minus amount_in. A path that spends the native coin
// without returning to it yet (e.g. costing a buy-only leg in
// isolation) has no proceeds to report, only the native balance
// already spent: gas_cost minus amount_in, where gas_cost (the raw
// native delta) is the pure gas deduction in that case since no native
// proceeds land in the same balance to confound it. A path whose
// amount_in is not native has no native-denominated profit to report
// at all.
func (r PathTradeResult) Profit() int64 {
	coinIn, coinOut := model.NativeCoin, model.NativeCoin
	if !r.Path.Empty() {
		coinIn = r.Path.CoinIn()
		coinOut = r.Path.CoinOut()
	}
	switch {
	case coinIn == model.NativeCoin && coinOut == model.NativeCoin:
		return int64(r.AmountOut) - int64(r.AmountIn)
	case coinIn == model.NativeCoin:
		return r.GasCost - int64(r.AmountIn)
	default:
		return 0
	}
}

// FindBestPathExactIn evaluates every candidate path at amountIn in
// parallel and returns the one with the highest profit, requiring a
// positive amount_out to even compete (a path that simulates to zero
// output, or fails outright, is dropped rather than ranked). The
// trivial empty path (native-to-native, no legs) always succeeds with
// amount_out == amount_in and zero gas.
func FindBestPathExactIn(
	ctx context.Context,
	trader *dex.Trader,
	paths []dex.Path,
	sender simulator.Address,
	amountIn uint64,
	tradeType dex.TradeType,
	gasCoins []model.ObjectRef,
	simCtx model.SimulateCtx,
) (PathTradeResult, error) {
	if len(paths) == 0 {
		return PathTradeResult{}, fmt.Errorf("router: no candidate paths")
	}

	results := make([]struct {
		result PathTradeResult
		ok     bool
	}, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	for i, p := range paths {
		i, p := i, p
		g.Go(func() error {
			if p.Empty() {
				results[i].result = PathTradeResult{Path: p, AmountIn: amountIn, AmountOut: amountIn}
				results[i].ok = true
				return nil
			}
			tr, err := trader.Trade(gctx, p, sender, amountIn, tradeType, gasCoins, simCtx.Clone())
			if err != nil || tr.AmountOut == 0 {
				return nil // a failing or zero-output path simply does not compete
			}
			results[i].result = PathTradeResult{
				Path:        p,
				AmountIn:    amountIn,
				AmountOut:   tr.AmountOut,
				GasCost:     tr.GasCost,
				CacheMisses: tr.CacheMisses,
			}
			results[i].ok = true
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return PathTradeResult{}, err
	}

	var best PathTradeResult
	haveBest := false
	for _, r := range results {
		if !r.ok {
			continue
		}
		bestTR := model.TrialResult{Profit: best.Profit()}
		candidateTR := model.TrialResult{Profit: r.result.Profit()}
		if !haveBest || bestTR.Less(candidateTR) {
			best = r.result
			haveBest = true
		}
	}
	if !haveBest {
		return PathTradeResult{}, fmt.Errorf("router: no path produced a positive output")
	}
	return best, nil
}
