package pipeline

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/luxfi/sui-arb/dex"
	"github.com/luxfi/sui-arb/internal/arberrors"
	"github.com/luxfi/sui-arb/model"
	"github.com/luxfi/sui-arb/router"
	"github.com/luxfi/sui-arb/search"
	"github.com/luxfi/sui-arb/simulator"
)

// bidRetentionNumerator/bidRetentionDenominator express the 9/10
// fraction of profit offered as a sealed-auction bid, retaining 10%
// for the searcher (spec.md §4.G worker protocol step 1 "bid_amount =
// best_profit * 9/10").
const (
	bidRetentionNumerator   = 9
	bidRetentionDenominator = 10
)

// OpportunityParams is find_opportunity's argument set (spec.md §4.G
// "find_opportunity(sender, coin, pool?, gas_coins=[], sim_ctx,
// use_gss, source)").
type OpportunityParams struct {
	Sender   simulator.Address
	Coin     model.Coin
	PoolID   *model.ObjectID
	GasCoins []model.ObjectRef
	SimCtx   model.SimulateCtx
	UseGSS   bool
	Source   model.Source
}

// Opportunity is the result of a successful find_opportunity call: the
// built trial context, the winning trade size and live path, its
// profit and bid amount, and the (possibly deadline-demoted) source.
type Opportunity struct {
	TrialCtx    model.TrialCtx
	AmountIn    uint64
	Path        dex.Path
	Profit      int64
	CacheMisses uint64
	BidAmount   uint64
	Source      model.Source
}

// FindOpportunity implements spec.md §4.G worker protocol step 1:
// build both path directions, run the grid search (optionally refined
// with GSS), stamp the deadline, and set the bid amount.
func FindOpportunity(ctx context.Context, searcher router.DexSearcher, trader *dex.Trader, p OpportunityParams) (Opportunity, error) {
	buyPaths, err := router.FindBuyPaths(ctx, searcher, p.Coin)
	if err != nil {
		return Opportunity{}, fmt.Errorf("pipeline: find_opportunity: %w", err)
	}
	sellPaths, err := router.FindSellPaths(ctx, searcher, p.Coin)
	if err != nil {
		return Opportunity{}, fmt.Errorf("pipeline: find_opportunity: %w", err)
	}

	tctx := model.TrialCtx{
		CoinType:  p.Coin,
		PoolID:    p.PoolID,
		BuyPaths:  describeAll(buyPaths),
		SellPaths: describeAll(sellPaths),
		Sender:    [32]byte(p.Sender),
		GasCoins:  p.GasCoins,
		SimCtx:    p.SimCtx,
	}
	if err := tctx.Validate(); err != nil {
		return Opportunity{}, fmt.Errorf("pipeline: find_opportunity: %w", err)
	}

	trial, records := buildTrial(trader, p.Sender, buyPaths, sellPaths, p.PoolID, p.GasCoins, p.SimCtx)

	var (
		bestIn     uint64
		bestResult dex.TradeResult
		bestScore  uint64
		searchErr  error
	)
	if p.UseGSS {
		bestIn, bestResult, bestScore, searchErr = search.ProfitSearch(ctx, trial)
	} else {
		bestIn, bestResult, bestScore, searchErr = search.GridOnly(ctx, trial)
	}
	if searchErr != nil {
		return Opportunity{}, fmt.Errorf("pipeline: find_opportunity: %w", searchErr)
	}
	if bestScore == 0 {
		return Opportunity{}, arberrors.ErrNoProfitableGrid
	}

	winningPath, _ := records.Load(bestIn)
	path, _ := winningPath.(dex.Path)

	source := p.Source
	if source.HasDeadline() {
		source = source.WithArbFoundTime(time.Now())
	}

	profit := int64(bestResult.AmountOut) - int64(bestIn)
	var bidAmount uint64
	if profit > 0 && source.IsSealedAuction() {
		bidAmount = uint64(profit) * bidRetentionNumerator / bidRetentionDenominator
	}
	source = source.WithBidAmount(bidAmount)

	return Opportunity{
		TrialCtx:    tctx,
		AmountIn:    bestIn,
		Path:        path,
		Profit:      profit,
		CacheMisses: bestResult.CacheMisses,
		BidAmount:   bidAmount,
		Source:      source,
	}, nil
}

// buildTrial returns the search.Trial closure spec.md §4.E describes:
// at a given amount_in, (a) pick the best buy leg, (b) enumerate sell
// paths disjoint from it that still touch the trigger pool if one was
// given, (c) pick the best full buy⊕sell flash-loan path. The winning
// combined dex.Path for each amount is recorded in the returned map so
// the caller can recover it once the search settles on a winning
// amount (the search itself only carries a dex.TradeResult forward).
func buildTrial(trader *dex.Trader, sender simulator.Address, buyPaths, sellPaths []dex.Path, poolID *model.ObjectID, gasCoins []model.ObjectRef, simCtx model.SimulateCtx) (search.Trial, *sync.Map) {
	records := &sync.Map{}

	trial := func(ctx context.Context, amountIn uint64) (dex.TradeResult, error) {
		bestBuy, err := router.FindBestPathExactIn(ctx, trader, buyPaths, sender, amountIn, dex.TradeTypeSwap, gasCoins, simCtx)
		if err != nil {
			return dex.TradeResult{}, err
		}

		touchesTrigger := poolID == nil || bestBuy.Path.ContainsPool(*poolID)

		combined := make([]dex.Path, 0, len(sellPaths))
		for _, sp := range sellPaths {
			if !sp.DisjointFrom(bestBuy.Path) {
				continue
			}
			if !touchesTrigger && !sp.ContainsPool(*poolID) {
				continue
			}
			legs := make([]dex.Dex, 0, len(bestBuy.Path.Dexes)+len(sp.Dexes))
			legs = append(legs, bestBuy.Path.Dexes...)
			legs = append(legs, sp.Dexes...)
			combined = append(combined, dex.Path{Dexes: legs})
		}
		if len(combined) == 0 {
			return dex.TradeResult{}, arberrors.ErrNoLiquidPath
		}

		best, err := router.FindBestPathExactIn(ctx, trader, combined, sender, amountIn, dex.TradeTypeFlashloan, gasCoins, simCtx)
		if err != nil {
			return dex.TradeResult{}, err
		}
		records.Store(amountIn, best.Path)
		return dex.TradeResult{AmountOut: best.AmountOut, GasCost: best.GasCost, CacheMisses: best.CacheMisses}, nil
	}

	return trial, records
}

func describeAll(paths []dex.Path) []model.Path {
	out := make([]model.Path, len(paths))
	for i, p := range paths {
		out[i] = p.Describe()
	}
	return out
}
