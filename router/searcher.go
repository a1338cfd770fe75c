// Package router finds sell/buy paths between a coin and the native
// coin and picks the best-performing one for a given trade size,
// grounded on the original implementation's bin/arb/src/defi/mod.rs
// (DexSearcher, find_sell_paths, find_buy_paths,
// find_best_path_exact_in, PathTradeResult) — spec.md §4.D.
package router

import (
	"context"

	"github.com/luxfi/sui-arb/dex"
	"github.com/luxfi/sui-arb/dex/factory"
	"github.com/luxfi/sui-arb/model"
	"github.com/luxfi/sui-arb/pool"
	"github.com/luxfi/sui-arb/simulator"
)

// DexSearcher resolves the live Dex adapters available to trade out of
// coinIn, optionally constrained to a specific coinOut. It is the
// router's only dependency on the pool topology index, kept as an
// interface so path-finding can be tested against a fake without a
// real Cache or Simulator.
type DexSearcher interface {
	FindDexes(ctx context.Context, coinIn model.Coin, coinOut *model.Coin) ([]dex.Dex, error)
}

// PoolSearcher is the production DexSearcher: it looks pools up in the
// topology index, instantiates a live adapter per match via the
// factory, and refreshes on-chain liquidity for adapters that support
// it before handing them to the router.
type PoolSearcher struct {
	Cache *pool.Cache
	Sim   simulator.Simulator
}

// NewPoolSearcher wraps a pool index and a simulator for liquidity
// refresh.
func NewPoolSearcher(cache *pool.Cache, sim simulator.Simulator) *PoolSearcher {
	return &PoolSearcher{Cache: cache, Sim: sim}
}

// FindDexes implements DexSearcher.
func (s *PoolSearcher) FindDexes(ctx context.Context, coinIn model.Coin, coinOut *model.Coin) ([]dex.Dex, error) {
	var pools []model.Pool
	if coinOut != nil {
		got, ok := s.Cache.GetPoolsByCoinPair(coinIn, *coinOut)
		if !ok {
			return nil, nil
		}
		pools = got
	} else {
		got, ok := s.Cache.GetPoolsByCoin(coinIn)
		if !ok {
			return nil, nil
		}
		pools = got
	}

	out := make([]dex.Dex, 0, len(pools))
	for _, p := range pools {
		if p.Protocol == model.ProtocolNavi {
			continue // lending-only, never a swap leg
		}
		d, err := factory.New(p, coinIn)
		if err != nil {
			continue
		}
		if refresher, ok := d.(dex.Refresher); ok {
			if err := refresher.Refresh(ctx, s.Sim); err != nil {
				continue // stale or undecodable pool: skip rather than trade on bad liquidity
			}
		}
		out = append(out, d)
	}
	return out, nil
}
