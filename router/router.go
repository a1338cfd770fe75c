package router

import (
	"context"
	"sort"

	"github.com/luxfi/sui-arb/dex"
	"github.com/luxfi/sui-arb/model"
)

// Hop-bound and candidate-pruning constants carried over unchanged from
// the original path-finder (spec.md §4.D).
const (
	maxHopCount  = 2
	maxPoolCount = 10
	minLiquidity = 1000
)

// FindSellPaths enumerates every disjoint-pool path from coinIn to the
// native coin within maxHopCount legs. A coin that is already native
// has the trivial, zero-leg path as its only sell path.
func FindSellPaths(ctx context.Context, searcher DexSearcher, coinIn model.Coin) ([]dex.Path, error) {
	if coinIn.IsNative() {
		return []dex.Path{{}}, nil
	}
	var out []dex.Path
	if err := dfsSellPaths(ctx, searcher, coinIn, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// FindBuyPaths derives buy paths for coinOut from the sell paths for
// the same coin, reversing each one: a path that sells coinOut for the
// native coin, walked backwards, buys coinOut with the native coin
// (spec.md §4.D invariant 2).
func FindBuyPaths(ctx context.Context, searcher DexSearcher, coinOut model.Coin) ([]dex.Path, error) {
	sellPaths, err := FindSellPaths(ctx, searcher, coinOut)
	if err != nil {
		return nil, err
	}
	out := make([]dex.Path, len(sellPaths))
	for i, p := range sellPaths {
		out[i] = p.Reverse()
	}
	return out, nil
}

// dfsSellPaths recursively extends prefix, one hop at a time, until it
// reaches the native coin or exhausts the hop budget. At each step it
// restricts the next hop's candidate pools to those quoting at least
// minLiquidity, keeping only the maxPoolCount deepest when there are
// more candidates than that. A pegged coin, or the final allowed hop,
// searches only for a pool that swaps directly to the native coin
// rather than to any counter-coin, since wandering through an
// intermediate coin from there is never worth the extra leg.
func dfsSellPaths(ctx context.Context, searcher DexSearcher, coin model.Coin, prefix []dex.Dex, out *[]dex.Path) error {
	if coin.IsNative() {
		if len(prefix) > 0 {
			*out = append(*out, dex.Path{Dexes: clonePrefix(prefix)})
		}
		return nil
	}
	if len(prefix) >= maxHopCount {
		return nil
	}

	var candidates []dex.Dex
	var err error
	if len(prefix) == maxHopCount-1 || model.IsPegged(coin) {
		native := model.NativeCoin
		candidates, err = searcher.FindDexes(ctx, coin, &native)
	} else {
		candidates, err = searcher.FindDexes(ctx, coin, nil)
	}
	if err != nil {
		return err
	}

	usedPools := make(map[model.ObjectID]struct{}, len(prefix))
	for _, d := range prefix {
		usedPools[d.PoolObjectID()] = struct{}{}
	}

	candidates = filterAndRankByLiquidity(candidates, usedPools)

	for _, c := range candidates {
		next := append(append([]dex.Dex(nil), prefix...), c)
		if err := dfsSellPaths(ctx, searcher, c.CoinOutType(), next, out); err != nil {
			return err
		}
	}
	return nil
}

// filterAndRankByLiquidity drops pools below minLiquidity or already
// used earlier in this path, sorts the rest deepest-first, and
// truncates to maxPoolCount so a coin with many thin markets doesn't
// blow up the search tree. usedPools is filtered out before the
// truncation, not after: an already-used pool must never consume one of
// the top-maxPoolCount liquidity slots and shrink the candidate set
// below what it should be (spec.md §4.D, original_source/bin/arb/src/
// defi/mod.rs:195-200's retain(!visited) before sort+truncate).
func filterAndRankByLiquidity(candidates []dex.Dex, usedPools map[model.ObjectID]struct{}) []dex.Dex {
	filtered := make([]dex.Dex, 0, len(candidates))
	for _, c := range candidates {
		if _, used := usedPools[c.PoolObjectID()]; used {
			continue
		}
		if c.Liquidity() >= minLiquidity {
			filtered = append(filtered, c)
		}
	}
	sort.Slice(filtered, func(i, j int) bool {
		return filtered[i].Liquidity() > filtered[j].Liquidity()
	})
	if len(filtered) > maxPoolCount {
		filtered = filtered[:maxPoolCount]
	}
	return filtered
}

// clonePrefix returns an independent copy of each adapter in prefix, so
// that one discovered path's later mutation (Flip, via Reverse) never
// affects a sibling path sharing a prefix of the same pools.
func clonePrefix(prefix []dex.Dex) []dex.Dex {
	out := make([]dex.Dex, len(prefix))
	for i, d := range prefix {
		out[i] = d.Clone()
	}
	return out
}
