package router

import (
	"testing"

	"github.com/luxfi/sui-arb/dex"
	"github.com/luxfi/sui-arb/model"
)

// TestFilterAndRankByLiquidityDropsUsedBeforeTruncating covers spec.md
// §4.D's pool-pruning order: a pool already used earlier in the path
// must be dropped before the top-maxPoolCount-by-liquidity cut, not
// after. Otherwise it can consume one of the top slots and then get
// discarded, silently shrinking the candidate set below maxPoolCount
// even though an unused, lower-liquidity pool was available to fill it.
func TestFilterAndRankByLiquidityDropsUsedBeforeTruncating(t *testing.T) {
	const n = maxPoolCount + 1 // one more candidate than the cap

	candidates := make([]dex.Dex, n)
	ids := make([]model.ObjectID, n)
	for i := 0; i < n; i++ {
		ids[i] = model.ObjectID{byte(i + 1)}
		candidates[i] = &fakeDex{
			poolID: ids[i],
			liq:    minLiquidity + uint64(n-i), // descending liquidity
		}
	}
	// The single highest-liquidity pool is already used in this path.
	usedID := ids[0]
	used := map[model.ObjectID]struct{}{usedID: {}}

	out := filterAndRankByLiquidity(candidates, used)

	if len(out) != maxPoolCount {
		t.Fatalf("expected %d surviving candidates (used pool replaced by the next-best unused one), got %d", maxPoolCount, len(out))
	}
	for _, c := range out {
		if c.PoolObjectID() == usedID {
			t.Errorf("used pool %v must not appear in the filtered candidates", usedID)
		}
	}
	// The lowest-liquidity candidate (which a used-after-truncate bug
	// would have dropped) must be admitted to fill the freed slot.
	lowest := ids[n-1]
	found := false
	for _, c := range out {
		if c.PoolObjectID() == lowest {
			found = true
		}
	}
	if !found {
		t.Errorf("expected the next-best unused pool %v to fill the slot freed by the used pool", lowest)
	}
}
