package model

// TrialCtx is created once per (coin, trigger-tx): {coin_type, pool_id?,
// buy_paths, sell_paths, sender, gas_coins, sim_ctx} (spec.md §3).
type TrialCtx struct {
	CoinType  Coin
	PoolID    *ObjectID
	BuyPaths  []Path
	SellPaths []Path
	Sender    [32]byte
	GasCoins  []ObjectRef
	SimCtx    SimulateCtx
}

// Validate enforces the TrialCtx invariants: both path slices non-empty,
// and if PoolID is set at least one path contains it.
func (t TrialCtx) Validate() error {
	if len(t.BuyPaths) == 0 || len(t.SellPaths) == 0 {
		return errTrialNoPaths
	}
	if t.PoolID != nil {
		found := false
		for _, p := range t.BuyPaths {
			if p.ContainsPool(*t.PoolID) {
				found = true
				break
			}
		}
		if !found {
			for _, p := range t.SellPaths {
				if p.ContainsPool(*t.PoolID) {
					found = true
					break
				}
			}
		}
		if !found {
			return errTrialPoolNotInPaths
		}
	}
	return nil
}

// TrialResult is {coin_type, amount_in, profit, trade_path, cache_misses},
// ordered by Profit. The zero value has Profit == 0, matching spec.md's
// "default-constructed form" requirement.
type TrialResult struct {
	CoinType    Coin
	AmountIn    uint64
	Profit      int64
	TradePath   Path
	CacheMisses uint64
}

// Less orders TrialResults by profit, ascending.
func (r TrialResult) Less(other TrialResult) bool {
	return r.Profit < other.Profit
}

var (
	errTrialNoPaths        = trialError("trial ctx requires non-empty buy and sell paths")
	errTrialPoolNotInPaths = trialError("trial ctx pool_id not present in any buy or sell path")
)

type trialError string

func (e trialError) Error() string { return string(e) }
