// Package aftermath adapts Aftermath weighted pools to the uniform
// dex.Dex contract, grounded on the original implementation's
// bin/arb/src/defi/aftermath.rs.
package aftermath

import (
	"context"
	"fmt"

	"github.com/luxfi/sui-arb/dex"
	"github.com/luxfi/sui-arb/model"
	"github.com/luxfi/sui-arb/simulator"
)

var (
	packageID        = dex.MustObjectID("0xc4049b2d1cc0f6e017fda8260e4377cecd236bd7f56a54fee120816e72e2e0dd")
	poolRegistryID    = dex.MustObjectID("0xfcc774493db2c45c79f688f88d28023a3e7d98e4ee9f48bbf5c7990f651577ae")
	protocolFeeVault = dex.MustObjectID("0xf194d9b1bcad972e45a7dd67dd49b3ee1e3357a00a50850c52cd51bb450e13b4")
	treasuryID       = dex.MustObjectID("0x28e499dff5e864a2eafe476269a4f5035f1c16f338da7be18b103499abf271ce")
	insuranceFundID  = dex.MustObjectID("0xf0c40d67b078000e18032334c3325c47b9ec9f3d9ae4128be820d54663d14e3b")
	referralVaultID  = dex.MustObjectID("0x35d35b0e5b177593d8c3a801462485572fc30861e6ce96a55af6dc4730709278")
)

// slippageNumerator is the fixed-point (1e18 denominator) maximum
// slippage the original implementation passes to every swap call.
const slippageNumerator = 900_000_000_000_000_000

// Aftermath quotes and extends trades through one Aftermath weighted
// pool.
type Aftermath struct {
	poolID    model.ObjectID
	coinIn    model.Coin
	coinOut   model.Coin
	liquidity uint64
	a2b       bool
}

// New builds an adapter for pool, swapping coinIn for whichever of the
// pool's two tokens is not coinIn.
func New(pool model.Pool, coinIn model.Coin) (*Aftermath, error) {
	if pool.Protocol != model.ProtocolAftermath {
		return nil, fmt.Errorf("aftermath: not an aftermath pool: %s", pool.Protocol)
	}
	coinOut := pool.OtherToken(coinIn)
	if coinOut == "" {
		return nil, fmt.Errorf("aftermath: coin %s not in pool %s", coinIn, pool.PoolID)
	}
	return &Aftermath{
		poolID:  pool.PoolID,
		coinIn:  coinIn,
		coinOut: coinOut,
		a2b:     len(pool.Tokens) > 0 && pool.Tokens[0] == coinIn,
	}, nil
}

// Refresh re-reads the pool's flatness/balance field used as a proxy
// for available depth.
func (a *Aftermath) Refresh(ctx context.Context, sim simulator.Simulator) error {
	liq, err := dex.RefreshLiquidity(ctx, sim, a.poolID, "flatness")
	if err != nil {
		return err
	}
	a.liquidity = liq
	return nil
}

func (a *Aftermath) ExtendTradeTx(ctx *dex.TradeCtx, sender simulator.Address, coinIn simulator.Argument, amountIn *uint64) (simulator.Argument, error) {
	poolArg := ctx.AddInput(model.ObjectRef{ID: a.poolID})
	poolRegistryArg := ctx.AddInput(model.ObjectRef{ID: poolRegistryID})
	feeVaultArg := ctx.AddInput(model.ObjectRef{ID: protocolFeeVault})
	treasuryArg := ctx.AddInput(model.ObjectRef{ID: treasuryID})
	insuranceArg := ctx.AddInput(model.ObjectRef{ID: insuranceFundID})
	referralArg := ctx.AddInput(model.ObjectRef{ID: referralVaultID})
	slippageArg := ctx.AddInput(model.ObjectRef{}) // pure u128 slippage bound, value carried out-of-band

	args := []simulator.Argument{
		poolArg, poolRegistryArg, feeVaultArg, treasuryArg, insuranceArg, referralArg, coinIn, slippageArg,
	}
	_ = slippageNumerator
	return dex.ExtendMoveCallSwap(ctx, packageID, "swap", "swap_exact_in", []string{string(a.coinIn), string(a.coinOut)}, args), nil
}

func (a *Aftermath) CoinInType() model.Coin       { return a.coinIn }
func (a *Aftermath) CoinOutType() model.Coin      { return a.coinOut }
func (a *Aftermath) Protocol() model.Protocol     { return model.ProtocolAftermath }
func (a *Aftermath) Liquidity() uint64            { return a.liquidity }
func (a *Aftermath) PoolObjectID() model.ObjectID { return a.poolID }
func (a *Aftermath) IsA2B() bool                  { return a.a2b }

func (a *Aftermath) Flip() {
	a.coinIn, a.coinOut = a.coinOut, a.coinIn
	a.a2b = !a.a2b
}

func (a *Aftermath) Clone() dex.Dex {
	cp := *a
	return &cp
}

func (a *Aftermath) SwapTx(ctx context.Context, sender, recipient simulator.Address, amountIn uint64) (simulator.Transaction, error) {
	tc := dex.NewTradeCtx()
	coinIn := dex.SplitAmountArg(tc, amountIn)
	out, err := a.ExtendTradeTx(tc, sender, coinIn, &amountIn)
	if err != nil {
		return simulator.Transaction{}, err
	}
	dex.TransferArg(tc, recipient, out)
	return tc.Build(sender, nil, 1000, 100_000_000), nil
}
