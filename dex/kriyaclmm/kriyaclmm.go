// Package kriyaclmm adapts Kriya CLMM pools to the uniform dex.Dex
// contract, grounded on the original implementation's
// bin/arb/src/defi/kriya_clmm.rs.
package kriyaclmm

import (
	"context"
	"fmt"

	"github.com/luxfi/sui-arb/dex"
	"github.com/luxfi/sui-arb/model"
	"github.com/luxfi/sui-arb/simulator"
)

var (
	packageID = dex.MustObjectID("0xbd8d4489782042c6fafad4de4bc6a5e0b84a43c6c00647ffd7062d1e2bb7549e")
	versionID = dex.MustObjectID("0xf5145a7ac345ca8736cf8c76047d00d6d378f30e81be6f6eb557184d9de93c78")
)

// KriyaCLMM quotes and extends trades through one Kriya CLMM pool.
type KriyaCLMM struct {
	poolID    model.ObjectID
	coinIn    model.Coin
	coinOut   model.Coin
	liquidity uint64
	a2b       bool
}

// New builds an adapter for pool, swapping coinIn for whichever of the
// pool's two tokens is not coinIn.
func New(pool model.Pool, coinIn model.Coin) (*KriyaCLMM, error) {
	if pool.Protocol != model.ProtocolKriyaCLMM {
		return nil, fmt.Errorf("kriyaclmm: not a kriya clmm pool: %s", pool.Protocol)
	}
	coinOut := pool.OtherToken(coinIn)
	if coinOut == "" {
		return nil, fmt.Errorf("kriyaclmm: coin %s not in pool %s", coinIn, pool.PoolID)
	}
	return &KriyaCLMM{
		poolID:  pool.PoolID,
		coinIn:  coinIn,
		coinOut: coinOut,
		a2b:     len(pool.Tokens) > 0 && pool.Tokens[0] == coinIn,
	}, nil
}

// Refresh re-reads the pool object's liquidity field.
func (k *KriyaCLMM) Refresh(ctx context.Context, sim simulator.Simulator) error {
	liq, err := dex.RefreshLiquidity(ctx, sim, k.poolID, "liquidity")
	if err != nil {
		return err
	}
	k.liquidity = liq
	return nil
}

func (k *KriyaCLMM) ExtendTradeTx(ctx *dex.TradeCtx, sender simulator.Address, coinIn simulator.Argument, amountIn *uint64) (simulator.Argument, error) {
	poolArg := ctx.AddInput(model.ObjectRef{ID: k.poolID})
	versionArg := ctx.AddInput(model.ObjectRef{ID: versionID})
	clockArg := ctx.AddInput(model.ObjectRef{ID: dex.ClockObjectID})

	function := "swap_a2b"
	if !k.a2b {
		function = "swap_b2a"
	}
	args := []simulator.Argument{poolArg, versionArg, coinIn, clockArg}
	return dex.ExtendMoveCallSwap(ctx, packageID, "trade", function, []string{string(k.coinIn), string(k.coinOut)}, args), nil
}

func (k *KriyaCLMM) CoinInType() model.Coin       { return k.coinIn }
func (k *KriyaCLMM) CoinOutType() model.Coin      { return k.coinOut }
func (k *KriyaCLMM) Protocol() model.Protocol     { return model.ProtocolKriyaCLMM }
func (k *KriyaCLMM) Liquidity() uint64            { return k.liquidity }
func (k *KriyaCLMM) PoolObjectID() model.ObjectID { return k.poolID }
func (k *KriyaCLMM) IsA2B() bool                  { return k.a2b }

func (k *KriyaCLMM) Flip() {
	k.coinIn, k.coinOut = k.coinOut, k.coinIn
	k.a2b = !k.a2b
}

func (k *KriyaCLMM) Clone() dex.Dex {
	cp := *k
	return &cp
}

func (k *KriyaCLMM) SwapTx(ctx context.Context, sender, recipient simulator.Address, amountIn uint64) (simulator.Transaction, error) {
	tc := dex.NewTradeCtx()
	coinIn := dex.SplitAmountArg(tc, amountIn)
	out, err := k.ExtendTradeTx(tc, sender, coinIn, &amountIn)
	if err != nil {
		return simulator.Transaction{}, err
	}
	dex.TransferArg(tc, recipient, out)
	return tc.Build(sender, nil, 1000, 100_000_000), nil
}
