// Package kriyaamm adapts Kriya constant-product pools to the uniform
// dex.Dex contract, grounded on the original implementation's
// bin/arb/src/defi/kriya_amm.rs.
package kriyaamm

import (
	"context"
	"fmt"

	"github.com/luxfi/sui-arb/dex"
	"github.com/luxfi/sui-arb/model"
	"github.com/luxfi/sui-arb/simulator"
)

var packageID = dex.MustObjectID("0xa0eba10b173538c8fecca1dff298e488402cc9ff374f8a12ca7758eebe830b66")

// KriyaAMM quotes and extends trades through one Kriya constant-product
// pool.
type KriyaAMM struct {
	poolID    model.ObjectID
	coinIn    model.Coin
	coinOut   model.Coin
	liquidity uint64
	a2b       bool
}

// New builds an adapter for pool, swapping coinIn for whichever of the
// pool's two tokens is not coinIn.
func New(pool model.Pool, coinIn model.Coin) (*KriyaAMM, error) {
	if pool.Protocol != model.ProtocolKriyaAMM {
		return nil, fmt.Errorf("kriyaamm: not a kriya amm pool: %s", pool.Protocol)
	}
	coinOut := pool.OtherToken(coinIn)
	if coinOut == "" {
		return nil, fmt.Errorf("kriyaamm: coin %s not in pool %s", coinIn, pool.PoolID)
	}
	return &KriyaAMM{
		poolID:  pool.PoolID,
		coinIn:  coinIn,
		coinOut: coinOut,
		a2b:     len(pool.Tokens) > 0 && pool.Tokens[0] == coinIn,
	}, nil
}

// Refresh re-reads the LSP supply that stands in for this pool's
// depth (the constant-product pool has no single "liquidity" field;
// its lsp_supply.value plays that role, per the original
// implementation).
func (k *KriyaAMM) Refresh(ctx context.Context, sim simulator.Simulator) error {
	liq, err := dex.RefreshLiquidity(ctx, sim, k.poolID, "lsp_supply")
	if err != nil {
		return err
	}
	k.liquidity = liq
	return nil
}

func (k *KriyaAMM) ExtendTradeTx(ctx *dex.TradeCtx, sender simulator.Address, coinIn simulator.Argument, amountIn *uint64) (simulator.Argument, error) {
	poolArg := ctx.AddInput(model.ObjectRef{ID: k.poolID})

	function := "swap_token_a"
	if !k.a2b {
		function = "swap_token_b"
	}
	args := []simulator.Argument{poolArg, coinIn}
	return dex.ExtendMoveCallSwap(ctx, packageID, "spot_dex", function, []string{string(k.coinIn), string(k.coinOut)}, args), nil
}

func (k *KriyaAMM) CoinInType() model.Coin       { return k.coinIn }
func (k *KriyaAMM) CoinOutType() model.Coin      { return k.coinOut }
func (k *KriyaAMM) Protocol() model.Protocol     { return model.ProtocolKriyaAMM }
func (k *KriyaAMM) Liquidity() uint64            { return k.liquidity }
func (k *KriyaAMM) PoolObjectID() model.ObjectID { return k.poolID }
func (k *KriyaAMM) IsA2B() bool                  { return k.a2b }

func (k *KriyaAMM) Flip() {
	k.coinIn, k.coinOut = k.coinOut, k.coinIn
	k.a2b = !k.a2b
}

func (k *KriyaAMM) Clone() dex.Dex {
	cp := *k
	return &cp
}

func (k *KriyaAMM) SwapTx(ctx context.Context, sender, recipient simulator.Address, amountIn uint64) (simulator.Transaction, error) {
	tc := dex.NewTradeCtx()
	coinIn := dex.SplitAmountArg(tc, amountIn)
	out, err := k.ExtendTradeTx(tc, sender, coinIn, &amountIn)
	if err != nil {
		return simulator.Transaction{}, err
	}
	dex.TransferArg(tc, recipient, out)
	return tc.Build(sender, nil, 1000, 100_000_000), nil
}
