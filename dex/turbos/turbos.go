// Package turbos adapts Turbos CLMM pools to the uniform dex.Dex
// contract, grounded on the original implementation's
// bin/arb/src/defi/turbos.rs.
package turbos

import (
	"context"
	"fmt"

	"github.com/luxfi/sui-arb/dex"
	"github.com/luxfi/sui-arb/model"
	"github.com/luxfi/sui-arb/simulator"
)

var versionedID = dex.MustObjectID("0xf1cf0e81048df168ebeb1b8030fad24b3e0b53ae827c25053fff0779c1445b6f")

// Turbos quotes and extends trades through one Turbos CLMM pool.
type Turbos struct {
	poolID    model.ObjectID
	coinIn    model.Coin
	coinOut   model.Coin
	liquidity uint64
	a2b       bool
}

// New builds an adapter for pool, swapping coinIn for whichever of the
// pool's two tokens is not coinIn.
func New(pool model.Pool, coinIn model.Coin) (*Turbos, error) {
	if pool.Protocol != model.ProtocolTurbos {
		return nil, fmt.Errorf("turbos: not a turbos pool: %s", pool.Protocol)
	}
	coinOut := pool.OtherToken(coinIn)
	if coinOut == "" {
		return nil, fmt.Errorf("turbos: coin %s not in pool %s", coinIn, pool.PoolID)
	}
	return &Turbos{
		poolID:  pool.PoolID,
		coinIn:  coinIn,
		coinOut: coinOut,
		a2b:     len(pool.Tokens) > 0 && pool.Tokens[0] == coinIn,
	}, nil
}

// Refresh re-reads the pool object's liquidity field.
func (t *Turbos) Refresh(ctx context.Context, sim simulator.Simulator) error {
	liq, err := dex.RefreshLiquidity(ctx, sim, t.poolID, "liquidity")
	if err != nil {
		return err
	}
	t.liquidity = liq
	return nil
}

func (t *Turbos) ExtendTradeTx(ctx *dex.TradeCtx, sender simulator.Address, coinIn simulator.Argument, amountIn *uint64) (simulator.Argument, error) {
	poolArg := ctx.AddInput(model.ObjectRef{ID: t.poolID})
	versionedArg := ctx.AddInput(model.ObjectRef{ID: versionedID})
	clockArg := ctx.AddInput(model.ObjectRef{ID: dex.ClockObjectID})

	function := "swap_a2b"
	if !t.a2b {
		function = "swap_b2a"
	}
	args := []simulator.Argument{poolArg, coinIn, versionedArg, clockArg}
	return dex.ExtendMoveCallSwap(ctx, packageID, "swap_router", function, []string{string(t.coinIn), string(t.coinOut)}, args), nil
}

func (t *Turbos) CoinInType() model.Coin       { return t.coinIn }
func (t *Turbos) CoinOutType() model.Coin      { return t.coinOut }
func (t *Turbos) Protocol() model.Protocol     { return model.ProtocolTurbos }
func (t *Turbos) Liquidity() uint64            { return t.liquidity }
func (t *Turbos) PoolObjectID() model.ObjectID { return t.poolID }
func (t *Turbos) IsA2B() bool                  { return t.a2b }

func (t *Turbos) Flip() {
	t.coinIn, t.coinOut = t.coinOut, t.coinIn
	t.a2b = !t.a2b
}

func (t *Turbos) Clone() dex.Dex {
	cp := *t
	return &cp
}

func (t *Turbos) SwapTx(ctx context.Context, sender, recipient simulator.Address, amountIn uint64) (simulator.Transaction, error) {
	tc := dex.NewTradeCtx()
	coinIn := dex.SplitAmountArg(tc, amountIn)
	out, err := t.ExtendTradeTx(tc, sender, coinIn, &amountIn)
	if err != nil {
		return simulator.Transaction{}, err
	}
	dex.TransferArg(tc, recipient, out)
	return tc.Build(sender, nil, 1000, 100_000_000), nil
}

// packageID is the Turbos package object, fixed across every pool
// instance (the pool object itself is per-instance and passed as an
// argument instead).
var packageID = dex.MustObjectID("0x91bfbc386a41afcfd9b2533058d7e915a1d3829089cc268ff4333d54d6339ca")
