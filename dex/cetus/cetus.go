// Package cetus adapts Cetus CLMM pools to the uniform dex.Dex
// contract, grounded on the original implementation's
// bin/arb/src/defi/cetus.rs.
package cetus

import (
	"context"
	"fmt"

	"github.com/luxfi/sui-arb/dex"
	"github.com/luxfi/sui-arb/model"
	"github.com/luxfi/sui-arb/simulator"
)

var (
	packageID = dex.MustObjectID("0xeffc8ae61f439bb34c9b905ff8f29ec56873dcedf81c7123ff2f1f67c45ec302")
	configID  = dex.MustObjectID("0xdaa46292632c3c4d8f31f23ea0f9b36a28ff3677e9684980e4438403a67a3d8f")
	partnerID = dex.MustObjectID("0x639b5e433da31739e800cd085f356e64cae222966d0f1b11bd9dc76b322ff58b")
)

// Cetus quotes and extends trades through one Cetus CLMM pool.
type Cetus struct {
	poolID    model.ObjectID
	coinIn    model.Coin
	coinOut   model.Coin
	liquidity uint64
	a2b       bool
}

// New builds an adapter for pool, swapping coinIn for whichever of the
// pool's two tokens is not coinIn.
func New(pool model.Pool, coinIn model.Coin) (*Cetus, error) {
	if pool.Protocol != model.ProtocolCetus {
		return nil, fmt.Errorf("cetus: not a cetus pool: %s", pool.Protocol)
	}
	coinOut := pool.OtherToken(coinIn)
	if coinOut == "" {
		return nil, fmt.Errorf("cetus: coin %s not in pool %s", coinIn, pool.PoolID)
	}
	return &Cetus{
		poolID:  pool.PoolID,
		coinIn:  coinIn,
		coinOut: coinOut,
		a2b:     len(pool.Tokens) > 0 && pool.Tokens[0] == coinIn,
	}, nil
}

// Refresh re-reads the pool object's liquidity field.
func (c *Cetus) Refresh(ctx context.Context, sim simulator.Simulator) error {
	liq, err := dex.RefreshLiquidity(ctx, sim, c.poolID, "liquidity")
	if err != nil {
		return err
	}
	c.liquidity = liq
	return nil
}

func (c *Cetus) ExtendTradeTx(ctx *dex.TradeCtx, sender simulator.Address, coinIn simulator.Argument, amountIn *uint64) (simulator.Argument, error) {
	poolArg := ctx.AddInput(model.ObjectRef{ID: c.poolID})
	configArg := ctx.AddInput(model.ObjectRef{ID: configID})
	partnerArg := ctx.AddInput(model.ObjectRef{ID: partnerID})
	clockArg := ctx.AddInput(model.ObjectRef{ID: dex.ClockObjectID})

	function := "swap_a2b"
	if !c.a2b {
		function = "swap_b2a"
	}
	args := []simulator.Argument{configArg, poolArg, partnerArg, coinIn, clockArg}
	return dex.ExtendMoveCallSwap(ctx, packageID, "pool_script", function, []string{string(c.coinIn), string(c.coinOut)}, args), nil
}

func (c *Cetus) CoinInType() model.Coin      { return c.coinIn }
func (c *Cetus) CoinOutType() model.Coin     { return c.coinOut }
func (c *Cetus) Protocol() model.Protocol    { return model.ProtocolCetus }
func (c *Cetus) Liquidity() uint64           { return c.liquidity }
func (c *Cetus) PoolObjectID() model.ObjectID { return c.poolID }
func (c *Cetus) IsA2B() bool                 { return c.a2b }

func (c *Cetus) Flip() {
	c.coinIn, c.coinOut = c.coinOut, c.coinIn
	c.a2b = !c.a2b
}

func (c *Cetus) Clone() dex.Dex {
	cp := *c
	return &cp
}

func (c *Cetus) SwapTx(ctx context.Context, sender, recipient simulator.Address, amountIn uint64) (simulator.Transaction, error) {
	tc := dex.NewTradeCtx()
	coinIn := dex.SplitAmountArg(tc, amountIn)
	out, err := c.ExtendTradeTx(tc, sender, coinIn, &amountIn)
	if err != nil {
		return simulator.Transaction{}, err
	}
	dex.TransferArg(tc, recipient, out)
	return tc.Build(sender, nil, 1000, 100_000_000), nil
}
