// Package deepbookv2 adapts DeepBook v2 order-book pools to the
// uniform dex.Dex contract, grounded on the original implementation's
// bin/arb/src/defi/deepbook_v2.rs.
package deepbookv2

import (
	"context"
	"fmt"

	"github.com/luxfi/sui-arb/dex"
	"github.com/luxfi/sui-arb/model"
	"github.com/luxfi/sui-arb/simulator"
)

var (
	packageID  = dex.MustObjectID("0x000000000000000000000000000000000000000000000000000000000000dee9")
	accountCap = dex.MustObjectID("0xc1928315ba33482366465426bdb179c7000f557838ae5d945e96263373f24b32")
)

// DeepbookV2 quotes and extends trades through one DeepBook v2
// order-book pool, modeled as a single best-price swap in and out of
// the pool's two registered coins.
type DeepbookV2 struct {
	poolID   model.ObjectID
	coinIn   model.Coin
	coinOut  model.Coin
	tickSize uint64
	lotSize  uint64
	a2b      bool
}

// New builds an adapter for pool, swapping coinIn for whichever of the
// pool's two tokens is not coinIn.
func New(pool model.Pool, coinIn model.Coin) (*DeepbookV2, error) {
	if pool.Protocol != model.ProtocolDeepbookV2 {
		return nil, fmt.Errorf("deepbookv2: not a deepbook v2 pool: %s", pool.Protocol)
	}
	coinOut := pool.OtherToken(coinIn)
	if coinOut == "" {
		return nil, fmt.Errorf("deepbookv2: coin %s not in pool %s", coinIn, pool.PoolID)
	}
	var tickSize, lotSize uint64
	if pool.Extra.Book != nil {
		tickSize = pool.Extra.Book.TickSize
		lotSize = pool.Extra.Book.LotSize
	}
	return &DeepbookV2{
		poolID:   pool.PoolID,
		coinIn:   coinIn,
		coinOut:  coinOut,
		tickSize: tickSize,
		lotSize:  lotSize,
		a2b:      len(pool.Tokens) > 0 && pool.Tokens[0] == coinIn,
	}, nil
}

// Refresh is a no-op for DeepBook v2: this adapter quotes off
// tick/lot size set at indexing time, not a liquidity field on the
// pool object (an order book's depth is a ladder of resting orders,
// not a single scalar the router can compare against CLMM/AMM pools
// at the same granularity).
func (d *DeepbookV2) Refresh(ctx context.Context, sim simulator.Simulator) error {
	return nil
}

func (d *DeepbookV2) ExtendTradeTx(ctx *dex.TradeCtx, sender simulator.Address, coinIn simulator.Argument, amountIn *uint64) (simulator.Argument, error) {
	poolArg := ctx.AddInput(model.ObjectRef{ID: d.poolID})
	accountCapArg := ctx.AddInput(model.ObjectRef{ID: accountCap})
	clockArg := ctx.AddInput(model.ObjectRef{ID: dex.ClockObjectID})

	function := "swap_exact_base_for_quote"
	if !d.a2b {
		function = "swap_exact_quote_for_base"
	}
	args := []simulator.Argument{poolArg, accountCapArg, coinIn, clockArg}
	return dex.ExtendMoveCallSwap(ctx, packageID, "clob_v2", function, []string{string(d.coinIn), string(d.coinOut)}, args), nil
}

func (d *DeepbookV2) CoinInType() model.Coin  { return d.coinIn }
func (d *DeepbookV2) CoinOutType() model.Coin { return d.coinOut }
func (d *DeepbookV2) Protocol() model.Protocol { return model.ProtocolDeepbookV2 }

// Liquidity reports the lot size as a coarse, protocol-comparable
// liquidity proxy: it has no true scalar depth figure the way a CLMM
// or AMM pool does.
func (d *DeepbookV2) Liquidity() uint64 { return d.lotSize }

func (d *DeepbookV2) PoolObjectID() model.ObjectID { return d.poolID }
func (d *DeepbookV2) IsA2B() bool                  { return d.a2b }

func (d *DeepbookV2) Flip() {
	d.coinIn, d.coinOut = d.coinOut, d.coinIn
	d.a2b = !d.a2b
}

func (d *DeepbookV2) Clone() dex.Dex {
	cp := *d
	return &cp
}

func (d *DeepbookV2) SwapTx(ctx context.Context, sender, recipient simulator.Address, amountIn uint64) (simulator.Transaction, error) {
	tc := dex.NewTradeCtx()
	coinIn := dex.SplitAmountArg(tc, amountIn)
	out, err := d.ExtendTradeTx(tc, sender, coinIn, &amountIn)
	if err != nil {
		return simulator.Transaction{}, err
	}
	dex.TransferArg(tc, recipient, out)
	return tc.Build(sender, nil, 1000, 100_000_000), nil
}
