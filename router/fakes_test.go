package router

import (
	"context"

	"github.com/luxfi/sui-arb/dex"
	"github.com/luxfi/sui-arb/model"
	"github.com/luxfi/sui-arb/simulator"
)

// fakeDex is a minimal dex.Dex used only to exercise the router's
// path-finding and best-path selection without a real protocol
// adapter.
type fakeDex struct {
	proto   model.Protocol
	poolID  model.ObjectID
	coinIn  model.Coin
	coinOut model.Coin
	liq     uint64
	a2b     bool
	rate    uint64 // not consulted by fakeSimulator below
}

func (d *fakeDex) ExtendTradeTx(ctx *dex.TradeCtx, sender simulator.Address, coinIn simulator.Argument, amountIn *uint64) (simulator.Argument, error) {
	return ctx.AddCommand(simulator.Command{
		Kind: simulator.CommandMoveCall,
		MoveCall: &simulator.MoveCall{
			Package:  d.poolID,
			Module:   string(d.proto),
			Function: "swap",
		},
	}), nil
}

func (d *fakeDex) CoinInType() model.Coin       { return d.coinIn }
func (d *fakeDex) CoinOutType() model.Coin      { return d.coinOut }
func (d *fakeDex) Protocol() model.Protocol     { return d.proto }
func (d *fakeDex) Liquidity() uint64            { return d.liq }
func (d *fakeDex) PoolObjectID() model.ObjectID { return d.poolID }
func (d *fakeDex) IsA2B() bool                  { return d.a2b }
func (d *fakeDex) Flip() {
	d.coinIn, d.coinOut = d.coinOut, d.coinIn
	d.a2b = !d.a2b
}
func (d *fakeDex) Clone() dex.Dex {
	cp := *d
	return &cp
}
func (d *fakeDex) SwapTx(ctx context.Context, sender, recipient simulator.Address, amountIn uint64) (simulator.Transaction, error) {
	return simulator.Transaction{}, nil
}

// fakeSearcher implements DexSearcher over a fixed, in-memory adjacency
// list keyed by (coinIn) and optionally filtered to a specific coinOut,
// so path-finding tests don't need a real pool.Cache or simulator.
type fakeSearcher struct {
	byCoin map[model.Coin][]*fakeDex
}

func newFakeSearcher() *fakeSearcher {
	return &fakeSearcher{byCoin: map[model.Coin][]*fakeDex{}}
}

func (s *fakeSearcher) add(d *fakeDex) {
	s.byCoin[d.coinIn] = append(s.byCoin[d.coinIn], d)
}

func (s *fakeSearcher) FindDexes(ctx context.Context, coinIn model.Coin, coinOut *model.Coin) ([]dex.Dex, error) {
	var out []dex.Dex
	for _, d := range s.byCoin[coinIn] {
		if coinOut != nil && d.coinOut != *coinOut {
			continue
		}
		out = append(out, d.Clone())
	}
	return out, nil
}

// fakeSimulator reports every transaction as a success with no balance
// changes; its rates field is not consulted.
type fakeSimulator struct {
	rates map[model.Coin]uint64 // coin_out -> rate
}

func (s *fakeSimulator) Simulate(ctx context.Context, tx simulator.Transaction, simCtx model.SimulateCtx) (simulator.SimulateResult, error) {
	return simulator.SimulateResult{Effects: simulator.TransactionEffects{Success: true}}, nil
}
func (s *fakeSimulator) GetObject(ctx context.Context, id model.ObjectID) (*model.Object, error) {
	return nil, nil
}
func (s *fakeSimulator) GetObjectLayout(ctx context.Context, id model.ObjectID) (*simulator.StructLayout, error) {
	return nil, nil
}
