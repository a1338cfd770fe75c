package dex

import (
	"context"
	"testing"

	"github.com/luxfi/sui-arb/model"
	"github.com/luxfi/sui-arb/simulator"
)

type fakeDex struct {
	proto    model.Protocol
	poolID   model.ObjectID
	coinIn   model.Coin
	coinOut  model.Coin
	liq      uint64
	a2b      bool
	rate     uint64 // amount_out = amount_in * rate, used only by the fake executor below
}

func (d *fakeDex) ExtendTradeTx(ctx *TradeCtx, sender simulator.Address, coinIn simulator.Argument, amountIn *uint64) (simulator.Argument, error) {
	return ctx.AddCommand(simulator.Command{
		Kind: simulator.CommandMoveCall,
		MoveCall: &simulator.MoveCall{
			Package:  d.poolID,
			Module:   string(d.proto),
			Function: "swap",
		},
	}), nil
}

func (d *fakeDex) CoinInType() model.Coin     { return d.coinIn }
func (d *fakeDex) CoinOutType() model.Coin    { return d.coinOut }
func (d *fakeDex) Protocol() model.Protocol   { return d.proto }
func (d *fakeDex) Liquidity() uint64          { return d.liq }
func (d *fakeDex) PoolObjectID() model.ObjectID { return d.poolID }
func (d *fakeDex) IsA2B() bool                { return d.a2b }
func (d *fakeDex) Flip() {
	d.coinIn, d.coinOut = d.coinOut, d.coinIn
	d.a2b = !d.a2b
}
func (d *fakeDex) Clone() Dex {
	cp := *d
	return &cp
}
func (d *fakeDex) SwapTx(ctx context.Context, sender, recipient simulator.Address, amountIn uint64) (simulator.Transaction, error) {
	return simulator.Transaction{}, nil
}

type fakeSimulator struct {
	lastTx   simulator.Transaction
	balance  map[simulator.Address]map[model.Coin]int64
}

func (s *fakeSimulator) Simulate(ctx context.Context, tx simulator.Transaction, simCtx model.SimulateCtx) (simulator.SimulateResult, error) {
	s.lastTx = tx
	return simulator.SimulateResult{
		Effects:        simulator.TransactionEffects{Success: true},
		BalanceChanges: s.balance,
	}, nil
}

func (s *fakeSimulator) GetObject(ctx context.Context, id model.ObjectID) (*model.Object, error) {
	return nil, nil
}

func (s *fakeSimulator) GetObjectLayout(ctx context.Context, id model.ObjectID) (*simulator.StructLayout, error) {
	return nil, nil
}

func TestTraderBuildsCommandsForEachLegPlusTransfer(t *testing.T) {
	sender := simulator.Address{1}
	fs := &fakeSimulator{balance: map[simulator.Address]map[model.Coin]int64{
		sender: {"0x2::usdc::USDC": 5_000_000},
	}}
	pool := simulator.NewPool([]simulator.Simulator{fs})
	trader := NewTrader(pool, nil)

	d1 := &fakeDex{proto: "cetus", coinIn: model.NativeCoin, coinOut: "0x2::usdc::USDC", liq: 100}
	path := Path{Dexes: []Dex{d1}}

	result, err := trader.Trade(context.Background(), path, sender, 1_000_000, TradeTypeSwap, nil, model.SimulateCtx{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.AmountOut != 5_000_000 {
		t.Errorf("expected amount_out 5000000, got %d", result.AmountOut)
	}
	// split + 1 leg + transfer = 3 commands
	if len(fs.lastTx.Commands) != 3 {
		t.Errorf("expected 3 commands (split, swap, transfer), got %d", len(fs.lastTx.Commands))
	}
}

func TestExtractTradeResultAddsBackRoundTripDeductions(t *testing.T) {
	sender := simulator.Address{1}
	// Round-trip native->native: the split+gas already deducted
	// amount_in+gas_cost from the sender's native balance, so the raw
	// delta understates gross proceeds unless added back.
	result := simulator.SimulateResult{
		BalanceChanges: map[simulator.Address]map[model.Coin]int64{
			sender: {model.NativeCoin: -50_000}, // -gas_cost only, profit already netted in
		},
	}
	tr := extractTradeResult(result, sender, model.NativeCoin, model.NativeCoin, 1_000_000)
	want := uint64(1_000_000 - 50_000)
	if tr.AmountOut != want {
		t.Errorf("expected amount_out %d, got %d", want, tr.AmountOut)
	}
}

func TestExtractTradeResultNonNativeOutUsesRawDelta(t *testing.T) {
	sender := simulator.Address{1}
	result := simulator.SimulateResult{
		BalanceChanges: map[simulator.Address]map[model.Coin]int64{
			sender: {"0x2::usdc::USDC": 42},
		},
	}
	tr := extractTradeResult(result, sender, model.NativeCoin, "0x2::usdc::USDC", 1_000_000)
	if tr.AmountOut != 42 {
		t.Errorf("expected amount_out 42, got %d", tr.AmountOut)
	}
}
