package router

import (
	"context"
	"testing"

	"github.com/luxfi/sui-arb/dex"
	"github.com/luxfi/sui-arb/model"
	"github.com/luxfi/sui-arb/simulator"
)

func TestProfitRoundTripNative(t *testing.T) {
	d := &fakeDex{proto: "cetus", coinIn: model.NativeCoin, coinOut: model.NativeCoin}
	r := PathTradeResult{Path: dex.Path{Dexes: []dex.Dex{d}}, AmountIn: 1_000_000, AmountOut: 1_050_000}
	if got, want := r.Profit(), int64(50_000); got != want {
		t.Errorf("Profit() = %d, want %d", got, want)
	}
}

func TestProfitNativeInOnlyIsCostNotReturn(t *testing.T) {
	d := &fakeDex{proto: "cetus", coinIn: model.NativeCoin, coinOut: "0x2::usdc::USDC"}
	r := PathTradeResult{Path: dex.Path{Dexes: []dex.Dex{d}}, AmountIn: 1_000_000, GasCost: -2_000}
	if got, want := r.Profit(), int64(-2_000-1_000_000); got != want {
		t.Errorf("Profit() = %d, want %d", got, want)
	}
}

func TestProfitNonNativeInIsZero(t *testing.T) {
	d := &fakeDex{proto: "cetus", coinIn: "0x2::usdc::USDC", coinOut: model.NativeCoin}
	r := PathTradeResult{Path: dex.Path{Dexes: []dex.Dex{d}}, AmountIn: 1_000_000, AmountOut: 9_999_999}
	if got := r.Profit(); got != 0 {
		t.Errorf("Profit() = %d, want 0", got)
	}
}

func TestProfitEmptyPathTreatedAsNativeRoundTrip(t *testing.T) {
	r := PathTradeResult{Path: dex.Path{}, AmountIn: 1_000_000, AmountOut: 1_000_000}
	if got := r.Profit(); got != 0 {
		t.Errorf("Profit() = %d, want 0 for the trivial no-op path", got)
	}
}

// tradeSimulator reports a fixed native balance delta keyed by which
// pool's MoveCall was the last command before the final transfer, so
// two single-leg paths can be made to simulate to different outcomes.
type tradeSimulator struct {
	deltaByPool map[model.ObjectID]int64
}

func (s *tradeSimulator) Simulate(ctx context.Context, tx simulator.Transaction, simCtx model.SimulateCtx) (simulator.SimulateResult, error) {
	var delta int64
	for _, cmd := range tx.Commands {
		if cmd.Kind == simulator.CommandMoveCall && cmd.MoveCall != nil {
			if d, ok := s.deltaByPool[cmd.MoveCall.Package]; ok {
				delta = d
			}
		}
	}
	sender := simulator.Address{1}
	return simulator.SimulateResult{
		Effects:        simulator.TransactionEffects{Success: true},
		BalanceChanges: map[simulator.Address]map[model.Coin]int64{sender: {model.NativeCoin: delta}},
	}, nil
}
func (s *tradeSimulator) GetObject(ctx context.Context, id model.ObjectID) (*model.Object, error) {
	return nil, nil
}
func (s *tradeSimulator) GetObjectLayout(ctx context.Context, id model.ObjectID) (*simulator.StructLayout, error) {
	return nil, nil
}

func TestFindBestPathExactInPicksHighestProfitPath(t *testing.T) {
	sender := simulator.Address{1}
	poolA := model.ObjectID{0xA}
	poolB := model.ObjectID{0xB}

	sim := &tradeSimulator{deltaByPool: map[model.ObjectID]int64{
		poolA: -10_000, // loses a little after its own gas+proceeds net out
		poolB: 40_000,  // net profitable
	}}
	trader := dex.NewTrader(simulator.NewPool([]simulator.Simulator{sim}), nil)

	pathA := dex.Path{Dexes: []dex.Dex{&fakeDex{proto: "cetus", poolID: poolA, coinIn: model.NativeCoin, coinOut: model.NativeCoin}}}
	pathB := dex.Path{Dexes: []dex.Dex{&fakeDex{proto: "turbos", poolID: poolB, coinIn: model.NativeCoin, coinOut: model.NativeCoin}}}

	best, err := FindBestPathExactIn(context.Background(), trader, []dex.Path{pathA, pathB}, sender, 1_000_000, dex.TradeTypeSwap, nil, model.SimulateCtx{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if best.Path.Dexes[0].PoolObjectID() != poolB {
		t.Errorf("expected the more profitable pool B to win, got pool %v", best.Path.Dexes[0].PoolObjectID())
	}
}

func TestFindBestPathExactInRequiresAtLeastOnePath(t *testing.T) {
	trader := dex.NewTrader(simulator.NewPool([]simulator.Simulator{&tradeSimulator{}}), nil)
	if _, err := FindBestPathExactIn(context.Background(), trader, nil, simulator.Address{}, 1000, dex.TradeTypeSwap, nil, model.SimulateCtx{}); err == nil {
		t.Errorf("expected an error with no candidate paths")
	}
}
