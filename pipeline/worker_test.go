package pipeline

import (
	"context"
	"testing"

	"github.com/luxfi/sui-arb/dex"
	"github.com/luxfi/sui-arb/internal/chainlog"
	"github.com/luxfi/sui-arb/internal/jsonrpc"
	"github.com/luxfi/sui-arb/internal/telemetry"
	"github.com/luxfi/sui-arb/model"
	"github.com/luxfi/sui-arb/simulator"
)

type fakeDryRunner struct {
	result      simulator.SimulateResult
	err         error
	notifyCount int
}

func (f *fakeDryRunner) Simulate(ctx context.Context, tx simulator.Transaction, simCtx model.SimulateCtx) (simulator.SimulateResult, error) {
	return f.result, f.err
}
func (f *fakeDryRunner) NotifyBidSubmitted() { f.notifyCount++ }

type fakeExecutor struct {
	executed []simulator.Transaction
	err      error
}

func (f *fakeExecutor) Execute(ctx context.Context, tx simulator.Transaction) error {
	f.executed = append(f.executed, tx)
	return f.err
}

type fakeBidSubmitter struct {
	calls []jsonrpc.SubmitBidParams
}

func (f *fakeBidSubmitter) SubmitBid(ctx context.Context, params jsonrpc.SubmitBidParams) (jsonrpc.SubmitBidResult, error) {
	f.calls = append(f.calls, params)
	return jsonrpc.SubmitBidResult{Accepted: true}, nil
}

type fakeGasCoins struct {
	refs []model.ObjectRef
}

func (f *fakeGasCoins) GasCoins(ctx context.Context) ([]model.ObjectRef, error) {
	return f.refs, nil
}

// newTestWorker wires a Worker against two disjoint usdc<->native pools
// (see trial_test.go's fakeSearcher/fakeDex/profitableSim/fakeFlash),
// guaranteeing FindOpportunity always finds a profitable round trip.
func newTestWorker(dryRun *fakeDryRunner, exec *fakeExecutor, bid *fakeBidSubmitter) *Worker {
	usdc := model.Coin("0x2::usdc::USDC")
	poolA := dex.MustObjectID("0x01")
	poolB := dex.MustObjectID("0x02")
	legA := &fakeDex{proto: model.ProtocolCetus, poolID: poolA, coinIn: usdc, coinOut: model.NativeCoin}
	legB := &fakeDex{proto: model.ProtocolTurbos, poolID: poolB, coinIn: usdc, coinOut: model.NativeCoin}
	searcher := &fakeSearcher{dexes: []dex.Dex{legA, legB}}

	pool := simulator.NewPool([]simulator.Simulator{profitableSim{}})
	trader := dex.NewTrader(pool, fakeFlash{})

	return &Worker{
		ID:       1,
		Searcher: searcher,
		Trader:   trader,
		Flash:    fakeFlash{},
		Digester: &fakeDigester{threshold: 1},
		Replay:   dryRun,
		Executor: exec,
		BidRPC:   bid,
		Telegram: telemetry.NewTelegramSink("", "", chainlog.New()),
		Log:      chainlog.New(),
		GasCoins: &fakeGasCoins{refs: nil},
	}
}

func testItem(coin model.Coin, source model.Source) model.ArbItem {
	return model.ArbItem{Coin: coin, SimCtx: model.SimulateCtx{}, Source: source}
}

func TestWorkerProcessExecutesPublicOpportunity(t *testing.T) {
	dryRun := &fakeDryRunner{result: simulator.SimulateResult{
		Effects:        simulator.TransactionEffects{Success: true},
		BalanceChanges: map[simulator.Address]map[model.Coin]int64{{1}: {model.NativeCoin: 5}},
	}}
	exec := &fakeExecutor{}
	w := newTestWorker(dryRun, exec, nil)

	w.process(context.Background(), testItem("0x2::usdc::USDC", model.NewPublicSource()), simulator.Address{1}, nil)

	if len(exec.executed) != 1 {
		t.Fatalf("expected executor called once, got %d", len(exec.executed))
	}
	if dryRun.notifyCount != 1 {
		t.Errorf("expected NotifyBidSubmitted called once, got %d", dryRun.notifyCount)
	}
}

func TestWorkerProcessSubmitsBidForSealedAuction(t *testing.T) {
	dryRun := &fakeDryRunner{result: simulator.SimulateResult{
		Effects:        simulator.TransactionEffects{Success: true},
		BalanceChanges: map[simulator.Address]map[model.Coin]int64{{1}: {model.NativeCoin: 5}},
	}}
	bid := &fakeBidSubmitter{}
	w := newTestWorker(dryRun, &fakeExecutor{}, bid)

	trigger := model.Digest{}
	source := model.NewShioSource(trigger, 0, 9_999_999_999_999)
	w.process(context.Background(), testItem("0x2::usdc::USDC", source), simulator.Address{1}, nil)

	if len(bid.calls) != 1 {
		t.Fatalf("expected bid submitted once, got %d", len(bid.calls))
	}
}

func TestWorkerProcessSkipsSubmissionWhenDeadlineMissed(t *testing.T) {
	dryRun := &fakeDryRunner{}
	exec := &fakeExecutor{}
	bid := &fakeBidSubmitter{}
	w := newTestWorker(dryRun, exec, bid)

	trigger := model.Digest{}
	// A deadline of 0ms, demoted the instant WithArbFoundTime runs inside
	// FindOpportunity, since any real timestamp exceeds it.
	source := model.NewShioSource(trigger, 0, 0)
	w.process(context.Background(), testItem("0x2::usdc::USDC", source), simulator.Address{1}, nil)

	if len(exec.executed) != 0 {
		t.Errorf("expected no execution once the deadline is missed")
	}
	if len(bid.calls) != 0 {
		t.Errorf("expected no bid submission once the deadline is missed")
	}
}

func TestWorkerProcessAbortsWhenDryRunNotProfitable(t *testing.T) {
	dryRun := &fakeDryRunner{result: simulator.SimulateResult{
		Effects:        simulator.TransactionEffects{Success: true},
		BalanceChanges: map[simulator.Address]map[model.Coin]int64{{1}: {model.NativeCoin: -5}},
	}}
	exec := &fakeExecutor{}
	w := newTestWorker(dryRun, exec, nil)

	w.process(context.Background(), testItem("0x2::usdc::USDC", model.NewPublicSource()), simulator.Address{1}, nil)

	if len(exec.executed) != 0 {
		t.Errorf("expected no execution when the dry run shows no native gain")
	}
}
