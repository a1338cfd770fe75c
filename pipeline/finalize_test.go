package pipeline

import (
	"context"
	"testing"

	"github.com/luxfi/sui-arb/dex"
	"github.com/luxfi/sui-arb/model"
	"github.com/luxfi/sui-arb/simulator"
)

// fakeDigester hands out digests from a fixed, increasing sequence
// keyed by gas budget, modeling how a real signer's digest would shift
// whenever the transaction's bytes change.
type fakeDigester struct {
	threshold uint64 // gas budgets at or above this produce a digest greater than the trigger
}

func (f *fakeDigester) Digest(ctx context.Context, tx simulator.Transaction) (model.Digest, error) {
	var d model.Digest
	if tx.GasBudget >= f.threshold {
		d[31] = 2
	} else {
		d[31] = 0
	}
	return d, nil
}

func TestBuildFinalTxDataNonAuctionSkipsDigestLoop(t *testing.T) {
	usdc := model.Coin("0x2::usdc::USDC")
	poolID := dex.MustObjectID("0x01")
	leg := &fakeDex{proto: model.ProtocolCetus, poolID: poolID, coinIn: model.NativeCoin, coinOut: usdc}
	path := dex.Path{Dexes: []dex.Dex{leg}}

	tx, err := BuildFinalTxData(context.Background(), fakeFlash{}, &fakeDigester{threshold: 1}, simulator.Address{1}, 1_000_000, path, nil, 1000, model.NewPublicSource(), model.Digest{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tx.GasBudget != baseGasBudget {
		t.Errorf("non-auction source should use the base gas budget unchanged, got %d", tx.GasBudget)
	}
}

func TestBuildFinalTxDataSealedAuctionBumpsGasBudgetUntilDigestOrders(t *testing.T) {
	usdc := model.Coin("0x2::usdc::USDC")
	poolID := dex.MustObjectID("0x01")
	leg := &fakeDex{proto: model.ProtocolCetus, poolID: poolID, coinIn: model.NativeCoin, coinOut: usdc}
	path := dex.Path{Dexes: []dex.Dex{leg}}

	trigger := model.Digest{}
	trigger[31] = 1

	source := model.NewShioSource(trigger, 0, 1000).WithBidAmount(500)
	digester := &fakeDigester{threshold: baseGasBudget + 5}

	tx, err := BuildFinalTxData(context.Background(), fakeFlash{}, digester, simulator.Address{1}, 1_000_000, path, nil, 1000, source, trigger)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tx.GasBudget != baseGasBudget+5 {
		t.Errorf("expected gas budget bumped to %d, got %d", baseGasBudget+5, tx.GasBudget)
	}
}

func TestBuildFinalTxDataFailsWhenDigestNeverOrders(t *testing.T) {
	usdc := model.Coin("0x2::usdc::USDC")
	poolID := dex.MustObjectID("0x01")
	leg := &fakeDex{proto: model.ProtocolCetus, poolID: poolID, coinIn: model.NativeCoin, coinOut: usdc}
	path := dex.Path{Dexes: []dex.Dex{leg}}

	trigger := model.Digest{}
	trigger[31] = 1

	source := model.NewShioSource(trigger, 0, 1000).WithBidAmount(500)
	digester := &fakeDigester{threshold: ^uint64(0)} // never reached within the attempt cap

	_, err := BuildFinalTxData(context.Background(), fakeFlash{}, digester, simulator.Address{1}, 1_000_000, path, nil, 1000, source, trigger)
	if err == nil {
		t.Errorf("expected an error once the attempt cap is exhausted")
	}
}
