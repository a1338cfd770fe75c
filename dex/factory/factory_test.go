package factory

import (
	"testing"

	"github.com/luxfi/sui-arb/model"
	"github.com/luxfi/sui-arb/simulator"
)

func TestNewDispatchesByProtocol(t *testing.T) {
	poolID, _ := model.ObjectIDFromHex("0x01")
	pool := model.Pool{
		Protocol: model.ProtocolCetus,
		PoolID:   poolID,
		Tokens:   []model.Coin{model.NativeCoin, "0x2::usdc::USDC"},
	}

	d, err := New(pool, model.NativeCoin)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Protocol() != model.ProtocolCetus {
		t.Errorf("expected cetus adapter, got protocol %s", d.Protocol())
	}
	if d.CoinOutType() != "0x2::usdc::USDC" {
		t.Errorf("expected coin_out usdc, got %s", d.CoinOutType())
	}
}

func TestNewRejectsNavi(t *testing.T) {
	poolID, _ := model.ObjectIDFromHex("0x01")
	pool := model.Pool{
		Protocol: model.ProtocolNavi,
		PoolID:   poolID,
		Tokens:   []model.Coin{model.NativeCoin, model.NativeCoin},
	}
	if _, err := New(pool, model.NativeCoin); err == nil {
		t.Errorf("expected error for navi protocol, a non-swap-leg lending pool")
	}
}

func TestEventDecodersCoverEverySwapProtocol(t *testing.T) {
	decoders := EventDecoders()
	want := map[model.Protocol]bool{
		model.ProtocolCetus:      true,
		model.ProtocolTurbos:     true,
		model.ProtocolKriyaCLMM:  true,
		model.ProtocolKriyaAMM:   true,
		model.ProtocolAftermath:  true,
		model.ProtocolDeepbookV2: true,
	}
	got := make(map[model.Protocol]bool, len(decoders))
	for _, d := range decoders {
		got[d.Protocol()] = true
	}
	for p := range want {
		if !got[p] {
			t.Errorf("missing event decoder for protocol %s", p)
		}
	}
}

func TestEventDecodersIgnoreUnrelatedEvents(t *testing.T) {
	for _, d := range EventDecoders() {
		if _, _, ok := d.DecodeSwapEvent(simulator.Event{Type: "0x1::unrelated::Event"}); ok {
			t.Errorf("protocol %s matched an unrelated event type", d.Protocol())
		}
	}
}
