package cetus

import (
	"testing"

	"github.com/luxfi/sui-arb/dex"
	"github.com/luxfi/sui-arb/model"
	"github.com/luxfi/sui-arb/simulator"
)

func testPool() model.Pool {
	poolID, _ := model.ObjectIDFromHex("0x01")
	return model.Pool{
		Protocol: model.ProtocolCetus,
		PoolID:   poolID,
		Tokens:   []model.Coin{model.NativeCoin, "0x2::usdc::USDC"},
	}
}

func TestNewRejectsWrongProtocol(t *testing.T) {
	pool := testPool()
	pool.Protocol = model.ProtocolTurbos
	if _, err := New(pool, model.NativeCoin); err == nil {
		t.Errorf("expected error for mismatched protocol")
	}
}

func TestNewDerivesCoinOutAndDirection(t *testing.T) {
	c, err := New(testPool(), model.NativeCoin)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.CoinOutType() != "0x2::usdc::USDC" {
		t.Errorf("expected coin_out usdc, got %s", c.CoinOutType())
	}
	if !c.IsA2B() {
		t.Errorf("expected a2b=true when coin_in is tokens[0]")
	}
}

func TestFlipInvertsDirectionWithoutAffectingClone(t *testing.T) {
	c, _ := New(testPool(), model.NativeCoin)
	clone := c.Clone()
	clone.Flip()

	if c.IsA2B() != true {
		t.Errorf("flipping the clone must not affect the original")
	}
	if clone.IsA2B() != false {
		t.Errorf("expected clone a2b=false after flip")
	}
	if clone.CoinInType() != "0x2::usdc::USDC" || clone.CoinOutType() != model.NativeCoin {
		t.Errorf("expected clone coin_in/out swapped, got in=%s out=%s", clone.CoinInType(), clone.CoinOutType())
	}
}

func TestExtendTradeTxAppendsOneMoveCallAndFourInputs(t *testing.T) {
	c, _ := New(testPool(), model.NativeCoin)
	tc := dex.NewTradeCtx()
	amt := uint64(1000)
	_, err := c.ExtendTradeTx(tc, simulator.Address{}, simulator.Argument{}, &amt)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tc.Commands) != 1 {
		t.Errorf("expected exactly 1 move-call command, got %d", len(tc.Commands))
	}
	if len(tc.Inputs) != 4 {
		t.Errorf("expected 4 input objects (pool, config, partner, clock), got %d", len(tc.Inputs))
	}
}
