package cetus

import (
	"github.com/luxfi/sui-arb/dex"
	"github.com/luxfi/sui-arb/model"
	"github.com/luxfi/sui-arb/simulator"
)

// Decoder recognizes Cetus's pool::SwapEvent and reports the coin the
// swap produced, so the opportunity pipeline can enqueue the affected
// coin without needing a live Cetus adapter instance (spec.md §4.G).
type Decoder struct{}

// NewDecoder returns the Cetus swap-event decoder.
func NewDecoder() *Decoder { return &Decoder{} }

func (d *Decoder) Protocol() model.Protocol { return model.ProtocolCetus }

func (d *Decoder) DecodeSwapEvent(event simulator.Event) (model.Coin, model.ObjectID, bool) {
	return dex.DecodeTwoSidedSwapEvent(event, packageID, "pool", "SwapEvent")
}
