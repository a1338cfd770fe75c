package kriyaclmm

import (
	"github.com/luxfi/sui-arb/dex"
	"github.com/luxfi/sui-arb/model"
	"github.com/luxfi/sui-arb/simulator"
)

// Decoder recognizes Kriya CLMM's pool::SwapEvent.
type Decoder struct{}

// NewDecoder returns the Kriya CLMM swap-event decoder.
func NewDecoder() *Decoder { return &Decoder{} }

func (d *Decoder) Protocol() model.Protocol { return model.ProtocolKriyaCLMM }

func (d *Decoder) DecodeSwapEvent(event simulator.Event) (model.Coin, model.ObjectID, bool) {
	return dex.DecodeTwoSidedSwapEvent(event, packageID, "pool", "SwapEvent")
}
