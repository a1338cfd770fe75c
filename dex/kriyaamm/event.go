package kriyaamm

import (
	"github.com/luxfi/sui-arb/dex"
	"github.com/luxfi/sui-arb/model"
	"github.com/luxfi/sui-arb/simulator"
)

// Decoder recognizes Kriya AMM's spot_dex::SwapEvent.
type Decoder struct{}

// NewDecoder returns the Kriya AMM swap-event decoder.
func NewDecoder() *Decoder { return &Decoder{} }

func (d *Decoder) Protocol() model.Protocol { return model.ProtocolKriyaAMM }

func (d *Decoder) DecodeSwapEvent(event simulator.Event) (model.Coin, model.ObjectID, bool) {
	return dex.DecodeTwoSidedSwapEvent(event, packageID, "spot_dex", "SwapEvent")
}
