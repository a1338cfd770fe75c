package deepbookv2

import (
	"github.com/luxfi/sui-arb/dex"
	"github.com/luxfi/sui-arb/model"
	"github.com/luxfi/sui-arb/simulator"
)

// Decoder recognizes DeepBook v2's clob_v2::OrderFilled event, the
// order-book family's equivalent of a swap event.
type Decoder struct{}

// NewDecoder returns the DeepBook v2 event decoder.
func NewDecoder() *Decoder { return &Decoder{} }

func (d *Decoder) Protocol() model.Protocol { return model.ProtocolDeepbookV2 }

func (d *Decoder) DecodeSwapEvent(event simulator.Event) (model.Coin, model.ObjectID, bool) {
	return dex.DecodeTwoSidedSwapEvent(event, packageID, "clob_v2", "OrderFilled")
}
