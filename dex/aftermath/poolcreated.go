package aftermath

import (
	"context"

	"github.com/luxfi/sui-arb/dex"
	"github.com/luxfi/sui-arb/model"
	"github.com/luxfi/sui-arb/pool"
	"github.com/luxfi/sui-arb/simulator"
)

// PoolCreatedDecoder turns Aftermath's pool::PoolCreatedEvent into a
// model.Pool. Aftermath supports N-weighted pools in general, but the
// router only ever trades a pool's first two registered coins (spec.md
// §4.D non-goal: "pools with more than two tradable assets are modeled
// as their first two coins only"), so only those two are indexed.
type PoolCreatedDecoder struct {
	reader dex.ObjectLayoutReader
}

// NewPoolCreatedDecoder wraps reader for pool-creation event decoding.
func NewPoolCreatedDecoder(reader dex.ObjectLayoutReader) *PoolCreatedDecoder {
	return &PoolCreatedDecoder{reader: reader}
}

func (d *PoolCreatedDecoder) Protocol() model.Protocol { return model.ProtocolAftermath }

func (d *PoolCreatedDecoder) Unindexed() bool { return false }

// EventType reports the Move event type this protocol's factory
// emits on pool creation, for the chain client's event-type lookup.
func (d *PoolCreatedDecoder) EventType() string {
	return packageID.String() + "::pool::PoolCreatedEvent"
}

func (d *PoolCreatedDecoder) DecodePoolCreated(ctx context.Context, raw pool.RawPoolEvent) (model.Pool, error) {
	event := simulator.Event{Type: raw.Type, Bytes: raw.Bytes}
	coinA, coinB, poolID, ok := dex.DecodePoolCreatedEvent(event, packageID, "pool", "PoolCreatedEvent")
	if !ok {
		return model.Pool{}, dex.ErrUnrecognizedPoolCreatedEvent
	}
	feeRate, _ := dex.ReadExtraU64Field(ctx, d.reader, poolID, "flatness")
	return model.Pool{
		Protocol: model.ProtocolAftermath,
		PoolID:   poolID,
		Tokens:   []model.Coin{coinA, coinB},
		Extra: model.PoolExtra{AMM: &model.AMMExtra{
			FeeRateBps: uint32(feeRate),
			IsStable:   false,
		}},
	}, nil
}
