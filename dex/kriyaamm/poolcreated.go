package kriyaamm

import (
	"context"

	"github.com/luxfi/sui-arb/dex"
	"github.com/luxfi/sui-arb/model"
	"github.com/luxfi/sui-arb/pool"
	"github.com/luxfi/sui-arb/simulator"
)

// PoolCreatedDecoder turns Kriya AMM's spot_dex::PoolCreatedEvent into
// a model.Pool.
type PoolCreatedDecoder struct {
	reader dex.ObjectLayoutReader
}

// NewPoolCreatedDecoder wraps reader for pool-creation event decoding.
func NewPoolCreatedDecoder(reader dex.ObjectLayoutReader) *PoolCreatedDecoder {
	return &PoolCreatedDecoder{reader: reader}
}

func (d *PoolCreatedDecoder) Protocol() model.Protocol { return model.ProtocolKriyaAMM }

func (d *PoolCreatedDecoder) Unindexed() bool { return false }

// EventType reports the Move event type this protocol's factory
// emits on pool creation, for the chain client's event-type lookup.
func (d *PoolCreatedDecoder) EventType() string {
	return packageID.String() + "::spot_dex::PoolCreatedEvent"
}

func (d *PoolCreatedDecoder) DecodePoolCreated(ctx context.Context, raw pool.RawPoolEvent) (model.Pool, error) {
	event := simulator.Event{Type: raw.Type, Bytes: raw.Bytes}
	coinA, coinB, poolID, ok := dex.DecodePoolCreatedEvent(event, packageID, "spot_dex", "PoolCreatedEvent")
	if !ok {
		return model.Pool{}, dex.ErrUnrecognizedPoolCreatedEvent
	}
	feeRate, _ := dex.ReadExtraU64Field(ctx, d.reader, poolID, "lp_fee_percent")
	isStableFlag, _ := dex.ReadExtraU64Field(ctx, d.reader, poolID, "is_stable")
	return model.Pool{
		Protocol: model.ProtocolKriyaAMM,
		PoolID:   poolID,
		Tokens:   []model.Coin{coinA, coinB},
		Extra: model.PoolExtra{AMM: &model.AMMExtra{
			FeeRateBps: uint32(feeRate),
			IsStable:   isStableFlag != 0,
		}},
	}, nil
}
