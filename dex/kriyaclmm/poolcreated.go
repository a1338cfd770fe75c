package kriyaclmm

import (
	"context"

	"github.com/luxfi/sui-arb/dex"
	"github.com/luxfi/sui-arb/model"
	"github.com/luxfi/sui-arb/pool"
	"github.com/luxfi/sui-arb/simulator"
)

// PoolCreatedDecoder turns Kriya CLMM's pool::PoolCreatedEvent into a
// model.Pool.
type PoolCreatedDecoder struct {
	reader dex.ObjectLayoutReader
}

// NewPoolCreatedDecoder wraps reader for pool-creation event decoding.
func NewPoolCreatedDecoder(reader dex.ObjectLayoutReader) *PoolCreatedDecoder {
	return &PoolCreatedDecoder{reader: reader}
}

func (d *PoolCreatedDecoder) Protocol() model.Protocol { return model.ProtocolKriyaCLMM }

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
	tickSpacing, _ := dex.ReadExtraU64Field(ctx, d.reader, poolID, "tick_spacing")
	feeRate, _ := dex.ReadExtraU64Field(ctx, d.reader, poolID, "fee_rate")
	return model.Pool{
		Protocol: model.ProtocolKriyaCLMM,
		PoolID:   poolID,
		Tokens:   []model.Coin{coinA, coinB},
		Extra: model.PoolExtra{CLMM: &model.CLMMExtra{
			TickSpacing: uint32(tickSpacing),
			FeeRateBps:  uint32(feeRate),
		}},
	}, nil
}
