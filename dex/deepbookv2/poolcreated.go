package deepbookv2

import (
	"context"

	"github.com/luxfi/sui-arb/model"
	"github.com/luxfi/sui-arb/pool"
)

// PoolCreatedDecoder is DeepBook v2's pool.Decoder. DeepBook v2 order
// books are created and registered administratively rather than via a
// permissionless factory call the chain indexes, so there is no
// PoolCreated-shaped event to decode; new books are discovered the way
// spec.md §4.A describes for protocols in this position — by observing
// the first OrderFilled swap event against an unseen pool id, not by
// backfilling a creation-event log.
type PoolCreatedDecoder struct{}

// NewPoolCreatedDecoder returns the DeepBook v2 pool.Decoder.
func NewPoolCreatedDecoder() *PoolCreatedDecoder { return &PoolCreatedDecoder{} }

func (d *PoolCreatedDecoder) Protocol() model.Protocol { return model.ProtocolDeepbookV2 }

func (d *PoolCreatedDecoder) Unindexed() bool { return true }

func (d *PoolCreatedDecoder) DecodePoolCreated(ctx context.Context, raw pool.RawPoolEvent) (model.Pool, error) {
	return model.Pool{}, pool.ErrUnindexed
}
