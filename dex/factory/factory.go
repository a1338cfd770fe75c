// Package factory builds a dex.Dex instance for a model.Pool record,
// dispatching on its Protocol tag. It is the single place that needs
// to import every protocol adapter package, so the adapters
// themselves stay free of a registration-cycle dependency on the
// dex package's Dex interface consumers (spec.md §4.C).
package factory

import (
	"fmt"

	"github.com/luxfi/sui-arb/dex"
	"github.com/luxfi/sui-arb/dex/aftermath"
	"github.com/luxfi/sui-arb/dex/cetus"
	"github.com/luxfi/sui-arb/dex/deepbookv2"
	"github.com/luxfi/sui-arb/dex/kriyaamm"
	"github.com/luxfi/sui-arb/dex/kriyaclmm"
	"github.com/luxfi/sui-arb/dex/turbos"
	"github.com/luxfi/sui-arb/model"
	"github.com/luxfi/sui-arb/pool"
)

// New builds the protocol-appropriate adapter for pool, trading
// coinIn for the pool's other token. It returns an error for
// model.ProtocolNavi, which is never a swap leg (use dex/navi.New
// directly as the Trader's FlashLoanProvider instead).
func New(pool model.Pool, coinIn model.Coin) (dex.Dex, error) {
	switch pool.Protocol {
	case model.ProtocolCetus:
		return cetus.New(pool, coinIn)
	case model.ProtocolTurbos:
		return turbos.New(pool, coinIn)
	case model.ProtocolKriyaCLMM:
		return kriyaclmm.New(pool, coinIn)
	case model.ProtocolKriyaAMM:
		return kriyaamm.New(pool, coinIn)
	case model.ProtocolAftermath:
		return aftermath.New(pool, coinIn)
	case model.ProtocolDeepbookV2:
		return deepbookv2.New(pool, coinIn)
	default:
		return nil, fmt.Errorf("factory: unsupported protocol for a swap leg: %s", pool.Protocol)
	}
}

// EventDecoders returns one stateless swap-event decoder per supported
// protocol family, the set the opportunity pipeline fans a public/Shio
// event out to in parallel (spec.md §4.G "decode each emitted swap
// event with every protocol adapter").
func EventDecoders() []dex.EventDecoder {
	return []dex.EventDecoder{
		cetus.NewDecoder(),
		turbos.NewDecoder(),
		kriyaclmm.NewDecoder(),
		kriyaamm.NewDecoder(),
		aftermath.NewDecoder(),
		deepbookv2.NewDecoder(),
	}
}

// PoolCreatedDecoders returns one pool.Decoder per protocol the pool
// index backfills/tracks, each re-reading pool objects for their
// fee/tick-spacing fields through reader (spec.md §4.A). DeepBook v2's
// decoder reports Unindexed(): true, so pool.Index falls back to
// swap-event observation for it rather than backfilling a creation-event
// log that doesn't exist.
func PoolCreatedDecoders(reader dex.ObjectLayoutReader) []pool.Decoder {
	return []pool.Decoder{
		cetus.NewPoolCreatedDecoder(reader),
		turbos.NewPoolCreatedDecoder(reader),
		kriyaclmm.NewPoolCreatedDecoder(reader),
		kriyaamm.NewPoolCreatedDecoder(reader),
		aftermath.NewPoolCreatedDecoder(reader),
		deepbookv2.NewPoolCreatedDecoder(),
	}
}

// PoolCreatedEventTypes reports the Move event type string each
// indexed protocol's pool.Decoder matches against, keyed by protocol.
// The chain client's EventSource uses this to fill in
// internal/chainclient.PoolCreatedEventType without importing any
// protocol package itself. A nil reader is safe here: EventType never
// touches it.
func PoolCreatedEventTypes() map[model.Protocol]string {
	types := make(map[model.Protocol]string)
	for _, d := range PoolCreatedDecoders(nil) {
		if d.Unindexed() {
			continue
		}
		if typed, ok := d.(dex.PoolCreatedEventTyped); ok {
			types[d.Protocol()] = typed.EventType()
		}
	}
	return types
}
