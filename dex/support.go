package dex

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/luxfi/sui-arb/internal/movedecode"
	"github.com/luxfi/sui-arb/model"
	"github.com/luxfi/sui-arb/simulator"
)

// ErrUnrecognizedPoolCreatedEvent is returned by a protocol's
// PoolCreatedDecoder when a raw event's type or payload doesn't match
// the expected creation-event shape (a decode error, not the
// "this protocol isn't event-discoverable at all" signal pool.ErrUnindexed
// carries).
var ErrUnrecognizedPoolCreatedEvent = errors.New("dex: event does not match the expected pool-created shape")

// ClockObjectID is the well-known shared Clock object every protocol's
// time-sensitive entry function takes by reference.
var ClockObjectID = mustObjectID("0x0000000000000000000000000000000000000000000000000000000000000006")

func mustObjectID(s string) model.ObjectID {
	id, err := model.ObjectIDFromHex(s)
	if err != nil {
		panic(err)
	}
	return id
}

// MustObjectID is the exported form of mustObjectID, for protocol
// adapter packages that hardcode well-known shared-object addresses
// (config/partner/storage objects) the way the original implementation
// does in its per-protocol constant blocks.
func MustObjectID(s string) model.ObjectID {
	return mustObjectID(s)
}

// RefreshLiquidity re-reads pool's on-chain object and decodes fieldName
// as an unsigned integer, the common "liquidity went stale, re-fetch
// it before quoting" step every CLMM/AMM adapter performs before
// router comparisons (spec.md §4.C invariant 3).
func RefreshLiquidity(ctx context.Context, sim simulator.Simulator, poolID model.ObjectID, fieldName string) (uint64, error) {
	obj, err := sim.GetObject(ctx, poolID)
	if err != nil {
		return 0, fmt.Errorf("refresh liquidity: %w", err)
	}
	if obj == nil {
		return 0, fmt.Errorf("refresh liquidity: pool object %s not found", poolID)
	}
	layout, err := sim.GetObjectLayout(ctx, poolID)
	if err != nil {
		return 0, fmt.Errorf("refresh liquidity: %w", err)
	}
	if layout == nil {
		return 0, fmt.Errorf("refresh liquidity: pool layout %s not found", poolID)
	}
	fields, err := movedecode.Fields(layout, obj.Contents)
	if err != nil {
		return 0, fmt.Errorf("refresh liquidity: %w", err)
	}
	v, ok := movedecode.U64Field(fields, fieldName)
	if !ok {
		return 0, fmt.Errorf("refresh liquidity: field %q not present in %s", fieldName, poolID)
	}
	return v, nil
}

// ExtendMoveCallSwap appends a single Move call command built from
// pkg::module::function(typeArgs)(args) and returns the Argument
// referring to its result. Every protocol adapter's ExtendTradeTx
// reduces to one call of this helper with protocol-specific arguments
// (spec.md §4.C, §6).
func ExtendMoveCallSwap(ctx *TradeCtx, pkg model.ObjectID, module, function string, typeArgs []string, args []simulator.Argument) simulator.Argument {
	return ctx.AddCommand(simulator.Command{
		Kind: simulator.CommandMoveCall,
		MoveCall: &simulator.MoveCall{
			Package:       pkg,
			Module:        module,
			Function:      function,
			TypeArguments: typeArgs,
			Arguments:     args,
		},
	})
}

// SplitAmountArg appends a split-coin command against the gas coin for
// amount and returns the resulting coin Argument, the shape every
// adapter's SwapTx debug helper needs to fund its own input coin.
func SplitAmountArg(ctx *TradeCtx, amount uint64) simulator.Argument {
	return ctx.AddCommand(simulator.Command{
		Kind:        simulator.CommandSplitCoin,
		SplitCoin:   simulator.Argument{Kind: simulator.ArgGasCoin},
		SplitAmount: amount,
	})
}

// TransferArg appends a transfer-objects command sending arg to
// recipient.
func TransferArg(ctx *TradeCtx, recipient simulator.Address, arg simulator.Argument) {
	ctx.AddCommand(simulator.Command{
		Kind:      simulator.CommandTransferObjects,
		Recipient: recipient,
		Objects:   []simulator.Argument{arg},
	})
}

// EventDecoder recognizes and decodes one protocol's swap event,
// producing the one-sided (coin, pool) pair the opportunity pipeline
// needs to insert into the arb cache (spec.md §4.G "decode each
// emitted swap event with every protocol adapter"). Unlike Dex, a
// decoder is stateless and protocol-wide rather than bound to one pool
// instance: it runs over every event on the stream looking for a
// match.
type EventDecoder interface {
	Protocol() model.Protocol
	DecodeSwapEvent(event simulator.Event) (coin model.Coin, poolID model.ObjectID, ok bool)
}

// eventTypeArgs extracts the comma-separated type parameters from a
// Move event type string, e.g. "pkg::pool::SwapEvent<0x2::sui::SUI,
// 0xabc::foo::FOO>" -> ["0x2::sui::SUI", "0xabc::foo::FOO"]. Move
// events encode their coin type parameters this way, so the pipeline
// never needs a full BCS decode of the generic struct just to learn
// which coins were swapped.
func eventTypeArgs(eventType string) []string {
	start := strings.IndexByte(eventType, '<')
	end := strings.LastIndexByte(eventType, '>')
	if start < 0 || end < 0 || end < start {
		return nil
	}
	parts := strings.Split(eventType[start+1:end], ",")
	out := make([]string, len(parts))
	for i, p := range parts {
		out[i] = strings.TrimSpace(p)
	}
	return out
}

// MatchSwapEventType reports whether eventType names a move-call-level
// swap event emitted by pkg::module::eventName (ignoring its type
// parameters), and if so returns those type parameters.
func MatchSwapEventType(eventType string, pkg model.ObjectID, module, eventName string) ([]string, bool) {
	prefix := pkg.String() + "::" + module + "::" + eventName
	base := eventType
	if idx := strings.IndexByte(eventType, '<'); idx >= 0 {
		base = eventType[:idx]
	}
	if base != prefix {
		return nil, false
	}
	return eventTypeArgs(eventType), true
}

// DecodePoolIDFromEventBytes reads the pool id every adapter's swap
// event encodes as its first 32 bytes (spec.md §6 "move-call commands
// ... arguments derived from pool metadata" — the event mirrors the
// pool object the call touched).
func DecodePoolIDFromEventBytes(bytes []byte) (model.ObjectID, bool) {
	var id model.ObjectID
	if len(bytes) < len(id) {
		return id, false
	}
	copy(id[:], bytes[:len(id)])
	return id, true
}

// DecodePoolCreatedEvent is the pool-creation counterpart of
// DecodeTwoSidedSwapEvent: match eventType against
// pkg::module::eventName, recover the two coin type parameters from
// its generics, and read the freshly created pool's own object id
// (first 32 bytes of the event payload, the same convention
// DecodePoolIDFromEventBytes documents for swap events) — enough to
// build a model.Pool's identity without a full BCS decode of the event
// (spec.md §4.A).
func DecodePoolCreatedEvent(event simulator.Event, pkg model.ObjectID, module, eventName string) (coinA, coinB model.Coin, poolID model.ObjectID, ok bool) {
	typeArgs, matched := MatchSwapEventType(event.Type, pkg, module, eventName)
	if !matched || len(typeArgs) != 2 {
		return "", "", model.ObjectID{}, false
	}
	id, found := DecodePoolIDFromEventBytes(event.Bytes)
	if !found {
		return "", "", model.ObjectID{}, false
	}
	return model.Coin(typeArgs[0]), model.Coin(typeArgs[1]), id, true
}

// ReadExtraU64Field re-reads poolID's on-chain object and decodes
// fieldName as an unsigned integer, for pool.Decoder implementations
// populating a PoolExtra's fee-rate/tick-spacing/lot-size fields from
// the pool object itself rather than the (leaner) creation event
// payload.
func ReadExtraU64Field(ctx context.Context, reader ObjectLayoutReader, poolID model.ObjectID, fieldName string) (uint64, bool) {
	obj, err := reader.GetObject(ctx, poolID)
	if err != nil || obj == nil {
		return 0, false
	}
	layout, err := reader.GetObjectLayout(ctx, poolID)
	if err != nil || layout == nil {
		return 0, false
	}
	fields, err := movedecode.Fields(layout, obj.Contents)
	if err != nil {
		return 0, false
	}
	return movedecode.U64Field(fields, fieldName)
}

// ObjectLayoutReader is the minimal read surface a Decoder needs to
// look up a pool object's extra numeric fields post-creation; both
// simulator.Simulator and simulator.BaseStore satisfy it.
type ObjectLayoutReader interface {
	GetObject(ctx context.Context, id model.ObjectID) (*model.Object, error)
	GetObjectLayout(ctx context.Context, id model.ObjectID) (*simulator.StructLayout, error)
}

// PoolCreatedEventTyped is implemented by pool.Decoders that can report
// the exact Move event type their factory emits, so the chain client's
// pool-creation event source (internal/chainclient.PoolCreatedEventType)
// can be built without duplicating each protocol's package id.
type PoolCreatedEventTyped interface {
	EventType() string
}

// DecodeTwoSidedSwapEvent is the shared decode routine every
// constant-product/CLMM adapter's EventDecoder uses: match the event
// type against pkg::module::eventName, then read the pool id (first 32
// bytes) and an a2b direction flag (byte 32) out of the event payload,
// and pick the output coin from the event's own <CoinA, CoinB> type
// parameters accordingly (spec.md §4.G "one-sided coin, pool pairs").
func DecodeTwoSidedSwapEvent(event simulator.Event, pkg model.ObjectID, module, eventName string) (model.Coin, model.ObjectID, bool) {
	typeArgs, ok := MatchSwapEventType(event.Type, pkg, module, eventName)
	if !ok || len(typeArgs) != 2 {
		return "", model.ObjectID{}, false
	}
	poolID, ok := DecodePoolIDFromEventBytes(event.Bytes)
	if !ok {
		return "", model.ObjectID{}, false
	}
	if len(event.Bytes) < 33 {
		return "", model.ObjectID{}, false
	}
	a2b := event.Bytes[32] != 0
	if a2b {
		return model.Coin(typeArgs[1]), poolID, true
	}
	return model.Coin(typeArgs[0]), poolID, true
}
