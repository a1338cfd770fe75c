// Package chainclient is the bot's one concrete binding of the core's
// RPC-shaped interfaces (simulator.RPCClient, simulator.BaseStore,
// pool.EventSource, pipeline.GasCoinSource, pipeline.Executor,
// pipeline.TxDigester) to an actual full-node JSON-RPC endpoint, via
// internal/jsonrpc's Client. It is deliberately thin: spec.md §1 lists
// "the chain RPC/WebSocket clients" among the external collaborators
// out of the core's scope, and the real Move VM execution engine
// behind simulator.Executor is not implementable outside the chain
// node itself (simulator/local.go's own doc comment calls it out as
// such). This package exists to give the CLI something runnable: a
// read path for objects/layouts/events/coins, a remote dry-run path
// (simulator.Remote, spec.md §4.B variant (b)), and transaction
// submission/digest helpers, all over plain JSON-RPC.
package chainclient

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/VictoriaMetrics/fastcache"
	lru "github.com/hashicorp/golang-lru"

	"github.com/luxfi/sui-arb/internal/jsonrpc"
	"github.com/luxfi/sui-arb/model"
	"github.com/luxfi/sui-arb/pool"
	"github.com/luxfi/sui-arb/simulator"
)

// layoutCacheSize bounds the struct-layout LRU: layouts are small,
// process-lifetime-stable, and keyed by a handful of distinct Move
// struct types across every indexed protocol, so a few hundred entries
// comfortably covers the working set without growing unbounded over a
// long-running daemon's lifetime.
const layoutCacheSize = 512

// objCacheBytes bounds the raw-object-bytes cache (spec.md §4.B "local
// replica"): generous enough to hold the hot set of pool objects a
// busy pipeline re-reads every trial without re-hitting the RPC
// endpoint on every GetObject call.
const objCacheBytes = 64 * 1024 * 1024

// Client is the bot's JSON-RPC binding to the chain node.
type Client struct {
	rpc    *jsonrpc.Client
	layout *lru.Cache
	sender simulator.Address

	// objCache is the "local replica" of spec.md §4.B variant (a): a
	// process-wide cache of the latest known contents for each object
	// id, populated both opportunistically (every GetObject miss) and
	// out of band by UpdateReloader consuming the simulator
	// cache-update socket (spec.md §6).
	objCache *fastcache.Cache
}

// New wraps a JSON-RPC client at url. sender is the wallet address this
// client re-reads gas coins for (pipeline.GasCoinSource has no owner
// parameter of its own: each bot process runs a single wallet).
func New(url string, sender simulator.Address) (*Client, error) {
	cache, err := lru.New(layoutCacheSize)
	if err != nil {
		return nil, fmt.Errorf("chainclient: layout cache: %w", err)
	}
	return &Client{
		rpc:      jsonrpc.NewClient(url),
		layout:   cache,
		sender:   sender,
		objCache: fastcache.New(objCacheBytes),
	}, nil
}

// cachedObject is the fastcache-serializable form of a model.Object.
type cachedObject struct {
	Version              uint64
	Digest               string
	Owner                string
	OwnerHex             string
	InitialSharedVersion uint64
	Contents             []byte
}

func (c *Client) cacheObject(obj *model.Object) {
	entry := cachedObject{Version: obj.Version, Digest: hex.EncodeToString(obj.Digest[:]), Contents: obj.Contents}
	switch obj.Owner.Kind {
	case model.OwnerAddress:
		entry.Owner, entry.OwnerHex = "address", model.ObjectID(obj.Owner.Address).String()
	case model.OwnerShared:
		entry.Owner, entry.InitialSharedVersion = "shared", obj.Owner.InitialSharedVersion
	case model.OwnerImmutable:
		entry.Owner = "immutable"
	case model.OwnerObject:
		entry.Owner, entry.OwnerHex = "object", model.ObjectID(obj.Owner.Address).String()
	}
	buf, err := json.Marshal(entry)
	if err != nil {
		return
	}
	c.objCache.Set(obj.ID[:], buf)
}

func (c *Client) cachedObjectByID(id model.ObjectID) (*model.Object, bool) {
	buf, ok := c.objCache.HasGet(nil, id[:])
	if !ok {
		return nil, false
	}
	var entry cachedObject
	if err := json.Unmarshal(buf, &entry); err != nil {
		return nil, false
	}
	digest, err := digestFromHex(entry.Digest)
	if err != nil {
		return nil, false
	}
	owner, err := decodeOwner(entry.Owner, entry.OwnerHex, entry.InitialSharedVersion)
	if err != nil {
		return nil, false
	}
	return &model.Object{ID: id, Version: entry.Version, Digest: digest, Owner: owner, Contents: entry.Contents}, true
}

// getObjectParams/Result mirror a sui_getObject-shaped call: the
// object's owner/version/digest envelope plus its raw BCS contents.
type getObjectParams struct {
	ObjectID string `json:"objectId"`
	Version  uint64 `json:"version,omitempty"`
}

type getObjectResult struct {
	Found    bool   `json:"found"`
	Version  uint64 `json:"version"`
	Digest   string `json:"digest"`
	Owner    string `json:"ownerKind"` // "address" | "shared" | "immutable" | "object"
	OwnerHex string `json:"ownerHex"`
	Contents string `json:"contentsBase64"`
}

// GetObject implements simulator.BaseStore / simulator.RPCClient: fetch
// the latest version of id, consulting the local replica cache first.
func (c *Client) GetObject(ctx context.Context, id model.ObjectID) (*model.Object, error) {
	if obj, ok := c.cachedObjectByID(id); ok {
		return obj, nil
	}
	obj, err := c.getObject(ctx, id, 0)
	if err != nil {
		return nil, err
	}
	if obj != nil {
		c.cacheObject(obj)
	}
	return obj, nil
}

// GetObjectAtVersion implements simulator.BaseStore: fetch a specific
// historical version, used by the overlay reader to reconstruct
// balance changes against shared-object tombstones (spec.md §4.B).
func (c *Client) GetObjectAtVersion(ctx context.Context, id model.ObjectID, version uint64) (*model.Object, error) {
	return c.getObject(ctx, id, version)
}

func (c *Client) getObject(ctx context.Context, id model.ObjectID, version uint64) (*model.Object, error) {
	var result getObjectResult
	if err := c.rpc.Call(ctx, "sui_getObject", getObjectParams{ObjectID: id.String(), Version: version}, &result); err != nil {
		return nil, fmt.Errorf("chainclient: get_object %s: %w", id, err)
	}
	if !result.Found {
		return nil, nil
	}
	contents, err := base64.StdEncoding.DecodeString(result.Contents)
	if err != nil {
		return nil, fmt.Errorf("chainclient: get_object %s: decode contents: %w", id, err)
	}
	digest, err := digestFromHex(result.Digest)
	if err != nil {
		return nil, fmt.Errorf("chainclient: get_object %s: %w", id, err)
	}
	owner, err := decodeOwner(result.Owner, result.OwnerHex, result.Version)
	if err != nil {
		return nil, fmt.Errorf("chainclient: get_object %s: %w", id, err)
	}
	return &model.Object{
		ID:       id,
		Version:  result.Version,
		Digest:   digest,
		Owner:    owner,
		Contents: contents,
	}, nil
}

func decodeOwner(kind, addrHex string, initialSharedVersion uint64) (model.Owner, error) {
	switch kind {
	case "address":
		id, err := model.ObjectIDFromHex(addrHex)
		if err != nil {
			return model.Owner{}, err
		}
		return model.Owner{Kind: model.OwnerAddress, Address: [32]byte(id)}, nil
	case "shared":
		return model.Owner{Kind: model.OwnerShared, InitialSharedVersion: initialSharedVersion}, nil
	case "immutable":
		return model.Owner{Kind: model.OwnerImmutable}, nil
	case "object":
		id, err := model.ObjectIDFromHex(addrHex)
		if err != nil {
			return model.Owner{}, err
		}
		return model.Owner{Kind: model.OwnerObject, Address: [32]byte(id)}, nil
	default:
		return model.Owner{}, fmt.Errorf("unrecognized owner kind %q", kind)
	}
}

func digestFromHex(s string) (model.Digest, error) {
	var d model.Digest
	if s == "" {
		return d, nil
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return d, fmt.Errorf("decode digest %q: %w", s, err)
	}
	if len(b) != len(d) {
		return d, fmt.Errorf("digest %q: want %d bytes, got %d", s, len(d), len(b))
	}
	copy(d[:], b)
	return d, nil
}

// getLayoutParams/Result mirror a normalized-Move-struct query.
type getLayoutParams struct {
	ObjectID string `json:"objectId"`
}

type getLayoutResult struct {
	Type   string              `json:"type"`
	Fields []getLayoutFieldRPC `json:"fields"`
}

type getLayoutFieldRPC struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// GetObjectLayout implements simulator.BaseStore / simulator.RPCClient,
// caching results since a pool object's struct layout never changes
// across reads (spec.md §4.C "decodes layout").
func (c *Client) GetObjectLayout(ctx context.Context, id model.ObjectID) (*simulator.StructLayout, error) {
	if cached, ok := c.layout.Get(id); ok {
		return cached.(*simulator.StructLayout), nil
	}
	var result getLayoutResult
	if err := c.rpc.Call(ctx, "sui_getNormalizedMoveStruct", getLayoutParams{ObjectID: id.String()}, &result); err != nil {
		return nil, fmt.Errorf("chainclient: get_object_layout %s: %w", id, err)
	}
	fields := make([]simulator.FieldLayout, len(result.Fields))
	for i, f := range result.Fields {
		fields[i] = simulator.FieldLayout{Name: f.Name, Type: f.Type}
	}
	layout := &simulator.StructLayout{Type: result.Type, Fields: fields}
	_ = c.layout.Add(id, layout)
	return layout, nil
}

// dryRunResult mirrors a sui_dryRunTransactionBlock-shaped response:
// effects success/failure, events, touched objects and per-address
// balance deltas.
type dryRunResult struct {
	Success        bool              `json:"success"`
	Error          string            `json:"error,omitempty"`
	Created        []string          `json:"created"`
	Mutated        []string          `json:"mutated"`
	Deleted        []string          `json:"deleted"`
	Events         []dryRunEvent     `json:"events"`
	WrittenObjects []dryRunObjectRef `json:"writtenObjects"`
	BalanceChanges []dryRunBalance   `json:"balanceChanges"`
	GasUsed        uint64            `json:"gasUsed"`
}

type dryRunEvent struct {
	Type   string `json:"type"`
	Sender string `json:"sender"`
	Bytes  string `json:"bcsBase64"`
}

type dryRunObjectRef struct {
	ID       string `json:"objectId"`
	Version  uint64 `json:"version"`
	Digest   string `json:"digest"`
	Owner    string `json:"ownerKind"`
	OwnerHex string `json:"ownerHex"`
	Contents string `json:"contentsBase64"`
}

type dryRunBalance struct {
	Owner  string `json:"owner"`
	Coin   string `json:"coinType"`
	Amount int64  `json:"amount"`
}

// dryRunTxParams carries the transaction plus every object the caller
// has already resolved (via its own overlay-aware reader) as an
// explicit override set, so the remote node's dry run sees exactly the
// same state the core's simulator.SimulateCtx overlay would have
// produced locally. This is the module's one deliberate extension past
// a bare dry-run RPC: without it, a remote-only simulator could never
// honor spec.md §4.B's override_objects contract at all.
type dryRunTxParams struct {
	TxBytes        string              `json:"txBytesBase64"`
	Sender         string              `json:"sender"`
	GasPrice       uint64              `json:"gasPrice"`
	GasBudget      uint64              `json:"gasBudget"`
	ObjectOverride []dryRunObjectOverr `json:"objectOverrides,omitempty"`
}

type dryRunObjectOverr struct {
	ID      string `json:"objectId"`
	Deleted bool   `json:"deleted"`
	Version uint64 `json:"version,omitempty"`
	Owner   string `json:"ownerKind,omitempty"`
	Content string `json:"contentsBase64,omitempty"`
}

// DryRunTransaction implements simulator.RPCClient (spec.md §4.B
// variant (b), deprecated/test-only per spec.md §6).
func (c *Client) DryRunTransaction(ctx context.Context, tx simulator.Transaction) (simulator.ExecutionOutput, error) {
	return c.dryRun(ctx, tx, nil)
}

// DryRunWithOverlay is the extension point internal/chainclient adds so
// simulator.Local can be backed by this RPC client even though the
// core never persists a local chain database of its own: every
// object the local overlay reader resolved for this simulation
// (override or base) is forwarded as an explicit override so the
// remote node's view matches what spec.md §4.B's overlay semantics
// would have produced.
func (c *Client) DryRunWithOverlay(ctx context.Context, tx simulator.Transaction, overrides map[model.ObjectID]model.ObjectReadResult) (simulator.ExecutionOutput, error) {
	return c.dryRun(ctx, tx, overrides)
}

func (c *Client) dryRun(ctx context.Context, tx simulator.Transaction, overrides map[model.ObjectID]model.ObjectReadResult) (simulator.ExecutionOutput, error) {
	params := dryRunTxParams{
		TxBytes:   base64.StdEncoding.EncodeToString(encodeTxSkeleton(tx)),
		Sender:    addressHex(tx.Sender),
		GasPrice:  tx.GasPrice,
		GasBudget: tx.GasBudget,
	}
	for id, ov := range overrides {
		entry := dryRunObjectOverr{ID: id.String(), Deleted: ov.Deleted}
		if !ov.Deleted && ov.Object != nil {
			entry.Version = ov.Object.Version
			entry.Content = base64.StdEncoding.EncodeToString(ov.Object.Contents)
		}
		params.ObjectOverride = append(params.ObjectOverride, entry)
	}

	var result dryRunResult
	if err := c.rpc.Call(ctx, "sui_dryRunTransactionBlock", params, &result); err != nil {
		return simulator.ExecutionOutput{}, fmt.Errorf("chainclient: dry_run: %w", err)
	}

	out := simulator.ExecutionOutput{
		Effects: simulator.TransactionEffects{
			Success: result.Success,
			Error:   result.Error,
		},
		GasUsed: result.GasUsed,
	}
	for _, s := range result.Created {
		if id, err := model.ObjectIDFromHex(s); err == nil {
			out.Effects.CreatedObjects = append(out.Effects.CreatedObjects, id)
		}
	}
	for _, s := range result.Mutated {
		if id, err := model.ObjectIDFromHex(s); err == nil {
			out.Effects.MutatedObjects = append(out.Effects.MutatedObjects, id)
		}
	}
	for _, s := range result.Deleted {
		if id, err := model.ObjectIDFromHex(s); err == nil {
			out.Effects.DeletedObjects = append(out.Effects.DeletedObjects, id)
		}
	}
	for _, e := range result.Events {
		bytes, err := base64.StdEncoding.DecodeString(e.Bytes)
		if err != nil {
			continue
		}
		sender, _ := model.ObjectIDFromHex(e.Sender)
		out.Events = append(out.Events, simulator.Event{
			Type:   e.Type,
			Sender: simulator.Address(sender),
			Bytes:  bytes,
		})
	}
	for _, w := range result.WrittenObjects {
		contents, err := base64.StdEncoding.DecodeString(w.Contents)
		if err != nil {
			continue
		}
		id, err := model.ObjectIDFromHex(w.ID)
		if err != nil {
			continue
		}
		digest, err := digestFromHex(w.Digest)
		if err != nil {
			continue
		}
		owner, err := decodeOwner(w.Owner, w.OwnerHex, w.Version)
		if err != nil {
			continue
		}
		out.WrittenObjects = append(out.WrittenObjects, model.Object{
			ID: id, Version: w.Version, Digest: digest, Owner: owner, Contents: contents,
		})
	}
	if len(result.BalanceChanges) > 0 {
		out.BalanceChanges = make(map[simulator.Address]map[model.Coin]int64)
		for _, b := range result.BalanceChanges {
			ownerID, err := model.ObjectIDFromHex(b.Owner)
			if err != nil {
				continue
			}
			addr := simulator.Address(ownerID)
			if out.BalanceChanges[addr] == nil {
				out.BalanceChanges[addr] = make(map[model.Coin]int64)
			}
			out.BalanceChanges[addr][model.Coin(b.Coin)] += b.Amount
		}
	}
	return out, nil
}

func addressHex(a simulator.Address) string {
	return model.ObjectID(a).String()
}

// encodeTxSkeleton produces a deterministic, compact byte encoding of
// tx's shape for transport and for Digest below. It is not the chain's
// real BCS transaction encoding (that lives behind the wire boundary
// spec.md §1 places out of scope); it only needs to be stable and
// unique per distinct Transaction value.
func encodeTxSkeleton(tx simulator.Transaction) []byte {
	var buf []byte
	appendU64 := func(v uint64) {
		var b [8]byte
		binary.BigEndian.PutUint64(b[:], v)
		buf = append(buf, b[:]...)
	}
	buf = append(buf, tx.Sender[:]...)
	appendU64(tx.GasPrice)
	appendU64(tx.GasBudget)
	appendU64(uint64(len(tx.Inputs)))
	for _, in := range tx.Inputs {
		buf = append(buf, in.ID[:]...)
		appendU64(in.Version)
		buf = append(buf, in.Digest[:]...)
	}
	appendU64(uint64(len(tx.GasCoins)))
	for _, g := range tx.GasCoins {
		buf = append(buf, g.ID[:]...)
		appendU64(g.Version)
	}
	appendU64(uint64(len(tx.Commands)))
	for _, cmd := range tx.Commands {
		buf = append(buf, byte(cmd.Kind))
		if cmd.MoveCall != nil {
			buf = append(buf, cmd.MoveCall.Package[:]...)
			buf = append(buf, []byte(cmd.MoveCall.Module)...)
			buf = append(buf, []byte(cmd.MoveCall.Function)...)
			for _, t := range cmd.MoveCall.TypeArguments {
				buf = append(buf, []byte(t)...)
			}
		}
		appendU64(cmd.SplitAmount)
		buf = append(buf, byte(cmd.SplitCoin.Kind))
		appendU64(uint64(cmd.SplitCoin.Index))
		buf = append(buf, cmd.Recipient[:]...)
	}
	return buf
}

// Digest implements pipeline.TxDigester: a stable, collision-resistant
// hash of tx's skeleton, standing in for the chain's own signed-
// transaction digest (spec.md §4.G's digest-ordering invariant only
// needs a deterministic total order over distinct built transactions,
// which sha256 of a canonical encoding gives it).
func (c *Client) Digest(ctx context.Context, tx simulator.Transaction) (model.Digest, error) {
	sum := sha256.Sum256(encodeTxSkeleton(tx))
	return model.Digest(sum), nil
}

// executeParams/Result mirror a sui_executeTransactionBlock-shaped
// submission.
type executeParams struct {
	TxBytes string `json:"txBytesBase64"`
}

type executeResult struct {
	Digest string `json:"digest"`
	Error  string `json:"error,omitempty"`
}

// Execute implements pipeline.Executor: submit tx for on-chain
// execution via the node's own execution RPC.
func (c *Client) Execute(ctx context.Context, tx simulator.Transaction) error {
	var result executeResult
	params := executeParams{TxBytes: base64.StdEncoding.EncodeToString(encodeTxSkeleton(tx))}
	if err := c.rpc.Call(ctx, "sui_executeTransactionBlock", params, &result); err != nil {
		return fmt.Errorf("chainclient: execute: %w", err)
	}
	if result.Error != "" {
		return fmt.Errorf("chainclient: execute: node rejected transaction: %s", result.Error)
	}
	return nil
}

// getCoinsParams/Result mirror a suix_getCoins-shaped query for the
// wallet's current native-coin objects.
type getCoinsParams struct {
	Owner    string `json:"owner"`
	CoinType string `json:"coinType"`
}

type getCoinsResult struct {
	Coins []dryRunObjectRef `json:"coins"`
}

// GasCoins implements pipeline.GasCoinSource: the wallet's current
// native-coin objects, re-read immediately before a dry run so their
// references are fresh even if the RPC's own index lags the wallet's
// true state (spec.md §4.G worker protocol step 2).
func (c *Client) GasCoins(ctx context.Context) ([]model.ObjectRef, error) {
	var result getCoinsResult
	params := getCoinsParams{Owner: addressHex(c.sender), CoinType: string(model.NativeCoin)}
	if err := c.rpc.Call(ctx, "suix_getCoins", params, &result); err != nil {
		return nil, fmt.Errorf("chainclient: gas_coins: %w", err)
	}
	out := make([]model.ObjectRef, 0, len(result.Coins))
	for _, co := range result.Coins {
		id, err := model.ObjectIDFromHex(co.ID)
		if err != nil {
			continue
		}
		digest, err := digestFromHex(co.Digest)
		if err != nil {
			continue
		}
		out = append(out, model.ObjectRef{ID: id, Version: co.Version, Digest: digest})
	}
	return out, nil
}

// epochParams/Result mirror a suix_getLatestSuiSystemState-shaped query
// for the chain's current epoch metadata and reference gas price.
type epochParams struct{}

type epochResult struct {
	EpochID          string `json:"epoch"`
	EpochStartMs     string `json:"epochStartTimestampMs"`
	EpochDurationMs  string `json:"epochDurationMs"`
	ReferenceGasPrice string `json:"referenceGasPrice"`
}

// CurrentEpoch fetches the chain's current epoch metadata and
// reference gas price, the input an EpochTracker (cmd/sui-arb) polls
// to keep every worker's model.SimulateCtx.Epoch fresh (spec.md §3
// "SimulateCtx", invariant that a stale epoch must be refreshed before
// use).
func (c *Client) CurrentEpoch(ctx context.Context) (model.Epoch, error) {
	var result epochResult
	if err := c.rpc.Call(ctx, "suix_getLatestSuiSystemState", epochParams{}, &result); err != nil {
		return model.Epoch{}, fmt.Errorf("chainclient: current_epoch: %w", err)
	}
	epochID, _ := strconv.ParseUint(result.EpochID, 10, 64)
	startMs, _ := strconv.ParseInt(result.EpochStartMs, 10, 64)
	durationMs, _ := strconv.ParseInt(result.EpochDurationMs, 10, 64)
	gasPrice, _ := strconv.ParseUint(result.ReferenceGasPrice, 10, 64)
	return model.Epoch{
		EpochID:    epochID,
		StartMs:    startMs,
		DurationMs: durationMs,
		GasPrice:   gasPrice,
	}, nil
}

// queryEventsParams/Result mirror a suix_queryEvents-shaped page query
// for one protocol's PoolCreated event type.
type queryEventsParams struct {
	EventType string  `json:"eventType"`
	Cursor    *string `json:"cursor,omitempty"`
	Limit     int     `json:"limit"`
}

type queryEventsResult struct {
	Events     []queryEventsItem `json:"data"`
	NextCursor *string           `json:"nextCursor"`
}

type queryEventsItem struct {
	ID    string `json:"id"`
	Type  string `json:"type"`
	Bytes string `json:"bcsBase64"`
}

// PoolCreatedEventType maps a protocol to the Move event type its
// pool-creation factory emits. Populated per supported protocol at
// wiring time (cmd package), since the event type string is
// deployment-specific (package id varies by network) rather than a
// core concern.
type PoolCreatedEventType func(model.Protocol) (eventType string, ok bool)

// EventSource adapts Client to pool.EventSource for a fixed event-type
// lookup.
type EventSource struct {
	client    *Client
	eventType PoolCreatedEventType
}

// NewEventSource wraps client for pool-creation event backfill.
func NewEventSource(client *Client, eventType PoolCreatedEventType) *EventSource {
	return &EventSource{client: client, eventType: eventType}
}

// FetchPoolCreatedEvents implements pool.EventSource.
func (s *EventSource) FetchPoolCreatedEvents(ctx context.Context, protocol model.Protocol, cursor *string, pageSize int) ([]pool.RawPoolEvent, *string, error) {
	eventType, ok := s.eventType(protocol)
	if !ok {
		return nil, nil, pool.ErrUnindexed
	}
	var result queryEventsResult
	params := queryEventsParams{EventType: eventType, Cursor: cursor, Limit: pageSize}
	if err := s.client.rpc.Call(ctx, "suix_queryEvents", params, &result); err != nil {
		return nil, nil, fmt.Errorf("chainclient: fetch_pool_created_events %s: %w", protocol, err)
	}
	out := make([]pool.RawPoolEvent, 0, len(result.Events))
	for _, e := range result.Events {
		bytes, err := base64.StdEncoding.DecodeString(e.Bytes)
		if err != nil {
			continue
		}
		out = append(out, pool.RawPoolEvent{EventID: e.ID, Type: e.Type, Bytes: bytes})
	}
	return out, result.NextCursor, nil
}
