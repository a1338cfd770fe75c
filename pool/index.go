package pool

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/luxfi/sui-arb/internal/chainlog"
	"github.com/luxfi/sui-arb/model"
)

// RawPoolEvent is an undecoded PoolCreated event as delivered by the
// chain RPC client (an external collaborator per spec.md §1; only its
// interface is defined here).
type RawPoolEvent struct {
	EventID string // opaque, protocol-specific cursor token
	Type    string
	Bytes   []byte
}

// EventSource fetches pages of PoolCreated events. Implementations wrap
// the chain RPC/WebSocket client.
type EventSource interface {
	FetchPoolCreatedEvents(ctx context.Context, protocol model.Protocol, cursor *string, pageSize int) (events []RawPoolEvent, nextCursor *string, err error)
}

// Decoder turns one raw event into a Pool, fetching coin decimals and
// reading the pool object's on-chain fields for fees/tick-size as
// needed. A protocol whose discovery source does not emit pool ids
// returns ErrUnindexed from New/Decode so the caller can fall back to
// swap-event observation (spec.md §4.A).
type Decoder interface {
	Protocol() model.Protocol
	DecodePoolCreated(ctx context.Context, raw RawPoolEvent) (model.Pool, error)
	// Unindexed reports whether this protocol's discovery source never
	// emits pool ids (DecodePoolCreated is never called in that case).
	Unindexed() bool
}

// ErrUnindexed is returned by Decoder implementations that only ever
// observe pools via swap events.
var ErrUnindexed = errors.New("protocol pools are located by swap-event observation, not creation events")

const (
	backfillPageSize   = 200
	livePollInterval   = 10 * time.Second
	rpcRetryBaseDelay  = 200 * time.Millisecond
	rpcRetryMaxRetries = 5
)

// Index owns the shared Cache plus one backfill/live-tracking loop per
// protocol.
type Index struct {
	cache   *Cache
	cursors *CursorStore
	store   *FileStore
	source  EventSource
	log     chainlog.Logger
}

// NewIndex wires a Cache, cursor persistence, file persistence and an
// event source into an Index.
func NewIndex(cache *Cache, cursors *CursorStore, store *FileStore, source EventSource, log chainlog.Logger) *Index {
	return &Index{cache: cache, cursors: cursors, store: store, source: source, log: log}
}

// Cache exposes the underlying PoolCache for query operations.
func (ix *Index) Cache() *Cache { return ix.cache }

// Run backfills then live-tracks decoder's protocol until ctx is
// cancelled. Intended to be launched once per protocol inside an
// errgroup by the caller (spec.md §4.A: "for each protocol in
// parallel").
func (ix *Index) Run(ctx context.Context, decoder Decoder) error {
	protocol := decoder.Protocol()
	log := ix.log.New("protocol", string(protocol))

	if decoder.Unindexed() {
		log.Info("protocol flagged unindexed; pools located via swap-event observation")
		<-ctx.Done()
		return ctx.Err()
	}

	cursors, err := ix.cursors.Load()
	if err != nil {
		return fatalf("load cursor for %s: %w", protocol, err)
	}
	cursor := cursors[protocol]

	// Load whatever was already persisted from a previous run so
	// restarts resume without reprocessing (spec.md §4.A).
	existing, decodeErrs := ix.store.LoadAll(protocol)
	for _, e := range decodeErrs {
		log.Warn("skipping malformed persisted pool record", "err", e)
	}
	for _, p := range existing {
		if err := ix.cache.Insert(p); err != nil {
			log.Warn("skipping invalid persisted pool", "pool_id", p.PoolID, "err", err)
		}
	}

	for {
		batch, next, err := ix.fetchPageWithRetry(ctx, protocol, cursor)
		if err != nil {
			return err // ctx cancellation or retries exhausted
		}
		if len(batch) == 0 {
			break
		}
		if err := ix.ingestBatch(ctx, decoder, protocol, batch, next, log); err != nil {
			return err
		}
		cursor = next
	}

	log.Info("backfill complete; switching to live poll", "interval", livePollInterval)
	ticker := time.NewTicker(livePollInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			batch, next, err := ix.fetchPageWithRetry(ctx, protocol, cursor)
			if err != nil {
				return err
			}
			if len(batch) == 0 {
				continue
			}
			if err := ix.ingestBatch(ctx, decoder, protocol, batch, next, log); err != nil {
				return err
			}
			cursor = next
		}
	}
}

func (ix *Index) ingestBatch(ctx context.Context, decoder Decoder, protocol model.Protocol, batch []RawPoolEvent, next *string, log chainlog.Logger) error {
	decoded := make([]model.Pool, 0, len(batch))
	for _, raw := range batch {
		p, err := decoder.DecodePoolCreated(ctx, raw)
		if err != nil {
			// Best-effort decoding: a single malformed event is logged
			// and skipped; the cursor still advances (spec.md §4.A).
			log.Debug("skipping malformed PoolCreated event", "event_id", raw.EventID, "err", err)
			continue
		}
		if err := ix.cache.Insert(p); err != nil {
			log.Debug("skipping invalid pool", "event_id", raw.EventID, "err", err)
			continue
		}
		decoded = append(decoded, p)
	}
	if err := ix.store.AppendBatch(protocol, decoded); err != nil {
		return fatalf("persist pool batch for %s: %w", protocol, err)
	}
	if err := ix.cursors.Save(protocol, next); err != nil {
		return fatalf("persist cursor for %s: %w", protocol, err)
	}
	return nil
}

func (ix *Index) fetchPageWithRetry(ctx context.Context, protocol model.Protocol, cursor *string) ([]RawPoolEvent, *string, error) {
	var lastErr error
	delay := rpcRetryBaseDelay
	for attempt := 0; attempt <= rpcRetryMaxRetries; attempt++ {
		events, next, err := ix.source.FetchPoolCreatedEvents(ctx, protocol, cursor, backfillPageSize)
		if err == nil {
			return events, next, nil
		}
		lastErr = err
		ix.log.Debug("transient rpc failure during backfill, retrying", "protocol", string(protocol), "attempt", attempt, "err", err)
		select {
		case <-ctx.Done():
			return nil, nil, ctx.Err()
		case <-time.After(delay):
		}
		delay *= 2
	}
	return nil, nil, fatalf("rpc retries exhausted for %s: %w", protocol, lastErr)
}

// FatalError wraps an error that must abort the owning protocol's
// backfill task (spec.md §7 "Fatal" error kind).
type FatalError struct{ err error }

func (e *FatalError) Error() string { return e.err.Error() }
func (e *FatalError) Unwrap() error { return e.err }

func fatalf(format string, args ...any) error {
	return &FatalError{err: fmt.Errorf(format, args...)}
}
