package model

import "time"

// ArbEntry is the cache's stored entry: {trigger_tx_digest, sim_ctx,
// generation, expires_at, source} (spec.md §3).
type ArbEntry struct {
	TriggerTxDigest Digest
	SimCtx          SimulateCtx
	Generation      uint64
	ExpiresAt       time.Time
	Source          Source
	PoolID          *ObjectID
}

// ArbItem is a popped unit of work: {coin, pool_id?, trigger_tx_digest,
// sim_ctx, source}.
type ArbItem struct {
	Coin            Coin
	PoolID          *ObjectID
	TriggerTxDigest Digest
	SimCtx          SimulateCtx
	Source          Source
}
