// Package simulator executes transactions against a materialized view
// of chain state plus a caller-supplied overlay, per spec.md §4.B. It
// provides three variants: a local replica (production), a remote RPC
// dry-run (deprecated, test-only), and a replay wrapper that adds
// cadence-switching cache refresh around the local replica.
package simulator

import (
	"context"

	"github.com/luxfi/sui-arb/model"
)

// SimulateResult is what a dry-run reports back: effects, events,
// per-owner/per-coin balance deltas, the subset of written objects the
// caller might reuse as overlay, and a cache-miss counter (spec.md
// §4.B).
type SimulateResult struct {
	Effects        TransactionEffects
	Events         []Event
	BalanceChanges map[Address]map[model.Coin]int64
	WrittenObjects []model.Object
	CacheMisses    uint64
}

// NativeBalanceChange returns the signed native-coin delta for addr, or
// 0 if none was reported.
func (r SimulateResult) NativeBalanceChange(addr Address) int64 {
	if r.BalanceChanges == nil {
		return 0
	}
	return r.BalanceChanges[addr][model.NativeCoin]
}

// Simulator is the uniform dry-run contract every variant implements.
type Simulator interface {
	Simulate(ctx context.Context, tx Transaction, simCtx model.SimulateCtx) (SimulateResult, error)
	GetObject(ctx context.Context, id model.ObjectID) (*model.Object, error)
	GetObjectLayout(ctx context.Context, id model.ObjectID) (*StructLayout, error)
}

// SimulationFailure wraps a rejected execution (MoveAbort,
// InsufficientCoinBalance, or a panic recovered inside the executor).
// It is never a process abort: the caller decides retry policy
// (spec.md §4.B, §7).
type SimulationFailure struct {
	Reason string
	Panic  bool
}

func (e *SimulationFailure) Error() string {
	if e.Panic {
		return "simulation failure (recovered panic): " + e.Reason
	}
	return "simulation failure: " + e.Reason
}

// knownBenignAborts are Move abort codes logged at debug rather than
// error, so operators see only anomalies (spec.md §7).
var knownBenignAborts = map[string]bool{
	"EInsufficientLiquidity": true,
	"ESlippageExceeded":      true,
	"EPoolPaused":            true,
	"EZeroAmount":            true,
}

// IsBenignAbort reports whether reason names a known, expected Move
// abort that should not be logged as an anomaly.
func IsBenignAbort(reason string) bool {
	return knownBenignAborts[reason]
}
