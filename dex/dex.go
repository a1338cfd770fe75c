// Package dex defines the uniform, per-protocol adapter contract
// (spec.md §4.C) that the router and trader compose polymorphically.
package dex

import (
	"context"

	"github.com/luxfi/sui-arb/model"
	"github.com/luxfi/sui-arb/simulator"
)

// Refresher is implemented by adapters whose quoted Liquidity() needs
// an on-chain re-read before the router trusts it for comparison
// against other pools. Every swap adapter implements it; the
// order-book adapter's Refresh is a no-op, since its depth is not a
// single scalar.
type Refresher interface {
	Refresh(ctx context.Context, sim simulator.Simulator) error
}

// TradeType selects whether Trader builds a bare swap (for costing a
// single leg) or a flash-loan-wrapped trade (for an actual arbitrage
// attempt) — spec.md §4.D "Best-path selection".
type TradeType int

const (
	TradeTypeSwap TradeType = iota
	TradeTypeFlashloan
)

// FlashResult is the opaque handle set produced by
// FlashLoanProvider.ExtendFlashloanTx: the borrowed coin, a receipt
// that must be consumed by ExtendRepayTx, and (for protocols that need
// it) a reference back to the lending pool itself.
type FlashResult struct {
	CoinOut simulator.Argument
	Receipt simulator.Argument
	Pool    *simulator.Argument
}

// TradeResult is the outcome of one simulated trade: output amount,
// gas cost, and the cache-miss count carried through from the
// simulator (spec.md §4.E "trial").
type TradeResult struct {
	AmountOut   uint64
	GasCost     int64
	CacheMisses uint64
}

// Dex is the uniform per-pool-instance contract every protocol adapter
// implements. It only knows how to extend a trade through its own
// pool; flash-loan sourcing is a separate concern (FlashLoanProvider
// below), since on this chain only the lending protocol supplies flash
// loans and no swap pool does (spec.md §4.C).
type Dex interface {
	// ExtendTradeTx appends one swap command. amountIn is nil when the
	// amount is determined by a prior command's output (mid-path legs).
	ExtendTradeTx(ctx *TradeCtx, sender simulator.Address, coinIn simulator.Argument, amountIn *uint64) (simulator.Argument, error)

	CoinInType() model.Coin
	CoinOutType() model.Coin
	Protocol() model.Protocol
	Liquidity() uint64
	PoolObjectID() model.ObjectID
	IsA2B() bool

	// Flip swaps coin in/out in place, used when deriving buy paths
	// from sell paths (spec.md §4.D).
	Flip()

	// SwapTx builds a standalone, single-leg transaction for debugging
	// (spec.md §4.C).
	SwapTx(ctx context.Context, sender, recipient simulator.Address, amountIn uint64) (simulator.Transaction, error)

	// Clone returns an independent copy so Flip on one path's adapter
	// instance never affects another path sharing the same underlying
	// pool.
	Clone() Dex
}

// FlashLoanProvider is a dedicated flash-loan source wired directly
// into Trader rather than into a swap path. On this chain only the
// lending-protocol adapter implements it; every arbitrage trade
// borrows its entry coin from here and repays it after all path legs
// have run (spec.md §1 "flash-loan-funded", §4.C).
type FlashLoanProvider interface {
	CoinType() model.Coin
	ExtendFlashloanTx(ctx *TradeCtx, amount uint64) (FlashResult, error)
	ExtendRepayTx(ctx *TradeCtx, coinIn simulator.Argument, flash FlashResult) (simulator.Argument, error)
}
