package dex

import (
	"context"
	"fmt"

	"github.com/luxfi/sui-arb/model"
	"github.com/luxfi/sui-arb/simulator"
)

// defaultGasBudget is the starting gas budget for a built transaction,
// before the sealed-auction digest-ordering bump described in spec.md
// §4.G invariant 7; the pipeline package owns that bump loop and
// rebuilds the transaction with an increased budget as needed.
const defaultGasBudget = 100_000_000

// Trader builds a programmable transaction for a Path and runs it
// through a leased Simulator, then extracts the amount-out and gas
// cost the router and profit search need (spec.md §4.D "Best-path
// selection", §4.E "trial").
type Trader struct {
	simPool *simulator.Pool
	flash   FlashLoanProvider
}

// NewTrader wraps a simulator pool for trade evaluation. flash may be
// nil if TradeTypeFlashloan is never used (e.g. a testing harness that
// only costs individual legs).
func NewTrader(simPool *simulator.Pool, flash FlashLoanProvider) *Trader {
	return &Trader{simPool: simPool, flash: flash}
}

// Trade builds the transaction for path and amountIn, simulates it,
// and reports the resulting output amount and gas cost. For
// TradeTypeFlashloan, amountIn is borrowed from the configured
// FlashLoanProvider up front and repaid after all path legs run.
func (t *Trader) Trade(ctx context.Context, path Path, sender simulator.Address, amountIn uint64, tradeType TradeType, gasCoins []model.ObjectRef, simCtx model.SimulateCtx) (TradeResult, error) {
	if path.Empty() {
		return TradeResult{}, fmt.Errorf("trade: empty path")
	}

	tc := NewTradeCtx()
	var flash FlashResult
	var coinIn simulator.Argument

	if tradeType == TradeTypeFlashloan {
		if t.flash == nil {
			return TradeResult{}, fmt.Errorf("trade: no flashloan provider configured")
		}
		fr, err := t.flash.ExtendFlashloanTx(tc, amountIn)
		if err != nil {
			return TradeResult{}, fmt.Errorf("trade: extend flashloan: %w", err)
		}
		flash = fr
		coinIn = fr.CoinOut
	} else {
		coinIn = tc.AddCommand(simulator.Command{
			Kind:        simulator.CommandSplitCoin,
			SplitCoin:   simulator.Argument{Kind: simulator.ArgGasCoin},
			SplitAmount: amountIn,
		})
	}

	cur := coinIn
	for i, d := range path.Dexes {
		var amt *uint64
		if i == 0 {
			amt = &amountIn
		}
		out, err := d.ExtendTradeTx(tc, sender, cur, amt)
		if err != nil {
			return TradeResult{}, fmt.Errorf("trade: leg %d (%s): %w", i, d.Protocol(), err)
		}
		cur = out
	}

	if tradeType == TradeTypeFlashloan {
		remaining, err := t.flash.ExtendRepayTx(tc, cur, flash)
		if err != nil {
			return TradeResult{}, fmt.Errorf("trade: repay flashloan: %w", err)
		}
		cur = remaining
	}

	tc.AddCommand(simulator.Command{
		Kind:      simulator.CommandTransferObjects,
		Recipient: sender,
		Objects:   []simulator.Argument{cur},
	})

	tx := tc.Build(sender, gasCoins, simCtx.Epoch.GasPrice, defaultGasBudget)

	leased := t.simPool.Get()
	defer leased.Release()

	result, err := leased.Simulate(ctx, tx, simCtx)
	if err != nil {
		return TradeResult{}, err
	}
	if !result.Effects.Success {
		return TradeResult{}, &simulator.SimulationFailure{Reason: result.Effects.Error}
	}

	return extractTradeResult(result, sender, path.CoinIn(), path.CoinOut(), amountIn), nil
}

// extractTradeResult reads the output amount off the sender's balance
// changes. When the path's in/out coin are the same type (a round trip
// back to the native coin) the split/gas deltas already charged against
// that balance are added back, so amount_out reflects gross proceeds
// rather than a netted delta.
func extractTradeResult(result simulator.SimulateResult, sender simulator.Address, coinIn, coinOut model.Coin, amountIn uint64) TradeResult {
	delta := result.BalanceChanges[sender][coinOut]

	if coinIn == coinOut && coinOut == model.NativeCoin {
		delta += int64(amountIn)
	}

	var amountOut uint64
	if delta > 0 {
		amountOut = uint64(delta)
	}

	return TradeResult{
		AmountOut:   amountOut,
		GasCost:     result.BalanceChanges[sender][model.NativeCoin],
		CacheMisses: result.CacheMisses,
	}
}
