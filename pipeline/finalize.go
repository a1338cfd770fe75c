package pipeline

import (
	"context"
	"fmt"

	"github.com/luxfi/sui-arb/dex"
	"github.com/luxfi/sui-arb/model"
	"github.com/luxfi/sui-arb/simulator"
)

// maxDigestOrderingAttempts bounds the gas-budget bump loop described
// in spec.md §4.G finalization (Open Question: "cap the retry loop,
// e.g. 1000 iterations").
const maxDigestOrderingAttempts = 1000

// shioPackageID is the well-known Shio sealed-auction package exposing
// the submit_bid entry function, following the same well-known-object
// pattern as dex/navi's lending package id.
var shioPackageID = dex.MustObjectID("0x0000000000000000000000000000000000000000000000000000000000003")

// TxDigester computes the digest a built transaction would receive
// once signed and submitted. Core logic never touches BCS encoding or
// a signing key, so this is an explicit external-collaborator seam
// (spec.md §6 "on-chain wire format" is out of scope for this
// package).
type TxDigester interface {
	Digest(ctx context.Context, tx simulator.Transaction) (model.Digest, error)
}

// BuildFinalTxData implements spec.md §4.G finalization: borrow the
// trade size via flash loan, thread it through every leg of path,
// repay the loan, optionally split off and submit a sealed-auction
// bid, and transfer the remainder to sender. For a sealed-auction
// source the transaction's gas budget is bumped and rebuilt until its
// digest sorts after triggerDigest, so the bid transaction is
// guaranteed to execute after the opportunity that created it.
func BuildFinalTxData(ctx context.Context, flash dex.FlashLoanProvider, digester TxDigester, sender simulator.Address, amountIn uint64, path dex.Path, gasCoins []model.ObjectRef, gasPrice uint64, source model.Source, triggerDigest model.Digest) (simulator.Transaction, error) {
	build := func(gasBudget uint64) (simulator.Transaction, error) {
		if path.Empty() {
			return simulator.Transaction{}, fmt.Errorf("pipeline: build_final_tx_data: empty path")
		}
		if flash == nil {
			return simulator.Transaction{}, fmt.Errorf("pipeline: build_final_tx_data: no flashloan provider configured")
		}

		tc := dex.NewTradeCtx()
		fr, err := flash.ExtendFlashloanTx(tc, amountIn)
		if err != nil {
			return simulator.Transaction{}, fmt.Errorf("pipeline: build_final_tx_data: extend flashloan: %w", err)
		}

		cur := fr.CoinOut
		for i, d := range path.Dexes {
			var amt *uint64
			if i == 0 {
				amt = &amountIn
			}
			out, err := d.ExtendTradeTx(tc, sender, cur, amt)
			if err != nil {
				return simulator.Transaction{}, fmt.Errorf("pipeline: build_final_tx_data: leg %d (%s): %w", i, d.Protocol(), err)
			}
			cur = out
		}

		remaining, err := flash.ExtendRepayTx(tc, cur, fr)
		if err != nil {
			return simulator.Transaction{}, fmt.Errorf("pipeline: build_final_tx_data: repay flashloan: %w", err)
		}

		if source.IsSealedAuction() && source.BidAmount > 0 {
			bidCoin := tc.AddCommand(simulator.Command{
				Kind:        simulator.CommandSplitCoin,
				SplitCoin:   remaining,
				SplitAmount: source.BidAmount,
			})
			dex.ExtendMoveCallSwap(tc, shioPackageID, "shio", "submit_bid", nil, []simulator.Argument{bidCoin})
		}

		tc.AddCommand(simulator.Command{
			Kind:      simulator.CommandTransferObjects,
			Recipient: sender,
			Objects:   []simulator.Argument{remaining},
		})

		return tc.Build(sender, gasCoins, gasPrice, gasBudget), nil
	}

	if !source.IsSealedAuction() {
		return build(baseGasBudget)
	}

	gasBudget := uint64(baseGasBudget)
	for attempt := 0; attempt < maxDigestOrderingAttempts; attempt++ {
		tx, err := build(gasBudget)
		if err != nil {
			return simulator.Transaction{}, err
		}
		digest, err := digester.Digest(ctx, tx)
		if err != nil {
			return simulator.Transaction{}, fmt.Errorf("pipeline: build_final_tx_data: digest: %w", err)
		}
		if digest.GreaterThan(triggerDigest) {
			return tx, nil
		}
		gasBudget++
	}
	return simulator.Transaction{}, fmt.Errorf("pipeline: build_final_tx_data: exhausted %d attempts ordering digest after trigger", maxDigestOrderingAttempts)
}

const baseGasBudget = 100_000_000
