// Package navi adapts the Navi lending protocol's flash-loan entry
// points to dex.FlashLoanProvider, grounded on the original
// implementation's bin/arb/src/defi/navi.rs. Navi never appears as a
// swap leg in a Path — it only ever funds the entry coin of a
// TradeTypeFlashloan trade (spec.md §4.C, §1).
package navi

import (
	"github.com/luxfi/sui-arb/dex"
	"github.com/luxfi/sui-arb/model"
	"github.com/luxfi/sui-arb/simulator"
)

var (
	packageID = dex.MustObjectID("0x834a86970ae93a73faf4fff16ae40bdb72b91c47be585fff19a2af60a19ddca3")
	poolID    = dex.MustObjectID("0x96df0fce3c471489f4debaaa762cf960b3d97820bd1f3f025ff8190730e958c5")
	configID  = dex.MustObjectID("0x3672b2bf471a60c30a03325f104f92fb195c9d337ba58072dce764fe2aa5e2dc")
	storageID = dex.MustObjectID("0xbb4e2f4b6205c2e2a2db47aeb4f830796ec7c005f88537ee775986639bc442fe")
)

// Navi is the sole flash-loan source wired into Trader. It only ever
// lends and repays the native coin.
type Navi struct{}

// New returns the Navi flash-loan provider. It carries no per-instance
// state: every object it references is a fixed, well-known shared
// object (spec.md §4.C).
func New() *Navi {
	return &Navi{}
}

func (n *Navi) CoinType() model.Coin {
	return model.NativeCoin
}

// ExtendFlashloanTx appends a call to lending::flash_loan_with_ctx,
// which returns (Balance<SUI>, FlashLoanReceipt<SUI>) as nested
// results: the borrowed balance is converted to a coin so it composes
// with the rest of the transaction the same way a split-coin output
// does.
func (n *Navi) ExtendFlashloanTx(ctx *dex.TradeCtx, amount uint64) (dex.FlashResult, error) {
	configArg := ctx.AddInput(model.ObjectRef{ID: configID})
	poolArg := ctx.AddInput(model.ObjectRef{ID: poolID})

	result := dex.ExtendMoveCallSwap(ctx, packageID, "lending", "flash_loan_with_ctx",
		[]string{string(model.NativeCoin)},
		[]simulator.Argument{configArg, poolArg})

	balanceOut := simulator.Argument{Kind: simulator.ArgNestedResult, Index: result.Index<<8 | 0}
	receipt := simulator.Argument{Kind: simulator.ArgNestedResult, Index: result.Index<<8 | 1}

	coinOut := ctx.AddCommand(simulator.Command{
		Kind:      simulator.CommandMoveCall,
		MoveCall: &simulator.MoveCall{
			Package:       packageID,
			Module:        "coin_wrapper",
			Function:      "from_balance",
			TypeArguments: []string{string(model.NativeCoin)},
			Arguments:     []simulator.Argument{balanceOut},
		},
	})

	return dex.FlashResult{CoinOut: coinOut, Receipt: receipt}, nil
}

// ExtendRepayTx appends a call to lending::flash_repay_with_ctx,
// converting coinIn to a balance first and the repaid remainder back
// to a coin afterward, mirroring the borrow side.
func (n *Navi) ExtendRepayTx(ctx *dex.TradeCtx, coinIn simulator.Argument, flash dex.FlashResult) (simulator.Argument, error) {
	clockArg := ctx.AddInput(model.ObjectRef{ID: dex.ClockObjectID})
	storageArg := ctx.AddInput(model.ObjectRef{ID: storageID})
	poolArg := ctx.AddInput(model.ObjectRef{ID: poolID})

	repayBalance := ctx.AddCommand(simulator.Command{
		Kind: simulator.CommandMoveCall,
		MoveCall: &simulator.MoveCall{
			Package:       packageID,
			Module:        "coin_wrapper",
			Function:      "into_balance",
			TypeArguments: []string{string(model.NativeCoin)},
			Arguments:     []simulator.Argument{coinIn},
		},
	})

	result := dex.ExtendMoveCallSwap(ctx, packageID, "lending", "flash_repay_with_ctx",
		[]string{string(model.NativeCoin)},
		[]simulator.Argument{clockArg, storageArg, poolArg, flash.Receipt, repayBalance})

	return ctx.AddCommand(simulator.Command{
		Kind: simulator.CommandMoveCall,
		MoveCall: &simulator.MoveCall{
			Package:       packageID,
			Module:        "coin_wrapper",
			Function:      "from_balance",
			TypeArguments: []string{string(model.NativeCoin)},
			Arguments:     []simulator.Argument{result},
		},
	}), nil
}
