package dex

import (
	"github.com/luxfi/sui-arb/model"
	"github.com/luxfi/sui-arb/simulator"
)

// TradeCtx accumulates a programmable transaction block as successive
// Dex adapters append their commands and inputs to it. It plays the
// role the original implementation's ProgrammableTransactionBuilder
// plays: every ExtendXxxTx call appends to Commands/Inputs and returns
// an Argument the next call can chain from.
type TradeCtx struct {
	Inputs   []model.ObjectRef
	Commands []simulator.Command
}

// NewTradeCtx returns an empty builder.
func NewTradeCtx() *TradeCtx {
	return &TradeCtx{}
}

// AddInput registers ref as a transaction input and returns the
// Argument referring to it.
func (c *TradeCtx) AddInput(ref model.ObjectRef) simulator.Argument {
	idx := len(c.Inputs)
	c.Inputs = append(c.Inputs, ref)
	return simulator.Argument{Kind: simulator.ArgInput, Index: uint16(idx)}
}

// AddCommand appends cmd and returns the Argument referring to its
// result.
func (c *TradeCtx) AddCommand(cmd simulator.Command) simulator.Argument {
	idx := len(c.Commands)
	c.Commands = append(c.Commands, cmd)
	return simulator.Argument{Kind: simulator.ArgResult, Index: uint16(idx)}
}

// NestedResult returns the Argument referring to the resultIdx'th
// value produced by the command at cmdIdx, for commands (such as
// SplitCoin) that yield more than one output.
func (c *TradeCtx) NestedResult(cmdIdx, resultIdx uint16) simulator.Argument {
	return simulator.Argument{Kind: simulator.ArgNestedResult, Index: cmdIdx<<8 | resultIdx}
}

// Build finalizes the accumulated commands into a Transaction.
func (c *TradeCtx) Build(sender simulator.Address, gasCoins []model.ObjectRef, gasPrice, gasBudget uint64) simulator.Transaction {
	return simulator.Transaction{
		Sender:    sender,
		Inputs:    c.Inputs,
		GasCoins:  gasCoins,
		GasPrice:  gasPrice,
		GasBudget: gasBudget,
		Commands:  c.Commands,
	}
}
