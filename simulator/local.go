package simulator

import (
	"context"
	"fmt"

	"github.com/luxfi/sui-arb/model"
)

// ObjectReader is the read path an Executor uses to resolve objects; the
// overlayReader implements it, applying the overlay-then-base lookup
// order of spec.md §4.B.
type ObjectReader interface {
	GetObject(ctx context.Context, id model.ObjectID) (*model.Object, error)
	GetObjectAtVersion(ctx context.Context, id model.ObjectID, version uint64) (*model.Object, error)
}

// ExecutionOutput is what the (external) Move executor reports for one
// transaction, before the simulator applies mocked-gas/borrowed-coin
// reconciliation.
type ExecutionOutput struct {
	Effects        TransactionEffects
	Events         []Event
	WrittenObjects []model.Object
	// BalanceChanges as observed directly from ledger deltas, including
	// whatever transient movement a flash-loan borrow/repay produces.
	BalanceChanges map[Address]map[model.Coin]int64
	GasUsed        uint64
}

// Executor is the Move VM execution engine. It is an external
// collaborator per spec.md §1; only the interface point the simulator
// needs is defined here.
type Executor interface {
	Execute(ctx context.Context, tx Transaction, reader ObjectReader, epoch model.Epoch) (ExecutionOutput, error)
}

// MockGasCoin marks that tx carries no real gas payment; the simulator
// pretends a coin of InitialAmount funds gas and reconciles the balance
// change itself once the executor reports GasUsed (spec.md §4.B "Result
// semantics").
type MockGasCoin struct {
	InitialAmount uint64
}

// Local is the production Simulator variant: a read-only chain-state
// replica plus per-call overlay (spec.md §4.B variant (a)).
type Local struct {
	base     BaseStore
	executor Executor
}

// NewLocal wires a base store and executor into a Local simulator.
func NewLocal(base BaseStore, executor Executor) *Local {
	return &Local{base: base, executor: executor}
}

// Simulate runs tx against base+overlay, recovering from any panic
// inside the executor and reporting it as a SimulationFailure rather
// than crashing the worker (spec.md §4.B "Failure semantics").
func (l *Local) Simulate(ctx context.Context, tx Transaction, simCtx model.SimulateCtx) (result SimulateResult, err error) {
	return l.simulateWithMockGas(ctx, tx, simCtx, nil)
}

// SimulateWithMockGas is like Simulate but models tx as funded by an
// invisible gas coin rather than a real one, per spec.md §4.B.
func (l *Local) SimulateWithMockGas(ctx context.Context, tx Transaction, simCtx model.SimulateCtx, mockGas *MockGasCoin) (SimulateResult, error) {
	return l.simulateWithMockGas(ctx, tx, simCtx, mockGas)
}

func (l *Local) simulateWithMockGas(ctx context.Context, tx Transaction, simCtx model.SimulateCtx, mockGas *MockGasCoin) (result SimulateResult, err error) {
	reader := newOverlayReader(l.base, simCtx)

	output, execErr := l.runExecutorSafely(ctx, tx, reader, simCtx.Epoch)
	if execErr != nil {
		return SimulateResult{CacheMisses: reader.cacheMisses()}, execErr
	}

	balances := reconcileBalanceChanges(output.BalanceChanges, tx.Sender, simCtx.BorrowedCoin, mockGas, output.GasUsed, tx.GasPrice)

	return SimulateResult{
		Effects:        output.Effects,
		Events:         output.Events,
		BalanceChanges: balances,
		WrittenObjects: output.WrittenObjects,
		CacheMisses:    reader.cacheMisses(),
	}, nil
}

func (l *Local) runExecutorSafely(ctx context.Context, tx Transaction, reader ObjectReader, epoch model.Epoch) (out ExecutionOutput, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &SimulationFailure{Reason: fmt.Sprintf("%v", r), Panic: true}
		}
	}()
	out, execErr := l.executor.Execute(ctx, tx, reader, epoch)
	if execErr != nil {
		return ExecutionOutput{}, &SimulationFailure{Reason: execErr.Error()}
	}
	if !out.Effects.Success {
		return ExecutionOutput{}, &SimulationFailure{Reason: out.Effects.Error}
	}
	return out, nil
}

// reconcileBalanceChanges applies the netting rules of spec.md §4.B /
// §8 invariant 8:
//
//	reported = (final_mock_gas - initial_mock_gas) + real_net - borrowed_amount
func reconcileBalanceChanges(raw map[Address]map[model.Coin]int64, sender Address, borrowed *model.BorrowedCoin, mockGas *MockGasCoin, gasUsed, gasPrice uint64) map[Address]map[model.Coin]int64 {
	out := make(map[Address]map[model.Coin]int64, len(raw))
	for addr, coins := range raw {
		out[addr] = make(map[model.Coin]int64, len(coins))
		for coin, delta := range coins {
			out[addr][coin] = delta
		}
	}

	if borrowed != nil {
		if out[sender] == nil {
			out[sender] = make(map[model.Coin]int64)
		}
		out[sender][model.NativeCoin] -= int64(borrowed.Amount)
	}

	if mockGas != nil {
		gasDelta := -int64(gasUsed * gasPrice)
		if out[sender] == nil {
			out[sender] = make(map[model.Coin]int64)
		}
		out[sender][model.NativeCoin] += gasDelta
	}

	return out
}

// GetObject reads the latest version of id directly from the base
// store (no overlay — this is the standalone accessor operation, not
// part of a simulation).
func (l *Local) GetObject(ctx context.Context, id model.ObjectID) (*model.Object, error) {
	return l.base.GetObject(ctx, id)
}

// GetObjectLayout reads id's struct layout from the base store.
func (l *Local) GetObjectLayout(ctx context.Context, id model.ObjectID) (*StructLayout, error) {
	return l.base.GetObjectLayout(ctx, id)
}
