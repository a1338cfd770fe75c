package chainclient

import (
	"context"

	"github.com/luxfi/sui-arb/model"
	"github.com/luxfi/sui-arb/simulator"
)

// RemoteExecutor implements simulator.Executor by resolving every
// object a transaction references through the caller's overlay-aware
// ObjectReader and forwarding the result as explicit overrides to a
// remote dry run. simulator.Local's doc comment calls its own Executor
// "an external collaborator" (spec.md §1: the real Move VM lives
// inside the chain node, out of this module's scope); RemoteExecutor is
// the pragmatic stand-in that makes simulator.Local runnable end to end
// against a real node without inventing a local VM.
type RemoteExecutor struct {
	client *Client
}

// NewRemoteExecutor wraps client as a simulator.Executor.
func NewRemoteExecutor(client *Client) *RemoteExecutor {
	return &RemoteExecutor{client: client}
}

// Execute implements simulator.Executor.
func (e *RemoteExecutor) Execute(ctx context.Context, tx simulator.Transaction, reader simulator.ObjectReader, epoch model.Epoch) (simulator.ExecutionOutput, error) {
	overrides := make(map[model.ObjectID]model.ObjectReadResult, len(tx.Inputs)+len(tx.GasCoins))
	resolve := func(id model.ObjectID) {
		if _, done := overrides[id]; done {
			return
		}
		obj, err := reader.GetObject(ctx, id)
		if err != nil || obj == nil {
			overrides[id] = model.ObjectReadResult{Deleted: true}
			return
		}
		overrides[id] = model.ObjectReadResult{Object: obj}
	}
	for _, in := range tx.Inputs {
		resolve(in.ID)
	}
	for _, gc := range tx.GasCoins {
		resolve(gc.ID)
	}
	return e.client.DryRunWithOverlay(ctx, tx, overrides)
}
