package simulator

import (
	"context"

	"github.com/luxfi/sui-arb/internal/chainlog"
	"github.com/luxfi/sui-arb/model"
)

// RPCClient is the minimal dry-run surface a chain RPC client exposes.
// The concrete client (an external collaborator, spec.md §1) lives
// outside this module; only the interface point is defined here.
type RPCClient interface {
	DryRunTransaction(ctx context.Context, tx Transaction) (ExecutionOutput, error)
	GetObject(ctx context.Context, id model.ObjectID) (*model.Object, error)
	GetObjectLayout(ctx context.Context, id model.ObjectID) (*StructLayout, error)
}

// Remote dry-runs a transaction against a remote node instead of a
// local replica. Kept only for testing per spec.md §4.B variant (b);
// --use-db-simulator=false selects this variant and the CLI warns that
// it is deprecated (spec.md §6).
type Remote struct {
	client RPCClient
	log    chainlog.Logger
}

// NewRemote wraps client in the Simulator interface. Callers should log
// a deprecation warning at startup; NewRemote itself does not, so tests
// can construct it silently.
func NewRemote(client RPCClient, log chainlog.Logger) *Remote {
	return &Remote{client: client, log: log}
}

// Simulate performs a remote dry-run. The overlay and mocked-gas/
// borrowed-coin reconciliation semantics of the local variant do not
// apply here: the remote node has no notion of caller-supplied
// overlays, so simCtx.OverrideObjects and BorrowedCoin are ignored
// beyond being logged once at debug level.
func (r *Remote) Simulate(ctx context.Context, tx Transaction, simCtx model.SimulateCtx) (SimulateResult, error) {
	if len(simCtx.OverrideObjects) > 0 || simCtx.BorrowedCoin != nil {
		r.log.Debug("remote simulator ignores overlay objects and borrowed-coin modeling")
	}
	out, err := r.client.DryRunTransaction(ctx, tx)
	if err != nil {
		return SimulateResult{}, &SimulationFailure{Reason: err.Error()}
	}
	if !out.Effects.Success {
		return SimulateResult{}, &SimulationFailure{Reason: out.Effects.Error}
	}
	return SimulateResult{
		Effects:        out.Effects,
		Events:         out.Events,
		BalanceChanges: out.BalanceChanges,
		WrittenObjects: out.WrittenObjects,
	}, nil
}

func (r *Remote) GetObject(ctx context.Context, id model.ObjectID) (*model.Object, error) {
	return r.client.GetObject(ctx, id)
}

func (r *Remote) GetObjectLayout(ctx context.Context, id model.ObjectID) (*StructLayout, error) {
	return r.client.GetObjectLayout(ctx, id)
}
