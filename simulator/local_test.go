package simulator

import (
	"context"
	"testing"

	"github.com/luxfi/sui-arb/model"
)

type fakeBase struct {
	objects map[model.ObjectID]*model.Object
}

func (f *fakeBase) GetObject(ctx context.Context, id model.ObjectID) (*model.Object, error) {
	return f.objects[id], nil
}

func (f *fakeBase) GetObjectAtVersion(ctx context.Context, id model.ObjectID, version uint64) (*model.Object, error) {
	if o := f.objects[id]; o != nil && o.Version == version {
		return o, nil
	}
	return nil, nil
}

func (f *fakeBase) GetObjectLayout(ctx context.Context, id model.ObjectID) (*StructLayout, error) {
	return nil, nil
}

type fakeExecutor struct {
	out ExecutionOutput
	err error
	panicMsg string
}

func (f *fakeExecutor) Execute(ctx context.Context, tx Transaction, reader ObjectReader, epoch model.Epoch) (ExecutionOutput, error) {
	if f.panicMsg != "" {
		panic(f.panicMsg)
	}
	return f.out, f.err
}

func TestReconcileBalanceChangesInvariant8(t *testing.T) {
	sender := Address{1}
	raw := map[Address]map[model.Coin]int64{
		sender: {model.NativeCoin: 500},
	}
	borrowed := &model.BorrowedCoin{Amount: 1_000_000}
	mockGas := &MockGasCoin{InitialAmount: 10_000}
	gasUsed := uint64(100)
	gasPrice := uint64(1000)

	out := reconcileBalanceChanges(raw, sender, borrowed, mockGas, gasUsed, gasPrice)

	want := int64(-gasUsed*gasPrice) + 500 - int64(borrowed.Amount)
	if got := out[sender][model.NativeCoin]; got != want {
		t.Errorf("native balance change = %d, want %d", got, want)
	}
}

func TestReconcileBalanceChangesSynthesizesEntryWhenMissing(t *testing.T) {
	sender := Address{1}
	raw := map[Address]map[model.Coin]int64{}
	mockGas := &MockGasCoin{InitialAmount: 10_000}

	out := reconcileBalanceChanges(raw, sender, nil, mockGas, 50, 1000)
	if got, want := out[sender][model.NativeCoin], int64(-50*1000); got != want {
		t.Errorf("synthesized native delta = %d, want %d", got, want)
	}
}

func TestLocalSimulatePropagatesPanicAsSimulationFailure(t *testing.T) {
	base := &fakeBase{objects: map[model.ObjectID]*model.Object{}}
	exec := &fakeExecutor{panicMsg: "boom"}
	l := NewLocal(base, exec)

	_, err := l.Simulate(context.Background(), Transaction{}, model.NewSimulateCtx(model.Epoch{}))
	if err == nil {
		t.Fatal("expected error")
	}
	var failure *SimulationFailure
	if !asSimulationFailure(err, &failure) {
		t.Fatalf("expected *SimulationFailure, got %T: %v", err, err)
	}
	if !failure.Panic {
		t.Error("expected Panic flag set")
	}
}

func asSimulationFailure(err error, target **SimulationFailure) bool {
	f, ok := err.(*SimulationFailure)
	if ok {
		*target = f
	}
	return ok
}

func TestLocalSimulateSuccessReconciliation(t *testing.T) {
	base := &fakeBase{objects: map[model.ObjectID]*model.Object{}}
	sender := Address{7}
	exec := &fakeExecutor{out: ExecutionOutput{
		Effects:        TransactionEffects{Success: true},
		BalanceChanges: map[Address]map[model.Coin]int64{sender: {model.NativeCoin: 42}},
		GasUsed:        10,
	}}
	l := NewLocal(base, exec)
	simCtx := model.NewSimulateCtx(model.Epoch{})
	simCtx.BorrowedCoin = &model.BorrowedCoin{Amount: 100}

	res, err := l.SimulateWithMockGas(context.Background(), Transaction{Sender: sender, GasPrice: 5}, simCtx, &MockGasCoin{InitialAmount: 1000})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := int64(42) - int64(100) - int64(10*5)
	if got := res.NativeBalanceChange(sender); got != want {
		t.Errorf("native balance change = %d, want %d", got, want)
	}
}
