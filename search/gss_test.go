package search

import (
	"context"
	"testing"
)

func TestGoldenSectionSearchLinearFunction(t *testing.T) {
	eval := func(ctx context.Context, in uint32) (uint32, uint32, error) {
		return in * 10, 0, nil
	}
	in, out, _, err := GoldenSectionSearchMaximize[uint32, uint32](context.Background(), 1, 9, eval)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if in != 9 || out != 90 {
		t.Errorf("expected in=9 out=90, got in=%d out=%d", in, out)
	}
}

func TestGoldenSectionSearchTabulatedFunction(t *testing.T) {
	data := map[uint64]uint64{
		1: 4010106282497016966,
		2: 4418264999713779375,
		3: 4569693292768259346,
		4: 4646875114899946209,
		5: 4691575052709720948,
		6: 4717791501795293046,
		7: 4729882751161429615,
		8: 4724631850822306692,
		9: 4674272470382658763,
	}
	eval := func(ctx context.Context, in uint64) (uint64, uint64, error) {
		return data[in], 0, nil
	}
	in, out, _, err := GoldenSectionSearchMaximize[uint64, uint64](context.Background(), 1, 9, eval)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if in != 7 || out != 4729882751161429615 {
		t.Errorf("expected in=7 out=4729882751161429615, got in=%d out=%d", in, out)
	}
}

func TestGoldenSectionSearchRejectsDegenerateRange(t *testing.T) {
	eval := func(ctx context.Context, in uint32) (uint32, uint32, error) { return in, 0, nil }
	if _, _, _, err := GoldenSectionSearchMaximize[uint32, uint32](context.Background(), 5, 5, eval); err == nil {
		t.Errorf("expected error when min == max")
	}
}

func TestGoldenSectionSearchPropagatesEvaluateError(t *testing.T) {
	boom := errTest("boom")
	eval := func(ctx context.Context, in uint32) (uint32, uint32, error) { return 0, 0, boom }
	if _, _, _, err := GoldenSectionSearchMaximize[uint32, uint32](context.Background(), 1, 9, eval); err != boom {
		t.Errorf("expected evaluate error to propagate, got %v", err)
	}
}

type errTest string

func (e errTest) Error() string { return string(e) }
