package search

import (
	"context"
	"testing"

	"github.com/luxfi/sui-arb/dex"
)

func TestProfitSearchFindsPeakAroundBestGridPoint(t *testing.T) {
	// A synthetic concave profit curve peaking near 5e8: amount_out is
	// roughly linear up to the peak then falls off, so the grid sweep
	// should land near the 10^8/10^9 bracket and the refinement should
	// not do worse than the grid itself.
	peak := uint64(500_000_000)
	trial := func(ctx context.Context, amountIn uint64) (dex.TradeResult, error) {
		var out uint64
		if amountIn <= peak {
			out = amountIn + amountIn/10
		} else {
			spread := amountIn - peak
			bonus := peak / 10
			if spread >= bonus {
				out = amountIn
			} else {
				out = amountIn + bonus - spread
			}
		}
		return dex.TradeResult{AmountOut: out}, nil
	}

	in, result, sc, err := ProfitSearch(context.Background(), trial)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sc == 0 {
		t.Errorf("expected a positive profit score, got 0 (in=%d, out=%d)", in, result.AmountOut)
	}
}

func TestProfitSearchToleratesPartialGridFailures(t *testing.T) {
	trial := func(ctx context.Context, amountIn uint64) (dex.TradeResult, error) {
		if amountIn == GridAmounts()[0] {
			return dex.TradeResult{}, errTest("simulation failure")
		}
		return dex.TradeResult{AmountOut: amountIn + amountIn/20}, nil
	}
	_, _, sc, err := ProfitSearch(context.Background(), trial)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sc == 0 {
		t.Errorf("expected a positive score despite one failing grid probe")
	}
}

// TestProfitSearchBracketsTightlyWhenBestGridPointIsFirst covers the
// bestIdx == 0 case: the refinement bracket must be [amounts[0]/10,
// amounts[0]*10], not [1, amounts[0]*10]. A peak placed right at the
// smallest grid probe (1e7) used to widen the lower bound all the way
// down to 1 instead of 1e6.
func TestProfitSearchBracketsTightlyWhenBestGridPointIsFirst(t *testing.T) {
	peak := GridAmounts()[0]
	lowerBound := peak / 10

	var minProbed uint64 = ^uint64(0)
	isGridAmount := func(amt uint64) bool {
		for _, g := range GridAmounts() {
			if g == amt {
				return true
			}
		}
		return false
	}

	trial := func(ctx context.Context, amountIn uint64) (dex.TradeResult, error) {
		if !isGridAmount(amountIn) && amountIn < minProbed {
			minProbed = amountIn
		}
		var out uint64
		if amountIn <= peak {
			out = amountIn + amountIn/10
		} else {
			spread := amountIn - peak
			bonus := peak / 10
			if spread >= bonus {
				out = amountIn
			} else {
				out = amountIn + bonus - spread
			}
		}
		return dex.TradeResult{AmountOut: out}, nil
	}

	if _, _, sc, err := ProfitSearch(context.Background(), trial); err != nil {
		t.Fatalf("unexpected error: %v", err)
	} else if sc == 0 {
		t.Errorf("expected a positive profit score")
	}

	if minProbed != ^uint64(0) && minProbed < lowerBound {
		t.Errorf("golden-section search probed %d, below the bracket's lower bound %d (want >= peak/10)", minProbed, lowerBound)
	}
}

func TestProfitSearchFailsWhenEveryProbeFails(t *testing.T) {
	trial := func(ctx context.Context, amountIn uint64) (dex.TradeResult, error) {
		return dex.TradeResult{}, errTest("boom")
	}
	if _, _, _, err := ProfitSearch(context.Background(), trial); err == nil {
		t.Errorf("expected an error when every grid probe fails")
	}
}
