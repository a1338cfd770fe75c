package search

import (
	"context"
	"fmt"

	"github.com/luxfi/sui-arb/dex"
	"golang.org/x/sync/errgroup"
)

// gridBase is the smallest probe amount: 10^6 of the native coin's
// smallest unit.
const gridBase = 1_000_000

// GridAmounts returns the ten-point coarse sweep 1e6*10^k for k=1..10,
// used to find the order of magnitude worth refining before the
// golden-section search narrows in (spec.md §4.E "grid search").
func GridAmounts() []uint64 {
	out := make([]uint64, 10)
	amt := uint64(gridBase)
	for i := range out {
		amt *= 10
		out[i] = amt
	}
	return out
}

// Trial evaluates one candidate trade size, returning the resulting
// output amount alongside the full TradeResult so the caller can
// report gas cost and cache misses for the winning size without
// re-simulating it.
type Trial func(ctx context.Context, amountIn uint64) (dex.TradeResult, error)

// score is the golden-section objective: output minus input, saturated
// at zero rather than underflowing when a probe size is unprofitable.
// Profit search maximizes this, not raw amount_out, so overly large
// probe sizes that merely move more volume without more profit are not
// favored.
func score(result dex.TradeResult, amountIn uint64) uint64 {
	if result.AmountOut <= amountIn {
		return 0
	}
	return result.AmountOut - amountIn
}

// gridPoint is one evaluated grid probe.
type gridPoint struct {
	result dex.TradeResult
	err    error
}

// runGrid evaluates every grid point in parallel and returns the index
// of the best one, or -1 if every probe failed (spec.md §4.E "stage 1").
func runGrid(ctx context.Context, trial Trial, amounts []uint64) ([]gridPoint, int, error) {
	points := make([]gridPoint, len(amounts))

	g, gctx := errgroup.WithContext(ctx)
	for i, amt := range amounts {
		i, amt := i, amt
		g.Go(func() error {
			result, trialErr := trial(gctx, amt)
			points[i] = gridPoint{result: result, err: trialErr}
			return nil // a single failing probe must not abort the sweep
		})
	}
	if waitErr := g.Wait(); waitErr != nil {
		return nil, -1, waitErr
	}

	bestIdx := -1
	for i, p := range points {
		if p.err != nil {
			continue
		}
		s := score(p.result, amounts[i])
		if bestIdx == -1 || s > score(points[bestIdx].result, amounts[bestIdx]) {
			bestIdx = i
		}
	}
	return points, bestIdx, nil
}

// GridOnly runs just the stage-1 grid sweep (spec.md §4.G worker
// protocol step 1: "run grid; if negative, fail"), skipping the
// golden-section refinement a caller that passed `use_gss=false` never
// wants to pay for.
func GridOnly(ctx context.Context, trial Trial) (bestIn uint64, bestResult dex.TradeResult, bestScore uint64, err error) {
	amounts := GridAmounts()
	points, bestIdx, gridErr := runGrid(ctx, trial, amounts)
	if gridErr != nil {
		return 0, dex.TradeResult{}, 0, gridErr
	}
	if bestIdx == -1 {
		return 0, dex.TradeResult{}, 0, fmt.Errorf("search: every grid probe failed")
	}
	return amounts[bestIdx], points[bestIdx].result, score(points[bestIdx].result, amounts[bestIdx]), nil
}

// ProfitSearch runs the grid sweep in parallel, brackets the
// golden-section search around the best grid point's neighbors, and
// returns the overall best amount-in, its TradeResult, and its score
// (spec.md §4.E "trial").
func ProfitSearch(ctx context.Context, trial Trial) (bestIn uint64, bestResult dex.TradeResult, bestScore uint64, err error) {
	amounts := GridAmounts()

	points, bestIdx, gridErr := runGrid(ctx, trial, amounts)
	if gridErr != nil {
		return 0, dex.TradeResult{}, 0, gridErr
	}
	if bestIdx == -1 {
		return 0, dex.TradeResult{}, 0, fmt.Errorf("search: every grid probe failed")
	}

	// Bracket at [best/10, best*10] unconditionally (spec.md §4.E,
	// original_source/bin/arb/src/arb.rs:185-186's saturating_div/
	// saturating_mul by 10): deriving lo from the adjacent grid point
	// instead would leave the bracket ten times too wide whenever the
	// grid's best point is the very first probe (bestIdx == 0).
	lo := amounts[bestIdx] / 10
	hi := amounts[bestIdx] * 10
	if lo >= hi {
		// The grid's best point already sits at the search's own edge;
		// golden-section search requires a non-degenerate range, so fall
		// back to the grid result directly.
		return amounts[bestIdx], points[bestIdx].result, score(points[bestIdx].result, amounts[bestIdx]), nil
	}

	bestAmt, _, refinedResult, gssErr := GoldenSectionSearchMaximize[uint64, dex.TradeResult](ctx, lo, hi, func(ctx context.Context, amt uint64) (uint64, dex.TradeResult, error) {
		result, trialErr := trial(ctx, amt)
		if trialErr != nil {
			return 0, dex.TradeResult{}, trialErr
		}
		return score(result, amt), result, nil
	})
	if gssErr != nil {
		// The refinement failed (e.g. every refined probe errored); the
		// coarse grid result is still a valid, if less precise, answer.
		return amounts[bestIdx], points[bestIdx].result, score(points[bestIdx].result, amounts[bestIdx]), nil
	}

	refinedScore := score(refinedResult, bestAmt)
	if refinedScore < score(points[bestIdx].result, amounts[bestIdx]) {
		return amounts[bestIdx], points[bestIdx].result, score(points[bestIdx].result, amounts[bestIdx]), nil
	}
	return bestAmt, refinedResult, refinedScore, nil
}
