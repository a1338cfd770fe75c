// Package search implements the golden-section maximization used to
// find the profit-maximizing trade size for a path, grounded on the
// original implementation's bin/arb/src/common/search.rs.
package search

import (
	"context"
	"fmt"

	"golang.org/x/exp/constraints"
)

// Evaluate scores one candidate input, returning the value to
// maximize (f) and an auxiliary output (out) carried alongside it —
// the trial's full TradeResult, in the profit-search use (spec.md
// §4.E).
type Evaluate[INP constraints.Integer, OUT any] func(ctx context.Context, in INP) (f INP, out OUT, err error)

// phi is approximated as the rational 14566495/9002589 (~1.618033989)
// so the search stays in exact integer arithmetic across every INP
// type this is instantiated with.
const (
	phiNumerator   = 14566495
	phiDenominator = 9002589
)

// GoldenSectionSearchMaximize finds the INP in [min, max] that
// maximizes Evaluate's score, returning the best input, its score, and
// its auxiliary output. It narrows the search interval to a golden-
// ratio split each iteration, bounded at 1000 iterations, then checks
// the two innermost untested points before returning (spec.md §4.E
// "profit_search: golden-section search", invariant scenarios S1/S2).
func GoldenSectionSearchMaximize[INP constraints.Integer, OUT any](ctx context.Context, min, max INP, evaluate Evaluate[INP, OUT]) (bestIn INP, bestF INP, bestOut OUT, err error) {
	var zero OUT
	if min >= max {
		return zero0[INP](), zero0[INP](), zero, fmt.Errorf("search: min must be < max (min=%v max=%v)", min, max)
	}

	one := INP(1)
	three := INP(3)
	u := INP(phiNumerator)
	d := INP(phiDenominator)

	c := func(x INP) INP {
		if x*d < x {
			return x / u * d
		}
		return x * d / u
	}

	left, right := min, max

	fl, outLeft, e := evaluate(ctx, left)
	if e != nil {
		return zero0[INP](), zero0[INP](), zero, e
	}
	fr, outRight, e := evaluate(ctx, right)
	if e != nil {
		return zero0[INP](), zero0[INP](), zero, e
	}

	var maxIn, maxF INP
	var maxOut OUT
	if fl < fr {
		maxIn, maxF, maxOut = right, fr, outRight
	} else {
		maxIn, maxF, maxOut = left, fl, outLeft
	}

	delta := c(right - left)
	midLeft := right - delta
	midRight := left + delta
	if midRight <= midLeft {
		midRight = minINP(midLeft+one, right)
	}

	if fl, outLeft, e = evaluate(ctx, midLeft); e != nil {
		return zero0[INP](), zero0[INP](), zero, e
	}
	if fl > maxF {
		maxF, maxIn, maxOut = fl, midLeft, outLeft
	}
	if fr, outRight, e = evaluate(ctx, midRight); e != nil {
		return zero0[INP](), zero0[INP](), zero, e
	}
	if fr > maxF {
		maxF, maxIn, maxOut = fr, midRight, outRight
	}

	tries := 0
	for right-left > three && tries < 1000 {
		tries++

		if fl < fr {
			left = midLeft
			midLeft = midRight
			midRight = left + c(right-left)
			fl = fr
			if fr, outRight, e = evaluate(ctx, midRight); e != nil {
				return zero0[INP](), zero0[INP](), zero, e
			}
			if fr > maxF {
				maxF, maxIn, maxOut = fr, midRight, outRight
			}
		} else {
			right = midRight
			temp := right - c(right-left)
			switch {
			case temp < midLeft:
				midRight = midLeft
				midLeft = temp
				fr = fl
				if fl, outLeft, e = evaluate(ctx, midLeft); e != nil {
					return zero0[INP](), zero0[INP](), zero, e
				}
				if fl > maxF {
					maxF, maxIn, maxOut = fl, midLeft, outLeft
				}
			case temp == midLeft:
				midRight = minINP(temp+one, right)
				if fr, outRight, e = evaluate(ctx, midRight); e != nil {
					return zero0[INP](), zero0[INP](), zero, e
				}
				if fr > maxF {
					maxF, maxIn, maxOut = fr, midRight, outRight
				}
			default:
				midRight = temp
				if fr, outRight, e = evaluate(ctx, midRight); e != nil {
					return zero0[INP](), zero0[INP](), zero, e
				}
				if fr > maxF {
					maxF, maxIn, maxOut = fr, midRight, outRight
				}
			}
		}
	}

	// The loop only ever evaluates the interval's current endpoints and
	// golden-ratio split points; check the two innermost integers once
	// more so a sharp single-point optimum near `left` is never missed.
	for i := INP(1); i <= 2; i++ {
		candidate := i + left
		if candidate >= right {
			break
		}
		fMid, outMid, e := evaluate(ctx, candidate)
		if e != nil {
			return zero0[INP](), zero0[INP](), zero, e
		}
		if fMid > maxF {
			maxF, maxIn, maxOut = fMid, candidate, outMid
		}
	}

	return maxIn, maxF, maxOut, nil
}

func minINP[INP constraints.Integer](a, b INP) INP {
	if a < b {
		return a
	}
	return b
}

func zero0[INP constraints.Integer]() INP {
	var z INP
	return z
}
