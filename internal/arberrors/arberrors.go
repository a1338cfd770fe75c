// Package arberrors collects the named error kinds spec.md §7 requires
// the core to distinguish, as plain wrapped error values rather than a
// custom error-code enum — the teacher's own style throughout
// core/txpool favors errors.New/fmt.Errorf("%w: ...") over a closed
// error-code type.
package arberrors

import "errors"

// Sentinel errors matched with errors.Is at call sites that need to
// distinguish "skip this trial" from "abort the subsystem" (spec.md §7
// "Propagation policy").
var (
	// ErrNoPath is returned when the router finds no candidate path at
	// all for a coin.
	ErrNoPath = errors.New("arb: no candidate path")

	// ErrNoLiquidPath is returned when every candidate path failed or
	// simulated to zero output.
	ErrNoLiquidPath = errors.New("arb: no liquid path")

	// ErrNoProfitableGrid is returned when stage-1 grid search found no
	// positive profit at any probed amount.
	ErrNoProfitableGrid = errors.New("arb: grid search found no profitable amount")

	// ErrDryRunNotProfitable is returned when the final dry-run shows a
	// non-positive sender balance delta; the submission must be
	// cancelled.
	ErrDryRunNotProfitable = errors.New("arb: final dry-run is not profitable")

	// ErrDeadlineMissed marks a sealed-auction item whose arb was found
	// after the auction deadline; the source is demoted to
	// ShioDeadlineMissed rather than this error propagating, but a
	// caller that needs to log the transition can compare against it.
	ErrDeadlineMissed = errors.New("arb: sealed-auction deadline missed")
)

// StalePoolError reports that a pool object could not be read or is
// paused; the trial excludes this pool and continues rather than
// failing outright (spec.md §7 "StalePool").
type StalePoolError struct {
	PoolID string
	Reason string
}

func (e *StalePoolError) Error() string {
	return "arb: stale pool " + e.PoolID + ": " + e.Reason
}

// FatalError wraps an error that must abort the owning subsystem:
// persistence I/O failures during backfill, cache-update socket
// disconnection, or panic during executor setup (spec.md §7 "Fatal").
type FatalError struct {
	Subsystem string
	Err       error
}

func (e *FatalError) Error() string {
	return "arb: fatal in " + e.Subsystem + ": " + e.Err.Error()
}

func (e *FatalError) Unwrap() error { return e.Err }

// Fatal wraps err as a FatalError for the named subsystem.
func Fatal(subsystem string, err error) error {
	if err == nil {
		return nil
	}
	return &FatalError{Subsystem: subsystem, Err: err}
}
