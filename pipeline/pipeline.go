package pipeline

import (
	"context"

	"github.com/luxfi/sui-arb/model"
	"github.com/luxfi/sui-arb/simulator"
	"golang.org/x/sync/errgroup"
)

// Pipeline owns the dispatcher and the fixed worker pool draining its
// Items channel (spec.md §4.G, §5 "Scheduling model": N workers
// competing for one shared channel).
type Pipeline struct {
	Dispatcher *Dispatcher
	Workers    []*Worker
}

// New returns a Pipeline of len(workers) Workers, all sharing
// dispatcher's Items channel.
func New(dispatcher *Dispatcher, workers []*Worker) *Pipeline {
	return &Pipeline{Dispatcher: dispatcher, Workers: workers}
}

// Run starts every worker against the shared dispatch channel and
// blocks until ctx is cancelled, at which point every worker exits
// (spec.md §5 "Cancellation and timeouts").
func (p *Pipeline) Run(ctx context.Context, sender simulator.Address, gasCoins []model.ObjectRef) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, w := range p.Workers {
		w := w
		g.Go(func() error {
			w.Run(gctx, p.Dispatcher.Items, sender, gasCoins)
			return nil
		})
	}
	return g.Wait()
}
