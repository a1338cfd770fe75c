package simulator

import (
	"context"
	"sync"
	"time"

	"github.com/luxfi/sui-arb/internal/chainlog"
	"github.com/luxfi/sui-arb/model"
)

// Reloader refreshes the overlay/base cache out of band. The local
// replica's update channel (spec.md §6 "update socket") is consumed by
// an implementation of this interface.
type Reloader interface {
	Reload(ctx context.Context) error
}

// Replay wraps a Local simulator and adds a background goroutine that
// refreshes the underlying cache at one of two cadences: "long" by
// default, switching to "short" for a fixed number of ticks whenever a
// bid is submitted by this process, so just-submitted effects become
// visible promptly (spec.md §4.B variant (c), §9 "Replay simulator
// cadence switching").
type Replay struct {
	*Local
	reloader Reloader
	log      chainlog.Logger

	shortInterval time.Duration
	longInterval  time.Duration
	shortTicks    int

	notify chan struct{}
	done   chan struct{}
	once   sync.Once
}

// NewReplay starts the background refresh goroutine immediately. Cancel
// ctx (or call Stop) to end it. shortTicks is the fixed quota of
// short-interval ticks applied after each bid-submitted notification.
func NewReplay(ctx context.Context, local *Local, reloader Reloader, shortInterval, longInterval time.Duration, shortTicks int, log chainlog.Logger) *Replay {
	r := &Replay{
		Local:         local,
		reloader:      reloader,
		log:           log,
		shortInterval: shortInterval,
		longInterval:  longInterval,
		shortTicks:    shortTicks,
		notify:        make(chan struct{}, 64),
		done:          make(chan struct{}),
	}
	go r.run(ctx)
	return r
}

// NotifyBidSubmitted signals that this process just submitted a bid, so
// the refresh cadence should tighten. Never blocks: a full notification
// buffer merely means the cadence will tighten once the background
// goroutine drains it (spec.md §5 "Backpressure").
func (r *Replay) NotifyBidSubmitted() {
	select {
	case r.notify <- struct{}{}:
	default:
	}
}

// Stop ends the background refresh goroutine.
func (r *Replay) Stop() {
	r.once.Do(func() { close(r.done) })
}

func (r *Replay) run(ctx context.Context) {
	interval := r.longInterval
	remainingShortTicks := 0
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	setInterval := func(d time.Duration) {
		if interval == d {
			return
		}
		interval = d
		ticker.Reset(d)
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-r.done:
			return
		case <-r.notify:
			// Drain all pending notifications on each signal so a burst
			// of bids merely tightens the cadence rather than queuing
			// redundant work (spec.md §5, §9).
		drain:
			for {
				select {
				case <-r.notify:
				default:
					break drain
				}
			}
			remainingShortTicks = r.shortTicks
			setInterval(r.shortInterval)
		case <-ticker.C:
			if err := r.reloader.Reload(ctx); err != nil {
				r.log.Warn("replay simulator cache refresh failed", "err", err)
			}
			if remainingShortTicks > 0 {
				remainingShortTicks--
				if remainingShortTicks == 0 {
					setInterval(r.longInterval)
				}
			}
		}
	}
}
