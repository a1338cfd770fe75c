// Package botcmd implements the sui-arb CLI's three subcommands
// (start-bot, run, pool-ids), grounded on the original implementation's
// bin/arb/src/{start_bot,arb,pool_ids}.rs and the teacher's
// cmd/evm-node/chaincmd package split (one file per subcommand, shared
// wiring helpers in this file).
package botcmd

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/luxfi/sui-arb/arbcache"
	"github.com/luxfi/sui-arb/dex"
	"github.com/luxfi/sui-arb/dex/factory"
	"github.com/luxfi/sui-arb/dex/navi"
	"github.com/luxfi/sui-arb/internal/chainclient"
	"github.com/luxfi/sui-arb/internal/chainlog"
	"github.com/luxfi/sui-arb/internal/config"
	"github.com/luxfi/sui-arb/internal/jsonrpc"
	"github.com/luxfi/sui-arb/internal/telemetry"
	"github.com/luxfi/sui-arb/internal/wallet"
	"github.com/luxfi/sui-arb/model"
	"github.com/luxfi/sui-arb/pipeline"
	"github.com/luxfi/sui-arb/pool"
	"github.com/luxfi/sui-arb/router"
	"github.com/luxfi/sui-arb/simulator"
	"golang.org/x/sync/errgroup"
)

// arbCacheTTL is the opportunity cache entry lifetime (spec.md §4.F
// "TTL = 5s").
const arbCacheTTL = 5 * time.Second

// bot bundles every subsystem start-bot and run share, so either
// subcommand can assemble it from one Config and diverge only in which
// event sources and simulator variant they attach (spec.md §4.H,
// §4.B's local-replica vs. deprecated-remote split).
type bot struct {
	cfg    *config.Config
	log    chainlog.Logger
	wallet *wallet.KeyPair
	client *chainclient.Client

	index     *pool.Index
	decoders  []pool.Decoder
	eventDecs []dex.EventDecoder

	sim      simulator.Simulator
	simPool  *simulator.Pool
	replay   *simulator.Replay
	reloader *chainclient.UpdateReloader

	searcher *router.PoolSearcher
	trader   *dex.Trader
	flash    dex.FlashLoanProvider

	dispatcher *pipeline.Dispatcher
	telegram   *telemetry.TelegramSink
	bidRPC     *jsonrpc.Client
	epoch      *epochTracker
}

// newBot wires every ambient and domain component from cfg, without
// starting any background goroutine yet (callers decide what to Run).
func newBot(cfg *config.Config) (*bot, error) {
	log := chainlog.SetupWithFile(chainlog.LevelInfo, cfg.LogFile, cfg.LogFileMaxMB, cfg.LogFileMaxAge)

	kp, err := wallet.Decode(cfg.PrivateKey)
	if err != nil {
		return nil, fmt.Errorf("botcmd: decode wallet: %w", err)
	}

	client, err := chainclient.New(cfg.RPCURL, kp.Address)
	if err != nil {
		return nil, fmt.Errorf("botcmd: build chain client: %w", err)
	}

	decoders := factory.PoolCreatedDecoders(client)
	eventTypes := factory.PoolCreatedEventTypes()
	eventSource := chainclient.NewEventSource(client, func(p model.Protocol) (string, bool) {
		t, ok := eventTypes[p]
		return t, ok
	})

	cursors := pool.NewCursorStore(cfg.DataDir + "/cursors.json")
	store := pool.NewFileStore(cfg.DataDir)
	cache := pool.NewCache()
	index := pool.NewIndex(cache, cursors, store, eventSource, log)

	b := &bot{
		cfg:       cfg,
		log:       log,
		wallet:    kp,
		client:    client,
		index:     index,
		decoders:  decoders,
		eventDecs: factory.EventDecoders(),
		telegram:  telemetry.NewTelegramSink(cfg.TelegramBotToken, cfg.TelegramChatID, log),
		bidRPC:    jsonrpc.NewClient(cfg.RPCURL),
	}
	b.epoch = newEpochTracker(client, log)
	return b, nil
}

// runIndexers launches one backfill/live-track goroutine per protocol
// (spec.md §4.A "for each protocol in parallel"), returning once ctx is
// cancelled or any protocol's FatalError aborts the group.
func (b *bot) runIndexers(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, d := range b.decoders {
		d := d
		g.Go(func() error { return b.index.Run(gctx, d) })
	}
	return g.Wait()
}

// runIndexersBestEffort runs every protocol's backfill/live-tracking
// loop concurrently and blocks until ctx is cancelled, logging (rather
// than propagating) any individual protocol's failure. Used by the
// pool-ids manifest generator, which wants whatever the index
// collected within its deadline rather than aborting on the first
// protocol-level error the way runIndexers does for the daemon.
func (b *bot) runIndexersBestEffort(ctx context.Context) {
	var wg sync.WaitGroup
	for _, d := range b.decoders {
		d := d
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := b.index.Run(ctx, d); err != nil && ctx.Err() == nil {
				b.log.Warn("botcmd: index backfill failed", "protocol", d.Protocol(), "err", err)
			}
		}()
	}
	wg.Wait()
}

// allIndexedProtocols returns the protocol tag of every wired pool
// decoder, the set pool-ids generate walks when collecting object ids
// out of the cache.
func (b *bot) allIndexedProtocols() []model.Protocol {
	protocols := make([]model.Protocol, len(b.decoders))
	for i, d := range b.decoders {
		protocols[i] = d.Protocol()
	}
	return protocols
}

// setupLocalSimulator wires the local-replica simulator (spec.md §4.B
// variant (a)): a Local backed directly by the chain client as
// BaseStore and RemoteExecutor as its Move-execution collaborator,
// wrapped in Replay for cadence-switching background refresh via an
// UpdateReloader consuming the simulator cache-update socket.
func (b *bot) setupLocalSimulator(ctx context.Context) {
	local := simulator.NewLocal(b.client, chainclient.NewRemoteExecutor(b.client))
	b.reloader = chainclient.NewUpdateReloader(b.client, "unix", b.cfg.SimUpdateSocket)
	b.replay = simulator.NewReplay(ctx, local, b.reloader, b.cfg.RefreshIntervalShort, b.cfg.RefreshIntervalLong, replayShortTicks, b.log)
	b.sim = b.replay
}

// replayShortTicks is the fixed quota of short-interval refresh ticks
// applied after a bid submission (spec.md §9 "Replay simulator cadence
// switching").
const replayShortTicks = 10

// setupRemoteSimulator wires the deprecated remote dry-run variant
// (spec.md §4.B variant (b)), for --use-db-simulator=false.
func (b *bot) setupRemoteSimulator() {
	b.log.Warn("remote simulator selected: deprecated, use only for testing")
	b.sim = simulator.NewRemote(b.client, b.log)
}

// setupTrading builds the simulator pool, searcher and trader once
// b.sim is set.
func (b *bot) setupTrading() {
	sims := make([]simulator.Simulator, b.cfg.SimulatorPoolSize)
	for i := range sims {
		sims[i] = b.sim
	}
	b.simPool = simulator.NewPool(sims)
	b.searcher = router.NewPoolSearcher(b.index.Cache(), b.sim)
	b.flash = navi.New()
	b.trader = dex.NewTrader(b.simPool, b.flash)
}

// buildPipeline assembles the dispatcher and N workers sharing it
// (spec.md §4.G, §5 "N workers competing for one shared channel").
func (b *bot) buildPipeline() *pipeline.Pipeline {
	cache := arbcache.New(arbCacheTTL)
	recent := pipeline.NewRecentArbs(b.cfg.RecentArbsSize)
	b.dispatcher = pipeline.NewDispatcher(cache, recent, b.log)

	workers := make([]*pipeline.Worker, b.cfg.Workers)
	for i := range workers {
		workers[i] = &pipeline.Worker{
			ID:       i,
			Searcher: b.searcher,
			Trader:   b.trader,
			Flash:    b.flash,
			Digester: b.client,
			Replay:   b.replayDryRunner(),
			Executor: b.client,
			BidRPC:   b.bidRPC,
			Telegram: b.telegram,
			Log:      b.log,
			GasPrice: b.epoch.gasPrice,
			GasCoins: b.client,
			UseGSS:   true,
		}
	}
	return pipeline.New(b.dispatcher, workers)
}

// replayDryRunner adapts b.sim to pipeline.DryRunner. NotifyBidSubmitted
// is a no-op unless a Replay is actually in play (the remote-simulator
// variant has no refresh cadence to tighten).
func (b *bot) replayDryRunner() pipeline.DryRunner {
	if b.replay != nil {
		return b.replay
	}
	return noopDryRunner{b.sim}
}

type noopDryRunner struct{ simulator.Simulator }

func (noopDryRunner) NotifyBidSubmitted() {}
