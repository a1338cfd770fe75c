// Package botcmd's start-bot subcommand assembles every wired
// subsystem from wiring.go into the daemon loop spec.md §6 describes:
// pool index backfill, the opportunity pipeline's three event feeds,
// and the worker pool, all running until the process receives a
// shutdown signal.
package botcmd

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/luxfi/geth/metrics"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"

	"github.com/luxfi/sui-arb/internal/chainlog"
	"github.com/luxfi/sui-arb/internal/config"
	"github.com/luxfi/sui-arb/internal/metricsexport"
	"github.com/luxfi/sui-arb/internal/publictx"
	"github.com/luxfi/sui-arb/internal/wsfeed"
)

// metricsShutdownTimeout bounds how long the /metrics HTTP server gets
// to drain in-flight scrapes during graceful shutdown.
const metricsShutdownTimeout = 5 * time.Second

// StartBotCommand is the "start-bot" subcommand (spec.md §6): runs the
// full pipeline until killed.
func StartBotCommand() *cli.Command {
	return &cli.Command{
		Name:  "start-bot",
		Usage: "run the arbitrage pipeline continuously",
		Flags: config.Flags(),
		Action: func(c *cli.Context) error {
			cfg, err := config.Load(c)
			if err != nil {
				return err
			}
			return runStartBot(c.Context, cfg)
		},
	}
}

func runStartBot(parent context.Context, cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	b, err := newBot(cfg)
	if err != nil {
		return err
	}

	if cfg.UseDBSimulator {
		b.setupLocalSimulator(ctx)
	} else {
		b.setupRemoteSimulator()
	}
	b.setupTrading()
	pl := b.buildPipeline()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error { return b.runIndexers(gctx) })
	g.Go(func() error { return b.epoch.run(gctx) })
	g.Go(func() error { return serveMetrics(gctx, cfg.MetricsAddr, b.log) })

	if cfg.PublicTxSocket != "" {
		source := publictx.NewSource("unix", cfg.PublicTxSocket, b.log)
		g.Go(func() error {
			b.dispatcher.RunPublicFeed(gctx, source, b.eventDecs, b.epoch.simCtx, b.log)
			return gctx.Err()
		})
	}
	if cfg.RelayURL != "" {
		feed := wsfeed.NewPrivateFeed(cfg.RelayURL, b.log)
		g.Go(func() error {
			b.dispatcher.RunPrivateFeed(gctx, feed, b.sim, b.eventDecs, b.epoch.simCtx, b.log)
			return gctx.Err()
		})
	}
	if cfg.ShioURL != "" {
		feed := wsfeed.NewShioFeed(cfg.ShioURL, b.log)
		g.Go(func() error {
			b.dispatcher.RunShioFeed(gctx, feed, b.eventDecs, b.epoch.simCtx, b.log)
			return gctx.Err()
		})
	}

	g.Go(func() error {
		gasCoins, err := b.client.GasCoins(gctx)
		if err != nil {
			b.log.Warn("botcmd: initial gas coin fetch failed, workers will retry per-trial", "err", err)
		}
		return pl.Run(gctx, b.wallet.Address, gasCoins)
	})

	b.log.Info("start-bot: pipeline running", "workers", cfg.Workers, "simulator_pool_size", cfg.SimulatorPoolSize)
	if err := g.Wait(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("botcmd: start-bot: %w", err)
	}
	b.log.Info("start-bot: shutdown complete")
	return nil
}

// serveMetrics runs the prometheus /metrics HTTP endpoint until ctx is
// cancelled (spec.md §7 "Structured logs ... no interactive UI" — the
// metrics endpoint is the bot's one other observability surface,
// sourced from luxfi/geth's metrics registry via metricsexport).
func serveMetrics(ctx context.Context, addr string, log chainlog.Logger) error {
	if addr == "" {
		<-ctx.Done()
		return nil
	}
	metrics.Enable()
	gatherer := metricsexport.NewGatherer(metrics.DefaultRegistry)

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: addr, Handler: mux}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), metricsShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errc:
		if err != nil && err != http.ErrServerClosed {
			log.Warn("botcmd: metrics server exited", "err", err)
			return err
		}
		return nil
	}
}
