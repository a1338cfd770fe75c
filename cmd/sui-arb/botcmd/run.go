package botcmd

import (
	"context"
	"fmt"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/luxfi/sui-arb/dex"
	"github.com/luxfi/sui-arb/internal/config"
	"github.com/luxfi/sui-arb/model"
	"github.com/luxfi/sui-arb/pipeline"
)

// warmupFraction is the share of the overall --timeout spent letting
// the pool index backfill before the diagnostic trial runs (the
// remainder is left for the trial itself and its simulations).
const warmupFraction = 0.5

// RunCommand is the "run" subcommand (spec.md §6): one-shot
// arbitrage of a specified coin, for diagnostics. It wires the same
// subsystems start-bot does, lets the pool index warm up against the
// target coin's candidate pools, then runs a single find_opportunity
// call and prints the result instead of submitting anything.
func RunCommand() *cli.Command {
	return &cli.Command{
		Name:      "run",
		Usage:     "run one-shot arbitrage diagnostics for a single coin",
		ArgsUsage: "<coin-type>",
		Flags: append(config.Flags(),
			&cli.StringFlag{Name: "pool-id", Usage: "optional pool id to anchor the trial to"},
			&cli.DurationFlag{Name: "timeout", Value: 30 * time.Second, Usage: "overall deadline for the diagnostic run"},
		),
		Action: func(c *cli.Context) error {
			coin := model.Coin(c.Args().First())
			if coin == "" {
				return fmt.Errorf("botcmd: run: <coin-type> argument is required")
			}
			cfg, err := config.Load(c)
			if err != nil {
				return err
			}
			var poolID *model.ObjectID
			if s := c.String("pool-id"); s != "" {
				id, err := model.ObjectIDFromHex(s)
				if err != nil {
					return fmt.Errorf("botcmd: run: invalid --pool-id: %w", err)
				}
				poolID = &id
			}

			ctx, cancel := context.WithTimeout(c.Context, c.Duration("timeout"))
			defer cancel()
			return runOneShot(ctx, cfg, coin, poolID, c.Duration("timeout"))
		},
	}
}

func runOneShot(ctx context.Context, cfg *config.Config, coin model.Coin, poolID *model.ObjectID, timeout time.Duration) error {
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

	// The daemon path runs index backfill forever in the background;
	// a one-shot run instead lets it warm up for a bounded slice of
	// the overall deadline before searching regardless of whether
	// every protocol has finished its first pass (spec.md §4.A
	// backfill is unbounded in general, so "run" only ever gets a
	// best-effort warm start).
	warmCtx, warmCancel := context.WithCancel(ctx)
	for _, d := range b.decoders {
		d := d
		go func() {
			if err := b.index.Run(warmCtx, d); err != nil && warmCtx.Err() == nil {
				b.log.Warn("botcmd: run: index backfill failed", "protocol", d.Protocol(), "err", err)
			}
		}()
	}
	select {
	case <-time.After(time.Duration(float64(timeout) * warmupFraction)):
	case <-ctx.Done():
	}
	warmCancel()

	epoch, err := b.client.CurrentEpoch(ctx)
	if err != nil {
		return fmt.Errorf("botcmd: run: fetch current epoch: %w", err)
	}
	gasCoins, err := b.client.GasCoins(ctx)
	if err != nil {
		b.log.Warn("botcmd: run: gas coin fetch failed, trial will use an empty set", "err", err)
	}

	opp, err := pipeline.FindOpportunity(ctx, b.searcher, b.trader, pipeline.OpportunityParams{
		Sender:   b.wallet.Address,
		Coin:     coin,
		PoolID:   poolID,
		GasCoins: gasCoins,
		SimCtx:   model.NewSimulateCtx(epoch),
		UseGSS:   true,
		Source:   model.NewPublicSource(),
	})
	if err != nil {
		fmt.Printf("no opportunity found for %s: %v\n", coin, err)
		return nil
	}

	fmt.Printf("coin=%s amount_in=%d profit=%d cache_misses=%d legs=%s\n",
		coin, opp.AmountIn, opp.Profit, opp.CacheMisses, describePath(opp.Path))
	return nil
}

func describePath(p dex.Path) string {
	d := p.Describe()
	if len(d.Legs) == 0 {
		return "(empty)"
	}
	s := ""
	for i, leg := range d.Legs {
		if i > 0 {
			s += " -> "
		}
		s += fmt.Sprintf("%s[%s/%s]", leg.Protocol, leg.CoinIn, leg.CoinOut)
	}
	return s
}
