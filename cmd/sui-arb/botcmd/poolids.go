package botcmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/luxfi/sui-arb/internal/config"
	"github.com/luxfi/sui-arb/model"
)

// poolIDsBackfillTimeout bounds how long "pool-ids generate" waits for
// the index to backfill before writing out whatever it has collected
// (spec.md §4.A backfill has no natural end for a live chain; the
// manifest generator only ever needs a representative snapshot).
const poolIDsBackfillTimeout = 2 * time.Minute

// PoolIDsCommand is the "pool-ids" subcommand (spec.md §6): generates
// or tests the pool-related-objects manifest consumed as simulator
// preload (spec.md §6 "A plain-text manifest holds one object id per
// line for simulator preload").
func PoolIDsCommand() *cli.Command {
	return &cli.Command{
		Name:  "pool-ids",
		Usage: "generate or test the simulator preload object-id manifest",
		Subcommands: []*cli.Command{
			poolIDsGenerateCommand(),
			poolIDsTestCommand(),
		},
	}
}

func poolIDsGenerateCommand() *cli.Command {
	return &cli.Command{
		Name:  "generate",
		Usage: "backfill the pool index and write every known object id to --preload-path",
		Flags: config.Flags(),
		Action: func(c *cli.Context) error {
			cfg, err := config.Load(c)
			if err != nil {
				return err
			}
			if cfg.PreloadPath == "" {
				return fmt.Errorf("botcmd: pool-ids generate: --preload-path is required")
			}
			return generateManifest(c.Context, cfg)
		},
	}
}

func poolIDsTestCommand() *cli.Command {
	return &cli.Command{
		Name:  "test",
		Usage: "verify every object id in --preload-path still resolves on chain",
		Flags: config.Flags(),
		Action: func(c *cli.Context) error {
			cfg, err := config.Load(c)
			if err != nil {
				return err
			}
			if cfg.PreloadPath == "" {
				return fmt.Errorf("botcmd: pool-ids test: --preload-path is required")
			}
			return testManifest(c.Context, cfg)
		},
	}
}

func generateManifest(parent context.Context, cfg *config.Config) error {
	ctx, cancel := context.WithTimeout(parent, poolIDsBackfillTimeout)
	defer cancel()

	b, err := newBot(cfg)
	if err != nil {
		return err
	}
	b.runIndexersBestEffort(ctx)

	ids := map[model.ObjectID]struct{}{}
	for _, protocol := range b.allIndexedProtocols() {
		for _, p := range b.index.Cache().GetAllPools(protocol) {
			ids[p.PoolID] = struct{}{}
		}
	}

	f, err := os.Create(cfg.PreloadPath)
	if err != nil {
		return fmt.Errorf("botcmd: pool-ids generate: create %q: %w", cfg.PreloadPath, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	count := 0
	for id := range ids {
		if _, err := fmt.Fprintln(w, id.String()); err != nil {
			return fmt.Errorf("botcmd: pool-ids generate: write %q: %w", cfg.PreloadPath, err)
		}
		count++
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("botcmd: pool-ids generate: flush %q: %w", cfg.PreloadPath, err)
	}
	b.log.Info("pool-ids generate: manifest written", "path", cfg.PreloadPath, "count", count)
	return nil
}

func testManifest(ctx context.Context, cfg *config.Config) error {
	b, err := newBot(cfg)
	if err != nil {
		return err
	}

	ids, err := loadManifest(cfg.PreloadPath)
	if err != nil {
		return fmt.Errorf("botcmd: pool-ids test: %w", err)
	}

	var missing, checked int
	for _, id := range ids {
		checked++
		obj, err := b.client.GetObject(ctx, id)
		if err != nil || obj == nil {
			missing++
			b.log.Warn("pool-ids test: object not resolvable", "id", id, "err", err)
		}
	}
	b.log.Info("pool-ids test: complete", "checked", checked, "missing", missing)
	if missing > 0 {
		return fmt.Errorf("botcmd: pool-ids test: %d/%d manifest entries failed to resolve", missing, checked)
	}
	return nil
}

func loadManifest(path string) ([]model.ObjectID, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %q: %w", path, err)
	}
	defer f.Close()

	var ids []model.ObjectID
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := sc.Text()
		if line == "" {
			continue
		}
		id, err := model.ObjectIDFromHex(line)
		if err != nil {
			return nil, fmt.Errorf("manifest line %q: %w", line, err)
		}
		ids = append(ids, id)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return ids, nil
}
