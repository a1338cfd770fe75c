package config

import (
	"flag"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func newTestContext(t *testing.T, args []string) *cli.Context {
	t.Helper()
	app := &cli.App{Flags: Flags()}
	set := flag.NewFlagSet("test", flag.ContinueOnError)
	for _, f := range Flags() {
		require.NoError(t, f.Apply(set))
	}
	require.NoError(t, set.Parse(args))
	return cli.NewContext(app, set, nil)
}

func TestLoadAppliesDefaults(t *testing.T) {
	ctx := newTestContext(t, []string{"--rpc-url", "https://rpc.example"})
	cfg, err := Load(ctx)
	require.NoError(t, err)
	require.Equal(t, 8, cfg.Workers)
	require.Equal(t, 32, cfg.SimulatorPoolSize)
	require.Equal(t, 20, cfg.RecentArbsSize)
	require.True(t, cfg.UseDBSimulator)
}

func TestLoadRequiresRPCURL(t *testing.T) {
	ctx := newTestContext(t, nil)
	_, err := Load(ctx)
	require.Error(t, err)
}

func TestLoadRespectsExplicitFlags(t *testing.T) {
	ctx := newTestContext(t, []string{"--rpc-url", "https://rpc.example", "--workers", "16"})
	cfg, err := Load(ctx)
	require.NoError(t, err)
	require.Equal(t, 16, cfg.Workers)
}
