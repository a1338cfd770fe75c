// sui-arb is a MEV arbitrage bot for a Move-based L1 with a
// shared-object execution model: it watches pending and recently
// executed transactions, detects short-lived price dislocations
// across DEX liquidity pools, and submits atomic flash-loan arbitrage
// transactions (spec.md §1).
package main

import (
	"fmt"
	"os"

	luxlog "github.com/luxfi/log"
	"github.com/urfave/cli/v2"

	"github.com/luxfi/sui-arb/cmd/sui-arb/botcmd"
)

const clientIdentifier = "sui-arb"

var app = &cli.App{
	Name:    clientIdentifier,
	Usage:   "MEV arbitrage bot across DEX liquidity pools",
	Version: "0.1.0",
}

func init() {
	app.Commands = []*cli.Command{
		botcmd.StartBotCommand(),
		botcmd.RunCommand(),
		botcmd.PoolIDsCommand(),
	}
}

func main() {
	rootLog := luxlog.New()
	var runErr error
	rootLog.RecoverAndExit(func() {
		runErr = app.Run(os.Args)
	}, func() {
		os.Exit(1)
	})
	if runErr != nil {
		fmt.Fprintln(os.Stderr, runErr)
		os.Exit(1)
	}
}
