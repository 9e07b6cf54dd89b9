// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/bullchain/bullchain/api"
	"github.com/bullchain/bullchain/builtin/bullposting/types"
	"github.com/bullchain/bullchain/chain"
	"github.com/bullchain/bullchain/genesis"
	"github.com/bullchain/bullchain/log"
	"github.com/bullchain/bullchain/metrics"
)

var (
	version   string
	gitCommit string
	gitTag    string

	logger = log.WithContext("pkg", "main")
)

func fullVersion() string {
	versionMeta := "release"
	if gitTag == "" {
		versionMeta = "dev"
	}
	return fmt.Sprintf("%s-%s-%s", version, gitCommit, versionMeta)
}

func main() {
	app := cli.App{
		Version: fullVersion(),
		Name:    "Bullchain",
		Usage:   "Token-staked content voting ledger",
		Flags:   soloFlags(),
		Action:  soloAction,
		Commands: []cli.Command{
			{
				Name:   "solo",
				Usage:  "run a single node ledger sealing a block per call",
				Flags:  soloFlags(),
				Action: soloAction,
			},
			{
				Name:   "genesis",
				Usage:  "print a yaml genesis with default parameters and dev accounts",
				Action: genesisAction,
			},
			{
				Name:      "hash",
				Usage:     "print the post id of the given content",
				ArgsUsage: "<content>",
				Action:    hashAction,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func soloFlags() []cli.Flag {
	return []cli.Flag{
		dataDirFlag,
		persistFlag,
		genesisFlag,
		apiAddrFlag,
		apiCorsFlag,
		apiTimeoutFlag,
		apiLogsLimitFlag,
		apiBacktraceLimitFlag,
		apiRequireSignatureFlag,
		enableAPILogsFlag,
		verbosityFlag,
		jsonLogsFlag,
		pprofFlag,
		enableMetricsFlag,
		metricsAddrFlag,
	}
}

func soloAction(ctx *cli.Context) error {
	lvl, err := readIntFromUInt64Flag(ctx.Uint64(verbosityFlag.Name))
	if err != nil {
		return errors.Wrap(err, "parse verbosity flag")
	}
	initLogger(lvl, ctx.Bool(jsonLogsFlag.Name))
	defer func() { logger.Info("exited") }()

	if ctx.Bool(enableMetricsFlag.Name) {
		metrics.InitializePrometheusMetrics()
	}

	gene, err := selectGenesis(ctx)
	if err != nil {
		return err
	}

	mainDB, logDB, instanceDir, err := openDatabases(ctx, gene)
	if err != nil {
		return err
	}
	defer func() { logger.Info("closing log database..."); logDB.Close() }()
	defer func() { logger.Info("closing main database..."); mainDB.Close() }()

	bc, err := chain.New(mainDB, logDB, gene)
	if err != nil {
		return errors.Wrap(err, "initialize chain")
	}

	handler, closeAPI := api.New(bc, logDB, api.Options{
		AllowedOrigins:  ctx.String(apiCorsFlag.Name),
		PprofOn:         ctx.Bool(pprofFlag.Name),
		EnableReqLogger: ctx.Bool(enableAPILogsFlag.Name),
		EnableMetrics:   ctx.Bool(enableMetricsFlag.Name),
		LogsLimit:       ctx.Uint64(apiLogsLimitFlag.Name),
		BacktraceLimit:  uint32(ctx.Uint64(apiBacktraceLimitFlag.Name)),
		AllowUnsigned:   !ctx.Bool(apiRequireSignatureFlag.Name),
	})
	defer func() { logger.Info("closing API subscriptions..."); closeAPI() }()

	exitCtx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	group, groupCtx := errgroup.WithContext(exitCtx)

	apiURL, err := serve(groupCtx, group, ctx.String(apiAddrFlag.Name), withTimeout(handler, ctx.Uint64(apiTimeoutFlag.Name)))
	if err != nil {
		return errors.Wrap(err, "start API server")
	}
	metricsURL := ""
	if ctx.Bool(enableMetricsFlag.Name) {
		if metricsURL, err = serve(groupCtx, group, ctx.String(metricsAddrFlag.Name), metricsHandler()); err != nil {
			return errors.Wrap(err, "start metrics server")
		}
	}

	printStartupMessage(gene, bc, instanceDir, apiURL, metricsURL)

	if err := group.Wait(); err != nil {
		return err
	}
	logger.Info("stopped servers")
	return nil
}

func genesisAction(*cli.Context) error {
	custom := genesis.DefaultCustomGenesis()
	for _, acc := range genesis.DevAccounts() {
		custom.Accounts = append(custom.Accounts, genesis.Account{Address: acc.Address, Balance: genesis.DevAccountBalance})
	}
	data, err := custom.Marshal()
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(data)
	return err
}

func hashAction(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return errors.New("expected exactly one content argument")
	}
	fmt.Println(types.PostIDOf([]byte(ctx.Args().First())))
	return nil
}
