// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"fmt"
	"os"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/vechain/ledger/api"
	"github.com/vechain/ledger/api/admin"
	"github.com/vechain/ledger/api/subscriptions"
	"github.com/vechain/ledger/balances"
	"github.com/vechain/ledger/eventdb"
	"github.com/vechain/ledger/health"
	"github.com/vechain/ledger/log"
	"github.com/vechain/ledger/lvldb"
	"github.com/vechain/ledger/metrics"
	"github.com/vechain/ledger/state"
)

var (
	version   string
	gitCommit string
	gitTag    string
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
		Version:   fullVersion(),
		Name:      "Ledger",
		Usage:     "Account balance ledger",
		Copyright: "2025 VeChain Foundation <https://vechain.org/>",
		Flags: []cli.Flag{
			genesisFlag,
			dataDirFlag,
			persistFlag,
			cacheFlag,
			apiAddrFlag,
			apiCorsFlag,
			apiEventsLimitFlag,
			apiAllowRootFlag,
			enableAPILogsFlag,
			skipEventsFlag,
			pprofFlag,
			verbosityFlag,
			jsonLogsFlag,
			enableMetricsFlag,
			metricsAddrFlag,
			enableAdminFlag,
			adminAddrFlag,
		},
		Action: defaultAction,
		Commands: []cli.Command{
			{
				Name:  "bench",
				Usage: "Replay the operation scenarios against an in-memory ledger",
				Flags: []cli.Flag{
					iterationsFlag,
					scenarioFlag,
					verbosityFlag,
				},
				Action: benchAction,
			},
			{
				Name:  "inspect",
				Usage: "Print accounts of a persisted ledger",
				Flags: []cli.Flag{
					genesisFlag,
					dataDirFlag,
					addressFlag,
					rawFlag,
					verbosityFlag,
				},
				Action: inspectAction,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func defaultAction(ctx *cli.Context) error {
	exitSignal := handleExitSignal()
	defer func() { log.Info("exited") }()

	logLevel := initLogger(ctx)
	if ctx.Bool(enableMetricsFlag.Name) {
		metrics.InitializePrometheusMetrics()
	}
	gene := selectGenesis(ctx)

	var (
		mainDB  *lvldb.LevelDB
		eventDB *eventdb.EventDB
		dataDir = "Memory"
	)
	if ctx.Bool(persistFlag.Name) {
		dataDir = makeInstanceDir(ctx, gene)
		mainDB = openMainDB(ctx, dataDir, false)
	} else {
		mainDB = openMemMainDB()
	}
	defer func() { log.Info("closing main database..."); mainDB.Close() }()

	st := state.New(mainDB)
	if _, err := gene.Build(st); err != nil {
		return err
	}

	var opts []balances.Option
	if !ctx.Bool(skipEventsFlag.Name) {
		if ctx.Bool(persistFlag.Name) {
			eventDB = openEventDB(dataDir)
		} else {
			eventDB = openMemEventDB()
		}
		defer func() { log.Info("closing event database..."); eventDB.Close() }()
		opts = append(opts, balances.WithEventSink(eventDB))
	}
	var hub *subscriptions.Hub
	if eventDB != nil {
		hub = subscriptions.NewHub(eventDB.NextSeq())
	} else {
		hub = subscriptions.NewHub(1)
	}
	ledgerHealth := health.New()
	opts = append(opts, balances.WithEventSink(hub), balances.WithEventSink(ledgerHealth))

	ledger, err := balances.New(st, gene.ExistentialDeposit, opts...)
	if err != nil {
		return err
	}

	apiLogs := &atomic.Bool{}
	apiLogs.Store(ctx.Bool(enableAPILogsFlag.Name))

	handler, closeAPI := api.New(ledger, eventDB, hub, api.Options{
		AllowedOrigins:  ctx.String(apiCorsFlag.Name),
		AllowRoot:       ctx.Bool(apiAllowRootFlag.Name),
		PprofOn:         ctx.Bool(pprofFlag.Name),
		EnableReqLogger: apiLogs,
		EnableMetrics:   ctx.Bool(enableMetricsFlag.Name),
		EventsLimit:     ctx.Uint64(apiEventsLimitFlag.Name),
	})

	group, groupCtx := errgroup.WithContext(exitSignal)

	apiURL := startServer(groupCtx, group, "API", ctx.String(apiAddrFlag.Name), handler)
	group.Go(func() error {
		<-groupCtx.Done()
		// shutdown does not track hijacked websocket conns
		closeAPI()
		return nil
	})

	metricsURL := ""
	if ctx.Bool(enableMetricsFlag.Name) {
		metricsURL = startServer(groupCtx, group, "metrics", ctx.String(metricsAddrFlag.Name), metrics.HTTPHandler())
	}

	adminURL := ""
	if ctx.Bool(enableAdminFlag.Name) {
		adminHandler := admin.New(logLevel, ledgerHealth, ledger, apiLogs)
		adminURL = startServer(groupCtx, group, "admin", ctx.String(adminAddrFlag.Name), adminHandler)
	}

	printStartupMessage(gene, ledger, dataDir, apiURL, metricsURL, adminURL)

	return group.Wait()
}
