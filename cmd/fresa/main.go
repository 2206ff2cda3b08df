// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
	cli "gopkg.in/urfave/cli.v1"
	"gopkg.in/yaml.v3"

	"github.com/fresacoin/fresa/cmd/fresa/httpserver"
	"github.com/fresacoin/fresa/log"
	"github.com/fresacoin/fresa/metrics"
	"github.com/fresacoin/fresa/op"
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
		Name:      "Fresa",
		Usage:     "Development driver of the Fresa staking state machine",
		Copyright: "2025 The VeChainThor developers",
		Commands: []cli.Command{
			{
				Name:      "replay",
				Usage:     "apply an op script on top of a genesis and print every state root",
				ArgsUsage: "<script.yaml>",
				Flags: []cli.Flag{
					genesisFlag,
					dataDirFlag,
					cacheFlag,
					verbosityFlag,
					jsonLogsFlag,
					enableMetricsFlag,
					metricsAddrFlag,
				},
				Action: replayAction,
			},
			{
				Name:  "genesis",
				Usage: "print the genesis document and its state root",
				Flags: []cli.Flag{
					genesisFlag,
				},
				Action: genesisAction,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "Fatal:", err)
		os.Exit(1)
	}
}

func replayAction(ctx *cli.Context) error {
	initLogger(ctx)
	defer func() { log.Info("exited") }()

	if ctx.NArg() != 1 {
		return errors.New("expected one script path")
	}
	gene, err := loadGenesis(ctx)
	if err != nil {
		return err
	}
	script, err := op.LoadScript(ctx.Args().First())
	if err != nil {
		return err
	}

	db, err := openStateDB(ctx, gene)
	if err != nil {
		return err
	}
	defer func() { log.Info("closing state database..."); db.Close() }()

	exitCtx, cancel := handleExitSignal()
	defer cancel()

	group, groupCtx := errgroup.WithContext(exitCtx)
	if ctx.Bool(enableMetricsFlag.Name) {
		metrics.InitializePrometheusMetrics()
		srv, err := httpserver.StartMetricsServer(ctx.String(metricsAddrFlag.Name))
		if err != nil {
			return err
		}
		log.Info("metrics server started", "url", srv.URL())
		group.Go(func() error { return srv.Serve(groupCtx) })
	}
	group.Go(func() error {
		// ends the metrics server with the replay
		defer cancel()
		root, err := replay(groupCtx, db, gene, script, os.Stdout)
		if err != nil {
			return err
		}
		log.Info("replay completed", "ops", len(script.Ops), "root", root)
		return nil
	})
	if err := group.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func genesisAction(ctx *cli.Context) error {
	gene, err := loadGenesis(ctx)
	if err != nil {
		return err
	}
	root, err := gene.Builder().ComputeRoot()
	if err != nil {
		return err
	}
	data, err := yaml.Marshal(gene)
	if err != nil {
		return err
	}
	fmt.Printf("# state root %v\n%s", root, data)
	return nil
}
