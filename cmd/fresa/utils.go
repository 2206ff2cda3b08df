// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/pkg/errors"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/fresacoin/fresa/genesis"
	"github.com/fresacoin/fresa/kv"
	"github.com/fresacoin/fresa/log"
	"github.com/fresacoin/fresa/lvldb"
)

func initLogger(ctx *cli.Context) {
	log.Init(os.Stderr, ctx.Int(verbosityFlag.Name), ctx.Bool(jsonLogsFlag.Name))
}

func loadGenesis(ctx *cli.Context) (*genesis.Genesis, error) {
	path := ctx.String(genesisFlag.Name)
	if path == "" {
		return genesis.Default(), nil
	}
	return genesis.Load(path)
}

// openStateDB opens the database of the instance built from gene, so that
// different genesis documents never share state.
func openStateDB(ctx *cli.Context, gene *genesis.Genesis) (kv.Store, error) {
	dataDir := ctx.String(dataDirFlag.Name)
	if dataDir == "" {
		log.Info("using in-memory state database")
		return lvldb.NewMem()
	}

	root, err := gene.Builder().ComputeRoot()
	if err != nil {
		return nil, errors.Wrap(err, "compute genesis root")
	}
	instanceDir := filepath.Join(dataDir, fmt.Sprintf("instance-%x", root.Bytes()[24:]))
	if err := os.MkdirAll(instanceDir, 0700); err != nil {
		return nil, errors.Wrapf(err, "create data dir [%v]", instanceDir)
	}

	dir := filepath.Join(instanceDir, "state.db")
	db, err := lvldb.New(dir, lvldb.Options{
		CacheSize:              ctx.Int(cacheFlag.Name),
		OpenFilesCacheCapacity: 64,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "open state database [%v]", dir)
	}
	log.Info("state database opened", "dir", dir)
	return db, nil
}

func handleExitSignal() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		exitSignalCh := make(chan os.Signal, 1)
		signal.Notify(exitSignalCh, os.Interrupt, syscall.SIGTERM)
		defer signal.Stop(exitSignalCh)

		select {
		case sig := <-exitSignalCh:
			log.Info("exit signal received", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
	}()
	return ctx, cancel
}
