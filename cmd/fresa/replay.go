// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"context"
	"io"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/fresacoin/fresa/fresa"
	"github.com/fresacoin/fresa/genesis"
	"github.com/fresacoin/fresa/kv"
	"github.com/fresacoin/fresa/log"
	"github.com/fresacoin/fresa/op"
	"github.com/fresacoin/fresa/reverts"
	"github.com/fresacoin/fresa/runtime"
	"github.com/fresacoin/fresa/state"
)

// entry is the replay output of one op.
type entry struct {
	Index   int              `yaml:"index"`
	Type    op.Type          `yaml:"type"`
	Root    fresa.Bytes32    `yaml:"root"`
	Error   string           `yaml:"error,omitempty"`
	Receipt *runtime.Receipt `yaml:"receipt,omitempty"`
}

// replay applies gene to an empty db, then every op of script, committing
// one stage per op. A reverted op is reported and leaves the root as it was;
// any other failure stops the replay. Ops without a time execute at the
// genesis launch time.
func replay(ctx context.Context, db kv.Store, gene *genesis.Genesis, script *op.Script, w io.Writer) (fresa.Bytes32, error) {
	root, err := state.ReadRoot(db)
	if err != nil {
		return fresa.Bytes32{}, err
	}
	if root.IsZero() {
		st := state.New(db)
		if err := gene.Build(st); err != nil {
			return fresa.Bytes32{}, errors.Wrap(err, "build genesis")
		}
		if root, err = st.Stage().Commit(db, fresa.Bytes32{}); err != nil {
			return fresa.Bytes32{}, err
		}
		log.Info("genesis applied", "root", root)
	} else {
		log.Warn("state exists, applying ops on top", "root", root)
	}

	enc := yaml.NewEncoder(w)
	defer enc.Close()

	clock := fresa.FixedClock(gene.LaunchTime)
	for i, o := range script.Ops {
		if err := ctx.Err(); err != nil {
			return root, err
		}

		// a fresh state per op keeps each stage to the changes of one op
		st := state.New(db)
		e := entry{Index: i, Type: o.Type()}
		receipt, err := runtime.New(st).Execute(clock, o)
		if err != nil {
			if !reverts.IsRevertErr(err) {
				return root, errors.Wrapf(err, "op %d", i)
			}
			e.Error = err.Error()
		} else {
			if root, err = st.Stage().Commit(db, root); err != nil {
				return root, err
			}
			e.Receipt = receipt
		}
		e.Root = root
		if err := enc.Encode(&e); err != nil {
			return root, errors.Wrap(err, "write output")
		}
	}
	return root, nil
}
