// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"github.com/pkg/errors"

	"github.com/fresacoin/fresa/fresa"
	"github.com/fresacoin/fresa/lvldb"
	"github.com/fresacoin/fresa/op"
	"github.com/fresacoin/fresa/runtime"
	"github.com/fresacoin/fresa/state"
)

// Builder helper to build genesis state.
type Builder struct {
	timestamp int64

	stateProcs []func(state *state.State) error
	ops        []*op.Op
}

// Timestamp set timestamp.
func (b *Builder) Timestamp(t int64) *Builder {
	b.timestamp = t
	return b
}

// State add a state process
func (b *Builder) State(proc func(state *state.State) error) *Builder {
	b.stateProcs = append(b.stateProcs, proc)
	return b
}

// Op add an op executed at the genesis timestamp.
func (b *Builder) Op(o *op.Op) *Builder {
	b.ops = append(b.ops, o)
	return b
}

// ComputeRoot compute genesis state root.
func (b *Builder) ComputeRoot() (fresa.Bytes32, error) {
	db, err := lvldb.NewMem()
	if err != nil {
		return fresa.Bytes32{}, err
	}
	defer db.Close()

	st := state.New(db)
	if err := b.Build(st); err != nil {
		return fresa.Bytes32{}, err
	}
	return st.Stage().Hash(fresa.Bytes32{}), nil
}

// Build applies the presets to st. Nothing is applied on error.
func (b *Builder) Build(st *state.State) error {
	return st.Atomic(func() error {
		for _, proc := range b.stateProcs {
			if err := proc(st); err != nil {
				return errors.Wrap(err, "state process")
			}
		}

		ex := runtime.New(st)
		clock := fresa.FixedClock(b.timestamp)
		for i, o := range b.ops {
			if _, err := ex.Execute(clock, o); err != nil {
				return errors.Wrapf(err, "op %d (%s)", i, o.Type())
			}
		}
		return nil
	})
}
