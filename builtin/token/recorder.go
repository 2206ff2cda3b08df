// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package token

import "github.com/fresacoin/fresa/fresa"

type Kind string

const (
	KindTransfer Kind = "transfer"
	KindMint     Kind = "mint"
	KindBurn     Kind = "burn"
)

// Effect is one ledger call made by an operation.
type Effect struct {
	Kind   Kind           `json:"kind" yaml:"kind"`
	From   *fresa.Address `json:"from,omitempty" yaml:"from,omitempty"`
	To     *fresa.Address `json:"to,omitempty" yaml:"to,omitempty"`
	Amount uint64         `json:"amount" yaml:"amount"`
}

var _ Ledger = (*Recorder)(nil)

// Recorder is a Ledger that records every successful non-zero call
// it forwards to the underlying ledger.
type Recorder struct {
	Ledger
	effects []Effect
}

func NewRecorder(ledger Ledger) *Recorder {
	return &Recorder{Ledger: ledger}
}

// Effects returns the recorded effects in call order.
func (r *Recorder) Effects() []Effect {
	return r.effects
}

func (r *Recorder) record(e Effect) {
	if e.Amount > 0 {
		r.effects = append(r.effects, e)
	}
}

func (r *Recorder) Transfer(from, to fresa.Address, amount uint64) error {
	if err := r.Ledger.Transfer(from, to, amount); err != nil {
		return err
	}
	r.record(Effect{Kind: KindTransfer, From: &from, To: &to, Amount: amount})
	return nil
}

func (r *Recorder) Mint(to fresa.Address, amount uint64) error {
	if err := r.Ledger.Mint(to, amount); err != nil {
		return err
	}
	r.record(Effect{Kind: KindMint, To: &to, Amount: amount})
	return nil
}

func (r *Recorder) Burn(from fresa.Address, amount uint64) error {
	if err := r.Ledger.Burn(from, amount); err != nil {
		return err
	}
	r.record(Effect{Kind: KindBurn, From: &from, Amount: amount})
	return nil
}
