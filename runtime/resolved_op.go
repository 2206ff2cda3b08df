// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package runtime

import (
	"github.com/pkg/errors"

	"github.com/fresacoin/fresa/fresa"
	"github.com/fresacoin/fresa/op"
)

// ResolvedOp is an op that passed the basic validation.
type ResolvedOp struct {
	op     *op.Op
	Type   op.Type
	Sender fresa.Address
	Now    int64
}

// ResolveOp resolves the op against clock and performs basic validation.
func ResolveOp(o *op.Op, clock fresa.Clock) (*ResolvedOp, error) {
	if o == nil || o.Body == nil {
		return nil, errors.New("op without body")
	}
	if _, ok := op.NewBody(o.Type()); !ok {
		return nil, errors.Errorf("unknown op type %q", o.Type())
	}
	// pool initialization is the only op not acting on behalf of an account
	if o.Type() != op.TypeInitPool && o.Sender.IsZero() {
		return nil, errors.Errorf("%s: sender required", o.Type())
	}
	return &ResolvedOp{
		op:     o,
		Type:   o.Type(),
		Sender: o.Sender,
		Now:    o.Now(clock),
	}, nil
}
