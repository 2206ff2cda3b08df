// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staker

import (
	"github.com/pkg/errors"

	"github.com/fresacoin/fresa/builtin/solidity"
	"github.com/fresacoin/fresa/fresa"
	"github.com/fresacoin/fresa/reverts"
	"github.com/fresacoin/fresa/state"
)

var (
	slotPool     = nameToSlot("staking-pool")
	slotAccounts = nameToSlot("stake-accounts")
)

func nameToSlot(name string) fresa.Bytes32 {
	return fresa.BytesToBytes32([]byte(name))
}

// storage represents the root storage for the Staker builtin.
type storage struct {
	pool     *solidity.Value[*pool]
	accounts *solidity.Mapping[fresa.Address, *account]
}

func newStorage(addr fresa.Address, state *state.State) *storage {
	ctx := solidity.NewContext(addr, state)
	return &storage{
		pool:     solidity.NewValue[*pool](ctx, slotPool),
		accounts: solidity.NewMapping[fresa.Address, *account](ctx, slotAccounts),
	}
}

// getPool returns the pool, or ErrPoolNotInitialized.
func (s *storage) getPool() (*pool, error) {
	ok, err := s.pool.Exists()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get pool")
	}
	if !ok {
		return nil, reverts.ErrPoolNotInitialized
	}
	p, err := s.pool.Get()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get pool")
	}
	return p, nil
}

func (s *storage) setPool(p *pool) error {
	if err := s.pool.Set(p); err != nil {
		return errors.Wrap(err, "failed to set pool")
	}
	return nil
}

// getAccount returns the stake account of owner, or ErrAccountNotFound.
func (s *storage) getAccount(owner fresa.Address) (*account, error) {
	ok, err := s.accounts.Exists(owner)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get account %s", owner)
	}
	if !ok {
		return nil, reverts.ErrAccountNotFound
	}
	acc, err := s.accounts.Get(owner)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get account %s", owner)
	}
	return acc, nil
}

func (s *storage) setAccount(owner fresa.Address, acc *account) error {
	if err := s.accounts.Set(owner, acc); err != nil {
		return errors.Wrapf(err, "failed to set account %s", owner)
	}
	return nil
}
