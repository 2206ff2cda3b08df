// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package token

import (
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/pkg/errors"

	"github.com/fresacoin/fresa/builtin/solidity"
	"github.com/fresacoin/fresa/fresa"
	"github.com/fresacoin/fresa/log"
	"github.com/fresacoin/fresa/reverts"
	"github.com/fresacoin/fresa/state"
)

var (
	logger = log.WithContext("pkg", "token")

	slotBalances = fresa.BytesToBytes32([]byte("balances"))
	slotSupply   = fresa.BytesToBytes32([]byte("supply"))
)

var _ Ledger = (*Token)(nil)

// Token is the reference ledger kept in state.
type Token struct {
	balances *solidity.Mapping[fresa.Address, uint64]
	supply   *solidity.Value[*supply]
}

func New(addr fresa.Address, state *state.State) *Token {
	ctx := solidity.NewContext(addr, state)
	return &Token{
		balances: solidity.NewMapping[fresa.Address, uint64](ctx, slotBalances),
		supply:   solidity.NewValue[*supply](ctx, slotSupply),
	}
}

func (t *Token) BalanceOf(addr fresa.Address) (uint64, error) {
	bal, err := t.balances.Get(addr)
	if err != nil {
		return 0, errors.Wrap(err, "balance")
	}
	return bal, nil
}

func (t *Token) TotalSupply() (uint64, error) {
	s, err := t.supply.Get()
	if err != nil {
		return 0, errors.Wrap(err, "supply")
	}
	return s.Total, nil
}

// Supply returns total supply along with the minted and burned counters.
func (t *Token) Supply() (*Supply, error) {
	s, err := t.supply.Get()
	if err != nil {
		return nil, errors.Wrap(err, "supply")
	}
	return &Supply{Total: s.Total, Minted: s.Minted, Burned: s.Burned}, nil
}

func (t *Token) addBalance(addr fresa.Address, amount uint64) error {
	bal, err := t.BalanceOf(addr)
	if err != nil {
		return err
	}
	sum, overflow := math.SafeAdd(bal, amount)
	if overflow {
		return reverts.ErrArithmeticOverflow
	}
	return t.balances.Set(addr, sum)
}

func (t *Token) subBalance(addr fresa.Address, amount uint64) error {
	bal, err := t.BalanceOf(addr)
	if err != nil {
		return err
	}
	diff, underflow := math.SafeSub(bal, amount)
	if underflow {
		return reverts.ErrInsufficientFunds
	}
	return t.balances.Set(addr, diff)
}

func (t *Token) Transfer(from, to fresa.Address, amount uint64) error {
	if amount == 0 {
		return nil
	}
	if err := t.subBalance(from, amount); err != nil {
		return err
	}
	if err := t.addBalance(to, amount); err != nil {
		return err
	}
	logger.Debug("transfer", "from", from, "to", to, "amount", amount)
	return nil
}

func (t *Token) Mint(to fresa.Address, amount uint64) error {
	if amount == 0 {
		return nil
	}
	s, err := t.supply.Get()
	if err != nil {
		return errors.Wrap(err, "supply")
	}
	total, overflow := math.SafeAdd(s.Total, amount)
	if overflow {
		return reverts.ErrArithmeticOverflow
	}
	minted, overflow := math.SafeAdd(s.Minted, amount)
	if overflow {
		return reverts.ErrArithmeticOverflow
	}
	// the balance cannot overflow once the supply did not
	if err := t.addBalance(to, amount); err != nil {
		return err
	}
	s.Total, s.Minted = total, minted
	if err := t.supply.Set(s); err != nil {
		return err
	}
	logger.Debug("mint", "to", to, "amount", amount)
	return nil
}

func (t *Token) Burn(from fresa.Address, amount uint64) error {
	if amount == 0 {
		return nil
	}
	if err := t.subBalance(from, amount); err != nil {
		return err
	}
	s, err := t.supply.Get()
	if err != nil {
		return errors.Wrap(err, "supply")
	}
	burned, overflow := math.SafeAdd(s.Burned, amount)
	if overflow {
		return reverts.ErrArithmeticOverflow
	}
	// total >= any balance, checked by subBalance above
	s.Total -= amount
	s.Burned = burned
	if err := t.supply.Set(s); err != nil {
		return err
	}
	logger.Debug("burn", "from", from, "amount", amount)
	return nil
}
