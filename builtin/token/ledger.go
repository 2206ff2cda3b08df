// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package token implements the token effects of the state machine:
// transfers between accounts, minting and burning.
package token

import "github.com/fresacoin/fresa/fresa"

// Ledger is the token ledger the builtins move funds through.
type Ledger interface {
	// Transfer moves amount from one account to another.
	// It fails with reverts.ErrInsufficientFunds when from holds less than amount.
	Transfer(from, to fresa.Address, amount uint64) error
	// Mint creates amount new tokens credited to to.
	Mint(to fresa.Address, amount uint64) error
	// Burn destroys amount tokens held by from.
	Burn(from fresa.Address, amount uint64) error

	BalanceOf(addr fresa.Address) (uint64, error)
	TotalSupply() (uint64, error)
}
