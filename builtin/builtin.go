// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package builtin

import (
	"github.com/fresacoin/fresa/builtin/governance"
	"github.com/fresacoin/fresa/builtin/lottery"
	"github.com/fresacoin/fresa/builtin/staker"
	"github.com/fresacoin/fresa/builtin/token"
	"github.com/fresacoin/fresa/state"
)

// Builtin contracts binding.
var (
	Token      = &tokenContract{newContract("Token")}
	Staker     = &stakerContract{newContract("StakingPool")}
	Governance = &governanceContract{newContract("Governance")}
	Lottery    = &lotteryContract{newContract("Lottery")}
)

type (
	tokenContract      struct{ *contract }
	stakerContract     struct{ *contract }
	governanceContract struct{ *contract }
	lotteryContract    struct{ *contract }
)

func (t *tokenContract) WithState(state *state.State) *token.Token {
	return token.New(t.Address, state)
}

func (s *stakerContract) WithState(state *state.State, ledger token.Ledger) *staker.Staker {
	return staker.New(s.Address, state, ledger)
}

func (g *governanceContract) WithState(state *state.State, power governance.VotingPower) *governance.Governance {
	return governance.New(g.Address, state, power)
}

func (l *lotteryContract) WithState(state *state.State, custody lottery.Custody) *lottery.Lotteries {
	return lottery.New(l.Address, state, custody)
}

// Contracts is the set of bound builtins over one state.
type Contracts struct {
	Token      token.Ledger
	Staker     *staker.Staker
	Governance *governance.Governance
	Lottery    *lottery.Lotteries
}

// Bind wires every builtin over state. ledger replaces the token builtin
// when non-nil, e.g. with a token.Recorder.
func Bind(state *state.State, ledger token.Ledger) *Contracts {
	if ledger == nil {
		ledger = Token.WithState(state)
	}
	stk := Staker.WithState(state, ledger)
	return &Contracts{
		Token:      ledger,
		Staker:     stk,
		Governance: Governance.WithState(state, stk),
		Lottery:    Lottery.WithState(state, stk),
	}
}
