// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package op

import (
	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/fresacoin/fresa/fresa"
)

// Type names a state transition.
type Type string

// Op types.
const (
	TypeInitPool       Type = "initPool"
	TypeInitAccount    Type = "initAccount"
	TypeStake          Type = "stake"
	TypeWithdraw       Type = "withdraw"
	TypeForceWithdraw  Type = "forceWithdraw"
	TypeSubmitProposal Type = "submitProposal"
	TypeVote           Type = "vote"
	TypeCreateLottery  Type = "createLottery"
	TypeEnterLottery   Type = "enterLottery"
	TypeFundLottery    Type = "fundLottery"
	TypeDrawLottery    Type = "drawLottery"
)

// Body is the type specific payload of an op.
type Body interface {
	Type() Type
}

var bodyFactories = map[Type]func() Body{
	TypeInitPool:       func() Body { return &InitPool{} },
	TypeInitAccount:    func() Body { return &InitAccount{} },
	TypeStake:          func() Body { return &Stake{} },
	TypeWithdraw:       func() Body { return &Withdraw{} },
	TypeForceWithdraw:  func() Body { return &ForceWithdraw{} },
	TypeSubmitProposal: func() Body { return &SubmitProposal{} },
	TypeVote:           func() Body { return &Vote{} },
	TypeCreateLottery:  func() Body { return &CreateLottery{} },
	TypeEnterLottery:   func() Body { return &EnterLottery{} },
	TypeFundLottery:    func() Body { return &FundLottery{} },
	TypeDrawLottery:    func() Body { return &DrawLottery{} },
}

// NewBody returns an empty body for t.
func NewBody(t Type) (Body, bool) {
	f, ok := bodyFactories[t]
	if !ok {
		return nil, false
	}
	return f(), true
}

// InitPool creates the staking pool. The sender is not consulted.
type InitPool struct {
	RewardRate   uint64 `yaml:"rewardRate"`
	LockDuration int64  `yaml:"lockDuration"`
}

// InitAccount opens a stake account for the sender.
type InitAccount struct{}

type Stake struct {
	Amount   uint64         `yaml:"amount"`
	Referrer *fresa.Address `yaml:"referrer,omitempty"`
}

type Withdraw struct {
	Amount uint64 `yaml:"amount"`
}

type ForceWithdraw struct {
	Amount uint64 `yaml:"amount"`
}

type SubmitProposal struct {
	Description string `yaml:"description"`
}

type Vote struct {
	Proposal uint64 `yaml:"proposal"`
	For      bool   `yaml:"for"`
}

// CreateLottery opens a lottery. An empty beacon key selects clock draws.
type CreateLottery struct {
	BeaconKey hexutil.Bytes `yaml:"beaconKey,omitempty"`
}

type EnterLottery struct {
	Lottery uint64 `yaml:"lottery"`
	Ticket  uint64 `yaml:"ticket"`
}

type FundLottery struct {
	Lottery uint64 `yaml:"lottery"`
	Amount  uint64 `yaml:"amount"`
}

type DrawLottery struct {
	Lottery uint64        `yaml:"lottery"`
	Proof   hexutil.Bytes `yaml:"proof,omitempty"`
}

func (*InitPool) Type() Type       { return TypeInitPool }
func (*InitAccount) Type() Type    { return TypeInitAccount }
func (*Stake) Type() Type          { return TypeStake }
func (*Withdraw) Type() Type       { return TypeWithdraw }
func (*ForceWithdraw) Type() Type  { return TypeForceWithdraw }
func (*SubmitProposal) Type() Type { return TypeSubmitProposal }
func (*Vote) Type() Type           { return TypeVote }
func (*CreateLottery) Type() Type  { return TypeCreateLottery }
func (*EnterLottery) Type() Type   { return TypeEnterLottery }
func (*FundLottery) Type() Type    { return TypeFundLottery }
func (*DrawLottery) Type() Type    { return TypeDrawLottery }
