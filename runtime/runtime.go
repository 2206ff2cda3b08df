// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package runtime applies ops to state.
package runtime

import (
	"time"

	"github.com/fresacoin/fresa/builtin"
	"github.com/fresacoin/fresa/builtin/token"
	"github.com/fresacoin/fresa/fresa"
	"github.com/fresacoin/fresa/log"
	"github.com/fresacoin/fresa/op"
	"github.com/fresacoin/fresa/reverts"
	"github.com/fresacoin/fresa/state"
)

var logger = log.WithContext("pkg", "runtime")

// Op outcome labels.
const (
	statusSuccess  = "success"
	statusReverted = "reverted"
	statusFailed   = "failed"
)

// Receipt is the outcome of an executed op.
type Receipt struct {
	Type op.Type `yaml:"type"`
	Time int64   `yaml:"time"`
	// Effects are the token ledger calls the op made, in order.
	Effects []token.Effect `yaml:"effects,omitempty"`
	// Output is the op specific result, nil for initializations.
	Output any `yaml:"output,omitempty"`
}

// Executor executes ops against one state.
type Executor struct {
	state *state.State
}

// New create an Executor object.
func New(state *state.State) *Executor {
	return &Executor{state: state}
}

func (e *Executor) State() *state.State { return e.state }

// Execute runs o at the clock's time. A failing op returns exactly one error
// and leaves the state untouched. The error is a reverts.ErrRevert when the
// state machine rejected the op.
func (e *Executor) Execute(clock fresa.Clock, o *op.Op) (*Receipt, error) {
	start := time.Now()
	labels := map[string]string{"type": string(o.Type())}

	receipt, err := e.execute(clock, o)

	status := statusSuccess
	if err != nil {
		status = statusFailed
		if reverts.IsRevertErr(err) {
			status = statusReverted
		}
	}
	metricOpsCounter().AddWithLabel(1, map[string]string{"type": string(o.Type()), "status": status})
	metricOpDurationMs().ObserveWithLabels(time.Since(start).Milliseconds(), labels)
	if err == nil {
		metricLatestOpTime().Set(receipt.Time)
	}
	return receipt, err
}

func (e *Executor) execute(clock fresa.Clock, o *op.Op) (*Receipt, error) {
	rop, err := ResolveOp(o, clock)
	if err != nil {
		return nil, err
	}
	logger.Debug("executing op", "type", rop.Type, "sender", rop.Sender, "now", rop.Now)

	rec := token.NewRecorder(builtin.Token.WithState(e.state))
	contracts := builtin.Bind(e.state, rec)

	var output any
	if err := e.state.Atomic(func() (err error) {
		output, err = dispatch(contracts, rop)
		return
	}); err != nil {
		logger.Debug("op failed", "type", rop.Type, "sender", rop.Sender, "error", err)
		return nil, err
	}

	return &Receipt{
		Type:    rop.Type,
		Time:    rop.Now,
		Effects: rec.Effects(),
		Output:  output,
	}, nil
}

func dispatch(c *builtin.Contracts, rop *ResolvedOp) (any, error) {
	sender, now := rop.Sender, rop.Now

	switch body := rop.op.Body.(type) {
	case *op.InitPool:
		return nil, c.Staker.InitializePool(body.RewardRate, body.LockDuration)
	case *op.InitAccount:
		return nil, c.Staker.InitializeAccount(sender, now)
	case *op.Stake:
		return c.Staker.Stake(sender, body.Amount, body.Referrer, now)
	case *op.Withdraw:
		return c.Staker.Withdraw(sender, body.Amount, now)
	case *op.ForceWithdraw:
		return c.Staker.ForceWithdraw(sender, body.Amount)
	case *op.SubmitProposal:
		id, err := c.Governance.Submit(sender, body.Description, now)
		if err != nil {
			return nil, err
		}
		return c.Governance.Get(id)
	case *op.Vote:
		return c.Governance.Vote(body.Proposal, sender, body.For)
	case *op.CreateLottery:
		id, err := c.Lottery.Create(body.BeaconKey)
		if err != nil {
			return nil, err
		}
		return c.Lottery.Get(id)
	case *op.EnterLottery:
		if err := c.Lottery.Enter(body.Lottery, sender, body.Ticket); err != nil {
			return nil, err
		}
		return c.Lottery.Get(body.Lottery)
	case *op.FundLottery:
		if err := c.Lottery.Fund(body.Lottery, sender, body.Amount); err != nil {
			return nil, err
		}
		return c.Lottery.Get(body.Lottery)
	case *op.DrawLottery:
		return c.Lottery.Draw(body.Lottery, now, body.Proof)
	default:
		return nil, reverts.New("unsupported op " + string(rop.Type))
	}
}
