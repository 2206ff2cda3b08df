// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package governance keeps proposals and tallies stake weighted votes.
package governance

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
	logger = log.WithContext("pkg", "governance")

	slotProposalCounter = fresa.BytesToBytes32([]byte("proposals-counter"))
	slotProposals       = fresa.BytesToBytes32([]byte("proposals"))
	slotVotes           = fresa.BytesToBytes32([]byte("votes"))
)

// VotingPower resolves the vote weight of an account.
type VotingPower interface {
	VotingPower(addr fresa.Address) (uint64, error)
}

// Governance implements the governance builtin.
type Governance struct {
	state     *state.State
	power     VotingPower
	counter   *solidity.Value[uint64]
	proposals *solidity.Mapping[idKey, *proposal]
	votes     *solidity.Mapping[fresa.Bytes32, *vote]
}

func New(addr fresa.Address, state *state.State, power VotingPower) *Governance {
	ctx := solidity.NewContext(addr, state)
	return &Governance{
		state:     state,
		power:     power,
		counter:   solidity.NewValue[uint64](ctx, slotProposalCounter),
		proposals: solidity.NewMapping[idKey, *proposal](ctx, slotProposals),
		votes:     solidity.NewMapping[fresa.Bytes32, *vote](ctx, slotVotes),
	}
}

func (g *Governance) getProposal(id uint64) (*proposal, error) {
	ok, err := g.proposals.Exists(idKey(id))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get proposal %d", id)
	}
	if !ok {
		return nil, reverts.ErrProposalNotFound
	}
	p, err := g.proposals.Get(idKey(id))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get proposal %d", id)
	}
	return p, nil
}

// Get returns the proposal with the given id.
func (g *Governance) Get(id uint64) (*Proposal, error) {
	p, err := g.getProposal(id)
	if err != nil {
		return nil, err
	}
	return p.toProposal(id), nil
}

// HasVoted reports whether voter already voted on the proposal.
func (g *Governance) HasVoted(id uint64, voter fresa.Address) (bool, error) {
	return g.votes.Exists(voteKey(id, voter))
}

// Submit creates a proposal with an empty tally. Ids are assigned from 1.
func (g *Governance) Submit(proposer fresa.Address, description string, now int64) (uint64, error) {
	logger.Debug("submitting proposal", "proposer", proposer, "length", len(description))

	var id uint64
	err := g.state.Atomic(func() error {
		if len(description) > fresa.MaxProposalDescription {
			return reverts.ErrDescriptionTooLong
		}
		count, err := g.counter.Get()
		if err != nil {
			return errors.Wrap(err, "failed to get proposal counter")
		}
		id = count + 1
		if err := g.counter.Set(id); err != nil {
			return errors.Wrap(err, "failed to set proposal counter")
		}
		return g.proposals.Set(idKey(id), &proposal{
			Proposer:    proposer,
			Description: description,
			CreatedAt:   uint64(now),
		})
	})
	if err != nil {
		logger.Info("submit proposal failed", "proposer", proposer, "error", err)
		return 0, err
	}
	logger.Info("submitted proposal", "id", id, "proposer", proposer)
	return id, nil
}

// Vote adds the current stake of voter to one side of the tally.
// Each stake account votes at most once per proposal. A voter without stake
// is recorded with weight zero and leaves the tally as it was.
func (g *Governance) Vote(id uint64, voter fresa.Address, voteFor bool) (*Proposal, error) {
	logger.Debug("voting", "id", id, "voter", voter, "for", voteFor)

	var p *proposal
	err := g.state.Atomic(func() (err error) {
		if p, err = g.getProposal(id); err != nil {
			return err
		}
		key := voteKey(id, voter)
		voted, err := g.votes.Exists(key)
		if err != nil {
			return errors.Wrap(err, "failed to get vote")
		}
		if voted {
			return reverts.ErrAlreadyVoted
		}

		weight, err := g.power.VotingPower(voter)
		if err != nil {
			return err
		}
		var overflow bool
		if voteFor {
			p.VotesFor, overflow = math.SafeAdd(p.VotesFor, weight)
		} else {
			p.VotesAgainst, overflow = math.SafeAdd(p.VotesAgainst, weight)
		}
		if overflow {
			return reverts.ErrArithmeticOverflow
		}
		p.IsApproved = p.VotesFor > p.VotesAgainst

		if err := g.votes.Set(key, &vote{Support: voteFor, Weight: weight}); err != nil {
			return errors.Wrap(err, "failed to set vote")
		}
		return g.proposals.Set(idKey(id), p)
	})
	if err != nil {
		logger.Info("vote failed", "id", id, "voter", voter, "error", err)
		return nil, err
	}
	logger.Info("voted", "id", id, "voter", voter, "for", voteFor, "approved", p.IsApproved)
	return p.toProposal(id), nil
}
