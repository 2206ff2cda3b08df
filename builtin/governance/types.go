// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package governance

import (
	"encoding/binary"

	"github.com/fresacoin/fresa/fresa"
)

type idKey uint64

func (k idKey) Bytes() []byte {
	return binary.BigEndian.AppendUint64(nil, uint64(k))
}

// voteKey identifies the vote of one account on one proposal.
func voteKey(id uint64, voter fresa.Address) fresa.Bytes32 {
	return fresa.Blake2b(idKey(id).Bytes(), voter.Bytes())
}

type proposal struct {
	Proposer     fresa.Address
	Description  string
	CreatedAt    uint64
	VotesFor     uint64
	VotesAgainst uint64
	IsApproved   bool
}

type vote struct {
	Support bool
	Weight  uint64
}

// Proposal is a governance proposal and its running tally.
// IsApproved is recomputed after every vote and may flip.
type Proposal struct {
	ID           uint64        `json:"id" yaml:"id"`
	Proposer     fresa.Address `json:"proposer" yaml:"proposer"`
	Description  string        `json:"description" yaml:"description"`
	CreatedAt    int64         `json:"createdAt" yaml:"createdAt"`
	VotesFor     uint64        `json:"votesFor" yaml:"votesFor"`
	VotesAgainst uint64        `json:"votesAgainst" yaml:"votesAgainst"`
	IsApproved   bool          `json:"isApproved" yaml:"isApproved"`
}

func (p *proposal) toProposal(id uint64) *Proposal {
	return &Proposal{
		ID:           id,
		Proposer:     p.Proposer,
		Description:  p.Description,
		CreatedAt:    int64(p.CreatedAt),
		VotesFor:     p.VotesFor,
		VotesAgainst: p.VotesAgainst,
		IsApproved:   p.IsApproved,
	}
}
