// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package lottery

import (
	"encoding/binary"

	"github.com/fresacoin/fresa/fresa"
)

type idKey uint64

func (k idKey) Bytes() []byte {
	return binary.BigEndian.AppendUint64(nil, uint64(k))
}

type lottery struct {
	Entries   []fresa.Address
	PrizePool uint64
	LastDraw  uint64
	Draws     uint64
	BeaconKey []byte // compressed secp256k1 public key, empty for clock draws
}

// Lottery is a lottery record.
type Lottery struct {
	ID        uint64          `json:"id" yaml:"id"`
	Entries   []fresa.Address `json:"entries" yaml:"entries"`
	PrizePool uint64          `json:"prizePool" yaml:"prizePool"`
	LastDraw  int64           `json:"lastDraw" yaml:"lastDraw"`
	Draws     uint64          `json:"draws" yaml:"draws"`
	BeaconKey []byte          `json:"beaconKey,omitempty" yaml:"beaconKey,omitempty"`
}

func (l *lottery) toLottery(id uint64) *Lottery {
	return &Lottery{
		ID:        id,
		Entries:   append([]fresa.Address(nil), l.Entries...),
		PrizePool: l.PrizePool,
		LastDraw:  int64(l.LastDraw),
		Draws:     l.Draws,
		BeaconKey: append([]byte(nil), l.BeaconKey...),
	}
}

// DrawResult reports the outcome of a draw.
type DrawResult struct {
	Winner fresa.Address `json:"winner" yaml:"winner"`
	Index  uint64        `json:"index" yaml:"index"`
	Prize  uint64        `json:"prize" yaml:"prize"`
}
