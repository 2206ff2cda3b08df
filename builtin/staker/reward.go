// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staker

import (
	"math"

	"github.com/holiman/uint256"

	"github.com/fresacoin/fresa/fresa"
	"github.com/fresacoin/fresa/reverts"
)

// Rate returns the reward rate, in percent, of the tier amount falls in.
func Rate(amount uint64) uint64 {
	switch {
	case amount >= fresa.HighTierThreshold:
		return fresa.HighTierRate
	case amount >= fresa.MediumTierThreshold:
		return fresa.MediumTierRate
	default:
		return fresa.BaseTierRate
	}
}

// Reward computes the reward accrued by staking amount for duration seconds.
// floor(amount * rate / 100), doubled for stakes held longer than 30 days.
// The result saturates at MaxUint64.
func Reward(amount uint64, duration int64) uint64 {
	r := uint256.NewInt(amount)
	r.Mul(r, uint256.NewInt(Rate(amount)))
	r.Div(r, uint256.NewInt(100))
	if duration > fresa.LongStakeDuration {
		r.Mul(r, uint256.NewInt(fresa.LongStakeMultiplier))
	}
	if !r.IsUint64() {
		return math.MaxUint64
	}
	return r.Uint64()
}

// Elapsed returns now - since, failing with ErrArithmeticOverflow when the
// difference does not fit an int64.
func Elapsed(now, since int64) (int64, error) {
	d := now - since
	if (since > 0 && d > now) || (since < 0 && d < now) {
		return 0, reverts.ErrArithmeticOverflow
	}
	return d, nil
}
