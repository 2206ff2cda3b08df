// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package fresa

// Token denomination.
const (
	TokenDecimals        = 6
	TokenUnit     uint64 = 1_000_000 // 10^TokenDecimals base units per whole token
)

// Reward tiers. Thresholds are in whole tokens and compared against the
// staked amount in base units.
const (
	HighTierThreshold   uint64 = 10_000 * TokenUnit
	MediumTierThreshold uint64 = 1_000 * TokenUnit

	HighTierRate   uint64 = 15 // percent
	MediumTierRate uint64 = 12 // percent
	BaseTierRate   uint64 = 10 // percent

	LongStakeDuration   int64  = 30 * 24 * 60 * 60 // 30 days
	LongStakeMultiplier uint64 = 2
)

// Staking parameters.
const (
	MinStakeDuration int64 = 7 * 24 * 60 * 60 // 7 days, early withdrawals are penalized

	WithdrawPenaltyDivisor      uint64 = 5  // 20%
	ForceWithdrawPenaltyDivisor uint64 = 2  // 50%
	ReferralBonusDivisor        uint64 = 20 // 5%

	FirstStakeBonus uint64 = 100 * TokenUnit
)

// Governance parameters.
const (
	// MaxProposalDescription is the description capacity of a proposal
	// record, in bytes.
	MaxProposalDescription = 107
)
