// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staker

import "github.com/fresacoin/fresa/fresa"

// account is the stored stake account. Timestamps keep the int64 bit pattern.
type account struct {
	TotalStaked         uint64
	RewardAccumulated   uint64
	LastStakedTimestamp uint64
	Referrer            *fresa.Address `rlp:"nil"`
	BonusClaimed        bool
}

type pool struct {
	RewardRate   uint64
	LockDuration uint64
	TotalStaked  uint64
	Escrowed     uint64
}

// Account is the stake account of an owner.
type Account struct {
	TotalStaked         uint64         `json:"totalStaked" yaml:"totalStaked"`
	RewardAccumulated   uint64         `json:"rewardAccumulated" yaml:"rewardAccumulated"`
	LastStakedTimestamp int64          `json:"lastStakedTimestamp" yaml:"lastStakedTimestamp"`
	Referrer            *fresa.Address `json:"referrer,omitempty" yaml:"referrer,omitempty"`
	BonusClaimed        bool           `json:"bonusClaimed" yaml:"bonusClaimed"`
}

func (a *account) toAccount() *Account {
	return &Account{
		TotalStaked:         a.TotalStaked,
		RewardAccumulated:   a.RewardAccumulated,
		LastStakedTimestamp: int64(a.LastStakedTimestamp),
		Referrer:            a.Referrer,
		BonusClaimed:        a.BonusClaimed,
	}
}

// Pool is the aggregate staking pool record.
// TotalStaked is the sum of all account claims on the pool custody,
// Escrowed the tokens held on behalf of other builtins (lottery prizes).
type Pool struct {
	RewardRate   uint64 `json:"rewardRate" yaml:"rewardRate"`
	LockDuration int64  `json:"lockDuration" yaml:"lockDuration"`
	TotalStaked  uint64 `json:"totalStaked" yaml:"totalStaked"`
	Escrowed     uint64 `json:"escrowed" yaml:"escrowed"`
}

func (p *pool) toPool() *Pool {
	return &Pool{
		RewardRate:   p.RewardRate,
		LockDuration: int64(p.LockDuration),
		TotalStaked:  p.TotalStaked,
		Escrowed:     p.Escrowed,
	}
}

// StakeResult reports the amounts credited by a stake.
type StakeResult struct {
	Reward          uint64 `json:"reward" yaml:"reward"`
	ReferralBonus   uint64 `json:"referralBonus" yaml:"referralBonus"`
	FirstStakeBonus uint64 `json:"firstStakeBonus" yaml:"firstStakeBonus"`
}

// WithdrawResult reports how a withdrawn amount was split.
// Net + Penalty equals the withdrawn amount, Burned + Retained equals Penalty.
type WithdrawResult struct {
	Net      uint64 `json:"net" yaml:"net"`
	Penalty  uint64 `json:"penalty" yaml:"penalty"`
	Burned   uint64 `json:"burned" yaml:"burned"`
	Retained uint64 `json:"retained" yaml:"retained"`
}
