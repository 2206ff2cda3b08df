// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package staker implements the staking pool: stake accounts, reward
// accrual and the withdrawal paths.
//
// The pool address doubles as the custody account holding staked tokens.
// Every exported mutation runs inside state.Atomic, so a failing call leaves
// both the records and the token balances untouched.
package staker

import (
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/pkg/errors"

	"github.com/fresacoin/fresa/builtin/token"
	"github.com/fresacoin/fresa/fresa"
	"github.com/fresacoin/fresa/log"
	"github.com/fresacoin/fresa/reverts"
	"github.com/fresacoin/fresa/state"
)

var logger = log.WithContext("pkg", "staker")

func SetLogger(l log.Logger) {
	logger = l
}

// Staker implements the staking pool builtin.
type Staker struct {
	addr    fresa.Address
	state   *state.State
	ledger  token.Ledger
	storage *storage
}

// New create a new instance.
func New(addr fresa.Address, state *state.State, ledger token.Ledger) *Staker {
	return &Staker{
		addr:    addr,
		state:   state,
		ledger:  ledger,
		storage: newStorage(addr, state),
	}
}

// Address returns the pool custody address.
func (s *Staker) Address() fresa.Address {
	return s.addr
}

// InitializePool creates the pool record.
func (s *Staker) InitializePool(rewardRate uint64, lockDuration int64) error {
	logger.Debug("initializing pool", "rewardRate", rewardRate, "lockDuration", lockDuration)

	err := s.state.Atomic(func() error {
		if _, err := s.storage.getPool(); err == nil {
			return reverts.ErrPoolExists
		} else if !errors.Is(err, reverts.ErrPoolNotInitialized) {
			return err
		}
		return s.storage.setPool(&pool{
			RewardRate:   rewardRate,
			LockDuration: uint64(lockDuration),
		})
	})
	if err != nil {
		logger.Info("initialize pool failed", "error", err)
		return err
	}
	logger.Info("initialized pool", "rewardRate", rewardRate, "lockDuration", lockDuration)
	return nil
}

// InitializeAccount creates an empty stake account for owner, clocked at now.
func (s *Staker) InitializeAccount(owner fresa.Address, now int64) error {
	logger.Debug("initializing account", "owner", owner, "now", now)

	err := s.state.Atomic(func() error {
		if _, err := s.storage.getAccount(owner); err == nil {
			return reverts.ErrAccountExists
		} else if !errors.Is(err, reverts.ErrAccountNotFound) {
			return err
		}
		return s.storage.setAccount(owner, &account{LastStakedTimestamp: uint64(now)})
	})
	if err != nil {
		logger.Info("initialize account failed", "owner", owner, "error", err)
		return err
	}
	logger.Info("initialized account", "owner", owner)
	return nil
}

// GetPool returns the pool record.
func (s *Staker) GetPool() (*Pool, error) {
	p, err := s.storage.getPool()
	if err != nil {
		return nil, err
	}
	return p.toPool(), nil
}

// GetAccount returns the stake account of owner.
func (s *Staker) GetAccount(owner fresa.Address) (*Account, error) {
	acc, err := s.storage.getAccount(owner)
	if err != nil {
		return nil, err
	}
	return acc.toAccount(), nil
}

// VotingPower returns the current stake of owner.
func (s *Staker) VotingPower(owner fresa.Address) (uint64, error) {
	acc, err := s.storage.getAccount(owner)
	if err != nil {
		return 0, err
	}
	return acc.TotalStaked, nil
}

// Surplus returns the custody balance neither staked nor escrowed.
func (s *Staker) Surplus() (uint64, error) {
	p, err := s.storage.getPool()
	if err != nil {
		return 0, err
	}
	return s.surplus(p)
}

func (s *Staker) surplus(p *pool) (uint64, error) {
	bal, err := s.ledger.BalanceOf(s.addr)
	if err != nil {
		return 0, err
	}
	claims, overflow := math.SafeAdd(p.TotalStaked, p.Escrowed)
	if overflow {
		return 0, nil
	}
	free, underflow := math.SafeSub(bal, claims)
	if underflow {
		// custody below claims, nothing may leave except principal and escrow
		return 0, nil
	}
	return free, nil
}

// disburse pays amount from the pool surplus. It fails with ErrInsufficientFunds
// if the payment would take custody below the sum of stake claims and escrow.
func (s *Staker) disburse(p *pool, to fresa.Address, amount uint64) error {
	free, err := s.surplus(p)
	if err != nil {
		return err
	}
	if amount > free {
		return reverts.ErrInsufficientFunds
	}
	return s.ledger.Transfer(s.addr, to, amount)
}

// Escrow moves amount from owner into custody and reserves it. Escrowed
// tokens are never part of the surplus and leave custody only by Release.
func (s *Staker) Escrow(owner fresa.Address, amount uint64) error {
	return s.state.Atomic(func() error {
		p, err := s.storage.getPool()
		if err != nil {
			return err
		}
		escrowed, overflow := math.SafeAdd(p.Escrowed, amount)
		if overflow {
			return reverts.ErrArithmeticOverflow
		}
		if err := s.ledger.Transfer(owner, s.addr, amount); err != nil {
			return err
		}
		p.Escrowed = escrowed
		return s.storage.setPool(p)
	})
}

// Release pays amount of the escrow out of custody.
func (s *Staker) Release(to fresa.Address, amount uint64) error {
	return s.state.Atomic(func() error {
		p, err := s.storage.getPool()
		if err != nil {
			return err
		}
		if amount > p.Escrowed {
			return reverts.ErrInsufficientFunds
		}
		if err := s.ledger.Transfer(s.addr, to, amount); err != nil {
			return err
		}
		p.Escrowed -= amount
		return s.storage.setPool(p)
	})
}

// Stake moves amount from staker into custody and credits the reward for the
// time elapsed since the last stake. A referrer, if given, is paid 5% of amount
// from the pool surplus. The first stake of an account mints the bonus.
func (s *Staker) Stake(staker fresa.Address, amount uint64, referrer *fresa.Address, now int64) (*StakeResult, error) {
	logger.Debug("staking", "staker", staker, "amount", amount, "referrer", referrer, "now", now)

	var result StakeResult
	err := s.state.Atomic(func() error {
		if amount == 0 {
			return reverts.ErrInvalidAmount
		}
		if referrer != nil && (*referrer == staker || *referrer == s.addr || referrer.IsZero()) {
			return reverts.ErrInvalidReferrer
		}
		p, err := s.storage.getPool()
		if err != nil {
			return err
		}
		acc, err := s.storage.getAccount(staker)
		if err != nil {
			return err
		}
		elapsed, err := Elapsed(now, int64(acc.LastStakedTimestamp))
		if err != nil {
			return err
		}

		if err := s.ledger.Transfer(staker, s.addr, amount); err != nil {
			return err
		}

		result.Reward = Reward(amount, elapsed)

		var overflow bool
		if acc.TotalStaked, overflow = math.SafeAdd(acc.TotalStaked, amount); overflow {
			return reverts.ErrArithmeticOverflow
		}
		if acc.RewardAccumulated, overflow = math.SafeAdd(acc.RewardAccumulated, result.Reward); overflow {
			return reverts.ErrArithmeticOverflow
		}
		if p.TotalStaked, overflow = math.SafeAdd(p.TotalStaked, amount); overflow {
			return reverts.ErrArithmeticOverflow
		}
		acc.LastStakedTimestamp = uint64(now)

		if referrer != nil {
			if acc.Referrer == nil {
				ref := *referrer
				acc.Referrer = &ref
			}
			result.ReferralBonus = amount / fresa.ReferralBonusDivisor
			if err := s.disburse(p, *referrer, result.ReferralBonus); err != nil {
				return err
			}
		}

		if !acc.BonusClaimed {
			acc.BonusClaimed = true
			result.FirstStakeBonus = fresa.FirstStakeBonus
			if err := s.ledger.Mint(staker, result.FirstStakeBonus); err != nil {
				return err
			}
		}

		if err := s.storage.setPool(p); err != nil {
			return err
		}
		return s.storage.setAccount(staker, acc)
	})
	if err != nil {
		logger.Info("stake failed", "staker", staker, "amount", amount, "error", err)
		return nil, err
	}
	logger.Info("staked", "staker", staker, "amount", amount, "reward", result.Reward,
		"referralBonus", result.ReferralBonus, "firstStakeBonus", result.FirstStakeBonus)
	return &result, nil
}

// Withdraw returns amount of principal to staker. Withdrawing within 7 days of
// the last stake costs a 20% penalty, half of which is burned and half retained
// by the pool.
func (s *Staker) Withdraw(staker fresa.Address, amount uint64, now int64) (*WithdrawResult, error) {
	logger.Debug("withdrawing", "staker", staker, "amount", amount, "now", now)

	var result *WithdrawResult
	err := s.state.Atomic(func() (err error) {
		result, err = s.withdraw(staker, amount, func(acc *account) (WithdrawResult, error) {
			elapsed, err := Elapsed(now, int64(acc.LastStakedTimestamp))
			if err != nil {
				return WithdrawResult{}, err
			}
			var penalty uint64
			if elapsed < fresa.MinStakeDuration {
				penalty = amount / fresa.WithdrawPenaltyDivisor
			}
			burned := penalty / 2
			return WithdrawResult{
				Net:      amount - penalty,
				Penalty:  penalty,
				Burned:   burned,
				Retained: penalty - burned,
			}, nil
		})
		return
	})
	if err != nil {
		logger.Info("withdraw failed", "staker", staker, "amount", amount, "error", err)
		return nil, err
	}
	logger.Info("withdrew", "staker", staker, "net", result.Net, "penalty", result.Penalty)
	return result, nil
}

// ForceWithdraw returns amount of principal to staker at a flat 50% penalty,
// burned entirely, regardless of how long the stake was held.
func (s *Staker) ForceWithdraw(staker fresa.Address, amount uint64) (*WithdrawResult, error) {
	logger.Debug("force withdrawing", "staker", staker, "amount", amount)

	var result *WithdrawResult
	err := s.state.Atomic(func() (err error) {
		result, err = s.withdraw(staker, amount, func(*account) (WithdrawResult, error) {
			penalty := amount / fresa.ForceWithdrawPenaltyDivisor
			return WithdrawResult{
				Net:     amount - penalty,
				Penalty: penalty,
				Burned:  penalty,
			}, nil
		})
		return
	})
	if err != nil {
		logger.Info("force withdraw failed", "staker", staker, "amount", amount, "error", err)
		return nil, err
	}
	logger.Info("force withdrew", "staker", staker, "net", result.Net, "burned", result.Burned)
	return result, nil
}

// withdraw applies the split computed by splitFn. Every check happens before
// the first effect.
func (s *Staker) withdraw(staker fresa.Address, amount uint64, splitFn func(*account) (WithdrawResult, error)) (*WithdrawResult, error) {
	if amount == 0 {
		return nil, reverts.ErrInvalidAmount
	}
	p, err := s.storage.getPool()
	if err != nil {
		return nil, err
	}
	acc, err := s.storage.getAccount(staker)
	if err != nil {
		return nil, err
	}
	if amount > acc.TotalStaked || amount > p.TotalStaked {
		return nil, reverts.ErrInsufficientStake
	}

	split, err := splitFn(acc)
	if err != nil {
		return nil, err
	}
	if err := s.ledger.Transfer(s.addr, staker, split.Net); err != nil {
		return nil, err
	}
	if err := s.ledger.Burn(s.addr, split.Burned); err != nil {
		return nil, err
	}

	acc.TotalStaked -= amount
	p.TotalStaked -= amount
	if err := s.storage.setPool(p); err != nil {
		return nil, err
	}
	if err := s.storage.setAccount(staker, acc); err != nil {
		return nil, err
	}
	return &split, nil
}
