// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staker

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fresacoin/fresa/builtin/token"
	"github.com/fresacoin/fresa/fresa"
	"github.com/fresacoin/fresa/lvldb"
	"github.com/fresacoin/fresa/reverts"
	"github.com/fresacoin/fresa/state"
	"github.com/fresacoin/fresa/test/datagen"
)

const unit = fresa.TokenUnit

var poolAddr = fresa.BytesToAddress([]byte("StakingPool"))

type testEnv struct {
	st     *state.State
	token  *token.Token
	staker *Staker
}

func newTestEnv(t *testing.T, initialise bool) *testEnv {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	st := state.New(db)
	tk := token.New(fresa.BytesToAddress([]byte("Token")), st)
	env := &testEnv{st: st, token: tk, staker: New(poolAddr, st, tk)}
	if initialise {
		require.NoError(t, env.staker.InitializePool(10, fresa.MinStakeDuration))
	}
	return env
}

// newStaker funds and initializes an account at time now.
func (e *testEnv) newStaker(t *testing.T, balance uint64, now int64) fresa.Address {
	addr := datagen.RandAddress()
	require.NoError(t, e.token.Mint(addr, balance))
	require.NoError(t, e.staker.InitializeAccount(addr, now))
	return addr
}

func (e *testEnv) balance(t *testing.T, addr fresa.Address) uint64 {
	bal, err := e.token.BalanceOf(addr)
	require.NoError(t, err)
	return bal
}

func (e *testEnv) account(t *testing.T, addr fresa.Address) *Account {
	acc, err := e.staker.GetAccount(addr)
	require.NoError(t, err)
	return acc
}

func TestInitialize(t *testing.T) {
	env := newTestEnv(t, false)

	_, err := env.staker.GetPool()
	assert.ErrorIs(t, err, reverts.ErrPoolNotInitialized)

	require.NoError(t, env.staker.InitializePool(10, 86400))
	assert.ErrorIs(t, env.staker.InitializePool(12, 1), reverts.ErrPoolExists)

	p, err := env.staker.GetPool()
	require.NoError(t, err)
	assert.Equal(t, &Pool{RewardRate: 10, LockDuration: 86400}, p)

	alice := datagen.RandAddress()
	_, err = env.staker.GetAccount(alice)
	assert.ErrorIs(t, err, reverts.ErrAccountNotFound)

	require.NoError(t, env.staker.InitializeAccount(alice, 1_700_000_000))
	assert.ErrorIs(t, env.staker.InitializeAccount(alice, 0), reverts.ErrAccountExists)
	assert.Equal(t, &Account{LastStakedTimestamp: 1_700_000_000}, env.account(t, alice))
}

func TestStakeFirstStake(t *testing.T) {
	env := newTestEnv(t, true)
	alice := env.newStaker(t, 1000*unit, 100)

	res, err := env.staker.Stake(alice, 500*unit, nil, 100)
	require.NoError(t, err)
	assert.Equal(t, &StakeResult{Reward: 50 * unit, FirstStakeBonus: 100 * unit}, res)

	assert.Equal(t, 600*unit, env.balance(t, alice))
	assert.Equal(t, 500*unit, env.balance(t, poolAddr))
	assert.Equal(t, &Account{
		TotalStaked:         500 * unit,
		RewardAccumulated:   50 * unit,
		LastStakedTimestamp: 100,
		BonusClaimed:        true,
	}, env.account(t, alice))

	p, err := env.staker.GetPool()
	require.NoError(t, err)
	assert.Equal(t, 500*unit, p.TotalStaked)

	supply, err := env.token.Supply()
	require.NoError(t, err)
	assert.Equal(t, 1100*unit, supply.Total)

	// second stake never re-triggers the bonus
	res, err = env.staker.Stake(alice, 100*unit, nil, 200)
	require.NoError(t, err)
	assert.Equal(t, &StakeResult{Reward: 10 * unit}, res)
	assert.Equal(t, 500*unit, env.balance(t, alice))

	supply, _ = env.token.Supply()
	assert.Equal(t, 1100*unit, supply.Total)
}

func TestStakeBonusOnceAfterFullWithdraw(t *testing.T) {
	env := newTestEnv(t, true)
	alice := env.newStaker(t, 1000*unit, 0)

	_, err := env.staker.Stake(alice, 200*unit, nil, 0)
	require.NoError(t, err)
	_, err = env.staker.Withdraw(alice, 200*unit, fresa.MinStakeDuration)
	require.NoError(t, err)

	res, err := env.staker.Stake(alice, 200*unit, nil, fresa.MinStakeDuration)
	require.NoError(t, err)
	assert.Zero(t, res.FirstStakeBonus)

	// initial balance plus a single bonus
	supply, _ := env.token.Supply()
	assert.Equal(t, 1100*unit, supply.Minted)
}

func TestStakeDurationMultiplier(t *testing.T) {
	env := newTestEnv(t, true)
	alice := env.newStaker(t, 1000*unit, 0)

	res, err := env.staker.Stake(alice, unit, nil, fresa.LongStakeDuration+1)
	require.NoError(t, err)
	assert.Equal(t, Reward(unit, fresa.LongStakeDuration+1), res.Reward)
	assert.Equal(t, 2*Reward(unit, 0), res.Reward)
}

func TestStakeRejected(t *testing.T) {
	env := newTestEnv(t, true)
	alice := env.newStaker(t, 10*unit, 0)
	stranger := datagen.RandAddress()

	tests := []struct {
		name     string
		staker   fresa.Address
		amount   uint64
		referrer *fresa.Address
		err      error
	}{
		{"zero amount", alice, 0, nil, reverts.ErrInvalidAmount},
		{"insufficient funds", alice, 10*unit + 1, nil, reverts.ErrInsufficientFunds},
		{"no account", stranger, 1, nil, reverts.ErrAccountNotFound},
		{"self referral", alice, unit, &alice, reverts.ErrInvalidReferrer},
		{"pool referral", alice, unit, &poolAddr, reverts.ErrInvalidReferrer},
		{"zero referral", alice, unit, &fresa.Address{}, reverts.ErrInvalidReferrer},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := env.st.Stage().Hash(fresa.Bytes32{})

			_, err := env.staker.Stake(tt.staker, tt.amount, tt.referrer, 10)
			assert.ErrorIs(t, err, tt.err)
			assert.True(t, reverts.IsRevertErr(err))

			assert.Equal(t, before, env.st.Stage().Hash(fresa.Bytes32{}), "state must be unchanged")
			assert.Equal(t, 10*unit, env.balance(t, alice))
		})
	}
}

func TestStakeNoPool(t *testing.T) {
	env := newTestEnv(t, false)
	alice := env.newStaker(t, 10*unit, 0)

	_, err := env.staker.Stake(alice, unit, nil, 0)
	assert.ErrorIs(t, err, reverts.ErrPoolNotInitialized)
	assert.Equal(t, 10*unit, env.balance(t, alice))
}

func TestStakeReferral(t *testing.T) {
	env := newTestEnv(t, true)
	alice := env.newStaker(t, 10_000*unit, 0)
	bob, carol := datagen.RandAddress(), datagen.RandAddress()

	// no surplus, the whole stake fails
	_, err := env.staker.Stake(alice, 1000*unit, &bob, 0)
	assert.ErrorIs(t, err, reverts.ErrInsufficientFunds)
	assert.Equal(t, 10_000*unit, env.balance(t, alice))
	assert.Zero(t, env.account(t, alice).TotalStaked)

	// fund a reserve
	require.NoError(t, env.token.Mint(poolAddr, 100*unit))

	res, err := env.staker.Stake(alice, 1000*unit, &bob, 0)
	require.NoError(t, err)
	assert.Equal(t, 50*unit, res.ReferralBonus)
	assert.Equal(t, 50*unit, env.balance(t, bob))
	assert.Equal(t, &bob, env.account(t, alice).Referrer)

	// the first referrer stays recorded
	res, err = env.staker.Stake(alice, 200*unit, &carol, 10)
	require.NoError(t, err)
	assert.Equal(t, 10*unit, res.ReferralBonus)
	assert.Equal(t, 10*unit, env.balance(t, carol))
	assert.Equal(t, &bob, env.account(t, alice).Referrer)

	surplus, err := env.staker.Surplus()
	require.NoError(t, err)
	assert.Equal(t, 40*unit, surplus)
	assert.Equal(t, 1240*unit, env.balance(t, poolAddr))
}

func TestWithdrawPenaltyBoundary(t *testing.T) {
	env := newTestEnv(t, true)
	alice := env.newStaker(t, 1000*unit, 0)
	bob := env.newStaker(t, 1000*unit, 0)

	_, err := env.staker.Stake(alice, 100*unit, nil, 0)
	require.NoError(t, err)
	_, err = env.staker.Stake(bob, 100*unit, nil, 0)
	require.NoError(t, err)

	res, err := env.staker.Withdraw(alice, 100*unit, 604_800)
	require.NoError(t, err)
	assert.Equal(t, &WithdrawResult{Net: 100 * unit}, res)
	assert.Equal(t, 1100*unit, env.balance(t, alice))

	res, err = env.staker.Withdraw(bob, 100*unit, 604_799)
	require.NoError(t, err)
	assert.Equal(t, &WithdrawResult{
		Net:      80 * unit,
		Penalty:  20 * unit,
		Burned:   10 * unit,
		Retained: 10 * unit,
	}, res)
	assert.Equal(t, 1080*unit, env.balance(t, bob))

	// the retained half stays in custody
	assert.Equal(t, 10*unit, env.balance(t, poolAddr))
	supply, _ := env.token.Supply()
	assert.Equal(t, 10*unit, supply.Burned)

	p, _ := env.staker.GetPool()
	assert.Zero(t, p.TotalStaked)

	// withdraw does not move the stake clock
	assert.Equal(t, int64(0), env.account(t, bob).LastStakedTimestamp)
}

func TestWithdrawOddPenalty(t *testing.T) {
	env := newTestEnv(t, true)
	alice := env.newStaker(t, 1000, 0)

	_, err := env.staker.Stake(alice, 999, nil, 0)
	require.NoError(t, err)

	res, err := env.staker.Withdraw(alice, 999, 1)
	require.NoError(t, err)
	assert.Equal(t, &WithdrawResult{Net: 800, Penalty: 199, Burned: 99, Retained: 100}, res)
}

func TestWithdrawRejected(t *testing.T) {
	env := newTestEnv(t, true)
	alice := env.newStaker(t, 1000*unit, 0)
	_, err := env.staker.Stake(alice, 100*unit, nil, 0)
	require.NoError(t, err)

	before := env.st.Stage().Hash(fresa.Bytes32{})

	_, err = env.staker.Withdraw(alice, 100*unit+1, fresa.MinStakeDuration)
	assert.ErrorIs(t, err, reverts.ErrInsufficientStake)

	_, err = env.staker.ForceWithdraw(alice, 100*unit+1)
	assert.ErrorIs(t, err, reverts.ErrInsufficientStake)

	_, err = env.staker.Withdraw(alice, 0, fresa.MinStakeDuration)
	assert.ErrorIs(t, err, reverts.ErrInvalidAmount)

	_, err = env.staker.ForceWithdraw(alice, 0)
	assert.ErrorIs(t, err, reverts.ErrInvalidAmount)

	_, err = env.staker.Withdraw(datagen.RandAddress(), 1, 0)
	assert.ErrorIs(t, err, reverts.ErrAccountNotFound)

	assert.Equal(t, before, env.st.Stage().Hash(fresa.Bytes32{}))
	assert.Equal(t, 100*unit, env.account(t, alice).TotalStaked)
}

func TestForceWithdraw(t *testing.T) {
	env := newTestEnv(t, true)
	alice := env.newStaker(t, 1000*unit, 0)
	_, err := env.staker.Stake(alice, 201, nil, 0)
	require.NoError(t, err)

	res, err := env.staker.ForceWithdraw(alice, 101)
	require.NoError(t, err)
	assert.Equal(t, &WithdrawResult{Net: 51, Penalty: 50, Burned: 50}, res)

	res, err = env.staker.ForceWithdraw(alice, 100)
	require.NoError(t, err)
	assert.Equal(t, &WithdrawResult{Net: 50, Penalty: 50, Burned: 50}, res)

	assert.Zero(t, env.account(t, alice).TotalStaked)
	p, _ := env.staker.GetPool()
	assert.Zero(t, p.TotalStaked)
	assert.Zero(t, env.balance(t, poolAddr))

	supply, _ := env.token.Supply()
	assert.Equal(t, uint64(100), supply.Burned)
}

func TestStakeOverflow(t *testing.T) {
	env := newTestEnv(t, true)
	alice := env.newStaker(t, 1000*unit, 0)

	acc, err := env.staker.storage.getAccount(alice)
	require.NoError(t, err)
	acc.RewardAccumulated = math.MaxUint64
	require.NoError(t, env.staker.storage.setAccount(alice, acc))

	_, err = env.staker.Stake(alice, 100*unit, nil, 0)
	assert.ErrorIs(t, err, reverts.ErrArithmeticOverflow)
	assert.Equal(t, 1000*unit, env.balance(t, alice))
	assert.Zero(t, env.account(t, alice).TotalStaked)
}

func TestEscrow(t *testing.T) {
	env := newTestEnv(t, true)
	alice := env.newStaker(t, 1000*unit, 0)
	_, err := env.staker.Stake(alice, 100*unit, nil, 0)
	require.NoError(t, err)

	owner, bob := datagen.RandAddress(), datagen.RandAddress()
	require.NoError(t, env.token.Mint(owner, 30))
	assert.ErrorIs(t, env.staker.Escrow(owner, 31), reverts.ErrInsufficientFunds)
	require.NoError(t, env.staker.Escrow(owner, 30))

	p, err := env.staker.GetPool()
	require.NoError(t, err)
	assert.Equal(t, uint64(30), p.Escrowed)
	surplus, err := env.staker.Surplus()
	require.NoError(t, err)
	assert.Zero(t, surplus)

	// escrow is not surplus
	pp, err := env.staker.storage.getPool()
	require.NoError(t, err)
	assert.ErrorIs(t, env.staker.disburse(pp, bob, 1), reverts.ErrInsufficientFunds)

	require.NoError(t, env.token.Mint(poolAddr, 5))
	require.NoError(t, env.staker.disburse(pp, bob, 5))
	assert.Equal(t, uint64(5), env.balance(t, bob))

	assert.ErrorIs(t, env.staker.Release(bob, 31), reverts.ErrInsufficientFunds)
	require.NoError(t, env.staker.Release(bob, 30))
	assert.Equal(t, uint64(35), env.balance(t, bob))
	assert.Equal(t, 100*unit, env.balance(t, poolAddr))

	p, err = env.staker.GetPool()
	require.NoError(t, err)
	assert.Zero(t, p.Escrowed)
	assert.Equal(t, 100*unit, p.TotalStaked)
}

func TestElapsedOverflow(t *testing.T) {
	d, err := Elapsed(10, -5)
	require.NoError(t, err)
	assert.Equal(t, int64(15), d)
	d, err = Elapsed(-5, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(-15), d)

	_, err = Elapsed(math.MinInt64, 1)
	assert.ErrorIs(t, err, reverts.ErrArithmeticOverflow)
	_, err = Elapsed(math.MaxInt64, -1)
	assert.ErrorIs(t, err, reverts.ErrArithmeticOverflow)

	env := newTestEnv(t, true)
	alice := env.newStaker(t, 1000*unit, 1)
	before := env.st.Stage().Hash(fresa.Bytes32{})

	_, err = env.staker.Stake(alice, 100*unit, nil, math.MinInt64)
	assert.ErrorIs(t, err, reverts.ErrArithmeticOverflow)
	assert.Equal(t, before, env.st.Stage().Hash(fresa.Bytes32{}))

	// a stake at a negative time stores a timestamp that wraps on withdraw
	_, err = env.staker.Stake(alice, 100*unit, nil, -1)
	require.NoError(t, err)
	staked := env.st.Stage().Hash(fresa.Bytes32{})

	_, err = env.staker.Withdraw(alice, 10*unit, math.MaxInt64)
	assert.ErrorIs(t, err, reverts.ErrArithmeticOverflow)
	assert.Equal(t, staked, env.st.Stage().Hash(fresa.Bytes32{}))
	assert.Equal(t, 100*unit, env.account(t, alice).TotalStaked)
}

func TestVotingPower(t *testing.T) {
	env := newTestEnv(t, true)
	alice := env.newStaker(t, 1000*unit, 0)

	power, err := env.staker.VotingPower(alice)
	require.NoError(t, err)
	assert.Zero(t, power)

	_, err = env.staker.Stake(alice, 42, nil, 0)
	require.NoError(t, err)
	power, err = env.staker.VotingPower(alice)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), power)

	_, err = env.staker.VotingPower(datagen.RandAddress())
	assert.ErrorIs(t, err, reverts.ErrAccountNotFound)
}

// Random sequences keep the claims covered by custody.
func TestSolvency(t *testing.T) {
	env := newTestEnv(t, true)
	require.NoError(t, env.token.Mint(poolAddr, 50*unit))

	stakers := make([]fresa.Address, 5)
	for i := range stakers {
		stakers[i] = env.newStaker(t, 10_000*unit, 0)
	}

	now := int64(0)
	for range 300 {
		now += int64(datagen.RandIntN(200_000))
		who := stakers[datagen.RandIntN(len(stakers))]
		amount := datagen.RandAmount(500 * unit)

		switch datagen.RandIntN(4) {
		case 0:
			_, _ = env.staker.Stake(who, amount, nil, now)
		case 1:
			ref := stakers[datagen.RandIntN(len(stakers))]
			_, _ = env.staker.Stake(who, amount, &ref, now)
		case 2:
			_, _ = env.staker.Withdraw(who, amount, now)
		case 3:
			_, _ = env.staker.ForceWithdraw(who, amount)
		}

		var sum uint64
		for _, s := range stakers {
			sum += env.account(t, s).TotalStaked
		}
		p, err := env.staker.GetPool()
		require.NoError(t, err)
		assert.Equal(t, sum, p.TotalStaked)
		assert.LessOrEqual(t, sum, env.balance(t, poolAddr))
	}
}
