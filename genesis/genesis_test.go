// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis_test

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vechain/go-ecvrf"

	"github.com/fresacoin/fresa/builtin"
	"github.com/fresacoin/fresa/builtin/lottery"
	"github.com/fresacoin/fresa/fresa"
	"github.com/fresacoin/fresa/genesis"
	"github.com/fresacoin/fresa/lvldb"
	"github.com/fresacoin/fresa/op"
	"github.com/fresacoin/fresa/reverts"
	"github.com/fresacoin/fresa/runtime"
	"github.com/fresacoin/fresa/state"
)

func newState(t *testing.T) *state.State {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return state.New(db)
}

func TestDefaultGenesis(t *testing.T) {
	st := newState(t)
	gen := genesis.Default()
	require.NoError(t, gen.Build(st))

	c := builtin.Bind(st, nil)
	pool, err := c.Staker.GetPool()
	require.NoError(t, err)
	assert.Equal(t, fresa.BaseTierRate, pool.RewardRate)
	assert.Zero(t, pool.TotalStaked)

	surplus, err := c.Staker.Surplus()
	require.NoError(t, err)
	assert.Equal(t, gen.PoolReserve, surplus)

	for _, a := range genesis.DevAccounts() {
		bal, err := c.Token.BalanceOf(a.Address)
		require.NoError(t, err)
		assert.Equal(t, 1_000_000*fresa.TokenUnit, bal)

		acc, err := c.Staker.GetAccount(a.Address)
		require.NoError(t, err)
		assert.Equal(t, gen.LaunchTime, acc.LastStakedTimestamp)
	}

	clockLottery, err := c.Lottery.Get(1)
	require.NoError(t, err)
	assert.Empty(t, clockLottery.BeaconKey)
	beaconLottery, err := c.Lottery.Get(2)
	require.NoError(t, err)
	assert.Len(t, beaconLottery.BeaconKey, 33)

	root1, err := gen.Builder().ComputeRoot()
	require.NoError(t, err)
	root2, err := genesis.Default().Builder().ComputeRoot()
	require.NoError(t, err)
	assert.Equal(t, root1, root2)
	assert.Equal(t, root1, st.Stage().Hash(fresa.Bytes32{}))
}

func TestDefaultBeaconDraw(t *testing.T) {
	st := newState(t)
	gen := genesis.Default()
	require.NoError(t, gen.Build(st))

	ex := runtime.New(st)
	now := gen.LaunchTime + 3600
	clock := fresa.FixedClock(now)
	var entrants []fresa.Address
	for _, a := range genesis.DevAccounts() {
		_, err := ex.Execute(clock, op.New(a.Address, &op.EnterLottery{Lottery: 2, Ticket: fresa.TokenUnit}))
		require.NoError(t, err)
		entrants = append(entrants, a.Address)
	}

	_, proof, err := ecvrf.Secp256k1Sha256Tai.Prove(genesis.DevBeacon(), lottery.Alpha(2, now, 0))
	require.NoError(t, err)

	r, err := ex.Execute(clock, op.New(entrants[0], &op.DrawLottery{Lottery: 2, Proof: proof}))
	require.NoError(t, err)
	res := r.Output.(*lottery.DrawResult)
	assert.Equal(t, entrants[res.Index], res.Winner)
	assert.Equal(t, uint64(len(entrants))*fresa.TokenUnit, res.Prize)
}

func TestDecode(t *testing.T) {
	doc := `
launchTime: 1000
pool:
  rewardRate: 12
  lockDuration: 86400
poolReserve: 500
accounts:
  - address: 0x7567d83b7b8d80addcb281a71d54fc7b3364ffed
    balance: 2000
    stakeAccount: true
  - address: 0xd3ae78222beadb038203be21ed5ce7c9b1bff602
    balance: 30
lotteries:
  - {}
`
	gen, err := genesis.Decode(strings.NewReader(doc))
	require.NoError(t, err)
	assert.Equal(t, int64(1000), gen.LaunchTime)
	assert.Equal(t, genesis.Pool{RewardRate: 12, LockDuration: 86400}, gen.Pool)
	require.Len(t, gen.Accounts, 2)
	assert.True(t, gen.Accounts[0].StakeAccount)
	assert.False(t, gen.Accounts[1].StakeAccount)

	st := newState(t)
	require.NoError(t, gen.Build(st))
	c := builtin.Bind(st, nil)

	_, err = c.Staker.GetAccount(gen.Accounts[1].Address)
	assert.ErrorIs(t, err, reverts.ErrAccountNotFound)
	supply, err := builtin.Token.WithState(st).Supply()
	require.NoError(t, err)
	assert.Equal(t, uint64(2530), supply.Total)
}

func TestValidate(t *testing.T) {
	alice := fresa.BytesToAddress([]byte("alice"))

	tests := []struct {
		name string
		gen  genesis.Genesis
	}{
		{"zero address", genesis.Genesis{Accounts: []genesis.Account{{Balance: 1}}}},
		{"custody account", genesis.Genesis{Accounts: []genesis.Account{{Address: builtin.Staker.Address}}}},
		{"duplicated account", genesis.Genesis{Accounts: []genesis.Account{{Address: alice}, {Address: alice}}}},
		{"supply overflow", genesis.Genesis{PoolReserve: math.MaxUint64, Accounts: []genesis.Account{{Address: alice, Balance: 1}}}},
		{"bad beacon", genesis.Genesis{Lotteries: []genesis.Lottery{{BeaconKey: []byte{2, 3}}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, tt.gen.Validate())
			assert.Error(t, tt.gen.Build(newState(t)))
		})
	}
}

func TestBuildTwice(t *testing.T) {
	st := newState(t)
	gen := genesis.Default()
	require.NoError(t, gen.Build(st))

	before := st.Stage().Hash(fresa.Bytes32{})
	err := gen.Build(st)
	assert.ErrorIs(t, err, reverts.ErrPoolExists)
	assert.Equal(t, before, st.Stage().Hash(fresa.Bytes32{}))
}
