// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package genesis builds the initial state: pool parameters, token
// balances, stake accounts and lotteries.
package genesis

import (
	"fmt"
	"io"
	"os"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/fresacoin/fresa/builtin"
	"github.com/fresacoin/fresa/fresa"
	"github.com/fresacoin/fresa/op"
	"github.com/fresacoin/fresa/state"
)

// Genesis is the genesis document.
type Genesis struct {
	LaunchTime int64 `yaml:"launchTime"`
	Pool       Pool  `yaml:"pool"`
	// PoolReserve is minted to the pool custody and funds referral bonuses
	// and prizes.
	PoolReserve uint64    `yaml:"poolReserve"`
	Accounts    []Account `yaml:"accounts"`
	Lotteries   []Lottery `yaml:"lotteries"`
}

// Pool is the staking pool configuration.
type Pool struct {
	RewardRate   uint64 `yaml:"rewardRate"`
	LockDuration int64  `yaml:"lockDuration"`
}

// Account is an initial token balance, optionally with an open stake account.
type Account struct {
	Address      fresa.Address `yaml:"address"`
	Balance      uint64        `yaml:"balance"`
	StakeAccount bool          `yaml:"stakeAccount"`
}

// Lottery is a lottery opened at genesis.
type Lottery struct {
	BeaconKey hexutil.Bytes `yaml:"beaconKey,omitempty"`
}

// Decode reads a YAML genesis document.
func Decode(r io.Reader) (*Genesis, error) {
	var gen Genesis
	if err := yaml.NewDecoder(r).Decode(&gen); err != nil {
		return nil, errors.Wrap(err, "decode genesis")
	}
	if err := gen.Validate(); err != nil {
		return nil, err
	}
	return &gen, nil
}

// Load reads a YAML genesis document from path.
func Load(path string) (*Genesis, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open genesis")
	}
	defer f.Close()
	return Decode(f)
}

// Validate checks the document without building it.
func (g *Genesis) Validate() error {
	supply := g.PoolReserve
	seen := make(map[fresa.Address]bool, len(g.Accounts))
	for _, a := range g.Accounts {
		if a.Address.IsZero() {
			return errors.New("account address must be set")
		}
		if a.Address == builtin.Staker.Address {
			return fmt.Errorf("%s: pool custody can only be funded by poolReserve", a.Address)
		}
		if seen[a.Address] {
			return fmt.Errorf("%s: duplicated account", a.Address)
		}
		seen[a.Address] = true

		var overflow bool
		if supply, overflow = math.SafeAdd(supply, a.Balance); overflow {
			return errors.New("total supply overflows")
		}
	}
	for i, l := range g.Lotteries {
		if len(l.BeaconKey) == 0 {
			continue
		}
		if _, err := crypto.DecompressPubkey(l.BeaconKey); err != nil {
			return fmt.Errorf("lottery %d: invalid beacon key", i)
		}
	}
	return nil
}

// Builder returns the builder applying the document.
func (g *Genesis) Builder() *Builder {
	b := new(Builder).
		Timestamp(g.LaunchTime).
		State(func(st *state.State) error {
			tk := builtin.Token.WithState(st)
			if err := tk.Mint(builtin.Staker.Address, g.PoolReserve); err != nil {
				return err
			}
			for _, a := range g.Accounts {
				if err := tk.Mint(a.Address, a.Balance); err != nil {
					return err
				}
			}
			return nil
		}).
		Op(op.New(fresa.Address{}, &op.InitPool{
			RewardRate:   g.Pool.RewardRate,
			LockDuration: g.Pool.LockDuration,
		}))

	for _, a := range g.Accounts {
		if a.StakeAccount {
			b.Op(op.New(a.Address, &op.InitAccount{}))
		}
	}
	for _, l := range g.Lotteries {
		// the creator is not recorded, any account will do
		b.Op(op.New(builtin.Lottery.Address, &op.CreateLottery{BeaconKey: l.BeaconKey}))
	}
	return b
}

// Build validates the document and applies it to st.
func (g *Genesis) Build(st *state.State) error {
	if err := g.Validate(); err != nil {
		return err
	}
	return g.Builder().Build(st)
}
