// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"crypto/ecdsa"
	"sync/atomic"

	"github.com/ethereum/go-ethereum/crypto"

	"github.com/fresacoin/fresa/fresa"
)

// DevAccount account for development.
type DevAccount struct {
	Address    fresa.Address
	PrivateKey *ecdsa.PrivateKey
}

var devAccounts atomic.Value

// DevAccounts returns pre-alloced accounts of the default genesis.
func DevAccounts() []DevAccount {
	if accs := devAccounts.Load(); accs != nil {
		return accs.([]DevAccount)
	}

	var accs []DevAccount
	privKeys := []string{
		"dce1443bd2ef0c2631adc1c67e5c93f13dc23a41c18b536effbbdcbcdb96fb65",
		"321d6443bc6177273b5abf54210fe806d451d6b7973bccc2384ef78bbcd0bf51",
		"2d7c882bad2a01105e36dda3646693bc1aaaa45b0ed63fb0ce23c060294f3af2",
		"593537225b037191d322c3b1df585fb1e5100811b71a6f7fc7e29cca1333483e",
		"ca7b25fc980c759df5f3ce17a3d881d6e19a38e651fc4315fc08917edab41058",
	}
	for _, str := range privKeys {
		pk, err := crypto.HexToECDSA(str)
		if err != nil {
			panic(err)
		}
		addr := crypto.PubkeyToAddress(pk.PublicKey)
		accs = append(accs, DevAccount{fresa.Address(addr), pk})
	}
	devAccounts.Store(accs)
	return accs
}

// DevBeacon is the randomness beacon of the default genesis beacon lottery.
func DevBeacon() *ecdsa.PrivateKey {
	return DevAccounts()[0].PrivateKey
}

// Default returns the development genesis: every dev account funded with a
// million tokens and an open stake account, a pool reserve, one clock drawn
// lottery (id 1) and one beacon drawn lottery (id 2).
func Default() *Genesis {
	gen := &Genesis{
		LaunchTime: 1735689600, // 2025-01-01 00:00:00 UTC
		Pool: Pool{
			RewardRate:   fresa.BaseTierRate,
			LockDuration: fresa.MinStakeDuration,
		},
		PoolReserve: 100_000 * fresa.TokenUnit,
		Lotteries: []Lottery{
			{},
			{BeaconKey: crypto.CompressPubkey(&DevBeacon().PublicKey)},
		},
	}
	for _, a := range DevAccounts() {
		gen.Accounts = append(gen.Accounts, Account{
			Address:      a.Address,
			Balance:      1_000_000 * fresa.TokenUnit,
			StakeAccount: true,
		})
	}
	return gen
}
