// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package datagen generates random values for tests.
package datagen

import (
	"crypto/rand"
	mathrand "math/rand/v2"

	"github.com/fresacoin/fresa/fresa"
)

func RandAddress() (addr fresa.Address) {
	rand.Read(addr[:])
	return
}

func RandAddresses(n int) []fresa.Address {
	addrs := make([]fresa.Address, 0, n)
	for range n {
		addrs = append(addrs, RandAddress())
	}
	return addrs
}

func RandBytes32() (b fresa.Bytes32) {
	rand.Read(b[:])
	return
}

// RandAmount returns a random token amount in [1, max].
func RandAmount(max uint64) uint64 {
	return mathrand.Uint64N(max) + 1 //#nosec G404
}

func RandIntN(n int) int {
	return mathrand.N(n) //#nosec G404
}
