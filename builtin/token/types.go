// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package token

// supply tracks the aggregate token counters.
type supply struct {
	Total  uint64
	Minted uint64
	Burned uint64
}

// Supply is a snapshot of the token counters.
type Supply struct {
	Total  uint64 `json:"total" yaml:"total"`
	Minted uint64 `json:"minted" yaml:"minted"`
	Burned uint64 `json:"burned" yaml:"burned"`
}
