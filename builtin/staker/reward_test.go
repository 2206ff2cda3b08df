// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staker

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fresacoin/fresa/fresa"
)

func TestReward(t *testing.T) {
	tests := []struct {
		name     string
		amount   uint64
		duration int64
		want     uint64
	}{
		{"zero amount", 0, 0, 0},
		{"zero amount long", 0, fresa.LongStakeDuration + 1, 0},
		{"zero amount negative duration", 0, -5, 0},
		{"high tier boundary", 10_000_000_000, 0, 1_500_000_000},
		{"below high tier", 9_999_999_999, 0, 1_199_999_999},
		{"medium tier boundary", 1_000_000_000, 0, 120_000_000},
		{"below medium tier", 999_999_999, 0, 99_999_999},
		{"base tier", 1_000_000, 0, 100_000},
		{"thirty days exactly", 1_000_000, 2_592_000, 100_000},
		{"past thirty days", 1_000_000, 2_592_001, 200_000},
		{"floor", 9, 0, 0},
		{"max amount long", math.MaxUint64, fresa.LongStakeDuration + 1, 5_534_023_222_112_865_484},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Reward(tt.amount, tt.duration))
		})
	}
}

func TestRewardPure(t *testing.T) {
	for _, amount := range []uint64{1, 12_345_678, 10_000_000_000, math.MaxUint64} {
		for _, d := range []int64{0, 604_800, 2_592_001, -1} {
			assert.Equal(t, Reward(amount, d), Reward(amount, d))
		}
	}
	assert.Equal(t, 2*Reward(1_000_000, 2_592_000), Reward(1_000_000, 2_592_001))
}

func TestRate(t *testing.T) {
	assert.Equal(t, fresa.BaseTierRate, Rate(0))
	assert.Equal(t, fresa.BaseTierRate, Rate(fresa.MediumTierThreshold-1))
	assert.Equal(t, fresa.MediumTierRate, Rate(fresa.MediumTierThreshold))
	assert.Equal(t, fresa.MediumTierRate, Rate(fresa.HighTierThreshold-1))
	assert.Equal(t, fresa.HighTierRate, Rate(fresa.HighTierThreshold))
}
