// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package lottery implements prize draws among lottery entrants.
//
// A lottery without a beacon key draws with now mod len(entries). That index
// is predictable by anyone who can predict the clock and must not be trusted
// as fair. A lottery created with a beacon key only draws with an ECVRF proof
// from the beacon over Alpha(id, now, draws).
package lottery

import (
	"encoding/binary"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"
	"github.com/vechain/go-ecvrf"

	"github.com/fresacoin/fresa/builtin/solidity"
	"github.com/fresacoin/fresa/fresa"
	"github.com/fresacoin/fresa/log"
	"github.com/fresacoin/fresa/metrics"
	"github.com/fresacoin/fresa/reverts"
	"github.com/fresacoin/fresa/state"
)

var (
	logger = log.WithContext("pkg", "lottery")

	metricDraws = metrics.LazyLoadCounter("lottery_draws_total")

	slotLotteryCounter = fresa.BytesToBytes32([]byte("lotteries-counter"))
	slotLotteries      = fresa.BytesToBytes32([]byte("lotteries"))
)

// Custody holds the prize tokens apart from any other balance it keeps.
type Custody interface {
	// Escrow moves amount from owner into custody.
	Escrow(owner fresa.Address, amount uint64) error
	// Release pays amount of the escrowed tokens to to.
	Release(to fresa.Address, amount uint64) error
}

// Lotteries implements the lottery builtin.
type Lotteries struct {
	state     *state.State
	custody   Custody
	counter   *solidity.Value[uint64]
	lotteries *solidity.Mapping[idKey, *lottery]
}

func New(addr fresa.Address, state *state.State, custody Custody) *Lotteries {
	ctx := solidity.NewContext(addr, state)
	return &Lotteries{
		state:     state,
		custody:   custody,
		counter:   solidity.NewValue[uint64](ctx, slotLotteryCounter),
		lotteries: solidity.NewMapping[idKey, *lottery](ctx, slotLotteries),
	}
}

// Alpha is the VRF input of the next draw of a lottery.
func Alpha(id uint64, now int64, draws uint64) []byte {
	var b [24]byte
	binary.BigEndian.PutUint64(b[:], id)
	binary.BigEndian.PutUint64(b[8:], uint64(now))
	binary.BigEndian.PutUint64(b[16:], draws)
	alpha := fresa.Blake2b([]byte("lottery"), b[:])
	return alpha.Bytes()
}

func (l *Lotteries) get(id uint64) (*lottery, error) {
	ok, err := l.lotteries.Exists(idKey(id))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get lottery %d", id)
	}
	if !ok {
		return nil, reverts.ErrLotteryNotFound
	}
	lot, err := l.lotteries.Get(idKey(id))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get lottery %d", id)
	}
	return lot, nil
}

func (l *Lotteries) set(id uint64, lot *lottery) error {
	if err := l.lotteries.Set(idKey(id), lot); err != nil {
		return errors.Wrapf(err, "failed to set lottery %d", id)
	}
	return nil
}

// Get returns the lottery with the given id.
func (l *Lotteries) Get(id uint64) (*Lottery, error) {
	lot, err := l.get(id)
	if err != nil {
		return nil, err
	}
	return lot.toLottery(id), nil
}

// Create opens a lottery. An empty beaconKey selects clock draws.
func (l *Lotteries) Create(beaconKey []byte) (uint64, error) {
	var id uint64
	err := l.state.Atomic(func() error {
		if len(beaconKey) > 0 {
			if _, err := crypto.DecompressPubkey(beaconKey); err != nil {
				return reverts.ErrInvalidBeaconKey
			}
		}
		count, err := l.counter.Get()
		if err != nil {
			return errors.Wrap(err, "failed to get lottery counter")
		}
		id = count + 1
		if err := l.counter.Set(id); err != nil {
			return errors.Wrap(err, "failed to set lottery counter")
		}
		return l.set(id, &lottery{BeaconKey: append([]byte(nil), beaconKey...)})
	})
	if err != nil {
		logger.Info("create lottery failed", "error", err)
		return 0, err
	}
	logger.Info("created lottery", "id", id, "beacon", len(beaconKey) > 0)
	return id, nil
}

// Enter appends entrant and moves ticket into the prize pool.
func (l *Lotteries) Enter(id uint64, entrant fresa.Address, ticket uint64) error {
	err := l.state.Atomic(func() error {
		lot, err := l.get(id)
		if err != nil {
			return err
		}
		if err := l.addPrize(lot, entrant, ticket); err != nil {
			return err
		}
		lot.Entries = append(lot.Entries, entrant)
		return l.set(id, lot)
	})
	if err != nil {
		logger.Info("enter lottery failed", "id", id, "entrant", entrant, "error", err)
		return err
	}
	logger.Debug("entered lottery", "id", id, "entrant", entrant, "ticket", ticket)
	return nil
}

// Fund adds amount to the prize pool without an entry.
func (l *Lotteries) Fund(id uint64, funder fresa.Address, amount uint64) error {
	err := l.state.Atomic(func() error {
		lot, err := l.get(id)
		if err != nil {
			return err
		}
		if err := l.addPrize(lot, funder, amount); err != nil {
			return err
		}
		return l.set(id, lot)
	})
	if err != nil {
		logger.Info("fund lottery failed", "id", id, "funder", funder, "error", err)
		return err
	}
	logger.Debug("funded lottery", "id", id, "funder", funder, "amount", amount)
	return nil
}

func (l *Lotteries) addPrize(lot *lottery, from fresa.Address, amount uint64) error {
	prize, overflow := math.SafeAdd(lot.PrizePool, amount)
	if overflow {
		return reverts.ErrArithmeticOverflow
	}
	if err := l.custody.Escrow(from, amount); err != nil {
		return err
	}
	lot.PrizePool = prize
	return nil
}

// Draw picks a winner and pays out the whole prize pool.
// proof is required, and only used, when the lottery has a beacon key.
func (l *Lotteries) Draw(id uint64, now int64, proof []byte) (*DrawResult, error) {
	logger.Debug("drawing lottery", "id", id, "now", now)

	var result DrawResult
	err := l.state.Atomic(func() error {
		lot, err := l.get(id)
		if err != nil {
			return err
		}
		n := uint64(len(lot.Entries))
		if n == 0 {
			return reverts.ErrEmptyLottery
		}

		if len(lot.BeaconKey) == 0 {
			result.Index = uint64(((now % int64(n)) + int64(n)) % int64(n))
		} else {
			beta, err := verify(lot.BeaconKey, Alpha(id, now, lot.Draws), proof)
			if err != nil {
				return err
			}
			result.Index = binary.BigEndian.Uint64(beta[:8]) % n
		}
		result.Winner = lot.Entries[result.Index]
		result.Prize = lot.PrizePool

		if err := l.custody.Release(result.Winner, result.Prize); err != nil {
			return err
		}
		lot.PrizePool = 0
		lot.LastDraw = uint64(now)
		lot.Draws++
		return l.set(id, lot)
	})
	if err != nil {
		logger.Info("draw lottery failed", "id", id, "error", err)
		return nil, err
	}
	metricDraws().Add(1)
	logger.Info("drew lottery", "id", id, "winner", result.Winner, "prize", result.Prize)
	return &result, nil
}

func verify(beaconKey, alpha, proof []byte) ([]byte, error) {
	if len(proof) == 0 {
		return nil, reverts.ErrInvalidRandomness
	}
	pub, err := crypto.DecompressPubkey(beaconKey)
	if err != nil {
		return nil, reverts.ErrInvalidBeaconKey
	}
	beta, err := ecvrf.Secp256k1Sha256Tai.Verify(pub, alpha, proof)
	if err != nil || len(beta) < 8 {
		return nil, reverts.ErrInvalidRandomness
	}
	return beta, nil
}
