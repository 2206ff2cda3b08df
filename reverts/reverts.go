// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package reverts holds the error kinds an operation reports when it is
// rejected by the state machine. A revert leaves every record untouched;
// any other error returned by an operation signals a storage or codec
// failure of the executor itself.
package reverts

import (
	"errors"
)

type ErrRevert struct {
	message string
}

func New(message string) *ErrRevert {
	return &ErrRevert{
		message: message,
	}
}

func (e *ErrRevert) Error() string {
	return e.message
}

func IsRevertErr(err any) bool {
	if err == nil {
		return false
	}
	e, ok := err.(error)
	if !ok {
		return false
	}
	var ve *ErrRevert
	return errors.As(e, &ve)
}

var (
	ErrInsufficientFunds  = New("insufficient funds")
	ErrInsufficientStake  = New("insufficient stake")
	ErrEmptyLottery       = New("empty lottery")
	ErrInvalidReferrer    = New("invalid referrer")
	ErrArithmeticOverflow = New("arithmetic overflow")

	ErrInvalidAmount      = New("amount must be greater than zero")
	ErrAccountNotFound    = New("stake account not found")
	ErrAccountExists      = New("stake account already exists")
	ErrPoolNotInitialized = New("staking pool not initialized")
	ErrPoolExists         = New("staking pool already initialized")
	ErrProposalNotFound   = New("proposal not found")
	ErrDescriptionTooLong = New("proposal description too long")
	ErrAlreadyVoted       = New("stake account already voted")
	ErrLotteryNotFound    = New("lottery not found")
	ErrInvalidRandomness  = New("invalid randomness proof")
	ErrInvalidBeaconKey   = New("invalid beacon key")
)
