// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package fresa

// Clock supplies the logical timestamp, in seconds, an operation executes at.
// It is owned by the execution environment; replicas feeding the same clock
// values produce the same state.
type Clock interface {
	Now() int64
}

// FixedClock is a Clock pinned to a single timestamp, typically the block or
// batch time of the operation being applied.
type FixedClock int64

// Now implements Clock.
func (c FixedClock) Now() int64 {
	return int64(c)
}

// ClockFunc adapts a function to the Clock interface.
type ClockFunc func() int64

// Now implements Clock.
func (f ClockFunc) Now() int64 {
	return f()
}
