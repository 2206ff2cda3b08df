// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package state manages the record state of the builtin modules.
//
// Records are addressed by a (module address, storage key) pair and kept
// as RLP encoded bytes. All writes go to a stackedmap, so a failed
// operation can be reverted to a checkpoint without touching the
// underlying store. Stage collects the changes in sorted key order and
// commits them in one batch together with the new state root.
package state
