// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"fmt"

	"github.com/fresacoin/fresa/fresa"
	"github.com/fresacoin/fresa/kv"
	"github.com/fresacoin/fresa/stackedmap"
)

const (
	storageBucket = kv.Bucket("s")
	// RootKey is the key under which a committed stage stores its root.
	RootKey = "root"
)

// Error is the error caused by state access failure.
type Error struct {
	cause error
}

func (e *Error) Error() string {
	return fmt.Sprintf("state: %v", e.cause)
}

func (e *Error) Unwrap() error {
	return e.cause
}

type storageKey struct {
	addr fresa.Address
	key  fresa.Bytes32
}

func (k storageKey) bytes() []byte {
	b := make([]byte, 0, len(k.addr)+len(k.key))
	return append(append(b, k.addr[:]...), k.key[:]...)
}

// State manages the records of builtin modules.
type State struct {
	db kv.Getter
	sm *stackedmap.StackedMap[storageKey, []byte]
}

// New create state object over the given store.
func New(db kv.Getter) *State {
	s := &State{db: storageBucket.NewGetter(db)}
	s.sm = stackedmap.New(s.load)
	return s
}

func (s *State) load(key storageKey) ([]byte, bool, error) {
	metricStorageCounter().AddWithLabel(1, map[string]string{"type": "load"})

	v, err := s.db.Get(key.bytes())
	if err != nil {
		if s.db.IsNotFound(err) {
			return nil, true, nil
		}
		return nil, false, err
	}
	return v, true, nil
}

// GetRawStorage returns the raw encoded record. Empty value means absent.
func (s *State) GetRawStorage(addr fresa.Address, key fresa.Bytes32) ([]byte, error) {
	v, _, err := s.sm.Get(storageKey{addr, key})
	if err != nil {
		return nil, &Error{err}
	}
	return v, nil
}

// SetRawStorage sets the raw encoded record. Empty value deletes it.
func (s *State) SetRawStorage(addr fresa.Address, key fresa.Bytes32, raw []byte) {
	s.sm.Put(storageKey{addr, key}, raw)
}

// EncodeStorage set storage value encoded by given enc method.
// Error returned by end will be absorbed by *Error type.
func (s *State) EncodeStorage(addr fresa.Address, key fresa.Bytes32, enc func() ([]byte, error)) error {
	raw, err := enc()
	if err != nil {
		return &Error{err}
	}
	s.SetRawStorage(addr, key, raw)
	return nil
}

// DecodeStorage get and decode storage value.
// Error returned by dec will be absorbed by *Error type.
func (s *State) DecodeStorage(addr fresa.Address, key fresa.Bytes32, dec func([]byte) error) error {
	raw, err := s.GetRawStorage(addr, key)
	if err != nil {
		return err
	}
	if err := dec(raw); err != nil {
		return &Error{err}
	}
	return nil
}

// NewCheckpoint makes a checkpoint of current state.
// It returns revision of the checkpoint.
func (s *State) NewCheckpoint() int {
	return s.sm.Push()
}

// RevertTo revert to checkpoint specified by revision.
func (s *State) RevertTo(revision int) {
	s.sm.PopTo(revision)
}

// Atomic runs fn against a checkpoint. Any error returned by fn reverts
// every change fn made, and is returned as is.
func (s *State) Atomic(fn func() error) error {
	cp := s.NewCheckpoint()
	if err := fn(); err != nil {
		s.RevertTo(cp)
		return err
	}
	return nil
}

// Stage makes a stage object to compute hash or commit all changes.
func (s *State) Stage() *Stage {
	changes := make(map[storageKey][]byte)
	s.sm.Journal(func(k storageKey, v []byte) bool {
		changes[k] = v
		return true
	})
	return newStage(changes)
}
