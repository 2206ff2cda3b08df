// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"bytes"
	"encoding/binary"
	"io"
	"sort"

	"github.com/pkg/errors"

	"github.com/fresacoin/fresa/fresa"
	"github.com/fresacoin/fresa/kv"
)

type change struct {
	key   []byte
	value []byte
}

// Stage abstracts changes on the record state.
type Stage struct {
	changes []change
}

func newStage(m map[storageKey][]byte) *Stage {
	changes := make([]change, 0, len(m))
	for k, v := range m {
		changes = append(changes, change{k.bytes(), v})
	}
	sort.Slice(changes, func(i, j int) bool {
		return bytes.Compare(changes[i].key, changes[j].key) < 0
	})
	return &Stage{changes}
}

// Len returns the count of changed records.
func (s *Stage) Len() int {
	return len(s.changes)
}

// Hash computes the root chained on the parent root.
// Each value is length prefixed, keys are fixed size.
func (s *Stage) Hash(parent fresa.Bytes32) fresa.Bytes32 {
	return fresa.Blake2bFn(func(w io.Writer) {
		var n [4]byte
		w.Write(parent[:])
		for _, c := range s.changes {
			binary.BigEndian.PutUint32(n[:], uint32(len(c.value)))
			w.Write(c.key)
			w.Write(n[:])
			w.Write(c.value)
		}
	})
}

// Commit writes all changes and the new root in one batch.
func (s *Stage) Commit(store kv.Store, parent fresa.Bytes32) (fresa.Bytes32, error) {
	root := s.Hash(parent)

	batch := store.NewBatch()
	putter := storageBucket.NewPutter(batch)
	for _, c := range s.changes {
		var err error
		if len(c.value) == 0 {
			err = putter.Delete(c.key)
		} else {
			err = putter.Put(c.key, c.value)
		}
		if err != nil {
			return fresa.Bytes32{}, errors.Wrap(err, "stage change")
		}
	}
	if err := batch.Put([]byte(RootKey), root[:]); err != nil {
		return fresa.Bytes32{}, errors.Wrap(err, "stage root")
	}
	if err := batch.Write(); err != nil {
		return fresa.Bytes32{}, errors.Wrap(err, "commit stage")
	}
	metricStorageCounter().AddWithLabel(int64(len(s.changes)), map[string]string{"type": "commit"})
	return root, nil
}

// ReadRoot reads the last committed root. Zero root if nothing committed.
func ReadRoot(store kv.Getter) (fresa.Bytes32, error) {
	v, err := store.Get([]byte(RootKey))
	if err != nil {
		if store.IsNotFound(err) {
			return fresa.Bytes32{}, nil
		}
		return fresa.Bytes32{}, errors.Wrap(err, "read root")
	}
	return fresa.BytesToBytes32(v), nil
}
