// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package solidity

import (
	"reflect"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/fresacoin/fresa/fresa"
)

type Key interface {
	Bytes() []byte
}

// Mapping is a key/value storage abstraction for builtins, similar to the mapping in Solidity.
// Values are RLP encoded. An absent key decodes to the zero value, with pointers allocated.
type Mapping[K Key, V any] struct {
	context *Context
	basePos fresa.Bytes32
}

func NewMapping[K Key, V any](context *Context, pos fresa.Bytes32) *Mapping[K, V] {
	return &Mapping[K, V]{context: context, basePos: pos}
}

func (m *Mapping[K, V]) position(key K) fresa.Bytes32 {
	return fresa.Blake2b(key.Bytes(), m.basePos.Bytes())
}

func (m *Mapping[K, V]) Get(key K) (V, error) {
	return decode[V](m.context, m.position(key))
}

// Exists reports whether a value was ever set for key.
func (m *Mapping[K, V]) Exists(key K) (bool, error) {
	return exists(m.context, m.position(key))
}

func (m *Mapping[K, V]) Set(key K, value V) error {
	return encode(m.context, m.position(key), value)
}

// Value is a single RLP encoded record stored at a fixed position.
type Value[V any] struct {
	context *Context
	pos     fresa.Bytes32
}

func NewValue[V any](context *Context, pos fresa.Bytes32) *Value[V] {
	return &Value[V]{context: context, pos: pos}
}

func (v *Value[V]) Get() (V, error) {
	return decode[V](v.context, v.pos)
}

func (v *Value[V]) Exists() (bool, error) {
	return exists(v.context, v.pos)
}

func (v *Value[V]) Set(value V) error {
	return encode(v.context, v.pos, value)
}

func exists(ctx *Context, pos fresa.Bytes32) (bool, error) {
	raw, err := ctx.state.GetRawStorage(ctx.address, pos)
	if err != nil {
		return false, err
	}
	return len(raw) > 0, nil
}

func decode[V any](ctx *Context, pos fresa.Bytes32) (value V, err error) {
	err = ctx.state.DecodeStorage(ctx.address, pos, func(raw []byte) error {
		if reflect.ValueOf(value).Kind() == reflect.Ptr {
			value = reflect.New(reflect.TypeOf(value).Elem()).Interface().(V)
		}
		if len(raw) == 0 {
			return nil
		}
		return rlp.DecodeBytes(raw, &value)
	})
	return
}

func encode[V any](ctx *Context, pos fresa.Bytes32, value V) error {
	return ctx.state.EncodeStorage(ctx.address, pos, func() ([]byte, error) {
		return rlp.EncodeToBytes(value)
	})
}
