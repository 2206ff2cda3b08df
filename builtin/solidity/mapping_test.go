// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package solidity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fresacoin/fresa/fresa"
	"github.com/fresacoin/fresa/lvldb"
	"github.com/fresacoin/fresa/state"
	"github.com/fresacoin/fresa/test/datagen"
)

type TestStruct struct {
	Field1 uint64
	Field2 uint64
	Addr1  fresa.Address
	Bytes1 fresa.Bytes32
}

func newTestContext(t *testing.T) *Context {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewContext(fresa.Address{1}, state.New(db))
}

func TestMappingStruct(t *testing.T) {
	mapping := NewMapping[fresa.Bytes32, *TestStruct](newTestContext(t), fresa.Bytes32{1})

	key := datagen.RandBytes32()

	// absent
	got, err := mapping.Get(key)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, TestStruct{}, *got)

	ok, err := mapping.Exists(key)
	require.NoError(t, err)
	assert.False(t, ok)

	value := &TestStruct{
		Field1: 1,
		Field2: 2,
		Addr1:  datagen.RandAddress(),
		Bytes1: datagen.RandBytes32(),
	}
	require.NoError(t, mapping.Set(key, value))

	got, err = mapping.Get(key)
	require.NoError(t, err)
	assert.Equal(t, value, got)

	ok, err = mapping.Exists(key)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestMappingAddressKey(t *testing.T) {
	mapping := NewMapping[fresa.Address, uint64](newTestContext(t), fresa.Bytes32{2})

	a, b := datagen.RandAddress(), datagen.RandAddress()
	require.NoError(t, mapping.Set(a, 10))

	v, err := mapping.Get(a)
	require.NoError(t, err)
	assert.Equal(t, uint64(10), v)

	v, err = mapping.Get(b)
	require.NoError(t, err)
	assert.Zero(t, v)
}

func TestMappingsDoNotCollide(t *testing.T) {
	ctx := newTestContext(t)
	m1 := NewMapping[fresa.Bytes32, uint64](ctx, fresa.Bytes32{1})
	m2 := NewMapping[fresa.Bytes32, uint64](ctx, fresa.Bytes32{2})

	key := datagen.RandBytes32()
	require.NoError(t, m1.Set(key, 1))

	v, err := m2.Get(key)
	require.NoError(t, err)
	assert.Zero(t, v)
}

func TestValue(t *testing.T) {
	value := NewValue[*TestStruct](newTestContext(t), fresa.Bytes32{3})

	ok, err := value.Exists()
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, value.Set(&TestStruct{Field1: 7}))

	got, err := value.Get()
	require.NoError(t, err)
	assert.Equal(t, uint64(7), got.Field1)

	ok, err = value.Exists()
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestDecodeError(t *testing.T) {
	ctx := newTestContext(t)
	value := NewValue[uint64](ctx, fresa.Bytes32{4})

	ctx.State().SetRawStorage(ctx.Address(), fresa.Bytes32{4}, []byte{0xff, 0xff})
	_, err := value.Get()
	assert.Error(t, err)
	var stateErr *state.Error
	assert.ErrorAs(t, err, &stateErr)
}
