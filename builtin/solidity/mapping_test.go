// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package solidity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bullchain/bullchain/builtin/gascharger"
	"github.com/bullchain/bullchain/bull"
	"github.com/bullchain/bullchain/lvldb"
	"github.com/bullchain/bullchain/state"
)

type TestStruct struct {
	Field1 uint64
	Field2 uint64
	Addr1  bull.Address
	Bytes1 bull.Bytes32
}

func newTestContext(t *testing.T) (*Context, *gascharger.Charger) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	charger := gascharger.New(0)
	return NewContext(bull.Address{1}, state.New(db), charger.Charge), charger
}

func TestMappingInsertGetUpdate(t *testing.T) {
	ctx, charger := newTestContext(t)
	m := NewMapping[bull.Bytes32, *TestStruct](ctx, bull.Bytes32{1})
	key := bull.Blake2b([]byte("key"))

	v, err := m.Get(key)
	require.NoError(t, err)
	assert.Nil(t, v)
	assert.Equal(t, bull.SloadWeight, charger.TotalGas())

	val := &TestStruct{Field1: 100, Field2: 200, Addr1: bull.Address{2}, Bytes1: bull.Bytes32{3}}
	require.NoError(t, m.Insert(key, val))
	assert.ErrorIs(t, m.Insert(key, val), ErrKeyExists)

	got, err := m.Get(key)
	require.NoError(t, err)
	assert.Equal(t, val, got)

	val.Field1 = 1
	require.NoError(t, m.Update(key, val))
	got, err = m.Get(key)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), got.Field1)

	m.Delete(key)
	exists, err := m.Exists(key)
	require.NoError(t, err)
	assert.False(t, exists)
	assert.ErrorIs(t, m.Update(key, val), ErrKeyNotFound)
}

func TestMappingSeparatePositions(t *testing.T) {
	ctx, _ := newTestContext(t)
	a := NewMapping[bull.Bytes32, uint64](ctx, bull.Bytes32{1})
	b := NewMapping[bull.Bytes32, uint64](ctx, bull.Bytes32{2})
	key := bull.Bytes32{9}

	require.NoError(t, a.Upsert(key, 7))
	v, err := b.Get(key)
	require.NoError(t, err)
	assert.Zero(t, v)
	v, err = a.Get(key)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), v)
}

func TestRaw(t *testing.T) {
	ctx, charger := newTestContext(t)
	r := NewRaw[uint64](ctx, bull.Bytes32{5})

	v, err := r.Get()
	require.NoError(t, err)
	assert.Zero(t, v)

	require.NoError(t, r.Upsert(42))
	v, err = r.Get()
	require.NoError(t, err)
	assert.Equal(t, uint64(42), v)
	assert.Equal(t, 2*bull.SloadWeight+bull.SstoreResetWeight, charger.TotalGas())
}
