// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package vote

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bullchain/bullchain/builtin/bullposting/types"
	"github.com/bullchain/bullchain/builtin/solidity"
	"github.com/bullchain/bullchain/bull"
	"github.com/bullchain/bullchain/lvldb"
	"github.com/bullchain/bullchain/state"
)

func TestService(t *testing.T) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	defer db.Close()
	svc := New(solidity.NewContext(bull.Address{1}, state.New(db), nil))

	id := types.PostIDOf([]byte("content"))
	alice := Key{bull.Address{0xa}, id}
	bob := Key{bull.Address{0xb}, id}

	require.NoError(t, svc.Insert(alice, &Vote{Amount: 100, Direction: types.Bullish}))
	assert.Error(t, svc.Insert(alice, &Vote{Amount: 1}))
	assert.Error(t, svc.Update(bob, &Vote{Amount: 1}))

	v, err := svc.Get(bob)
	require.NoError(t, err)
	assert.Nil(t, v)

	require.NoError(t, svc.Update(alice, &Vote{Amount: 60, Direction: types.Bearish}))
	v, err = svc.Get(alice)
	require.NoError(t, err)
	assert.Equal(t, &Vote{Amount: 60, Direction: types.Bearish}, v)

	svc.Delete(alice)
	v, err = svc.Get(alice)
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestKeyBytes(t *testing.T) {
	k := Key{bull.Address{1}, bull.Bytes32{2}}
	b := k.Bytes()
	assert.Len(t, b, 52)
	assert.Equal(t, byte(1), b[0])
	assert.Equal(t, byte(2), b[20])
}
