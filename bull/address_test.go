// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package bull

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAddress(t *testing.T) {
	addr, err := ParseAddress("0x7567d83b7b8d80addcb281a71d54fc7b3364ffed")
	require.NoError(t, err)
	assert.Equal(t, "0x7567d83b7b8d80addcb281a71d54fc7b3364ffed", addr.String())

	_, err = ParseAddress("7567d83b7b8d80addcb281a71d54fc7b3364ffed")
	assert.NoError(t, err)

	_, err = ParseAddress("1x7567d83b7b8d80addcb281a71d54fc7b3364ffed")
	assert.EqualError(t, err, "invalid prefix")

	_, err = ParseAddress("0x1234")
	assert.EqualError(t, err, "invalid length")
}

func TestAddressJSON(t *testing.T) {
	addr := BytesToAddress([]byte("acc1"))
	data, err := json.Marshal(&addr)
	require.NoError(t, err)

	var decoded Address
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, addr, decoded)
	assert.False(t, decoded.IsZero())
}

func TestBlake2b(t *testing.T) {
	a := Blake2b([]byte("bull"), []byte("post"))
	b := Blake2b([]byte("bullpost"))
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, Blake2b([]byte("bearpost")))

	parsed, err := ParseBytes32(a.String())
	require.NoError(t, err)
	assert.Equal(t, a, parsed)
}
