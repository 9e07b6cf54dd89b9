// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostIDOf(t *testing.T) {
	assert.Equal(t, PostIDOf([]byte("gm")), PostIDOf([]byte("gm")))
	assert.NotEqual(t, PostIDOf([]byte("gm")), PostIDOf([]byte("gn")))
}

func TestDirectionText(t *testing.T) {
	for _, d := range []Direction{Bullish, Bearish, Tie} {
		b, err := json.Marshal(d)
		require.NoError(t, err)

		var parsed Direction
		require.NoError(t, json.Unmarshal(b, &parsed))
		assert.Equal(t, d, parsed)
	}

	d, err := ParseDirection("BULL")
	require.NoError(t, err)
	assert.Equal(t, Bullish, d)

	_, err = ParseDirection("sideways")
	assert.Error(t, err)

	_, err = json.Marshal(Direction(7))
	assert.Error(t, err)
	assert.False(t, Direction(3).Valid())
}
