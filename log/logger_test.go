// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package log

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"math/big"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTerminalHandler(t *testing.T) {
	out := new(bytes.Buffer)
	var lvl slog.LevelVar
	lvl.Set(slog.LevelInfo)
	l := NewLogger(NewTerminalHandlerWithLevel(out, &lvl, false))

	l.Debug("hidden")
	assert.Empty(t, out.String())

	l.Info("post submitted", "bond", uint64(100), "memo", "two words")
	s := out.String()
	assert.Contains(t, s, "INFO ")
	assert.Contains(t, s, "post submitted")
	assert.Contains(t, s, "bond=100")
	assert.Contains(t, s, `memo="two words"`)
}

func TestJSONHandlerReplacesBigValues(t *testing.T) {
	out := new(bytes.Buffer)
	var lvl slog.LevelVar
	lvl.Set(LevelTrace)
	l := NewLogger(JSONHandlerWithLevel(out, &lvl))

	l.Trace("amounts", "big", big.NewInt(12345), "u256", uint256.NewInt(678))

	var rec map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &rec))
	assert.Equal(t, "trace", rec["lvl"])
	assert.Equal(t, "12345", rec["big"])
	assert.Equal(t, "678", rec["u256"])
}

func TestWithContextFollowsRoot(t *testing.T) {
	prev := Root()
	defer SetDefault(prev)

	pkgLogger := WithContext("pkg", "test")

	out := new(bytes.Buffer)
	var lvl slog.LevelVar
	lvl.Set(slog.LevelDebug)
	SetDefault(NewLogger(NewTerminalHandlerWithLevel(out, &lvl, false)))

	pkgLogger.Debug("hello", "k", "v")
	assert.Contains(t, out.String(), "pkg=test")
	assert.Contains(t, out.String(), "k=v")
}

func TestFromLegacyLevel(t *testing.T) {
	assert.Equal(t, LevelCrit, FromLegacyLevel(0))
	assert.Equal(t, slog.LevelInfo, FromLegacyLevel(3))
	assert.Equal(t, LevelTrace, FromLegacyLevel(5))
	assert.Equal(t, LevelTrace, FromLegacyLevel(9))
	assert.Equal(t, LevelCrit, FromLegacyLevel(-1))
}
