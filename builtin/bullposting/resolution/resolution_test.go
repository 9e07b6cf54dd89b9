// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package resolution

import (
	"testing"

	fuzz "github.com/google/gofuzz"
	"github.com/stretchr/testify/assert"

	"github.com/bullchain/bullchain/builtin/bullposting/types"
)

func TestOutcome(t *testing.T) {
	assert.Equal(t, types.Bullish, Outcome(2, 1))
	assert.Equal(t, types.Bearish, Outcome(1, 2))
	assert.Equal(t, types.Tie, Outcome(50, 50))
	assert.Equal(t, types.Tie, Outcome(0, 0))
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name   string
		engine *Engine
		bull   uint64
		bear   uint64
		bond   uint64
		want   Result
	}{
		{
			"coefficient reward at 100 percent pays the bond",
			NewEngine(Coefficient{Percent: 100}, Coefficient{Percent: 100, Capped: true}),
			100, 0, 100,
			Result{Outcome: types.Bullish, Reward: 100},
		},
		{
			"coefficient reward is clamped to 100 percent",
			NewEngine(Coefficient{Percent: 250, Capped: true}, Coefficient{Percent: 100, Capped: true}),
			1, 0, 100,
			Result{Outcome: types.Bullish, Reward: 100},
		},
		{
			"flat reward",
			NewEngine(Flat{Value: 500}, Flat{Value: 500, Capped: true}),
			10, 9, 100,
			Result{Outcome: types.Bullish, Reward: 500},
		},
		{
			"flat slash is capped at the bond",
			NewEngine(Flat{Value: 500}, Flat{Value: 500, Capped: true}),
			0, 60, 100,
			Result{Outcome: types.Bearish, Slash: 100},
		},
		{
			"flat slash below the bond",
			NewEngine(Flat{Value: 500}, Flat{Value: 30, Capped: true}),
			0, 60, 100,
			Result{Outcome: types.Bearish, Slash: 30},
		},
		{
			"coefficient slash is clamped to 100 percent",
			NewEngine(Coefficient{Percent: 100}, Coefficient{Percent: 300, Capped: true}),
			0, 60, 100,
			Result{Outcome: types.Bearish, Slash: 100},
		},
		{
			"coefficient slash",
			NewEngine(Coefficient{Percent: 100}, Coefficient{Percent: 25, Capped: true}),
			1, 60, 80,
			Result{Outcome: types.Bearish, Slash: 20},
		},
		{
			"tie pays nothing",
			NewEngine(Flat{Value: 500}, Flat{Value: 500, Capped: true}),
			50, 50, 100,
			Result{Outcome: types.Tie},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.engine.Resolve(tt.bull, tt.bear, tt.bond))
		})
	}
}

func TestPercentOf(t *testing.T) {
	assert.Equal(t, uint64(0), percentOf(0, 50))
	assert.Equal(t, uint64(50), percentOf(100, 50))
	// 33 * 3 / 100 = 0.99
	assert.Equal(t, uint64(1), percentOf(33, 3))
	// 50 * 1 / 100 = 0.5 rounds down
	assert.Equal(t, uint64(0), percentOf(50, 1))
	// 51 * 1 / 100 = 0.51 rounds up
	assert.Equal(t, uint64(1), percentOf(51, 1))
	assert.Equal(t, ^uint64(0), percentOf(^uint64(0), 200))
}

func TestSlashNeverExceedsBond(t *testing.T) {
	f := fuzz.New().NilChance(0)
	for i := 0; i < 1000; i++ {
		var (
			bond, flat uint64
			percent    uint32
		)
		f.Fuzz(&bond)
		f.Fuzz(&flat)
		f.Fuzz(&percent)

		for _, slash := range []Policy{Flat{Value: flat, Capped: true}, Coefficient{Percent: percent, Capped: true}} {
			res := NewEngine(Flat{}, slash).Resolve(0, 1, bond)
			assert.LessOrEqual(t, res.Slash, bond)
			assert.Zero(t, res.Reward)
		}
		assert.Equal(t, min(bond, flat), NewEngine(Flat{}, Flat{Value: flat, Capped: true}).Resolve(0, 1, bond).Slash)
	}
}
