// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package resolution

import (
	"github.com/bullchain/bullchain/builtin/bullposting/types"
)

// Result is the economic outcome of a post. Only one of Reward and Slash is non-zero.
type Result struct {
	Outcome types.Direction
	Reward  uint64
	Slash   uint64
}

// Engine maps tallies to a result. It holds no state.
type Engine struct {
	reward Policy
	slash  Policy
}

func NewEngine(reward, slash Policy) *Engine {
	return &Engine{reward: reward, slash: slash}
}

// Outcome compares the tallies. Equal tallies, including none, are a tie.
func Outcome(bull, bear uint64) types.Direction {
	switch {
	case bull > bear:
		return types.Bullish
	case bear > bull:
		return types.Bearish
	default:
		return types.Tie
	}
}

// Resolve computes the reward or slash owed by the submitter of a post.
func (e *Engine) Resolve(bull, bear, bond uint64) Result {
	outcome := Outcome(bull, bear)
	switch outcome {
	case types.Bullish:
		return Result{Outcome: outcome, Reward: e.reward.Amount(bond)}
	case types.Bearish:
		// never slash more than was bonded
		slash := e.slash.Amount(bond)
		if slash > bond {
			slash = bond
		}
		return Result{Outcome: outcome, Slash: slash}
	default:
		return Result{Outcome: outcome}
	}
}
