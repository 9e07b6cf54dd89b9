// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package post

import (
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/pkg/errors"

	"github.com/bullchain/bullchain/builtin/bullposting/types"
	"github.com/bullchain/bullchain/bull"
)

var (
	errTallyOverflow  = errors.New("tally overflow")
	errTallyUnderflow = errors.New("tally underflow")
)

// Post is the stored record of a submitted post.
type Post struct {
	Submitter   bull.Address
	Bond        uint64
	BullVotes   uint64
	BearVotes   uint64
	VotingUntil uint32
	Resolved    bool
}

// IsVoting reports whether votes are accepted at the given block.
func (p *Post) IsVoting(blockNum uint32) bool {
	return blockNum < p.VotingUntil
}

// tally returns the tally fed by direction, or nil for Tie.
func (p *Post) tally(direction types.Direction) *uint64 {
	switch direction {
	case types.Bullish:
		return &p.BullVotes
	case types.Bearish:
		return &p.BearVotes
	}
	return nil
}

// Add adds amount to the tally fed by direction. Tie feeds no tally.
func (p *Post) Add(direction types.Direction, amount uint64) error {
	t := p.tally(direction)
	if t == nil {
		return nil
	}
	sum, overflow := math.SafeAdd(*t, amount)
	if overflow {
		return errTallyOverflow
	}
	*t = sum
	return nil
}

// Remove takes amount out of the tally fed by direction. Tie feeds no tally.
func (p *Post) Remove(direction types.Direction, amount uint64) error {
	t := p.tally(direction)
	if t == nil {
		return nil
	}
	diff, underflow := math.SafeSub(*t, amount)
	if underflow {
		return errTallyUnderflow
	}
	*t = diff
	return nil
}
