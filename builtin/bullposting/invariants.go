// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package bullposting

import (
	"github.com/pkg/errors"

	"github.com/bullchain/bullchain/builtin/bullposting/types"
	"github.com/bullchain/bullchain/bull"
)

// CheckInvariants verifies the bookkeeping of a post: the vote count equals the roster
// length, every voter on the roster holds exactly one vote, and the tallies equal the
// sum of the live non-tie votes. A non-nil error indicates a logic bug.
func (b *Bullposting) CheckInvariants(id types.PostID) error {
	count, err := b.roster.Count(id)
	if err != nil {
		return err
	}
	voters, err := b.roster.List(id)
	if err != nil {
		return err
	}
	if int(count) != len(voters) {
		return errors.Errorf("vote count %d != roster length %d", count, len(voters))
	}

	p, err := b.postService.Get(id)
	if err != nil {
		return err
	}
	if p == nil {
		if len(voters) > 0 {
			return errors.New("roster outlived its post")
		}
		return nil
	}

	var bullSum, bearSum uint64
	seen := make(map[bull.Address]bool, len(voters))
	for _, voter := range voters {
		if seen[voter] {
			return errors.Errorf("voter %v appears twice", voter)
		}
		seen[voter] = true

		v, err := b.Vote(voter, id)
		if err != nil {
			return err
		}
		if v == nil {
			return errors.Errorf("voter %v has no vote", voter)
		}
		switch v.Direction {
		case types.Bullish:
			bullSum += v.Amount
		case types.Bearish:
			bearSum += v.Amount
		}
	}
	if !p.Resolved && (bullSum != p.BullVotes || bearSum != p.BearVotes) {
		return errors.Errorf("tallies %d/%d != votes %d/%d", p.BullVotes, p.BearVotes, bullSum, bearSum)
	}
	return nil
}
