// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package vote

import (
	"github.com/pkg/errors"

	"github.com/bullchain/bullchain/builtin/bullposting/types"
	"github.com/bullchain/bullchain/builtin/solidity"
	"github.com/bullchain/bullchain/bull"
)

var slotVotes = bull.BytesToBytes32([]byte("votes"))

// Vote is the stake one voter put on one post.
type Vote struct {
	Amount    uint64
	Direction types.Direction
}

// Key addresses the vote of a voter on a post.
type Key struct {
	Voter bull.Address
	Post  types.PostID
}

func (k Key) Bytes() []byte {
	b := make([]byte, 0, bull.AddressLength+32)
	b = append(b, k.Voter[:]...)
	return append(b, k.Post[:]...)
}

// Service is the vote ledger.
type Service struct {
	votes *solidity.Mapping[Key, *Vote]
}

func New(sctx *solidity.Context) *Service {
	return &Service{
		votes: solidity.NewMapping[Key, *Vote](sctx, slotVotes),
	}
}

// Get returns the vote, or nil if the voter has not voted on the post.
func (s *Service) Get(key Key) (*Vote, error) {
	v, err := s.votes.Get(key)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get vote")
	}
	return v, nil
}

func (s *Service) Insert(key Key, v *Vote) error {
	if err := s.votes.Insert(key, v); err != nil {
		return errors.Wrap(err, "failed to insert vote")
	}
	return nil
}

func (s *Service) Update(key Key, v *Vote) error {
	if err := s.votes.Update(key, v); err != nil {
		return errors.Wrap(err, "failed to update vote")
	}
	return nil
}

func (s *Service) Delete(key Key) {
	s.votes.Delete(key)
}
