// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package post

import (
	"github.com/pkg/errors"

	"github.com/bullchain/bullchain/builtin/bullposting/types"
	"github.com/bullchain/bullchain/builtin/solidity"
	"github.com/bullchain/bullchain/bull"
)

var slotPosts = bull.BytesToBytes32([]byte("posts"))

// Service is the post ledger.
type Service struct {
	posts *solidity.Mapping[types.PostID, *Post]
}

func New(sctx *solidity.Context) *Service {
	return &Service{
		posts: solidity.NewMapping[types.PostID, *Post](sctx, slotPosts),
	}
}

// Get returns the post, or nil if it does not exist.
func (s *Service) Get(id types.PostID) (*Post, error) {
	p, err := s.posts.Get(id)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get post")
	}
	return p, nil
}

func (s *Service) Exists(id types.PostID) (bool, error) {
	exists, err := s.posts.Exists(id)
	if err != nil {
		return false, errors.Wrap(err, "failed to check post")
	}
	return exists, nil
}

func (s *Service) Insert(id types.PostID, p *Post) error {
	if err := s.posts.Insert(id, p); err != nil {
		return errors.Wrap(err, "failed to insert post")
	}
	return nil
}

func (s *Service) Update(id types.PostID, p *Post) error {
	if err := s.posts.Update(id, p); err != nil {
		return errors.Wrap(err, "failed to update post")
	}
	return nil
}

func (s *Service) Delete(id types.PostID) {
	s.posts.Delete(id)
}
