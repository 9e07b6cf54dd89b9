// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package bullposting

import (
	"github.com/pkg/errors"

	"github.com/bullchain/bullchain/builtin/bullposting/types"
	"github.com/bullchain/bullchain/builtin/bullposting/vote"
	"github.com/bullchain/bullchain/bull"
)

// Teardown reports the progress of one EndPost call.
type Teardown struct {
	ID       types.PostID
	Unfrozen uint32
	// Ended is true once the roster is drained and the post is deleted.
	Ended bool
}

// EndPost releases up to UnfreezeLimit voter stakes of a resolved post. Once no voters
// remain, the storage rent is released and the post is deleted; until then the call
// has to be repeated.
func (b *Bullposting) EndPost(caller bull.Address, content []byte) (*Teardown, error) {
	logger.Debug("ending post", "caller", caller)

	var td *Teardown
	err := b.atomic(func() error {
		if err := b.checkInput(content); err != nil {
			return err
		}
		id := types.PostIDOf(content)
		p, err := b.existingPost(id)
		if err != nil {
			return err
		}
		if !p.Resolved {
			return ErrVotingUnresolved
		}

		td = &Teardown{ID: id}
		for td.Unfrozen < b.cfg.UnfreezeLimit {
			voter, ok, err := b.roster.Pop(id)
			if err != nil {
				return err
			}
			if !ok {
				break
			}
			if err := b.unfreezeVote(id, voter); err != nil {
				return err
			}
			td.Unfrozen++
		}

		remaining, err := b.roster.Len(id)
		if err != nil {
			return err
		}
		if remaining > 0 {
			b.emit(&PostPartiallyEnded{ID: id})
			return nil
		}

		if _, err := b.holder.Release(HoldStorageRent, p.Submitter, b.cfg.StorageRent, true); err != nil {
			return err
		}
		b.postService.Delete(id)
		td.Ended = true
		b.emit(&PostEnded{ID: id})
		return nil
	})
	if err != nil {
		logger.Info("end post failed", "caller", caller, "error", err)
		return nil, err
	}

	logger.Info("ended post", "id", td.ID, "unfrozen", td.Unfrozen, "ended", td.Ended)
	return td, nil
}

// unfreezeVote removes the vote of a voter popped from the roster and returns its stake.
func (b *Bullposting) unfreezeVote(id types.PostID, voter bull.Address) error {
	key := vote.Key{Voter: voter, Post: id}
	v, err := b.voteService.Get(key)
	if err != nil {
		return err
	}
	if v == nil {
		return errors.Errorf("roster entry %v on post %v has no vote", voter, id)
	}
	if _, err := b.freezer.Thaw(voteFreeze(id), voter); err != nil {
		return err
	}
	b.voteService.Delete(key)
	if err := b.roster.Decrement(id); err != nil {
		return err
	}

	b.emit(&VoteUnfrozen{ID: id, Voter: voter, Amount: v.Amount})
	return nil
}
