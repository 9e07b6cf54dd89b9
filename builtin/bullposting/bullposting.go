// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package bullposting

import (
	"math"

	"github.com/pkg/errors"

	"github.com/bullchain/bullchain/builtin/balances"
	"github.com/bullchain/bullchain/builtin/bullposting/post"
	"github.com/bullchain/bullchain/builtin/bullposting/resolution"
	"github.com/bullchain/bullchain/builtin/bullposting/roster"
	"github.com/bullchain/bullchain/builtin/bullposting/types"
	"github.com/bullchain/bullchain/builtin/bullposting/vote"
	"github.com/bullchain/bullchain/builtin/solidity"
	"github.com/bullchain/bullchain/bull"
	"github.com/bullchain/bullchain/log"
	"github.com/bullchain/bullchain/state"
)

const (
	HoldPostBond    balances.HoldReason = "post-bond"
	HoldStorageRent balances.HoldReason = "storage-rent"

	freezeVote = "vote"
)

var logger = log.WithContext("pkg", "bullposting")

func SetLogger(l log.Logger) {
	logger = l
}

// Custodian is the balance ledger the module keeps stakes with.
type Custodian interface {
	balances.Inspector
	balances.Holder
	balances.Freezer
	balances.Minter
}

// Bullposting implements the post and vote lifecycle.
type Bullposting struct {
	cfg   Config
	state *state.State

	inspector balances.Inspector
	holder    balances.Holder
	freezer   balances.Freezer
	minter    balances.Minter

	postService *post.Service
	voteService *vote.Service
	roster      *roster.Roster
	engine      *resolution.Engine

	events []Event
}

// New create a new instance.
func New(addr bull.Address, state *state.State, custodian Custodian, cfg Config, charger solidity.UseGasFunc) *Bullposting {
	sctx := solidity.NewContext(addr, state, charger)
	return &Bullposting{
		cfg:   cfg,
		state: state,

		inspector: custodian,
		holder:    custodian,
		freezer:   custodian,
		minter:    custodian,

		postService: post.New(sctx),
		voteService: vote.New(sctx),
		roster:      roster.New(sctx, cfg.MaxVoters),
		engine:      resolution.NewEngine(cfg.rewardPolicy(), cfg.slashPolicy()),
	}
}

func voteFreeze(id types.PostID) balances.FreezeID {
	return balances.FreezeID{Reason: freezeVote, Subject: id}
}

//
// Getters - no state change
//

// Config returns the configuration the module runs with.
func (b *Bullposting) Config() Config {
	return b.cfg
}

// Events returns the events emitted by successful calls so far.
func (b *Bullposting) Events() []Event {
	return append([]Event(nil), b.events...)
}

// Post returns the post, or nil if it does not exist.
func (b *Bullposting) Post(id types.PostID) (*post.Post, error) {
	return b.postService.Get(id)
}

// Vote returns the vote of voter on the post, or nil.
func (b *Bullposting) Vote(voter bull.Address, id types.PostID) (*vote.Vote, error) {
	return b.voteService.Get(vote.Key{Voter: voter, Post: id})
}

// Voters returns the roster of the post in voting order.
func (b *Bullposting) Voters(id types.PostID) ([]bull.Address, error) {
	return b.roster.List(id)
}

// VoteCount returns the number of live votes on the post.
func (b *Bullposting) VoteCount(id types.PostID) (uint32, error) {
	return b.roster.Count(id)
}

//
// Setters - state change
//

// atomic runs fn in a state checkpoint. On error, both the state changes and
// the events of fn are discarded.
func (b *Bullposting) atomic(fn func() error) error {
	checkpoint := b.state.NewCheckpoint()
	emitted := len(b.events)
	if err := fn(); err != nil {
		b.state.RevertTo(checkpoint)
		b.events = b.events[:emitted]
		return err
	}
	return nil
}

func (b *Bullposting) emit(e Event) {
	b.events = append(b.events, e)
}

func (b *Bullposting) checkInput(content []byte) error {
	if len(content) == 0 {
		return ErrEmptyInput
	}
	if uint64(len(content)) > uint64(b.cfg.MaxInputLength) {
		return ErrInputTooLong
	}
	return nil
}

// existingPost returns the post or ErrPostDoesNotExist.
func (b *Bullposting) existingPost(id types.PostID) (*post.Post, error) {
	p, err := b.postService.Get(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrPostDoesNotExist
	}
	return p, nil
}

// custody maps a refused balance operation to the module's error kind.
func custody(err error) error {
	if errors.Is(err, balances.ErrInsufficientBalance) {
		return ErrInsufficientFreeBalance
	}
	return err
}

// SubmitPost bonds a new post. The id of the post is derived from content.
func (b *Bullposting) SubmitPost(submitter bull.Address, content []byte, bond uint64, blockNum uint32) error {
	logger.Debug("submitting post", "submitter", submitter, "bond", bond, "length", len(content))

	var id types.PostID
	err := b.atomic(func() error {
		if err := b.checkInput(content); err != nil {
			return err
		}
		if bond < b.cfg.BondMinimum {
			return ErrBondTooLow
		}

		id = types.PostIDOf(content)
		exists, err := b.postService.Exists(id)
		if err != nil {
			return err
		}
		if exists {
			return ErrPostAlreadyExists
		}

		// bond and rent must each fit the spendable balance
		reducible, err := b.inspector.ReducibleBalance(submitter, false)
		if err != nil {
			return err
		}
		if reducible < bond || reducible < b.cfg.StorageRent {
			return ErrInsufficientFreeBalance
		}
		if err := b.holder.Hold(HoldPostBond, submitter, bond); err != nil {
			return custody(err)
		}
		if err := b.holder.Hold(HoldStorageRent, submitter, b.cfg.StorageRent); err != nil {
			return custody(err)
		}

		until := uint64(blockNum) + uint64(b.cfg.VotingPeriod)
		if until > math.MaxUint32 {
			until = math.MaxUint32
		}
		p := &post.Post{
			Submitter:   submitter,
			Bond:        bond,
			VotingUntil: uint32(until),
		}
		if err := b.postService.Insert(id, p); err != nil {
			return err
		}

		b.emit(&PostSubmitted{ID: id, Submitter: submitter, Bond: bond, VotingUntil: p.VotingUntil})
		return nil
	})
	if err != nil {
		logger.Info("submit post failed", "submitter", submitter, "error", err)
		return err
	}

	logger.Info("submitted post", "id", id, "submitter", submitter)
	return nil
}

// votable loads a post that accepts votes at blockNum.
func (b *Bullposting) votable(content []byte, amount uint64, direction types.Direction, blockNum uint32) (types.PostID, *post.Post, error) {
	if err := b.checkInput(content); err != nil {
		return types.PostID{}, nil, err
	}
	if amount < b.cfg.VoteMinimum {
		return types.PostID{}, nil, ErrVoteTooLow
	}
	if !direction.Valid() {
		return types.PostID{}, nil, ErrInvalidDirection
	}
	id := types.PostIDOf(content)
	p, err := b.existingPost(id)
	if err != nil {
		return id, nil, err
	}
	if !p.IsVoting(blockNum) {
		return id, nil, ErrVotingEnded
	}
	return id, p, nil
}

// checkStake requires the total balance of voter to exceed amount.
func (b *Bullposting) checkStake(voter bull.Address, amount uint64) error {
	total, err := b.inspector.TotalBalance(voter)
	if err != nil {
		return err
	}
	if amount >= total {
		return ErrInsufficientFreeBalance
	}
	return nil
}

// SubmitVote stakes amount on the post with the given content.
func (b *Bullposting) SubmitVote(voter bull.Address, content []byte, amount uint64, direction types.Direction, blockNum uint32) error {
	logger.Debug("submitting vote", "voter", voter, "amount", amount, "direction", direction)

	var id types.PostID
	err := b.atomic(func() error {
		var (
			p   *post.Post
			err error
		)
		if id, p, err = b.votable(content, amount, direction, blockNum); err != nil {
			return err
		}

		count, err := b.roster.Count(id)
		if err != nil {
			return err
		}
		if count >= b.cfg.MaxVoters {
			return ErrVotersMaxed
		}

		key := vote.Key{Voter: voter, Post: id}
		existing, err := b.voteService.Get(key)
		if err != nil {
			return err
		}
		if existing != nil {
			return ErrAlreadyVoted
		}
		if err := b.checkStake(voter, amount); err != nil {
			return err
		}

		if err := b.freezer.ExtendFreeze(voteFreeze(id), voter, amount); err != nil {
			return custody(err)
		}
		if err := b.voteService.Insert(key, &vote.Vote{Amount: amount, Direction: direction}); err != nil {
			return err
		}
		if err := b.roster.Push(id, voter); err != nil {
			if errors.Is(err, roster.ErrFull) {
				return ErrVotersMaxed
			}
			return err
		}
		if err := b.roster.Increment(id); err != nil {
			return err
		}
		if err := p.Add(direction, amount); err != nil {
			return ErrTallyOverflow
		}
		if err := b.postService.Update(id, p); err != nil {
			return err
		}

		b.emit(&VoteSubmitted{ID: id, Voter: voter, Amount: amount, Direction: direction})
		return nil
	})
	if err != nil {
		logger.Info("submit vote failed", "voter", voter, "error", err)
		return err
	}

	logger.Info("submitted vote", "id", id, "voter", voter)
	return nil
}

// UpdateVote replaces the vote of voter. The freeze is resized to the new amount
// and the tallies are moved from the old direction to the new one.
func (b *Bullposting) UpdateVote(voter bull.Address, content []byte, amount uint64, direction types.Direction, blockNum uint32) error {
	logger.Debug("updating vote", "voter", voter, "amount", amount, "direction", direction)

	var id types.PostID
	err := b.atomic(func() error {
		var (
			p   *post.Post
			err error
		)
		if id, p, err = b.votable(content, amount, direction, blockNum); err != nil {
			return err
		}

		key := vote.Key{Voter: voter, Post: id}
		prev, err := b.voteService.Get(key)
		if err != nil {
			return err
		}
		if prev == nil {
			return ErrVoteDoesNotExist
		}
		if err := b.checkStake(voter, amount); err != nil {
			return err
		}

		if err := b.freezer.SetFreeze(voteFreeze(id), voter, amount); err != nil {
			return custody(err)
		}
		if err := b.voteService.Update(key, &vote.Vote{Amount: amount, Direction: direction}); err != nil {
			return err
		}
		if err := p.Remove(prev.Direction, prev.Amount); err != nil {
			return errors.Wrap(err, "tally out of sync with votes")
		}
		if err := p.Add(direction, amount); err != nil {
			return ErrTallyOverflow
		}
		if err := b.postService.Update(id, p); err != nil {
			return err
		}

		b.emit(&VoteUpdated{ID: id, Voter: voter, Amount: amount, Direction: direction})
		return nil
	})
	if err != nil {
		logger.Info("update vote failed", "voter", voter, "error", err)
		return err
	}

	logger.Info("updated vote", "id", id, "voter", voter)
	return nil
}

// ResolveVoting settles a post once its voting window has passed: the bond is released,
// then the submitter is rewarded or slashed according to the tallies.
func (b *Bullposting) ResolveVoting(caller bull.Address, content []byte, blockNum uint32) (*VotingResolved, error) {
	logger.Debug("resolving voting", "caller", caller)

	var resolved *VotingResolved
	err := b.atomic(func() error {
		if err := b.checkInput(content); err != nil {
			return err
		}
		id := types.PostIDOf(content)
		p, err := b.existingPost(id)
		if err != nil {
			return err
		}
		if p.IsVoting(blockNum) {
			return ErrVotingStillOngoing
		}
		if p.Resolved {
			return ErrAlreadyResolved
		}

		p.Resolved = true
		if err := b.postService.Update(id, p); err != nil {
			return err
		}
		if _, err := b.holder.Release(HoldPostBond, p.Submitter, p.Bond, true); err != nil {
			return err
		}

		res := b.engine.Resolve(p.BullVotes, p.BearVotes, p.Bond)
		resolved = &VotingResolved{ID: id, Submitter: p.Submitter, Result: res.Outcome}
		if res.Reward > 0 {
			if err := b.minter.MintInto(p.Submitter, res.Reward); err != nil {
				return err
			}
			resolved.Rewarded = res.Reward
		}
		if res.Slash > 0 {
			burned, err := b.minter.BurnFrom(p.Submitter, res.Slash, true, true)
			if err != nil {
				return err
			}
			resolved.Slashed = burned
		}

		b.emit(resolved)
		return nil
	})
	if err != nil {
		logger.Info("resolve voting failed", "caller", caller, "error", err)
		return nil, err
	}

	logger.Info("resolved voting", "id", resolved.ID, "result", resolved.Result,
		"rewarded", resolved.Rewarded,
		"slashed", resolved.Slashed,
	)
	return resolved, nil
}
