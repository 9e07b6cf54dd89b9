// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package bullposting

import (
	"github.com/bullchain/bullchain/builtin/bullposting/types"
	"github.com/bullchain/bullchain/bull"
)

// Event is emitted by a successful call.
type Event interface {
	Name() string
	Post() types.PostID
	// Account is the account the event concerns, zero if none.
	Account() bull.Address
}

type PostSubmitted struct {
	ID          types.PostID `json:"id"`
	Submitter   bull.Address `json:"submitter"`
	Bond        uint64       `json:"bond"`
	VotingUntil uint32       `json:"votingUntil"`
}

type VoteSubmitted struct {
	ID        types.PostID    `json:"id"`
	Voter     bull.Address    `json:"voter"`
	Amount    uint64          `json:"amount"`
	Direction types.Direction `json:"direction"`
}

type VoteUpdated struct {
	ID        types.PostID    `json:"id"`
	Voter     bull.Address    `json:"voter"`
	Amount    uint64          `json:"amount"`
	Direction types.Direction `json:"direction"`
}

type VotingResolved struct {
	ID        types.PostID    `json:"id"`
	Submitter bull.Address    `json:"submitter"`
	Result    types.Direction `json:"result"`
	Rewarded  uint64          `json:"rewarded"`
	Slashed   uint64          `json:"slashed"`
}

type VoteUnfrozen struct {
	ID     types.PostID `json:"id"`
	Voter  bull.Address `json:"account"`
	Amount uint64       `json:"amount"`
}

type PostPartiallyEnded struct {
	ID types.PostID `json:"id"`
}

type PostEnded struct {
	ID types.PostID `json:"id"`
}

func (e *PostSubmitted) Name() string          { return "PostSubmitted" }
func (e *PostSubmitted) Post() types.PostID    { return e.ID }
func (e *PostSubmitted) Account() bull.Address { return e.Submitter }

func (e *VoteSubmitted) Name() string          { return "VoteSubmitted" }
func (e *VoteSubmitted) Post() types.PostID    { return e.ID }
func (e *VoteSubmitted) Account() bull.Address { return e.Voter }

func (e *VoteUpdated) Name() string          { return "VoteUpdated" }
func (e *VoteUpdated) Post() types.PostID    { return e.ID }
func (e *VoteUpdated) Account() bull.Address { return e.Voter }

func (e *VotingResolved) Name() string          { return "VotingResolved" }
func (e *VotingResolved) Post() types.PostID    { return e.ID }
func (e *VotingResolved) Account() bull.Address { return e.Submitter }

func (e *VoteUnfrozen) Name() string          { return "VoteUnfrozen" }
func (e *VoteUnfrozen) Post() types.PostID    { return e.ID }
func (e *VoteUnfrozen) Account() bull.Address { return e.Voter }

func (e *PostPartiallyEnded) Name() string          { return "PostPartiallyEnded" }
func (e *PostPartiallyEnded) Post() types.PostID    { return e.ID }
func (e *PostPartiallyEnded) Account() bull.Address { return bull.Address{} }

func (e *PostEnded) Name() string          { return "PostEnded" }
func (e *PostEnded) Post() types.PostID    { return e.ID }
func (e *PostEnded) Account() bull.Address { return bull.Address{} }
