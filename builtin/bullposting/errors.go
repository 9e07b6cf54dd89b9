// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package bullposting

import (
	"github.com/bullchain/bullchain/builtin/reverts"
)

var (
	ErrEmptyInput              = reverts.New("EmptyInput", "content is empty")
	ErrInputTooLong            = reverts.New("InputTooLong", "content is too long")
	ErrBondTooLow              = reverts.New("BondTooLow", "bond is below minimum")
	ErrVoteTooLow              = reverts.New("VoteTooLow", "vote is below minimum")
	ErrInvalidDirection        = reverts.New("InvalidDirection", "invalid vote direction")
	ErrPostAlreadyExists       = reverts.New("PostAlreadyExists", "post already exists")
	ErrInsufficientFreeBalance = reverts.New("InsufficientFreeBalance", "insufficient free balance")
	ErrPostDoesNotExist        = reverts.New("PostDoesNotExist", "post does not exist")
	ErrVotingEnded             = reverts.New("VotingEnded", "voting has ended")
	ErrVotersMaxed             = reverts.New("VotersMaxed", "maximum number of voters reached")
	ErrAlreadyVoted            = reverts.New("AlreadyVoted", "already voted on post")
	ErrVoteDoesNotExist        = reverts.New("VoteDoesNotExist", "vote does not exist")
	ErrVotingStillOngoing      = reverts.New("VotingStillOngoing", "voting is still ongoing")
	ErrAlreadyResolved         = reverts.New("AlreadyResolved", "voting is already resolved")
	ErrVotingUnresolved        = reverts.New("VotingUnresolved", "voting is not resolved")
	ErrTallyOverflow           = reverts.New("TallyOverflow", "vote tally overflow")
)
