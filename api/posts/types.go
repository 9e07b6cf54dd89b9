// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package posts

import (
	"github.com/bullchain/bullchain/builtin/bullposting/resolution"
	"github.com/bullchain/bullchain/builtin/bullposting/types"
	"github.com/bullchain/bullchain/bull"
)

type Post struct {
	ID          bull.Bytes32 `json:"id"`
	Submitter   bull.Address `json:"submitter"`
	Bond        uint64       `json:"bond"`
	BullVotes   uint64       `json:"bullVotes"`
	BearVotes   uint64       `json:"bearVotes"`
	VotingUntil uint32       `json:"votingUntil"`
	Voting      bool         `json:"voting"`
	Resolved    bool         `json:"resolved"`
	VoteCount   uint32       `json:"voteCount"`
	// outcome the tallies lead to at this point
	Leading types.Direction `json:"leading"`
}

type Vote struct {
	Voter     bull.Address    `json:"voter"`
	Amount    uint64          `json:"amount"`
	Direction types.Direction `json:"direction"`
}

type Voters struct {
	Voters []bull.Address `json:"voters"`
}

type Hash struct {
	ID bull.Bytes32 `json:"id"`
}

func leading(bullVotes, bearVotes uint64) types.Direction {
	return resolution.Outcome(bullVotes, bearVotes)
}
