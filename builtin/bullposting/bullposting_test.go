// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package bullposting

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bullchain/bullchain/builtin/bullposting/types"
	"github.com/bullchain/bullchain/builtin/gascharger"
	"github.com/bullchain/bullchain/builtin/reverts"
	"github.com/bullchain/bullchain/bull"
)

func TestSubmitPost(t *testing.T) {
	env := newTestEnv(t, DefaultConfig())

	require.NoError(t, env.bp.SubmitPost(alice, []byte("gm"), 100, 5))

	p := env.post("gm")
	require.NotNil(t, p)
	assert.Equal(t, &postView{Submitter: alice, Bond: 100, VotingUntil: 1005}, p)

	acc := env.account(alice)
	assert.Equal(t, uint64(801), acc.Free)
	assert.Equal(t, uint64(100), acc.Holds[HoldPostBond])
	assert.Equal(t, uint64(100), acc.Holds[HoldStorageRent])

	events := env.bp.Events()
	require.Len(t, events, 1)
	assert.Equal(t, &PostSubmitted{ID: types.PostIDOf([]byte("gm")), Submitter: alice, Bond: 100, VotingUntil: 1005}, events[0])
	env.checkInvariants("gm")
}

func TestSubmitPostErrors(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxInputLength = 4

	tests := []struct {
		name    string
		content string
		bond    uint64
		want    error
	}{
		{"empty input", "", 100, ErrEmptyInput},
		{"empty input is checked before bond", "", 0, ErrEmptyInput},
		{"too long", "hello", 100, ErrInputTooLong},
		{"too long is checked before bond", "hello", 0, ErrInputTooLong},
		{"bond below minimum", "gm", 49, ErrBondTooLow},
		{"bond exceeds balance", "gm", 2000, ErrInsufficientFreeBalance},
		{"bond plus rent exceeds balance", "gm", 1000, ErrInsufficientFreeBalance},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t, cfg)
			err := env.bp.SubmitPost(alice, []byte(tt.content), tt.bond, 0)
			assert.ErrorIs(t, err, tt.want)
			assert.True(t, reverts.IsRevertErr(err))

			// nothing is left behind
			acc := env.account(alice)
			assert.Equal(t, uint64(endowment), acc.Free)
			assert.Empty(t, acc.Holds)
			assert.Empty(t, env.bp.Events())
			assert.Nil(t, env.post(tt.content))
		})
	}
}

func TestSubmitPostTwice(t *testing.T) {
	env := newTestEnv(t, DefaultConfig())
	require.NoError(t, env.bp.SubmitPost(alice, []byte("gm"), 100, 0))

	for _, bond := range []uint64{50, 100, 5000} {
		assert.ErrorIs(t, env.bp.SubmitPost(alice, []byte("gm"), bond, 0), ErrPostAlreadyExists)
		assert.ErrorIs(t, env.bp.SubmitPost(bob, []byte("gm"), bond, 0), ErrPostAlreadyExists)
	}
	assert.Len(t, env.bp.Events(), 1)
	assert.Equal(t, uint64(endowment), env.account(bob).Free)
}

func TestSubmitVote(t *testing.T) {
	ts := newTestSequence(t, DefaultConfig()).
		SubmitPost(alice, "gm", 100).
		Vote(bob, "gm", 100, types.Bullish).
		Vote(charlie, "gm", 200, types.Tie).
		Vote(dave, "gm", 60, types.Bearish)
	env := ts.env

	p := env.post("gm")
	assert.Equal(t, uint64(100), p.BullVotes)
	assert.Equal(t, uint64(60), p.BearVotes)
	assert.Equal(t, uint32(3), env.count("gm"))
	assert.Equal(t, []bull.Address{bob, charlie, dave}, env.voters("gm"))

	// stakes are frozen, not moved
	bobAcc := env.account(bob)
	assert.Equal(t, uint64(endowment), bobAcc.Free)
	assert.Equal(t, uint64(100), bobAcc.Frozen)
	assert.Equal(t, uint64(endowment-100), bobAcc.Reducible)

	v, err := env.bp.Vote(charlie, types.PostIDOf([]byte("gm")))
	require.NoError(t, err)
	assert.Equal(t, types.Tie, v.Direction)
	assert.Equal(t, uint64(200), v.Amount)

	assert.Equal(t, []string{"PostSubmitted", "VoteSubmitted", "VoteSubmitted", "VoteSubmitted"}, env.eventNames(0))
	env.checkInvariants("gm")
}

func TestSubmitVoteErrors(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxVoters = 2

	ts := newTestSequence(t, cfg).
		SubmitPost(alice, "gm", 100).
		Vote(bob, "gm", 100, types.Bullish)
	env := ts.env

	tests := []struct {
		name    string
		voter   bull.Address
		content string
		amount  uint64
		dir     types.Direction
		block   uint32
		want    error
	}{
		{"empty input", charlie, "", 100, types.Bullish, 0, ErrEmptyInput},
		{"too long", charlie, strings.Repeat("x", 2001), 100, types.Bullish, 0, ErrInputTooLong},
		{"vote below minimum", charlie, "gm", 49, types.Bullish, 0, ErrVoteTooLow},
		{"invalid direction", charlie, "gm", 100, types.Direction(9), 0, ErrInvalidDirection},
		{"post does not exist", charlie, "gn", 100, types.Bullish, 0, ErrPostDoesNotExist},
		{"voting ended", charlie, "gm", 100, types.Bullish, 1000, ErrVotingEnded},
		{"already voted", bob, "gm", 100, types.Bearish, 0, ErrAlreadyVoted},
		{"stake equals total balance", charlie, "gm", endowment, types.Bullish, 0, ErrInsufficientFreeBalance},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events := len(env.bp.Events())
			err := env.bp.SubmitVote(tt.voter, []byte(tt.content), tt.amount, tt.dir, tt.block)
			assert.ErrorIs(t, err, tt.want)
			assert.Len(t, env.bp.Events(), events)
		})
	}

	// the largest stake below the total balance is accepted
	ts.Vote(charlie, "gm", endowment-1, types.Bearish)
	assert.ErrorIs(t, env.bp.SubmitVote(dave, []byte("gm"), 100, types.Bullish, 0), ErrVotersMaxed)

	assert.Equal(t, uint32(2), env.count("gm"))
	assert.Zero(t, env.account(dave).Frozen)
	env.checkInvariants("gm")
}

func TestUpdateVote(t *testing.T) {
	ts := newTestSequence(t, DefaultConfig()).
		SubmitPost(alice, "gm", 100).
		Vote(bob, "gm", 100, types.Bullish).
		Vote(charlie, "gm", 40, types.Bearish).
		Vote(dave, "gm", 70, types.Bullish)
	env := ts.env

	ts.UpdateVote(bob, "gm", 60, types.Bearish)

	p := env.post("gm")
	// exactly 100 moves out of bull and 60 into bear
	assert.Equal(t, uint64(70), p.BullVotes)
	assert.Equal(t, uint64(100), p.BearVotes)
	assert.Equal(t, uint64(60), env.account(bob).Frozen)
	assert.Equal(t, []bull.Address{bob, charlie, dave}, env.voters("gm"))
	assert.Equal(t, uint32(3), env.count("gm"))

	last := env.bp.Events()[len(env.bp.Events())-1]
	assert.Equal(t, &VoteUpdated{ID: types.PostIDOf([]byte("gm")), Voter: bob, Amount: 60, Direction: types.Bearish}, last)
	env.checkInvariants("gm")
}

func TestUpdateVoteThroughTie(t *testing.T) {
	ts := newTestSequence(t, DefaultConfig()).
		SubmitPost(alice, "gm", 100).
		Vote(bob, "gm", 100, types.Bullish).
		Vote(charlie, "gm", 80, types.Tie)
	env := ts.env

	// into tie: only the old contribution is removed
	ts.UpdateVote(bob, "gm", 300, types.Tie)
	p := env.post("gm")
	assert.Zero(t, p.BullVotes)
	assert.Zero(t, p.BearVotes)
	assert.Equal(t, uint64(300), env.account(bob).Frozen)
	env.checkInvariants("gm")

	// out of tie: only the new contribution is added
	ts.UpdateVote(charlie, "gm", 70, types.Bearish)
	p = env.post("gm")
	assert.Zero(t, p.BullVotes)
	assert.Equal(t, uint64(70), p.BearVotes)
	env.checkInvariants("gm")

	// tie never wins
	res := ts.AtBlock(1000).Resolve("gm")
	assert.Equal(t, types.Bearish, res.Result)
}

func TestUpdateVoteErrors(t *testing.T) {
	ts := newTestSequence(t, DefaultConfig()).
		SubmitPost(alice, "gm", 100).
		Vote(bob, "gm", 100, types.Bullish)
	env := ts.env

	assert.ErrorIs(t, env.bp.UpdateVote(charlie, []byte("gm"), 100, types.Bullish, 0), ErrVoteDoesNotExist)
	assert.ErrorIs(t, env.bp.UpdateVote(bob, []byte("gn"), 100, types.Bullish, 0), ErrPostDoesNotExist)
	assert.ErrorIs(t, env.bp.UpdateVote(bob, []byte("gm"), 10, types.Bullish, 0), ErrVoteTooLow)
	assert.ErrorIs(t, env.bp.UpdateVote(bob, []byte("gm"), 100, types.Bearish, 1000), ErrVotingEnded)
	assert.ErrorIs(t, env.bp.UpdateVote(bob, []byte("gm"), endowment, types.Bearish, 0), ErrInsufficientFreeBalance)
	assert.ErrorIs(t, env.bp.UpdateVote(bob, nil, 100, types.Bearish, 0), ErrEmptyInput)

	// failed updates leave stake and tallies untouched
	assert.Equal(t, uint64(100), env.account(bob).Frozen)
	assert.Equal(t, uint64(100), env.post("gm").BullVotes)
	assert.Len(t, env.bp.Events(), 2)
}

func TestResolveVoting(t *testing.T) {
	flatSlash := DefaultConfig()
	flatSlash.SlashStyle = StyleFlat

	flatReward := DefaultConfig()
	flatReward.RewardStyle = StyleFlat

	halfSlash := DefaultConfig()
	halfSlash.SlashCoefficient = 50

	bigReward := DefaultConfig()
	bigReward.RewardCoefficient = 250

	tests := []struct {
		name      string
		cfg       Config
		bull      uint64
		bear      uint64
		result    types.Direction
		rewarded  uint64
		slashed   uint64
		aliceFree uint64
	}{
		{"coefficient reward at 100 percent", DefaultConfig(), 100, 0, types.Bullish, 100, 0, 1001},
		{"coefficient reward is clamped to the bond", bigReward, 100, 0, types.Bullish, 100, 0, 1001},
		{"flat reward", flatReward, 100, 50, types.Bullish, 500, 0, 1401},
		{"coefficient slash at 100 percent", DefaultConfig(), 0, 100, types.Bearish, 0, 100, 801},
		{"coefficient slash at 50 percent", halfSlash, 60, 100, types.Bearish, 0, 50, 851},
		{"flat slash is capped at the bond", flatSlash, 0, 100, types.Bearish, 0, 100, 801},
		{"tie", DefaultConfig(), 50, 50, types.Tie, 0, 0, 901},
		{"no votes is a tie", DefaultConfig(), 0, 0, types.Tie, 0, 0, 901},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := newTestSequence(t, tt.cfg).SubmitPost(alice, "gm", 100)
			if tt.bull > 0 {
				ts.Vote(bob, "gm", tt.bull, types.Bullish)
			}
			if tt.bear > 0 {
				ts.Vote(charlie, "gm", tt.bear, types.Bearish)
			}
			env := ts.env
			before := env.issuance()

			_, err := env.bp.ResolveVoting(dave, []byte("gm"), 999)
			assert.ErrorIs(t, err, ErrVotingStillOngoing)

			res := ts.AtBlock(1000).Resolve("gm")
			assert.Equal(t, &VotingResolved{
				ID:        types.PostIDOf([]byte("gm")),
				Submitter: alice,
				Result:    tt.result,
				Rewarded:  tt.rewarded,
				Slashed:   tt.slashed,
			}, res)

			acc := env.account(alice)
			assert.Equal(t, tt.aliceFree, acc.Free)
			assert.Zero(t, acc.Holds[HoldPostBond])
			assert.Equal(t, uint64(100), acc.Holds[HoldStorageRent])
			assert.Equal(t, before+tt.rewarded-tt.slashed, env.issuance())
			assert.True(t, env.post("gm").Resolved)
			env.checkInvariants("gm")
		})
	}
}

func TestResolveVotingTwice(t *testing.T) {
	ts := newTestSequence(t, DefaultConfig()).
		SubmitPost(alice, "gm", 100).
		Vote(bob, "gm", 100, types.Bullish)
	env := ts.env

	ts.AtBlock(1000).Resolve("gm")
	free, issuance, events := env.account(alice).Free, env.issuance(), len(env.bp.Events())

	for _, block := range []uint32{1000, 5000} {
		_, err := env.bp.ResolveVoting(bob, []byte("gm"), block)
		assert.ErrorIs(t, err, ErrAlreadyResolved)
	}
	assert.Equal(t, free, env.account(alice).Free)
	assert.Equal(t, issuance, env.issuance())
	assert.Len(t, env.bp.Events(), events)
}

func TestResolveVotingErrors(t *testing.T) {
	env := newTestEnv(t, DefaultConfig())

	_, err := env.bp.ResolveVoting(bob, nil, 0)
	assert.ErrorIs(t, err, ErrEmptyInput)
	_, err = env.bp.ResolveVoting(bob, []byte(strings.Repeat("x", 2001)), 0)
	assert.ErrorIs(t, err, ErrInputTooLong)
	_, err = env.bp.ResolveVoting(bob, []byte("gm"), 0)
	assert.ErrorIs(t, err, ErrPostDoesNotExist)
}

func TestSlashIgnoresVoteFreezes(t *testing.T) {
	ts := newTestSequence(t, DefaultConfig()).
		SubmitPost(alice, "gm", 100).
		SubmitPost(bob, "gn", 100).
		// alice locks most of her balance voting on another post
		Vote(alice, "gn", 1000, types.Bullish).
		Vote(charlie, "gm", 100, types.Bearish)
	env := ts.env

	res := ts.AtBlock(1000).Resolve("gm")
	assert.Equal(t, uint64(100), res.Slashed)
	assert.Equal(t, uint64(801), env.account(alice).Free)
	assert.Equal(t, uint64(1000), env.account(alice).Frozen)
}

func TestEndPostPaginated(t *testing.T) {
	cfg := DefaultConfig()
	cfg.UnfreezeLimit = 2

	ts := newTestSequence(t, cfg).
		SubmitPost(alice, "gm", 100).
		Vote(bob, "gm", 100, types.Bullish).
		Vote(charlie, "gm", 200, types.Bearish).
		Vote(dave, "gm", 300, types.Tie)
	env := ts.env

	_, err := env.bp.EndPost(bob, []byte("gm"))
	assert.ErrorIs(t, err, ErrVotingUnresolved)

	ts.AtBlock(1000).Resolve("gm")
	skip := len(env.bp.Events())

	td := ts.End("gm")
	assert.Equal(t, uint32(2), td.Unfrozen)
	assert.False(t, td.Ended)
	assert.Equal(t, []string{"VoteUnfrozen", "VoteUnfrozen", "PostPartiallyEnded"}, env.eventNames(skip))

	p := env.post("gm")
	require.NotNil(t, p)
	assert.True(t, p.Resolved)
	assert.Equal(t, []bull.Address{bob}, env.voters("gm"))
	assert.Equal(t, uint32(1), env.count("gm"))
	assert.Zero(t, env.account(dave).Frozen)
	assert.Zero(t, env.account(charlie).Frozen)
	assert.Equal(t, uint64(100), env.account(bob).Frozen)
	assert.Equal(t, uint64(100), env.account(alice).Holds[HoldStorageRent])
	env.checkInvariants("gm")

	skip = len(env.bp.Events())
	td = ts.End("gm")
	assert.Equal(t, uint32(1), td.Unfrozen)
	assert.True(t, td.Ended)
	assert.Equal(t, []string{"VoteUnfrozen", "PostEnded"}, env.eventNames(skip))
	assert.Equal(t, &VoteUnfrozen{ID: types.PostIDOf([]byte("gm")), Voter: bob, Amount: 100}, env.bp.Events()[skip])

	assert.Nil(t, env.post("gm"))
	assert.Empty(t, env.voters("gm"))
	assert.Zero(t, env.count("gm"))
	assert.Zero(t, env.account(bob).Frozen)
	assert.Empty(t, env.account(alice).Holds)
	env.checkInvariants("gm")

	_, err = env.bp.EndPost(bob, []byte("gm"))
	assert.ErrorIs(t, err, ErrPostDoesNotExist)
}

func TestEndPostExactlyAtLimit(t *testing.T) {
	cfg := DefaultConfig()
	cfg.UnfreezeLimit = 2

	ts := newTestSequence(t, cfg).
		SubmitPost(alice, "gm", 100).
		Vote(bob, "gm", 100, types.Bullish).
		Vote(charlie, "gm", 200, types.Bearish)
	ts.AtBlock(1000).Resolve("gm")

	td := ts.End("gm")
	assert.Equal(t, uint32(2), td.Unfrozen)
	assert.True(t, td.Ended)
	assert.Nil(t, ts.env.post("gm"))
}

func TestEndPostWithoutVoters(t *testing.T) {
	ts := newTestSequence(t, DefaultConfig()).SubmitPost(alice, "gm", 100)
	ts.AtBlock(1000).Resolve("gm")

	td := ts.End("gm")
	assert.Zero(t, td.Unfrozen)
	assert.True(t, td.Ended)
	assert.Equal(t, uint64(endowment), ts.env.account(alice).Free)

	// the content can be posted again once the old post is gone
	ts.SubmitPost(alice, "gm", 100)
	assert.Equal(t, uint32(2000), ts.env.post("gm").VotingUntil)
}

func TestEndPostErrors(t *testing.T) {
	env := newTestEnv(t, DefaultConfig())

	_, err := env.bp.EndPost(bob, nil)
	assert.ErrorIs(t, err, ErrEmptyInput)
	_, err = env.bp.EndPost(bob, []byte("gm"))
	assert.ErrorIs(t, err, ErrPostDoesNotExist)
}

func TestWeightIsCharged(t *testing.T) {
	env := newTestEnv(t, DefaultConfig())
	charger := gascharger.New(0)
	bp := New(moduleAddr, env.state, env.balances, DefaultConfig(), charger.Charge)

	require.NoError(t, bp.SubmitPost(alice, []byte("gm"), 100, 0))
	assert.NotZero(t, charger.TotalGas())
}

func TestConfigValidate(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	bad := cfg
	bad.RewardStyle = "curve"
	assert.Error(t, bad.Validate())

	bad = cfg
	bad.UnfreezeLimit = 0
	assert.Error(t, bad.Validate())

	bad = cfg
	bad.MaxVoters = 0
	assert.Error(t, bad.Validate())
}
