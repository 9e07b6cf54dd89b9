// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package bullposting

import (
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bullchain/bullchain/builtin/balances"
	"github.com/bullchain/bullchain/builtin/bullposting/types"
	"github.com/bullchain/bullchain/builtin/solidity"
	"github.com/bullchain/bullchain/bull"
	"github.com/bullchain/bullchain/lvldb"
	"github.com/bullchain/bullchain/state"
)

const endowment = 1001

var (
	moduleAddr   = bull.BytesToAddress([]byte("Bullposting"))
	balancesAddr = bull.BytesToAddress([]byte("Balances"))

	alice   = bull.BytesToAddress([]byte("alice"))
	bob     = bull.BytesToAddress([]byte("bob"))
	charlie = bull.BytesToAddress([]byte("charlie"))
	dave    = bull.BytesToAddress([]byte("dave"))
)

type testEnv struct {
	t        *testing.T
	state    *state.State
	balances *balances.Balances
	bp       *Bullposting
}

func newTestEnv(t *testing.T, cfg Config, accounts ...bull.Address) *testEnv {
	require.NoError(t, cfg.Validate())

	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	st := state.New(db)
	bal := balances.New(solidity.NewContext(balancesAddr, st, nil), 0)
	if len(accounts) == 0 {
		accounts = []bull.Address{alice, bob, charlie, dave}
	}
	for _, acc := range accounts {
		require.NoError(t, bal.MintInto(acc, endowment))
	}
	return &testEnv{
		t:        t,
		state:    st,
		balances: bal,
		bp:       New(moduleAddr, st, bal, cfg, nil),
	}
}

func (e *testEnv) account(who bull.Address) *balances.Account {
	acc, err := e.balances.Account(who)
	require.NoError(e.t, err)
	return acc
}

func (e *testEnv) issuance() uint64 {
	v, err := e.balances.TotalIssuance()
	require.NoError(e.t, err)
	return v
}

func (e *testEnv) post(content string) *postView {
	p, err := e.bp.Post(types.PostIDOf([]byte(content)))
	require.NoError(e.t, err)
	if p == nil {
		return nil
	}
	return &postView{p.Submitter, p.Bond, p.BullVotes, p.BearVotes, p.VotingUntil, p.Resolved}
}

func (e *testEnv) voters(content string) []bull.Address {
	voters, err := e.bp.Voters(types.PostIDOf([]byte(content)))
	require.NoError(e.t, err)
	return voters
}

func (e *testEnv) count(content string) uint32 {
	n, err := e.bp.VoteCount(types.PostIDOf([]byte(content)))
	require.NoError(e.t, err)
	return n
}

func (e *testEnv) checkInvariants(content string) {
	id := types.PostIDOf([]byte(content))
	if err := e.bp.CheckInvariants(id); err != nil {
		p, _ := e.bp.Post(id)
		voters, _ := e.bp.Voters(id)
		e.t.Fatalf("invariant violated: %v\npost: %s\nvoters: %s", err, spew.Sdump(p), spew.Sdump(voters))
	}
}

// eventNames returns the names of the events emitted after the first skip events.
func (e *testEnv) eventNames(skip int) []string {
	var names []string
	for _, ev := range e.bp.Events()[skip:] {
		names = append(names, ev.Name())
	}
	return names
}

type postView struct {
	Submitter   bull.Address
	Bond        uint64
	BullVotes   uint64
	BearVotes   uint64
	VotingUntil uint32
	Resolved    bool
}

// TestSequence drives a module through a scripted sequence of calls.
type TestSequence struct {
	env   *testEnv
	block uint32
}

func newTestSequence(t *testing.T, cfg Config, accounts ...bull.Address) *TestSequence {
	return &TestSequence{env: newTestEnv(t, cfg, accounts...)}
}

func (ts *TestSequence) AtBlock(n uint32) *TestSequence {
	ts.block = n
	return ts
}

func (ts *TestSequence) SubmitPost(who bull.Address, content string, bond uint64) *TestSequence {
	assert.NoError(ts.env.t, ts.env.bp.SubmitPost(who, []byte(content), bond, ts.block))
	return ts
}

func (ts *TestSequence) Vote(who bull.Address, content string, amount uint64, dir types.Direction) *TestSequence {
	assert.NoError(ts.env.t, ts.env.bp.SubmitVote(who, []byte(content), amount, dir, ts.block))
	return ts
}

func (ts *TestSequence) UpdateVote(who bull.Address, content string, amount uint64, dir types.Direction) *TestSequence {
	assert.NoError(ts.env.t, ts.env.bp.UpdateVote(who, []byte(content), amount, dir, ts.block))
	return ts
}

func (ts *TestSequence) Resolve(content string) *VotingResolved {
	res, err := ts.env.bp.ResolveVoting(dave, []byte(content), ts.block)
	require.NoError(ts.env.t, err)
	return res
}

func (ts *TestSequence) End(content string) *Teardown {
	td, err := ts.env.bp.EndPost(dave, []byte(content))
	require.NoError(ts.env.t, err)
	return td
}
