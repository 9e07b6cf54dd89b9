// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bullchain/bullchain/builtin/bullposting"
	"github.com/bullchain/bullchain/bull"
	"github.com/bullchain/bullchain/genesis"
	"github.com/bullchain/bullchain/lvldb"
	"github.com/bullchain/bullchain/runtime"
	"github.com/bullchain/bullchain/state"
)

func newState(t *testing.T) *state.State {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return state.New(db)
}

func TestDevnet(t *testing.T) {
	gen := genesis.NewDevnet()
	assert.Equal(t, "devnet", gen.Name())
	assert.Equal(t, bullposting.DefaultConfig(), gen.Config().Bullposting)

	st := newState(t)
	id, err := gen.Build(st)
	require.NoError(t, err)
	assert.False(t, id.IsZero())

	custodian := runtime.New(st, gen.Config(), 0).Custodian()
	for _, acc := range genesis.DevAccounts() {
		bal, err := custodian.TotalBalance(acc.Address)
		require.NoError(t, err)
		assert.Equal(t, uint64(genesis.DevAccountBalance), bal)
	}
	issuance, err := custodian.TotalIssuance()
	require.NoError(t, err)
	assert.Equal(t, uint64(len(genesis.DevAccounts())*genesis.DevAccountBalance), issuance)

	other, err := genesis.NewDevnet().Build(newState(t))
	require.NoError(t, err)
	assert.Equal(t, id, other)
}

func TestDevAccounts(t *testing.T) {
	accs := genesis.DevAccounts()
	require.Len(t, accs, 5)
	assert.Equal(t, bull.MustParseAddress("0xf077b491b355E64048cE21E3A6Fc4751eEeA77fa"), accs[0].Address)
}

func TestCustomGenesis(t *testing.T) {
	const doc = `
name: testnet
modules:
  bullposting:
    votingPeriod: 10
    rewardStyle: flat
  maxFreezes: 5
accounts:
  - address: "0x7567d83b7b8d80addcb281a71d54fc7b3364ffed"
    balance: 1000
`
	path := filepath.Join(t.TempDir(), "genesis.yaml")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	custom, err := genesis.LoadCustomGenesis(path)
	require.NoError(t, err)
	assert.Equal(t, uint32(10), custom.Modules.Bullposting.VotingPeriod)
	assert.Equal(t, bullposting.StyleFlat, custom.Modules.Bullposting.RewardStyle)
	assert.Equal(t, bullposting.DefaultConfig().BondMinimum, custom.Modules.Bullposting.BondMinimum)
	assert.Equal(t, uint32(5), custom.Modules.MaxFreezes)

	gen, err := genesis.NewCustomNet(custom)
	require.NoError(t, err)
	st := newState(t)
	_, err = gen.Build(st)
	require.NoError(t, err)

	bal, err := runtime.New(st, gen.Config(), 0).Custodian().TotalBalance(custom.Accounts[0].Address)
	require.NoError(t, err)
	assert.Equal(t, uint64(1000), bal)

	data, err := custom.Marshal()
	require.NoError(t, err)
	again, err := genesis.ParseCustomGenesis(data)
	require.NoError(t, err)
	assert.Equal(t, custom, again)
}

func TestCustomGenesisInvalid(t *testing.T) {
	_, err := genesis.ParseCustomGenesis([]byte("unknown: 1"))
	assert.Error(t, err)

	custom := genesis.DefaultCustomGenesis()
	custom.Accounts = []genesis.Account{{Balance: 1}, {Balance: 2}}
	_, err = genesis.NewCustomNet(custom)
	assert.ErrorContains(t, err, "duplicated account")

	custom = genesis.DefaultCustomGenesis()
	custom.Modules.Bullposting.UnfreezeLimit = 0
	_, err = genesis.NewCustomNet(custom)
	assert.Error(t, err)
}
