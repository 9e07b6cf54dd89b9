// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"github.com/pkg/errors"

	"github.com/bullchain/bullchain/bull"
	"github.com/bullchain/bullchain/runtime"
	"github.com/bullchain/bullchain/state"
)

// Genesis to build the initial state.
type Genesis struct {
	name     string
	config   runtime.Config
	builder  *Builder
	accounts []Account
}

// Account is an initial allocation of free balance.
type Account struct {
	Address bull.Address `yaml:"address" json:"address"`
	Balance uint64       `yaml:"balance" json:"balance"`
}

// Name returns name of genesis.
func (g *Genesis) Name() string {
	return g.name
}

// Config returns the module parameters the chain runs with.
func (g *Genesis) Config() runtime.Config {
	return g.config
}

// Accounts returns the initial allocations.
func (g *Genesis) Accounts() []Account {
	return append([]Account(nil), g.accounts...)
}

// Build applies the genesis allocations to st, and returns the genesis id.
func (g *Genesis) Build(st *state.State) (bull.Bytes32, error) {
	return g.builder.Build(st)
}

func newGenesis(name string, config runtime.Config, accounts []Account) (*Genesis, error) {
	if err := config.Bullposting.Validate(); err != nil {
		return nil, errors.Wrap(err, "bullposting config")
	}
	builder := new(Builder).
		Name(name).
		State(func(st *state.State) error {
			custodian := runtime.New(st, config, 0).Custodian()
			for _, acc := range accounts {
				if err := custodian.MintInto(acc.Address, acc.Balance); err != nil {
					return errors.Wrapf(err, "alloc %v", acc.Address)
				}
			}
			return nil
		})
	return &Genesis{
		name:     name,
		config:   config,
		builder:  builder,
		accounts: accounts,
	}, nil
}
