// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package builtin

import (
	"github.com/bullchain/bullchain/builtin/balances"
	"github.com/bullchain/bullchain/builtin/bullposting"
	"github.com/bullchain/bullchain/builtin/solidity"
	"github.com/bullchain/bullchain/state"
)

// Builtin modules binding.
var (
	Balances    = &balancesContract{newContract("Balances")}
	Bullposting = &bullpostingContract{newContract("Bullposting")}
)

type (
	balancesContract    struct{ *contract }
	bullpostingContract struct{ *contract }
)

func (b *balancesContract) Native(state *state.State, maxFreezes uint32, charger solidity.UseGasFunc) *balances.Balances {
	return balances.New(solidity.NewContext(b.Address, state, charger), maxFreezes)
}

func (b *bullpostingContract) Native(
	state *state.State,
	custodian bullposting.Custodian,
	cfg bullposting.Config,
	charger solidity.UseGasFunc,
) *bullposting.Bullposting {
	return bullposting.New(b.Address, state, custodian, cfg, charger)
}
