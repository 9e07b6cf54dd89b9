// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package solidity

import (
	"github.com/bullchain/bullchain/bull"
	"github.com/bullchain/bullchain/state"
)

// UseGasFunc charges weight for a storage access.
type UseGasFunc func(gas uint64)

// Context binds storage slots of a builtin module to its address and state.
type Context struct {
	address bull.Address
	state   *state.State
	charger UseGasFunc
}

func NewContext(address bull.Address, state *state.State, charger UseGasFunc) *Context {
	return &Context{
		address: address,
		state:   state,
		charger: charger,
	}
}

func (c *Context) Address() bull.Address {
	return c.address
}

func (c *Context) State() *state.State {
	return c.state
}

func (c *Context) UseGas(gas uint64) {
	if c.charger != nil {
		c.charger(gas)
	}
}
