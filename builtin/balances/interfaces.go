// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package balances

import (
	"github.com/bullchain/bullchain/bull"
)

// Inspector reads balances.
type Inspector interface {
	TotalBalance(who bull.Address) (uint64, error)
	ReducibleBalance(who bull.Address, force bool) (uint64, error)
}

// Holder moves spendable balance into reason-tagged reserved buckets and back.
// Held funds stay burnable.
type Holder interface {
	Hold(reason HoldReason, who bull.Address, amount uint64) error
	Release(reason HoldReason, who bull.Address, amount uint64, bestEffort bool) (uint64, error)
	BalanceOnHold(reason HoldReason, who bull.Address) (uint64, error)
}

// Freezer places id-tagged locks which keep balance from being spent without moving it.
type Freezer interface {
	ExtendFreeze(id FreezeID, who bull.Address, amount uint64) error
	SetFreeze(id FreezeID, who bull.Address, amount uint64) error
	Thaw(id FreezeID, who bull.Address) (uint64, error)
	BalanceFrozen(id FreezeID, who bull.Address) (uint64, error)
}

// Minter changes total issuance.
type Minter interface {
	MintInto(who bull.Address, amount uint64) error
	BurnFrom(who bull.Address, amount uint64, bestEffort, force bool) (uint64, error)
}

var (
	_ Inspector = (*Balances)(nil)
	_ Holder    = (*Balances)(nil)
	_ Freezer   = (*Balances)(nil)
	_ Minter    = (*Balances)(nil)
)
