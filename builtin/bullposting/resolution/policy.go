// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package resolution

import (
	"github.com/holiman/uint256"
)

// Policy computes a payout from the bond of a post.
type Policy interface {
	Amount(bond uint64) uint64
}

// Flat pays a fixed amount. With Capped, the amount never exceeds the bond.
type Flat struct {
	Value  uint64
	Capped bool
}

func (f Flat) Amount(bond uint64) uint64 {
	if f.Capped && f.Value > bond {
		return bond
	}
	return f.Value
}

// Coefficient pays a percentage of the bond. With Capped, the percentage is clamped to 100.
type Coefficient struct {
	Percent uint32
	Capped  bool
}

func (c Coefficient) Amount(bond uint64) uint64 {
	percent := c.Percent
	if c.Capped && percent > 100 {
		percent = 100
	}
	return percentOf(bond, percent)
}

var (
	hundred     = uint256.NewInt(100)
	halfHundred = uint256.NewInt(50)
	maxUint64   = uint256.NewInt(^uint64(0))
)

// percentOf returns bond*percent/100, rounded to nearest with ties rounding down,
// saturating at the uint64 range.
func percentOf(bond uint64, percent uint32) uint64 {
	product := new(uint256.Int).Mul(uint256.NewInt(bond), uint256.NewInt(uint64(percent)))
	quo, rem := new(uint256.Int), new(uint256.Int)
	quo.DivMod(product, hundred, rem)
	if rem.Gt(halfHundred) {
		quo.AddUint64(quo, 1)
	}
	if quo.Gt(maxUint64) {
		return ^uint64(0)
	}
	return quo.Uint64()
}
