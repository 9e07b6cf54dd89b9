// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package gascharger

import (
	"fmt"

	"github.com/bullchain/bullchain/bull"
)

// Charger meters the weight used by one call, broken down by storage operation.
type Charger struct {
	limit          uint64
	sloadOps       uint64
	sstoreSetOps   uint64
	sstoreResetOps uint64
	customGas      uint64
	totalGas       uint64
}

// New creates a charger. A zero limit means unlimited.
func New(limit uint64) *Charger {
	return &Charger{limit: limit}
}

func (c *Charger) Charge(gas uint64) {
	c.totalGas += gas

	switch {
	// Handle multiples and single operations
	case gas%bull.SstoreSetWeight == 0 && gas > 0:
		c.sstoreSetOps += gas / bull.SstoreSetWeight

	case gas%bull.SstoreResetWeight == 0 && gas > 0:
		c.sstoreResetOps += gas / bull.SstoreResetWeight

	case gas%bull.SloadWeight == 0 && gas > 0:
		c.sloadOps += gas / bull.SloadWeight

	default:
		// Unknown/custom gas amount
		c.customGas += gas
	}
}

// Exceeded reports whether the charged weight went over the limit.
func (c *Charger) Exceeded() bool {
	return c.limit > 0 && c.totalGas > c.limit
}

func (c *Charger) Breakdown() string {
	return fmt.Sprintf(
		"SLOAD: %d ops (%d gas) | SSTORE_SET: %d ops (%d gas) | SSTORE_RESET: %d ops (%d gas) | CUSTOM: %d gas | TOTAL: %d gas",
		c.sloadOps,
		c.sloadOps*bull.SloadWeight,
		c.sstoreSetOps,
		c.sstoreSetOps*bull.SstoreSetWeight,
		c.sstoreResetOps,
		c.sstoreResetOps*bull.SstoreResetWeight,
		c.customGas,
		c.totalGas,
	)
}

func (c *Charger) TotalGas() uint64 {
	return c.totalGas
}
