// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package cache

import "sync/atomic"

// Stats counts cache lookups.
type Stats struct {
	hit, miss atomic.Int64
	flag      atomic.Int32
}

func (cs *Stats) Hit() int64 { return cs.hit.Add(1) }

func (cs *Stats) Miss() int64 { return cs.miss.Add(1) }

// Stats reports whether the hit rate (in per mille) moved since the last call.
func (cs *Stats) Stats() (bool, int64, int64) {
	hit := cs.hit.Load()
	miss := cs.miss.Load()

	var rate int32
	if lookups := hit + miss; lookups > 0 {
		rate = int32(hit * 1000 / lookups)
	}
	return cs.flag.Swap(rate) != rate, hit, miss
}
