// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package solidity

// toWordSize converts an encoded length to the number of 32-byte words it occupies.
// Empty values still cost one word.
func toWordSize(length int) uint64 {
	if length == 0 {
		return 1
	}
	return (uint64(length) + 31) / 32
}
