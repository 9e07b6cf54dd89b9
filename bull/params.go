// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package bull

// Weight prices of storage access, charged per 32-byte word.
const (
	SloadWeight       uint64 = 200
	SstoreSetWeight   uint64 = 20000
	SstoreResetWeight uint64 = 5000
	SclearWeight      uint64 = 5000

	// ClauseWeight is the base weight of every dispatched call.
	ClauseWeight uint64 = 16000

	// BlockWeightLimit caps the weight one call may consume.
	BlockWeightLimit uint64 = 1_000_000_000
)
