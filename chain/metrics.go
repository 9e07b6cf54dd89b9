// Copyright (c) 2024 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package chain

import "github.com/bullchain/bullchain/metrics"

var (
	metricBestBlockNumber = metrics.LazyLoadGauge("chain_best_block_number")
	metricBlockCacheStats = metrics.LazyLoadGauge("chain_block_cache_hit_rate")
)
