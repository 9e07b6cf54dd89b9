// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package runtime

import "github.com/bullchain/bullchain/metrics"

var (
	metricClauseCount = metrics.LazyLoadCounterVec("clause_count", []string{"kind", "status"})
	metricWeightUsed  = metrics.LazyLoadHistogramVec("clause_weight", []string{"kind"}, metrics.BucketWeight)
)
