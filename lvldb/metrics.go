// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package lvldb

import "github.com/vechain/ledger/metrics"

var (
	metricAccess    = metrics.LazyLoadCounterVec("lvldb_access_count", []string{"op"})
	metricBatchSize = metrics.LazyLoadHistogramVec("lvldb_batch_size", nil, []int64{1, 2, 4, 8, 16, 32, 64, 128, 256, 512, 1024})
)
