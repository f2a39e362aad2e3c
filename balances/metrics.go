// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package balances

import "github.com/vechain/ledger/metrics"

var (
	metricOpCount    = metrics.LazyLoadCounterVec("balances_op_count", []string{"op", "result"})
	metricOpDuration = metrics.LazyLoadHistogramVec("balances_op_duration_us", []string{"op"}, metrics.BucketOpMicros)
	metricReaped     = metrics.LazyLoadCounter("balances_reaped_count")
	metricEndowed    = metrics.LazyLoadCounter("balances_endowed_count")
)
