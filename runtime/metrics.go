// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package runtime

import "github.com/fresacoin/fresa/metrics"

var (
	metricOpsCounter   = metrics.LazyLoadCounterVec("ops_total", []string{"type", "status"})
	metricOpDurationMs = metrics.LazyLoadHistogramVec("op_duration_ms", []string{"type"}, metrics.BucketOpDuration)
	metricLatestOpTime = metrics.LazyLoadGauge("op_latest_time")
)
