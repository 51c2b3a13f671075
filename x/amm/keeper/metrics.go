package keeper

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// AMMMetrics holds all Prometheus metrics for the AMM module
type AMMMetrics struct {
	// Swap metrics
	SwapsTotal  *prometheus.CounterVec
	SwapVolume  *prometheus.CounterVec
	SwapLatency prometheus.Histogram
	RouteHops   prometheus.Histogram

	// Liquidity metrics
	LiquidityAdded *prometheus.CounterVec
	SharesMinted   *prometheus.CounterVec

	// Pool metrics
	PoolsTotal       prometheus.Gauge
	PoolCreationRate prometheus.Counter

	// Single pool metrics
	SingleSwapsTotal *prometheus.CounterVec

	// Custody metrics
	CustodyFlow *prometheus.CounterVec

	// Security metrics
	ReentrancyBlocked *prometheus.CounterVec
}

var (
	ammMetricsOnce sync.Once
	ammMetrics     *AMMMetrics
)

// NewAMMMetrics creates and registers AMM metrics (singleton pattern)
func NewAMMMetrics() *AMMMetrics {
	ammMetricsOnce.Do(func() {
		ammMetrics = &AMMMetrics{
			SwapsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "amm",
					Name:      "swaps_total",
					Help:      "Total number of routed swaps",
				},
				[]string{"token_in", "token_out", "status"},
			),
			SwapVolume: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "amm",
					Name:      "swap_volume_total",
					Help:      "Total swap input volume in base units",
				},
				[]string{"token"},
			),
			SwapLatency: promauto.NewHistogram(
				prometheus.HistogramOpts{
					Namespace: "amm",
					Name:      "swap_latency_seconds",
					Help:      "Swap execution latency in seconds",
					Buckets:   prometheus.DefBuckets,
				},
			),
			RouteHops: promauto.NewHistogram(
				prometheus.HistogramOpts{
					Namespace: "amm",
					Name:      "route_hops",
					Help:      "Number of pools traversed per swap",
					Buckets:   []float64{0, 1, 2, 3, 4, 5, 8},
				},
			),
			LiquidityAdded: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "amm",
					Name:      "liquidity_added_total",
					Help:      "Total liquidity added to pools",
				},
				[]string{"pool_id", "token"},
			),
			SharesMinted: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "amm",
					Name:      "shares_minted_total",
					Help:      "Total liquidity shares minted",
				},
				[]string{"pool_id"},
			),
			PoolsTotal: promauto.NewGauge(
				prometheus.GaugeOpts{
					Namespace: "amm",
					Name:      "pools_total",
					Help:      "Total number of pools",
				},
			),
			PoolCreationRate: promauto.NewCounter(
				prometheus.CounterOpts{
					Namespace: "amm",
					Name:      "pool_creations_total",
					Help:      "Total number of pools created",
				},
			),
			SingleSwapsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "amm",
					Name:      "single_swaps_total",
					Help:      "Total number of single-pool swaps",
				},
				[]string{"index_in", "status"},
			),
			CustodyFlow: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "amm",
					Name:      "custody_flow_total",
					Help:      "Token amounts moved into and out of the custody account",
				},
				[]string{"token", "direction"},
			),
			ReentrancyBlocked: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "amm",
					Name:      "reentrancy_blocked_total",
					Help:      "Operations rejected by the reentrancy guard",
				},
				[]string{"operation"},
			),
		}
	})
	return ammMetrics
}
