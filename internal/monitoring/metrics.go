// Package monitoring exposes the engine's Prometheus collectors. Kept from
// the teacher in shape (promauto-registered CounterVec/HistogramVec/GaugeVec
// collectors, a handful of Record* helpers) but relabeled for the signal
// engine's domain: signals emitted, indicator values, simulator ROI,
// correlation extremes and data-source fetch latency in place of the
// teacher's trade/PnL/portfolio-value metrics.
package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	SignalsEmitted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "signal_engine_signals_total",
			Help: "Total number of classified signals emitted, by symbol and action",
		},
		[]string{"symbol", "action"},
	)

	SimulatedROI = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "signal_engine_simulated_roi_pct",
			Help: "Latest simulator ROI percentage for a symbol's trailing run",
		},
		[]string{"symbol"},
	)

	IndicatorValues = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "signal_engine_indicator_value",
			Help: "Current technical indicator values per symbol",
		},
		[]string{"indicator", "symbol"},
	)

	CorrelationExtreme = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "signal_engine_correlation_extreme",
			Help: "Pairwise correlation coefficient observed in the latest digest",
		},
		[]string{"symbol_a", "symbol_b"},
	)

	SentimentIndex = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "signal_engine_sentiment_index",
			Help: "Latest fear-and-greed index value used for scoring",
		},
	)

	DataSourceLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "signal_engine_datasource_latency_seconds",
			Help:    "Latency of OHLCV fetch attempts",
			Buckets: prometheus.ExponentialBuckets(0.05, 2, 10),
		},
		[]string{"source", "symbol"},
	)

	RunErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "signal_engine_run_errors_total",
			Help: "Per-symbol run failures, isolated from the rest of the batch",
		},
		[]string{"symbol", "stage"},
	)
)

// RecordSignal increments the emitted-signal counter for symbol/action.
func RecordSignal(symbol, action string) {
	SignalsEmitted.WithLabelValues(symbol, action).Inc()
}

// RecordIndicators publishes the latest row of indicator values for symbol.
func RecordIndicators(symbol string, values map[string]float64) {
	for name, v := range values {
		IndicatorValues.WithLabelValues(name, symbol).Set(v)
	}
}

// RecordCorrelationExtreme publishes the correlation coefficient between
// symbolA and symbolB, one gauge per symbol pair.
func RecordCorrelationExtreme(symbolA, symbolB string, coefficient float64) {
	CorrelationExtreme.WithLabelValues(symbolA, symbolB).Set(coefficient)
}

// RecordRunError tags a per-symbol pipeline failure by the stage it failed
// in (fetch, indicators, scorer, simulator, notify), so partial-failure
// isolation per symbol stays observable.
func RecordRunError(symbol, stage string) {
	RunErrors.WithLabelValues(symbol, stage).Inc()
}
