// Package portfolio implements cross-asset analytics over multiple
// independent IndicatorFrames: a Pearson correlation matrix and a
// comparative ROI ranking (spec §4.5).
//
// Grounded in the teacher's internal/portfolio/manager.go, which already
// aggregated multiple bots' balances and PnL into one portfolio-level
// view — generalized here from leveraged-bot P&L aggregation to
// correlation and simulator-ROI aggregation across independent assets.
package portfolio

import (
	"math"
	"sort"

	"github.com/bvantuan/dca-signal-engine/internal/indicators"
	"github.com/bvantuan/dca-signal-engine/internal/simulator"
)

// CorrelationMatrix computes the K×K symmetric matrix of Pearson
// correlations between K aligned close-price series, diagonal 1.0.
// Null values are skipped pairwise; each cell is clamped to [-1, 1]; a
// zero-variance side returns 0 for that cell, per spec §4.5.
func CorrelationMatrix(series [][]float64) [][]float64 {
	k := len(series)
	matrix := make([][]float64, k)
	for i := range matrix {
		matrix[i] = make([]float64, k)
	}
	for i := 0; i < k; i++ {
		matrix[i][i] = 1.0
		for j := i + 1; j < k; j++ {
			c := pearson(series[i], series[j])
			matrix[i][j] = c
			matrix[j][i] = c
		}
	}
	return matrix
}

func pearson(x, y []float64) float64 {
	n := len(x)
	if len(y) < n {
		n = len(y)
	}

	var sumX, sumY float64
	var count float64
	for i := 0; i < n; i++ {
		if math.IsNaN(x[i]) || math.IsNaN(y[i]) {
			continue
		}
		sumX += x[i]
		sumY += y[i]
		count++
	}
	if count == 0 {
		return 0
	}
	meanX, meanY := sumX/count, sumY/count

	var cov, varX, varY float64
	for i := 0; i < n; i++ {
		if math.IsNaN(x[i]) || math.IsNaN(y[i]) {
			continue
		}
		dx, dy := x[i]-meanX, y[i]-meanY
		cov += dx * dy
		varX += dx * dx
		varY += dy * dy
	}
	if varX == 0 || varY == 0 {
		return 0
	}

	c := cov / math.Sqrt(varX*varY)
	if c > 1 {
		c = 1
	}
	if c < -1 {
		c = -1
	}
	return c
}

// AssetPerformance is one row of a comparative-performance ranking.
type AssetPerformance struct {
	Symbol     string
	ROI        float64
	FinalValue float64
	NumTrades  int
}

// CompareAssetsPerformance runs the simulator over each named frame with
// default Params and neutral sentiment (F=50), returning results sorted
// by ROI descending, ties broken by input order (stable).
func CompareAssetsPerformance(frames map[string]*indicators.IndicatorFrame, symbolOrder []string) []AssetPerformance {
	const neutralSentiment = 50
	params := simulator.DefaultParams()

	results := make([]AssetPerformance, 0, len(symbolOrder))
	for _, symbol := range symbolOrder {
		frame, ok := frames[symbol]
		if !ok || frame.Len() == 0 {
			continue
		}
		summary := simulator.Run(frame, neutralSentiment, params)
		results = append(results, AssetPerformance{
			Symbol:     symbol,
			ROI:        summary.ROI,
			FinalValue: summary.FinalPortfolioValue,
			NumTrades:  summary.NumTrades,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].ROI > results[j].ROI
	})
	return results
}
