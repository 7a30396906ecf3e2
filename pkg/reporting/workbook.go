package reporting

import "github.com/bvantuan/dca-signal-engine/internal/simulator"

// WorkbookData is everything a single symbol's report needs: its
// simulator outcome plus the cross-asset context (correlation, ranking)
// it's being reported alongside.
type WorkbookData struct {
	Symbol      string
	Summary     simulator.Summary
	Symbols     []string // ordering for Correlation
	Correlation [][]float64
	Ranking     []RankingRow
}

// RankingRow is one row of the comparative-performance sheet.
type RankingRow struct {
	Symbol string
	ROI    float64
	Trades int
}
