package reporting

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/bvantuan/dca-signal-engine/internal/simulator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleWorkbookData() WorkbookData {
	return WorkbookData{
		Symbol: "BTCUSDT",
		Summary: simulator.Summary{
			InitialCapital:      10000,
			FinalPortfolioValue: 11200,
			ROI:                 12.0,
			NumTrades:           2,
			EstimatedFeesPaid:   15.5,
			Trades: []simulator.Trade{
				{Kind: simulator.TradeBuy, Datetime: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), Price: 100, Amount: 35},
				{Kind: simulator.TradeFinalSell, Datetime: time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC), Price: 130, Amount: 35},
			},
		},
		Symbols:     []string{"BTCUSDT", "ETHUSDT"},
		Correlation: [][]float64{{1, 0.5}, {0.5, 1}},
		Ranking: []RankingRow{
			{Symbol: "BTCUSDT", ROI: 12.0, Trades: 2},
		},
	}
}

func TestWriteTradesCSV_WritesHeaderRowsAndSummary(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "trades.csv")

	err := WriteTradesCSV(sampleWorkbookData(), path)
	require.NoError(t, err)

	contents, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(contents)

	assert.Contains(t, text, "Kind,Datetime,Price,Amount")
	assert.Contains(t, text, "Buy")
	assert.Contains(t, text, "FinalSell")
	assert.Contains(t, text, "SUMMARY")
}

func TestWriteTradesCSV_DelegatesToExcelForXlsxPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "trades.xlsx")

	err := WriteTradesCSV(sampleWorkbookData(), path)
	require.NoError(t, err)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestWriteWorkbookXLSX_CreatesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "workbook.xlsx")

	err := WriteWorkbookXLSX(sampleWorkbookData(), path)
	require.NoError(t, err)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestDefaultOutputDir_UppercasesSymbolAndJoinsDate(t *testing.T) {
	assert.Equal(t, filepath.Join("reports", "BTCUSDT_2026-08-01"), DefaultOutputDir("btcusdt", "2026-08-01"))
}
