package notifications

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type recordingNotifier struct {
	level, message string
}

func (r *recordingNotifier) SendAlert(level, message string) error {
	r.level = level
	r.message = message
	return nil
}

func TestNotify_RendersSignalAlert(t *testing.T) {
	n := &recordingNotifier{}
	alert := SignalAlert{Symbol: "BTCUSDT", PreviousAction: "Hold", NewAction: "Buy", Price: 65000, Timestamp: time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)}

	require := assert.New(t)
	err := Notify(n, alert)
	require.NoError(err)
	require.Equal("signal", n.level)
	require.Contains(n.message, "BTCUSDT")
	require.Contains(n.message, "Hold -> Buy")
}

func TestNotifyDigest_IncludesAllSections(t *testing.T) {
	n := &recordingNotifier{}
	report := DigestReport{
		Date:    "2026-08-01",
		Symbols: []string{"BTCUSDT", "ETHUSDT"},
		Signals: map[string]string{"BTCUSDT": "Buy", "ETHUSDT": "Hold"},
		Performance: []PerformanceRow{
			{Symbol: "BTCUSDT", ROI: 12.5, NumTrades: 4},
		},
		Correlation:    [][]float64{{1, 0.8}, {0.8, 1}},
		SentimentValue: 65,
		SentimentLabel: "Greed",
		GlobalMarket:   &GlobalMarketSnapshot{CoinsCount: 15000, ActiveMarkets: 900},
	}

	err := NotifyDigest(n, report)
	assert.NoError(t, err)
	assert.Contains(t, n.message, "BTCUSDT: Buy")
	assert.Contains(t, n.message, "Performance ranking")
	assert.Contains(t, n.message, "Correlation matrix")
	assert.Contains(t, n.message, "Greed")
	assert.Contains(t, n.message, "Global market")
}

func TestSortedSymbols_IsDeterministic(t *testing.T) {
	symbols := map[string]string{"ETHUSDT": "Hold", "BTCUSDT": "Buy", "SOLUSDT": "Sell"}
	assert.Equal(t, []string{"BTCUSDT", "ETHUSDT", "SOLUSDT"}, SortedSymbols(symbols))
}
