// Package notifications defines the content model spec §6's notification
// sink accepts — a per-symbol alert on action change and a daily digest —
// without specifying how either is rendered. Rendering is a concern of
// the concrete Notifier implementation (e.g. TelegramNotifier), not of
// this model.
//
// Grounded in original_source/crates/seyeon_email/src/lib.rs's
// report_sender/send_daily_report: the same signal-change alert plus
// daily-digest (status list, correlation matrix, performance ranking)
// shape, extended with the sentiment and global-market snapshots spec §6
// adds.
package notifications

import "time"

// SignalAlert fires whenever a symbol's classified action changes from
// its previously observed value.
type SignalAlert struct {
	Symbol         string
	PreviousAction string
	NewAction      string
	Price          float64
	Timestamp      time.Time
}

// PerformanceRow is one ranked entry of a digest's comparative-performance
// section.
type PerformanceRow struct {
	Symbol     string
	ROI        float64
	FinalValue float64
	NumTrades  int
}

// GlobalMarketSnapshot is the supplemented market-wide context the
// original source's coinlore collaborator supplies alongside the
// per-asset digest.
type GlobalMarketSnapshot struct {
	CoinsCount       int64
	ActiveMarkets    int64
	TotalMarketCap   float64
	TotalVolume24h   float64
	BTCDominancePct  string
	ETHDominancePct  string
	MarketCapChange  string
	VolumeChange     string
}

// DigestReport is the daily bundle: every symbol's current signal, the
// correlation matrix, the comparative ROI ranking, the sentiment reading,
// and an optional global-market snapshot.
type DigestReport struct {
	Date          string
	Signals       map[string]string // symbol -> action string
	Symbols       []string          // stable ordering for Signals/Correlation
	Correlation   [][]float64
	Performance   []PerformanceRow
	SentimentValue int
	SentimentLabel string
	GlobalMarket  *GlobalMarketSnapshot
}
