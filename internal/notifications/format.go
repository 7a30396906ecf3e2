package notifications

import (
	"fmt"
	"sort"
	"strings"
)

// FormatSignalAlert renders a SignalAlert as plain text, grounded in the
// original source's report_sender subject/body pairing.
func FormatSignalAlert(alert SignalAlert) string {
	return fmt.Sprintf(
		"Signal change for %s: %s -> %s at price %.2f (%s)",
		alert.Symbol, alert.PreviousAction, alert.NewAction, alert.Price,
		alert.Timestamp.Format("2006-01-02 15:04:05 MST"),
	)
}

// FormatDigest renders a DigestReport as plain text, grounded in the
// original source's send_daily_report plain-text fallback body.
func FormatDigest(report DigestReport) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Daily signal report for %s\n\n", report.Date)

	for _, symbol := range report.Symbols {
		fmt.Fprintf(&b, "- %s: %s\n", symbol, report.Signals[symbol])
	}

	if len(report.Performance) > 0 {
		b.WriteString("\nPerformance ranking:\n")
		for i, row := range report.Performance {
			fmt.Fprintf(&b, "%d. %s — ROI %.2f%% (%d trades)\n", i+1, row.Symbol, row.ROI, row.NumTrades)
		}
	}

	if len(report.Correlation) > 0 && len(report.Symbols) == len(report.Correlation) {
		b.WriteString("\nCorrelation matrix:\n")
		for i, row := range report.Symbols {
			parts := make([]string, len(report.Symbols))
			for j := range report.Symbols {
				parts[j] = fmt.Sprintf("%.2f", report.Correlation[i][j])
			}
			fmt.Fprintf(&b, "%s: %s\n", row, strings.Join(parts, ", "))
		}
	}

	fmt.Fprintf(&b, "\nSentiment: %s (%d)\n", report.SentimentLabel, report.SentimentValue)

	if report.GlobalMarket != nil {
		gm := report.GlobalMarket
		fmt.Fprintf(&b, "\nGlobal market: %d coins, %d active markets, total cap %.0f, 24h volume %.0f, BTC dominance %s\n",
			gm.CoinsCount, gm.ActiveMarkets, gm.TotalMarketCap, gm.TotalVolume24h, gm.BTCDominancePct)
	}

	return b.String()
}

// SortedSymbols is a small helper for callers building a DigestReport
// from an unordered map; kept here since it's presentation-adjacent, not
// a core analytics concern.
func SortedSymbols(symbols map[string]string) []string {
	out := make([]string, 0, len(symbols))
	for s := range symbols {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}
