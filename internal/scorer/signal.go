// Package scorer implements the row-level, weighted multi-factor signal
// classifier of spec §4.3: regime classifiers, a buy/sell scoring table,
// DCA-opportunity predicates, and the composite Signal they produce.
//
// The teacher scores signals per-indicator (each TechnicalIndicator votes
// ShouldBuy/ShouldSell, internal/indicators/manager.go tallies them); this
// package keeps that "many small signed contributions summed against a
// threshold" shape but replaces the vote tally with the exact weighted
// point table spec §4.3 defines over one already-computed indicator row.
package scorer

// Signal is the discrete trading classification emitted for a row.
type Signal int

const (
	SignalHold Signal = iota
	SignalBuy
	SignalSell
	SignalDcaBuy
	SignalDcaSell
)

func (s Signal) String() string {
	switch s {
	case SignalBuy:
		return "Buy"
	case SignalSell:
		return "Sell"
	case SignalDcaBuy:
		return "DcaBuy"
	case SignalDcaSell:
		return "DcaSell"
	default:
		return "Hold"
	}
}

// DefaultSentiment is used when the Fear-and-Greed index is unavailable
// (spec §3/§6: "default 50 when unavailable").
const DefaultSentiment = 50
