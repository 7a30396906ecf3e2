package scorer

import (
	"math"

	"github.com/bvantuan/dca-signal-engine/internal/indicators"
)

// Evaluation is the full result of scoring one row: the fallback-applied
// indicator values actually used (so DCA-opportunity functions don't
// recompute them), the regime flags, and the buy/sell verdict.
type Evaluation struct {
	Price, MA5, MA25, MA50, MA111    float64
	RSI, ROC                         float64
	LowerBand, UpperBand             float64
	VMA20, ATR14                     float64
	MACD, MACDSignal                 float64

	VolatilityHigh, StrongUptrend bool
	Oversold, Overbought          bool

	BuyScore, SellScore         float64
	BuyThreshold, SellThreshold float64
	BuyNow, SellNow             bool
}

func fallback(v, def float64) float64 {
	if indicators.IsNull(v) {
		return def
	}
	return v
}

// Evaluate scores a single indicator row against the weighted table of
// spec §4.3, applying the read-time fallbacks spec §4.3 prescribes for
// indicators that can still be null this far into history (ma111, rsi,
// roc, the bands, vma20, atr14). ma5/ma25/ma50/macd/signal are required —
// no fallback is defined for them; a null simply drops every comparison
// that reads it, since NaN comparisons are always false in Go.
func Evaluate(row indicators.Row, fearGreedIndex int) Evaluation {
	e := Evaluation{
		Price:      row.Price,
		MA5:        row.MA5,
		MA25:       row.MA25,
		MA50:       row.MA50,
		MA111:      fallback(row.MA111, 0.9*row.Price),
		RSI:        fallback(row.RSI, 50),
		ROC:        fallback(row.ROC, 0),
		LowerBand:  fallback(row.LowerBand, 0.9*row.Price),
		UpperBand:  fallback(row.UpperBand, 1.1*row.Price),
		VMA20:      fallback(row.VMA20, row.Price),
		ATR14:      fallback(row.ATR14, 0.05*row.Price),
		MACD:       row.MACD,
		MACDSignal: row.MACDSignal,
	}

	e.VolatilityHigh = e.ATR14/e.Price > 0.03
	e.StrongUptrend = e.MA5 > e.MA25 && e.MA25 > e.MA50 && e.MA50 > e.MA111
	e.Oversold = e.RSI < 30
	e.Overbought = e.RSI > 70

	e.BuyScore = buyScore(e, fearGreedIndex)
	e.SellScore = sellScore(e, fearGreedIndex)

	e.BuyThreshold = 60
	if e.VolatilityHigh {
		e.BuyThreshold = 70
	}
	e.SellThreshold = 70
	if e.VolatilityHigh {
		e.SellThreshold = 65
	}
	if e.StrongUptrend {
		e.SellThreshold += 10
	}

	e.BuyNow = e.BuyScore >= e.BuyThreshold
	e.SellNow = e.SellScore >= e.SellThreshold
	return e
}

func buyScore(e Evaluation, fearGreedIndex int) float64 {
	score := 0.0
	if e.Price > e.MA5 {
		score += 5
	}
	if e.Price > e.MA25 {
		score += 10
	}
	if e.MA5 > e.MA25 {
		score += 15
	}
	if e.MACD > e.MACDSignal {
		score += 15
	}
	if e.MACD > 0 {
		score += 10
	}
	switch {
	case e.RSI < 30:
		score += 20
	case e.RSI < 40:
		score += 10
	}
	switch {
	case e.Price <= 1.02*e.LowerBand:
		score += 15
	case e.Price <= 1.05*e.LowerBand:
		score += 10
	}
	if e.VMA20 > 0.9*e.Price {
		score += 10
	}
	switch {
	case fearGreedIndex < 25:
		score += 15
	case fearGreedIndex < 40:
		score += 10
	case fearGreedIndex > 80:
		score -= 15
	case fearGreedIndex > 65:
		score -= 10
	}
	return score
}

func sellScore(e Evaluation, fearGreedIndex int) float64 {
	score := 0.0
	if e.Price < e.MA5 {
		score += 5
	}
	if e.Price < e.MA25 {
		score += 10
	}
	if e.MA5 < e.MA25 {
		score += 15
	}
	if e.MACD < e.MACDSignal {
		score += 15
	}
	if e.MACD < 0 {
		score += 10
	}
	switch {
	case e.RSI > 70:
		score += 20
	case e.RSI > 65:
		score += 10
	}
	switch {
	case e.Price >= 0.98*e.UpperBand:
		score += 15
	case e.Price >= 0.95*e.UpperBand:
		score += 10
	}
	if e.VMA20 < e.Price {
		score += 10
	}
	switch {
	case fearGreedIndex > 80:
		score += 15
	case fearGreedIndex > 65:
		score += 10
	case fearGreedIndex < 20:
		score -= 10
	}
	return score
}

// macdBullishForDCA mirrors spec §4.3's DCA-buy MACD clause literally:
// "macd > signal or (macd < 0 and |macd|*0.3 > -macd and macd > signal)".
// The second disjunct is algebraically unreachable whenever macd < 0
// (it reduces to 0.3 > 1), so this always collapses to plain
// macd > signal — kept verbatim rather than simplified, for parity with
// the scoring table it was distilled from.
func macdBullishForDCA(e Evaluation) bool {
	return e.MACD > e.MACDSignal || (e.MACD < 0 && math.Abs(e.MACD)*0.3 > -e.MACD && e.MACD > e.MACDSignal)
}
