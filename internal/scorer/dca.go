package scorer

import "math"

// PositionContext carries the position-dependent facts the DCA-opportunity
// predicates need, without the scorer importing the simulator's Position
// type — the simulator owns position state and passes down only the
// fields spec §4.3 actually reads.
type PositionContext struct {
	Held                  bool
	AvgPrice              float64
	DcaBuysRecorded       int
	PartialSellsRecorded  int
	AvailableCash         float64
	PrevMA5               float64 // MA5 one row back, for "short-term MA turning down"
}

// HasDCABuyOpportunity implements spec §4.3's DCA-buy score: only
// meaningful while a position is held, since every term compares price to
// avg_price.
func HasDCABuyOpportunity(e Evaluation, pos PositionContext, fearGreedIndex int, dcaBuyThreshold float64) (bool, float64) {
	if !pos.Held || pos.AvgPrice <= 0 {
		return false, 0
	}

	score := 0.0
	switch {
	case e.Price < 0.85*pos.AvgPrice:
		score += 40
	case e.Price < 0.90*pos.AvgPrice:
		score += 30
	case e.Price < 0.92*pos.AvgPrice:
		score += 20
	case e.Price < (1-dcaBuyThreshold)*pos.AvgPrice:
		score += 10
	}

	switch {
	case e.RSI < 25:
		score += 20
	case e.RSI < 30:
		score += 15
	case e.RSI < 35:
		score += 10
	}

	if e.Price <= 1.03*e.LowerBand {
		score += 15
	}
	if macdBullishForDCA(e) {
		score += 10
	}
	if relativeDistance(e.Price, e.MA25) <= 0.02 || relativeDistance(e.Price, e.MA50) <= 0.02 {
		score += 5
	}
	if fearGreedIndex < 20 {
		score += 10
	}
	if e.VolatilityHigh {
		score += 5
	}
	if pos.DcaBuysRecorded >= 3 {
		score -= 30
	}

	return score >= 60 && pos.AvailableCash >= 200, score
}

// HasDCASellOpportunity implements spec §4.3's DCA-sell (partial
// take-profit) score: only meaningful once price has moved above the
// position's average cost.
func HasDCASellOpportunity(e Evaluation, pos PositionContext, fearGreedIndex int, profitSellThreshold float64) (bool, float64) {
	if !pos.Held || pos.AvgPrice <= 0 || e.Price <= pos.AvgPrice {
		return false, 0
	}

	profitPct := (e.Price/pos.AvgPrice - 1) * 100

	score := 0.0
	switch {
	case profitPct > 25:
		score += 40
	case profitPct > 20:
		score += 30
	case profitPct > 15:
		score += 20
	case profitPct > profitSellThreshold*100:
		score += 15
	}

	switch {
	case e.RSI > 80:
		score += 25
	case e.RSI > 75:
		score += 20
	case e.RSI > 70:
		score += 15
	case e.RSI > 65:
		score += 10
	}

	if e.Price >= 0.95*e.UpperBand {
		score += 15
	}
	if e.MACD < e.MACDSignal && e.MACD > 0 {
		score += 10
	}
	if pos.PrevMA5 != 0 && e.MA5 < pos.PrevMA5 {
		score += 5
	}
	if fearGreedIndex > 75 {
		score += 5
	}
	if e.VMA20 <= e.Price {
		score += 5
	}

	threshold := 65.0
	if profitPct > 25 {
		threshold -= 10
	}
	if pos.PartialSellsRecorded >= 2 {
		threshold += 15
	}

	return score >= threshold, score
}

func relativeDistance(price, ma float64) float64 {
	if ma == 0 {
		return math.Inf(1)
	}
	return math.Abs(price-ma) / ma
}

// ComposeSignal derives the final discrete Signal for poll mode: DcaBuy
// takes precedence over DcaSell, both take precedence over a fresh
// entry/exit call, and Buy/Sell require the other side NOT to also be
// true on the same row.
func ComposeSignal(e Evaluation, hasDcaBuy, hasDcaSell bool) Signal {
	switch {
	case hasDcaBuy:
		return SignalDcaBuy
	case hasDcaSell:
		return SignalDcaSell
	case e.BuyNow && !e.SellNow:
		return SignalBuy
	case e.SellNow && !e.BuyNow:
		return SignalSell
	default:
		return SignalHold
	}
}
