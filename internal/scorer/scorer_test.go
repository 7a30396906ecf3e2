package scorer

import (
	"testing"

	"github.com/bvantuan/dca-signal-engine/internal/indicators"
	"github.com/stretchr/testify/assert"
)

func baseRow() indicators.Row {
	return indicators.Row{
		Price: 100, MA5: 95, MA25: 90, MA50: 85, MA111: 80,
		RSI: 50, ROC: 1, LowerBand: 90, UpperBand: 110,
		VMA20: 100, ATR14: 1, MACD: 1, MACDSignal: 0,
	}
}

func TestEvaluate_StrongUptrendRaisesSellThreshold(t *testing.T) {
	row := baseRow()
	row.MA5, row.MA25, row.MA50, row.MA111 = 100, 95, 90, 85
	e := Evaluate(row, DefaultSentiment)
	assert.True(t, e.StrongUptrend)
	assert.Equal(t, 80.0, e.SellThreshold, "strong_uptrend adds +10 to the base 70")
}

func TestEvaluate_VolatilityHighShiftsBothThresholds(t *testing.T) {
	row := baseRow()
	row.ATR14 = 5    // atr14/price = 0.05 > 0.03
	row.MA111 = 90   // breaks strong_uptrend (ma50=85 not > ma111) so it doesn't also add +10
	e := Evaluate(row, DefaultSentiment)
	assert.True(t, e.VolatilityHigh)
	assert.False(t, e.StrongUptrend)
	assert.Equal(t, 70.0, e.BuyThreshold)
	assert.Equal(t, 65.0, e.SellThreshold)
}

func TestEvaluate_OversoldAndOverboughtClassifiers(t *testing.T) {
	row := baseRow()
	row.RSI = 25
	assert.True(t, Evaluate(row, DefaultSentiment).Oversold)

	row.RSI = 75
	assert.True(t, Evaluate(row, DefaultSentiment).Overbought)
}

func TestEvaluate_MissingValuesFallBackPerSpec(t *testing.T) {
	row := indicators.Row{Price: 100, MA5: 95, MA25: 90, MA50: 85, MACD: 1, MACDSignal: 0}
	// MA111, RSI, ROC, bands, VMA20, ATR14 all null (zero value is not NaN,
	// so set them explicitly to NaN via IsNull-compatible sentinel).
	row.MA111 = nanValue()
	row.RSI = nanValue()
	row.ROC = nanValue()
	row.LowerBand = nanValue()
	row.UpperBand = nanValue()
	row.VMA20 = nanValue()
	row.ATR14 = nanValue()

	e := Evaluate(row, DefaultSentiment)
	assert.Equal(t, 90.0, e.MA111)
	assert.Equal(t, 50.0, e.RSI)
	assert.Equal(t, 0.0, e.ROC)
	assert.Equal(t, 90.0, e.LowerBand)
	assert.Equal(t, 110.0, e.UpperBand)
	assert.Equal(t, 100.0, e.VMA20)
	assert.Equal(t, 5.0, e.ATR14)
}

func TestEvaluate_BuyScoreAccumulatesContributions(t *testing.T) {
	row := indicators.Row{
		Price: 100, MA5: 99, MA25: 98, MA50: 85, MA111: 80,
		RSI: 25, LowerBand: 99, UpperBand: 130,
		VMA20: 95, ATR14: 1, MACD: 2, MACDSignal: 1,
	}
	e := Evaluate(row, 20) // F<25 => +15
	// price>ma5(+5) price>ma25(+10) ma5>ma25(+15) macd>signal(+15) macd>0(+10)
	// rsi<30(+20) price<=1.02*lower_band(+15) vma20>0.9*price(+10) F<25(+15)
	assert.Equal(t, 115.0, e.BuyScore)
	assert.True(t, e.BuyNow)
}

func TestComposeSignal_PriorityOrder(t *testing.T) {
	hold := Evaluation{}
	assert.Equal(t, SignalHold, ComposeSignal(hold, false, false))
	assert.Equal(t, SignalDcaBuy, ComposeSignal(hold, true, true))
	assert.Equal(t, SignalDcaSell, ComposeSignal(hold, false, true))

	buyOnly := Evaluation{BuyNow: true}
	assert.Equal(t, SignalBuy, ComposeSignal(buyOnly, false, false))

	both := Evaluation{BuyNow: true, SellNow: true}
	assert.Equal(t, SignalHold, ComposeSignal(both, false, false), "buy_now and sell_now both true degrades to Hold")
}

func TestHasDCABuyOpportunity_RequiresHeldPositionAndCash(t *testing.T) {
	e := Evaluate(indicators.Row{
		Price: 80, MA5: 95, MA25: 90, MA50: 85, MA111: 80,
		RSI: 20, LowerBand: 82, UpperBand: 110, VMA20: 100, ATR14: 5, MACD: 1, MACDSignal: 0,
	}, 10)

	pos := PositionContext{Held: true, AvgPrice: 100, AvailableCash: 500}
	ok, score := HasDCABuyOpportunity(e, pos, 10, 0.10)
	assert.True(t, ok)
	assert.GreaterOrEqual(t, score, 60.0)

	notHeld := PositionContext{Held: false}
	ok, _ = HasDCABuyOpportunity(e, notHeld, 10, 0.10)
	assert.False(t, ok)

	lowCash := PositionContext{Held: true, AvgPrice: 100, AvailableCash: 50}
	ok, _ = HasDCABuyOpportunity(e, lowCash, 10, 0.10)
	assert.False(t, ok, "score may qualify but current_cash < 200 blocks the trigger")
}

func TestHasDCABuyOpportunity_ThreeDcaBuysRecordedPenalizes(t *testing.T) {
	e := Evaluate(indicators.Row{
		Price: 80, MA5: 95, MA25: 90, MA50: 85, MA111: 80,
		RSI: 20, LowerBand: 82, UpperBand: 110, VMA20: 100, ATR14: 5, MACD: 1, MACDSignal: 0,
	}, 10)

	pos := PositionContext{Held: true, AvgPrice: 100, AvailableCash: 500, DcaBuysRecorded: 3}
	_, penalizedScore := HasDCABuyOpportunity(e, pos, 10, 0.10)

	pos.DcaBuysRecorded = 0
	_, fullScore := HasDCABuyOpportunity(e, pos, 10, 0.10)
	assert.Equal(t, fullScore-30, penalizedScore)
}

func TestHasDCASellOpportunity_RequiresProfitAbovePosition(t *testing.T) {
	e := Evaluate(indicators.Row{
		Price: 130, MA5: 120, MA25: 110, MA50: 100, MA111: 90,
		RSI: 85, LowerBand: 100, UpperBand: 132, VMA20: 100, ATR14: 1, MACD: -1, MACDSignal: 0,
	}, 80)

	pos := PositionContext{Held: true, AvgPrice: 100}
	ok, _ := HasDCASellOpportunity(e, pos, 80, 0.20)
	assert.True(t, ok)

	losing := PositionContext{Held: true, AvgPrice: 150}
	ok, _ = HasDCASellOpportunity(e, losing, 80, 0.20)
	assert.False(t, ok, "price below avg_price never qualifies")
}

func TestHasDCASellOpportunity_TwoPartialSellsRaisesThreshold(t *testing.T) {
	// profit_pct = 21 (+30), rsi 72 (+15), price >= 0.95*upper_band (+15),
	// macd < signal && macd > 0 (+10), vma20 <= price (+5) => score 75.
	e := Evaluate(indicators.Row{
		Price: 121, MA5: 115, MA25: 110, MA50: 100, MA111: 90,
		RSI: 72, LowerBand: 100, UpperBand: 127, VMA20: 121, ATR14: 1, MACD: 1, MACDSignal: 2,
	}, 50)

	fresh := PositionContext{Held: true, AvgPrice: 100}
	okFresh, score := HasDCASellOpportunity(e, fresh, 50, 0.20)
	assert.Equal(t, 75.0, score)

	seasoned := PositionContext{Held: true, AvgPrice: 100, PartialSellsRecorded: 2}
	okSeasoned, _ := HasDCASellOpportunity(e, seasoned, 50, 0.20)

	assert.True(t, okFresh, "base threshold 65 is met by a score of 75")
	assert.False(t, okSeasoned, "raised threshold of 80 after 2 recorded partial sells rejects the same score")
}

func nanValue() float64 {
	var zero float64
	return zero / zero
}
