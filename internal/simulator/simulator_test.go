package simulator

import (
	"math"
	"testing"
	"time"

	"github.com/bvantuan/dca-signal-engine/internal/indicators"
	"github.com/bvantuan/dca-signal-engine/internal/scorer"
	"github.com/bvantuan/dca-signal-engine/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func generateSeries(n int, priceAt func(i int) float64) []types.OHLCV {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	out := make([]types.OHLCV, n)
	for i := 0; i < n; i++ {
		price := priceAt(i)
		out[i] = types.OHLCV{
			Open: price, High: price, Low: price, Close: price, Volume: 1.0,
			Timestamp: start.AddDate(0, 0, i),
		}
	}
	return out
}

func TestRun_MonotoneUpSeries_PositiveROIAndAtLeastOneEntryPlusFinalSell(t *testing.T) {
	data := generateSeries(400, func(i int) float64 { return 100 * math.Pow(1.002, float64(i)) })
	frame := indicators.NewEngine().Compute(data)

	summary := Run(frame, 50, DefaultParams())
	assert.GreaterOrEqual(t, summary.NumTrades, 2, "expect at least an entry and a FinalSell")
	assert.Greater(t, summary.ROI, 0.0)
}

func TestRun_FlatSeries_NoTradesOrFeesBoundedOnly(t *testing.T) {
	data := generateSeries(400, func(i int) float64 { return 100 })
	frame := indicators.NewEngine().Compute(data)

	summary := Run(frame, 50, DefaultParams())
	minROI := -100 * DefaultParams().GenericFee * float64(summary.NumTrades)
	assert.GreaterOrEqual(t, summary.ROI, minROI)
}

func TestRun_InvariantsHoldThroughoutWalk(t *testing.T) {
	data := generateSeries(300, func(i int) float64 {
		if i < 150 {
			return 100 - float64(i)*0.3
		}
		return 100 - 150*0.3 + float64(i-150)*0.5
	})
	frame := indicators.NewEngine().Compute(data)
	summary := Run(frame, 50, DefaultParams())

	assert.GreaterOrEqual(t, summary.FinalPortfolioValue, 0.0)
	assert.GreaterOrEqual(t, summary.NumTrades, 0)
}

func TestRun_TradeHistoryStrictlyNonDecreasingDatetime(t *testing.T) {
	data := generateSeries(250, func(i int) float64 { return 100 * math.Pow(1.003, float64(i)) })
	frame := indicators.NewEngine().Compute(data)
	s := &state{cash: DefaultParams().InitialCapital}

	n := frame.Len()
	for i := 0; i < n; i++ {
		row := frame.Row(i)
		s.step(row, time.UnixMilli(row.Datetime).UTC(), 50, DefaultParams())
	}
	for i := 1; i < len(s.trades); i++ {
		assert.False(t, s.trades[i].Datetime.Before(s.trades[i-1].Datetime))
	}
}

func TestEnter_DeductsFeeAndTracksAvgPrice(t *testing.T) {
	s := &state{cash: 10000}
	params := DefaultParams()
	at := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	s.enter(100, at, 0.35, params)

	require.NotNil(t, s.position)
	assert.Equal(t, 100.0, s.position.AvgPrice)
	assert.InDelta(t, 6500, s.cash, 1e-9)
	assert.Len(t, s.trades, 1)
	assert.Equal(t, TradeBuy, s.trades[0].Kind)
}

func TestDcaBuy_RecomputesCostWeightedAveragePrice(t *testing.T) {
	s := &state{cash: 10000}
	params := DefaultParams()
	at := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s.enter(100, at, 0.5, params) // avg_price=100, amount ~ 49.75

	ok := s.dcaBuy(70, at.AddDate(0, 0, 1), params) // drop=0.30>0.20 -> scale 1.0
	require.True(t, ok)
	assert.Less(t, s.position.AvgPrice, 100.0)
	assert.Greater(t, s.position.AvgPrice, 70.0)
	assert.Equal(t, 1, s.position.DcaBuys)
}

func TestDcaBuy_SkippedWhenInvestmentBelowFloor(t *testing.T) {
	s := &state{cash: 50}
	params := DefaultParams()
	at := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s.position = &Position{AvgPrice: 100, Amount: 1, EntryTime: at}

	ok := s.dcaBuy(70, at.AddDate(0, 0, 1), params)
	assert.False(t, ok)
	assert.Equal(t, 0, s.position.DcaBuys)
}

func TestPartialSell_OnlyAboveProfitThreshold(t *testing.T) {
	s := &state{}
	params := DefaultParams()
	at := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s.position = &Position{AvgPrice: 100, Amount: 10, EntryTime: at}
	s.held = 10

	ok := s.partialSell(110, at, params) // 10% gain < 20% threshold
	assert.False(t, ok)

	ok = s.partialSell(125, at, params) // 25% gain clears it
	assert.True(t, ok)
	assert.Equal(t, 1, s.position.PartialSells)
	assert.InDelta(t, 6, s.position.Amount, 1e-9) // 10 - 10*0.4
}

func TestFullSellOnWin_LatchesWaitingForBetterEntry(t *testing.T) {
	s := &state{}
	params := DefaultParams()
	at := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s.position = &Position{AvgPrice: 100, Amount: 10, EntryTime: at}
	s.held = 10
	s.consecutiveLosses = 2

	s.fullSellOnWin(150, at, params)
	assert.Nil(t, s.position)
	assert.True(t, s.waitingForBetterEntry)
	assert.Equal(t, 150.0, s.lastSellPrice)
	assert.Equal(t, 0, s.consecutiveLosses)
	assert.Equal(t, TradeFullSell, s.trades[0].Kind)
}

func TestFinalSell_UsesMaxOfLastPriceAndAvgPrice(t *testing.T) {
	s := &state{}
	params := DefaultParams()
	at := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s.position = &Position{AvgPrice: 100, Amount: 10, EntryTime: at}
	s.held = 10

	s.finalSell(80, at, params) // losing mark; avg_price wins
	require.Len(t, s.trades, 1)
	assert.Equal(t, 100.0, s.trades[0].Price)
	assert.Equal(t, TradeFinalSell, s.trades[0].Kind)
}

func TestApplyLossStop_RequiresAllThreeConditions(t *testing.T) {
	params := DefaultParams()
	entryTime := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	s := &state{}
	s.position = &Position{AvgPrice: 100, Amount: 10, EntryTime: entryTime}
	s.held = 10

	row := indicators.Row{Price: 70, RSI: 45} // <0.8*avg_price, rsi>40
	farEnough := entryTime.Add(20 * 24 * time.Hour)
	eval := scorer.Evaluate(row, 50)

	s.applyLossStop(eval, row, farEnough, params)
	assert.Nil(t, s.position, "all three loss-stop conditions met: should liquidate")
}

func TestApplyLossStop_DoesNotFireBeforeFourteenDays(t *testing.T) {
	params := DefaultParams()
	entryTime := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	s := &state{}
	s.position = &Position{AvgPrice: 100, Amount: 10, EntryTime: entryTime}
	s.held = 10

	row := indicators.Row{Price: 70, RSI: 45}
	tooSoon := entryTime.Add(5 * 24 * time.Hour)
	eval := scorer.Evaluate(row, 50)

	s.applyLossStop(eval, row, tooSoon, params)
	assert.NotNil(t, s.position)
}

func TestEnter_ClearsWaitingForBetterEntryLatch(t *testing.T) {
	s := &state{cash: 1000, waitingForBetterEntry: true, lastSellPrice: 200}
	params := DefaultParams()
	at := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	s.enter(150, at, params.InitialInvestmentFraction, params)
	assert.False(t, s.waitingForBetterEntry, "a successful entry must clear the latch")
}

func TestPositionContext_ThreadsPreviousRowMA5(t *testing.T) {
	s := &state{cash: 1000}
	s.position = &Position{AvgPrice: 100, Amount: 1}

	ctx := s.positionContext(indicators.Row{Price: 100, MA5: 95})
	assert.Zero(t, ctx.PrevMA5, "no prior row observed yet: PrevMA5 stays zero")

	s.prevMA5 = 95
	s.havePrevMA5 = true
	ctx = s.positionContext(indicators.Row{Price: 100, MA5: 90})
	assert.Equal(t, 95.0, ctx.PrevMA5, "PrevMA5 should carry the previous row's MA5")
}

func TestStep_UpdatesPrevMA5AfterEachRow(t *testing.T) {
	s := &state{cash: 1000}
	params := DefaultParams()
	at := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	s.step(indicators.Row{Price: 100, MA5: 95, RSI: 50}, at, 50, params)
	assert.True(t, s.havePrevMA5)
	assert.Equal(t, 95.0, s.prevMA5)

	s.step(indicators.Row{Price: 101, MA5: 96, RSI: 50}, at.AddDate(0, 0, 1), 50, params)
	assert.Equal(t, 96.0, s.prevMA5)
}
