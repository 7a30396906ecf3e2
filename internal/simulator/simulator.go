// Package simulator implements the stateful per-row trade walk of spec
// §4.4: a position lifecycle (Flat/Held) driven by the scorer's buy/sell
// verdicts and DCA-opportunity predicates, bookkeeping cash, held units,
// and an append-only trade history.
//
// Grounded in the teacher's backtest engine (internal/backtest/engine.go):
// the same cash/position/trade-ledger bookkeeping shape, generalized from
// leveraged futures P&L to the spot DCA lifecycle spec §4.4 defines.
package simulator

import (
	"time"

	"github.com/bvantuan/dca-signal-engine/internal/indicators"
	"github.com/bvantuan/dca-signal-engine/internal/scorer"
)

const lossStopLookback = 14 * 24 * time.Hour

// Run walks frame from max(0, N-365) to the last row, applying the §4.4
// decision rules, then forces a terminal liquidation if still in
// position. frame must have at least one row.
func Run(frame *indicators.IndicatorFrame, sentiment int, params Params) Summary {
	s := &state{cash: params.InitialCapital}

	n := frame.Len()
	start := n - 365
	if start < 0 {
		start = 0
	}

	var lastPrice float64
	var lastTime time.Time
	for i := start; i < n; i++ {
		row := frame.Row(i)
		lastPrice = row.Price
		lastTime = time.UnixMilli(row.Datetime).UTC()
		s.step(row, lastTime, sentiment, params)
	}

	if s.position != nil {
		s.finalSell(lastPrice, lastTime, params)
	}

	return summarize(params.InitialCapital, s.cash, s.held, lastPrice, s.trades, params.GenericFee)
}

// state carries the cross-row mutable state spec's Design Notes call out:
// the position itself, plus the waiting-for-better-entry latch and the
// consecutive-loss counter, which are the only state that survives a
// Held→Flat transition.
type state struct {
	cash     float64
	held     float64
	position *Position
	trades   []Trade

	waitingForBetterEntry bool
	lastSellPrice         float64
	consecutiveLosses     int

	havePrevMA5 bool
	prevMA5     float64
}

func (s *state) step(row indicators.Row, rowTime time.Time, sentiment int, params Params) {
	eval := scorer.Evaluate(row, sentiment)
	posCtx := s.positionContext(row)
	hasDcaBuy, _ := scorer.HasDCABuyOpportunity(eval, posCtx, sentiment, params.DCABuyThreshold)
	hasDcaSell, _ := scorer.HasDCASellOpportunity(eval, posCtx, sentiment, params.ProfitSellThreshold)

	tradedThisRow := false

	if s.position == nil {
		tradedThisRow = s.tryEnter(eval, row, rowTime, params)
	} else {
		switch {
		case hasDcaBuy:
			tradedThisRow = s.dcaBuy(row.Price, rowTime, params)
		case hasDcaSell:
			tradedThisRow = s.partialSell(row.Price, rowTime, params)
		case eval.SellNow && row.Price > s.position.AvgPrice:
			s.fullSellOnWin(row.Price, rowTime, params)
			tradedThisRow = true
		}
	}

	if !tradedThisRow && s.position != nil {
		s.applyLossStop(eval, row, rowTime, params)
	}

	s.prevMA5 = row.MA5
	s.havePrevMA5 = true
}

func (s *state) positionContext(row indicators.Row) scorer.PositionContext {
	if s.position == nil {
		return scorer.PositionContext{Held: false}
	}
	var prevMA5 float64
	if s.havePrevMA5 {
		prevMA5 = s.prevMA5
	}
	return scorer.PositionContext{
		Held:                 true,
		AvgPrice:             s.position.AvgPrice,
		DcaBuysRecorded:      s.position.DcaBuys,
		PartialSellsRecorded: s.position.PartialSells,
		AvailableCash:        s.cash,
		PrevMA5:              prevMA5,
	}
}

// tryEnter implements spec §4.4 step 2. strong_buying_signal is computed
// once and shared by both the consecutive-loss branch and the normal
// entry branch, per the spec's single definition of the term.
func (s *state) tryEnter(eval scorer.Evaluation, row indicators.Row, rowTime time.Time, params Params) bool {
	if s.waitingForBetterEntry && row.Price >= s.lastSellPrice {
		return false
	}

	strongBuyingSignal := eval.BuyNow && eval.RSI < 35 && row.Price < row.MA25

	if s.consecutiveLosses >= 2 {
		if !strongBuyingSignal {
			return false
		}
		s.enter(row.Price, rowTime, params.InitialInvestmentFraction*0.7, params)
		return true
	}

	if eval.BuyNow && s.cash > 100 {
		fraction := params.InitialInvestmentFraction
		if strongBuyingSignal {
			fraction *= 1.2
		}
		if fraction > 0.7 {
			fraction = 0.7
		}
		s.enter(row.Price, rowTime, fraction, params)
		return true
	}
	return false
}

func (s *state) enter(price float64, at time.Time, fraction float64, params Params) {
	investment := s.cash * fraction
	fee := investment * params.GenericFee
	amount := (investment - fee) / price

	s.cash -= investment
	s.held += amount
	s.position = &Position{AvgPrice: price, Amount: amount, InvestedCash: investment, EntryTime: at}
	s.trades = append(s.trades, Trade{Kind: TradeBuy, Datetime: at, Price: price, Amount: amount})
	s.waitingForBetterEntry = false
}

// dcaBuy implements spec §4.4's DCA buy. Returns false (no trade) when the
// scaled investment falls below the $100 floor.
func (s *state) dcaBuy(price float64, at time.Time, params Params) bool {
	pos := s.position
	drop := (pos.AvgPrice - price) / pos.AvgPrice

	var scale float64
	switch {
	case drop > 0.20:
		scale = 1.0
	case drop > 0.15:
		scale = 0.9
	case drop > 0.10:
		scale = params.DCABuyFraction
	default:
		scale = 0.8 * params.DCABuyFraction
	}

	investment := s.cash * scale
	if investment < 100 {
		return false
	}
	fee := investment * params.GenericFee
	amount := (investment - fee) / price

	newTotal := pos.Amount + amount
	pos.AvgPrice = (pos.AvgPrice*pos.Amount + price*amount) / newTotal
	pos.Amount = newTotal
	pos.InvestedCash += investment
	pos.DcaBuys++

	s.cash -= investment
	s.held += amount
	s.trades = append(s.trades, Trade{Kind: TradeDcaBuy, Datetime: at, Price: price, Amount: amount})
	return true
}

// partialSell implements spec §4.4's take-profit sell, gated on price
// exceeding avg_price by profit_sell_threshold. HasDCASellOpportunity can
// fire on its score alone with a smaller gain, so the gate is checked
// here, where it governs the trade.
func (s *state) partialSell(price float64, at time.Time, params Params) bool {
	pos := s.position
	if price <= pos.AvgPrice*(1+params.ProfitSellThreshold) {
		return false
	}

	sellAmount := pos.Amount * params.ProfitSellFraction
	gross := sellAmount * price
	fee := gross * params.GenericFee

	s.cash += gross - fee
	s.held -= sellAmount
	pos.Amount -= sellAmount
	pos.PartialSells++

	s.trades = append(s.trades, Trade{Kind: TradePartialSell, Datetime: at, Price: price, Amount: sellAmount})
	return true
}

// fullSellOnWin implements spec §4.4 step 3's winning exit: liquidates,
// latches waiting_for_better_entry, and resets the loss streak.
func (s *state) fullSellOnWin(price float64, at time.Time, params Params) {
	s.liquidate(price, at, TradeFullSell, params)
	s.waitingForBetterEntry = true
	s.lastSellPrice = price
	s.consecutiveLosses = 0
}

// applyLossStop implements spec §4.4 step 4: orthogonal to step 3, fires
// only when step 3 left the position untouched this row.
func (s *state) applyLossStop(eval scorer.Evaluation, row indicators.Row, rowTime time.Time, params Params) {
	pos := s.position
	if row.Price >= 0.8*pos.AvgPrice {
		return
	}
	if rowTime.Sub(pos.EntryTime) <= lossStopLookback {
		return
	}
	if eval.RSI <= 40 {
		return
	}
	s.liquidate(row.Price, rowTime, TradeFullSell, params)
	s.consecutiveLosses++
}

func (s *state) finalSell(lastPrice float64, lastTime time.Time, params Params) {
	pos := s.position
	sellPrice := lastPrice
	if pos.AvgPrice > sellPrice {
		sellPrice = pos.AvgPrice
	}
	s.liquidate(sellPrice, lastTime, TradeFinalSell, params)
}

func (s *state) liquidate(price float64, at time.Time, kind TradeKind, params Params) {
	pos := s.position
	gross := pos.Amount * price
	fee := gross * params.GenericFee

	s.cash += gross - fee
	s.trades = append(s.trades, Trade{Kind: kind, Datetime: at, Price: price, Amount: pos.Amount})
	s.held -= pos.Amount
	s.position = nil
}
