package indicators

import (
	"math"

	"github.com/bvantuan/dca-signal-engine/pkg/types"
)

const (
	bollingerWindow  = 20
	bollingerStdDev  = 2.0
	emaFastSpan      = 12
	emaSlowSpan      = 26
	macdSignalSpan   = 9
	rocLookback      = 12
	vwmaWindow       = 20
	atrWindow        = 14
	rsiWindow        = 14
)

// Engine computes the full IndicatorFrame column set from an OHLCV series.
// It is the pure functional transform of spec §4.1: no I/O, no mutable
// state carried between calls.
type Engine struct{}

// NewEngine constructs an indicator engine. There is no configuration:
// every column and window size is fixed by spec §3.
func NewEngine() *Engine {
	return &Engine{}
}

// Compute produces an IndicatorFrame of exactly len(data) rows in the same
// order as data. An empty input produces an empty frame; a short input
// produces leading nulls rather than an error (spec §4.1 failure
// semantics) — InsufficientHistory is not a core error kind (spec §7).
func (e *Engine) Compute(data []types.OHLCV) *IndicatorFrame {
	n := len(data)
	f := &IndicatorFrame{
		Datetime: make([]int64, n),
		Price:    make([]float64, n),
		High:     make([]float64, n),
		Low:      make([]float64, n),
		Open:     make([]float64, n),
		Volume:   make([]float64, n),
	}
	for i, d := range data {
		f.Datetime[i] = d.Timestamp.UnixMilli()
		f.Price[i] = d.Close
		f.High[i] = d.High
		f.Low[i] = d.Low
		f.Open[i] = d.Open
		f.Volume[i] = d.Volume
	}
	if n == 0 {
		return f
	}

	// Moving averages must exist before Bollinger Bands (reads ma25) and
	// Pi-Cycle (reads ma350) — spec §4.1 ordering requirement.
	f.MA5 = rollingSMA(f.Price, 5)
	f.MA25 = rollingSMA(f.Price, 25)
	f.MA50 = rollingSMA(f.Price, 50)
	f.MA111 = rollingSMA(f.Price, 111)
	f.MA350 = rollingSMA(f.Price, 350)
	f.MA365 = rollingSMA(f.Price, 365)

	f.STD20 = rollingStdDev(f.Price, bollingerWindow)
	f.UpperBand, f.LowerBand = computeBollingerBands(f.MA25, f.STD20)

	// EMAs precede MACD/signal — spec §4.1 ordering requirement.
	f.EMA12 = ewm(f.Price, emaFastSpan)
	f.EMA26 = ewm(f.Price, emaSlowSpan)
	f.MACD = subtract(f.EMA12, f.EMA26)
	f.MACDSignal = ewm(f.MACD, macdSignalSpan)

	f.ROC = computeROC(f.Price, rocLookback)
	f.VMA20 = computeVWMA(f.Price, f.Volume, vwmaWindow)
	f.TR14 = computeTrueRange(f.Price)
	f.ATR14 = rollingSMA(f.TR14, atrWindow)

	f.PiCycleTop = scale(f.MA350, 2.0)
	f.ATH = cummax(f.Price)

	f.RSI = computeRSI(f.Price, rsiWindow)

	return f
}

func computeBollingerBands(ma25, std20 []float64) (upper, lower []float64) {
	n := len(ma25)
	upper = make([]float64, n)
	lower = make([]float64, n)
	for i := range ma25 {
		if IsNull(ma25[i]) || IsNull(std20[i]) {
			upper[i] = math.NaN()
			lower[i] = math.NaN()
			continue
		}
		upper[i] = ma25[i] + bollingerStdDev*std20[i]
		lower[i] = ma25[i] - bollingerStdDev*std20[i]
	}
	return upper, lower
}

func subtract(a, b []float64) []float64 {
	out := make([]float64, len(a))
	for i := range a {
		if math.IsNaN(a[i]) || math.IsNaN(b[i]) {
			out[i] = math.NaN()
			continue
		}
		out[i] = a[i] - b[i]
	}
	return out
}

func scale(a []float64, factor float64) []float64 {
	out := make([]float64, len(a))
	for i := range a {
		if IsNull(a[i]) {
			out[i] = math.NaN()
			continue
		}
		out[i] = a[i] * factor
	}
	return out
}

// computeROC implements roc = (price/price[t-lookback] - 1) * 100.
func computeROC(price []float64, lookback int) []float64 {
	out := make([]float64, len(price))
	for i := range price {
		if i < lookback {
			out[i] = math.NaN()
			continue
		}
		prev := price[i-lookback]
		if prev == 0 {
			out[i] = math.NaN()
			continue
		}
		out[i] = (price[i]/prev - 1) * 100
	}
	return out
}

// computeVWMA implements vma20 = rollingSum(price*volume,20) / rollingSum(volume,20),
// null when the denominator is zero (spec §4.1 VWMA failure semantics).
func computeVWMA(price, volume []float64, window int) []float64 {
	priceVolume := make([]float64, len(price))
	for i := range price {
		priceVolume[i] = price[i] * volume[i]
	}
	num := rollingSum(priceVolume, window)
	den := rollingSum(volume, window)

	out := make([]float64, len(price))
	for i := range price {
		if IsNull(num[i]) || IsNull(den[i]) || den[i] == 0 {
			out[i] = math.NaN()
			continue
		}
		out[i] = num[i] / den[i]
	}
	return out
}

// computeTrueRange implements tr14 = |price[t] - price[t-1]|, null for the
// first row. Spec §3 defines TR as the simplified single-price form, not
// the classic high/low/prev-close range.
func computeTrueRange(price []float64) []float64 {
	out := make([]float64, len(price))
	for i := range price {
		if i == 0 {
			out[i] = math.NaN()
			continue
		}
		out[i] = math.Abs(price[i] - price[i-1])
	}
	return out
}

// computeRSI implements the simple-moving-average variant of RSI spec §4.1
// requires: 14-window SMA of gains and losses, not Wilder's smoothing
// (contrast with the teacher's RSI.incrementalCalculation in
// internal/indicators/rsi.go, which uses Wilder's modified EMA).
func computeRSI(price []float64, window int) []float64 {
	gains := make([]float64, len(price))
	losses := make([]float64, len(price))
	gains[0], losses[0] = math.NaN(), math.NaN()
	for i := 1; i < len(price); i++ {
		delta := price[i] - price[i-1]
		if delta > 0 {
			gains[i] = delta
			losses[i] = 0
		} else {
			gains[i] = 0
			losses[i] = -delta
		}
	}

	avgGain := rollingSMA(gains, window)
	avgLoss := rollingSMA(losses, window)

	out := make([]float64, len(price))
	for i := range price {
		if IsNull(avgGain[i]) || IsNull(avgLoss[i]) {
			out[i] = math.NaN()
			continue
		}
		switch {
		case avgGain[i] == 0 && avgLoss[i] == 0:
			out[i] = math.NaN()
		case avgLoss[i] == 0:
			out[i] = 100
		default:
			rs := avgGain[i] / avgLoss[i]
			out[i] = 100 - 100/(1+rs)
		}
	}
	return out
}
