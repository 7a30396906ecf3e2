// Package indicators transforms a raw OHLCV series into the wide set of
// derived technical columns the scorer and simulator read. Where the
// teacher computed a handful of indicators incrementally per-candle
// (internal/indicators/{sma,ema,macd,rsi,bollinger}.go), this engine
// computes the whole column set in one eager columnar pass per spec §4.1.
package indicators

import "math"

// IndicatorFrame is a wide tabular view, one row per input DataPoint,
// preserving row order. Rolling columns that lack sufficient history hold
// math.NaN() — see IsNull.
type IndicatorFrame struct {
	Datetime []int64 // epoch millis, UTC
	Price    []float64
	High     []float64
	Low      []float64
	Open     []float64
	Volume   []float64

	MA5   []float64
	MA25  []float64
	MA50  []float64
	MA111 []float64
	MA350 []float64
	MA365 []float64

	STD20 []float64

	UpperBand []float64
	LowerBand []float64

	EMA12      []float64
	EMA26      []float64
	MACD       []float64
	MACDSignal []float64

	ROC []float64

	VMA20 []float64

	TR14  []float64
	ATR14 []float64

	PiCycleTop []float64
	ATH        []float64

	RSI []float64
}

// Len returns the number of rows.
func (f *IndicatorFrame) Len() int {
	if f == nil {
		return 0
	}
	return len(f.Price)
}

// IsNull reports whether a rolling value is undefined (insufficient
// history, or a non-finite input that propagated through a rolling op).
func IsNull(v float64) bool {
	return math.IsNaN(v)
}

// Row is a single-row snapshot of the frame, handed to the scorer and the
// simulator so they never need to thread a frame+index pair around.
type Row struct {
	Datetime int64
	Price    float64
	High     float64
	Low      float64
	Open     float64
	Volume   float64

	MA5, MA25, MA50, MA111, MA350, MA365 float64
	STD20                                float64
	UpperBand, LowerBand                 float64
	EMA12, EMA26, MACD, MACDSignal       float64
	ROC                                  float64
	VMA20                                float64
	TR14, ATR14                          float64
	PiCycleTop                           float64
	ATH                                  float64
	RSI                                  float64
}

// Row returns a snapshot of row i. Panics if i is out of range, mirroring
// slice-index semantics — callers are expected to check against Len().
func (f *IndicatorFrame) Row(i int) Row {
	return Row{
		Datetime:   f.Datetime[i],
		Price:      f.Price[i],
		High:       f.High[i],
		Low:        f.Low[i],
		Open:       f.Open[i],
		Volume:     f.Volume[i],
		MA5:        f.MA5[i],
		MA25:       f.MA25[i],
		MA50:       f.MA50[i],
		MA111:      f.MA111[i],
		MA350:      f.MA350[i],
		MA365:      f.MA365[i],
		STD20:      f.STD20[i],
		UpperBand:  f.UpperBand[i],
		LowerBand:  f.LowerBand[i],
		EMA12:      f.EMA12[i],
		EMA26:      f.EMA26[i],
		MACD:       f.MACD[i],
		MACDSignal: f.MACDSignal[i],
		ROC:        f.ROC[i],
		VMA20:      f.VMA20[i],
		TR14:       f.TR14[i],
		ATR14:      f.ATR14[i],
		PiCycleTop: f.PiCycleTop[i],
		ATH:        f.ATH[i],
		RSI:        f.RSI[i],
	}
}
