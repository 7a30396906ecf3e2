package indicators

import "math"

// windowOf returns values[i-window+1:i+1], or nil if the row has fewer
// than window preceding observations.
func windowOf(values []float64, i, window int) []float64 {
	if i < window-1 {
		return nil
	}
	return values[i-window+1 : i+1]
}

// windowSum returns the sum of win, and whether every element was finite.
func windowSum(win []float64) (float64, bool) {
	sum := 0.0
	for _, v := range win {
		if math.IsNaN(v) {
			return 0, false
		}
		sum += v
	}
	return sum, true
}

// rollingSMA computes the simple moving average of values over window,
// NaN for the first window-1 rows or whenever the window contains a null.
// Grounded in the teacher's SMA.Calculate (internal/indicators/sma.go),
// generalized from a single trailing value to a full column. Scans each
// window directly rather than maintaining an incremental sum so that a
// single null value does not permanently poison every later row once it
// leaves the window.
func rollingSMA(values []float64, window int) []float64 {
	out := make([]float64, len(values))
	for i := range values {
		win := windowOf(values, i, window)
		if win == nil {
			out[i] = math.NaN()
			continue
		}
		sum, ok := windowSum(win)
		if !ok {
			out[i] = math.NaN()
			continue
		}
		out[i] = sum / float64(window)
	}
	return out
}

// rollingSum computes the rolling sum over window, NaN for the first
// window-1 rows or if the window contains a null.
func rollingSum(values []float64, window int) []float64 {
	out := make([]float64, len(values))
	for i := range values {
		win := windowOf(values, i, window)
		if win == nil {
			out[i] = math.NaN()
			continue
		}
		sum, ok := windowSum(win)
		if !ok {
			out[i] = math.NaN()
			continue
		}
		out[i] = sum
	}
	return out
}

// rollingStdDev computes the rolling population standard deviation over
// window, NaN for the first window-1 rows or whenever the window contains
// a null.
func rollingStdDev(values []float64, window int) []float64 {
	out := make([]float64, len(values))
	for i := range values {
		win := windowOf(values, i, window)
		if win == nil {
			out[i] = math.NaN()
			continue
		}
		sum, ok := windowSum(win)
		if !ok {
			out[i] = math.NaN()
			continue
		}
		mean := sum / float64(window)
		variance := 0.0
		for _, v := range win {
			d := v - mean
			variance += d * d
		}
		out[i] = math.Sqrt(variance / float64(window))
	}
	return out
}

// ewm computes an exponentially weighted mean with alpha=2/(span+1),
// initialized from the first observation — the "unbiased-free" form spec
// §4.1 calls for, as opposed to the teacher's SMA-seeded EMA
// (internal/indicators/macd.go calculateEMA). Defined for every row, no
// warm-up nulls.
func ewm(values []float64, span int) []float64 {
	out := make([]float64, len(values))
	if len(values) == 0 {
		return out
	}
	alpha := 2.0 / (float64(span) + 1.0)
	out[0] = values[0]
	for i := 1; i < len(values); i++ {
		if math.IsNaN(values[i]) || math.IsNaN(out[i-1]) {
			out[i] = math.NaN()
			continue
		}
		out[i] = alpha*values[i] + (1-alpha)*out[i-1]
	}
	return out
}

// cummax computes the running maximum of values, defined at every row
// (price is a required, never-null column).
func cummax(values []float64) []float64 {
	out := make([]float64, len(values))
	max := math.Inf(-1)
	for i, v := range values {
		if v > max {
			max = v
		}
		out[i] = max
	}
	return out
}
