package datasource

import (
	"time"

	"github.com/bvantuan/dca-signal-engine/pkg/types"
)

// RawRecord is a caller-supplied bar before it's mapped onto the core's
// OHLCV type: Unix seconds rather than time.Time, volume in base units.
type RawRecord struct {
	TimeUnixSeconds int64
	Open, High, Low, Close float64
	Volume                 float64
}

// Ingest implements spec §4.2's thin DataPointIngest adapter: converts
// timestamps to UTC instants and otherwise passes records through
// unmodified. Row ordering is accepted as-is — ValidateInput is what
// catches a non-monotonic sequence, not this function.
func Ingest(records []RawRecord) []types.OHLCV {
	out := make([]types.OHLCV, len(records))
	for i, r := range records {
		out[i] = types.OHLCV{
			Open:      r.Open,
			High:      r.High,
			Low:       r.Low,
			Close:     r.Close,
			Volume:    r.Volume,
			Timestamp: time.Unix(r.TimeUnixSeconds, 0).UTC(),
		}
	}
	return out
}
