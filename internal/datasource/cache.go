package datasource

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/bvantuan/dca-signal-engine/pkg/types"
)

// cacheFreshness is how long a cached series is trusted before a refetch
// is attempted (spec §6: "cache freshness is 1 day").
const cacheFreshness = 24 * time.Hour

type cacheDocument struct {
	LastUpdated time.Time       `json:"last_updated"`
	Data        []cachedCandle  `json:"data"`
}

type cachedCandle struct {
	Open      float64   `json:"open"`
	High      float64   `json:"high"`
	Low       float64   `json:"low"`
	Close     float64   `json:"close"`
	Volume    float64   `json:"volume"`
	Timestamp time.Time `json:"timestamp"`
}

// Cache is a per-symbol on-disk JSON cache in the {"last_updated", "data"}
// shape spec §6 prescribes.
type Cache struct {
	dir string
}

// NewCache roots the cache at dir, creating it if necessary.
func NewCache(dir string) (*Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create cache directory: %w", err)
	}
	return &Cache{dir: dir}, nil
}

func (c *Cache) path(symbol string) string {
	return filepath.Join(c.dir, symbol+".json")
}

// Load returns the cached series and whether it is still fresh. A missing
// or corrupt cache file is treated as "not fresh", never as an error —
// the caller is expected to refetch.
func (c *Cache) Load(symbol string) (series []types.OHLCV, fresh bool) {
	data, err := os.ReadFile(c.path(symbol))
	if err != nil {
		return nil, false
	}
	var doc cacheDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, false
	}

	series = make([]types.OHLCV, len(doc.Data))
	for i, candle := range doc.Data {
		series[i] = types.OHLCV{Open: candle.Open, High: candle.High, Low: candle.Low, Close: candle.Close, Volume: candle.Volume, Timestamp: candle.Timestamp}
	}
	return series, time.Since(doc.LastUpdated) < cacheFreshness
}

// Store persists series as the current cache for symbol, stamped with
// the current time.
func (c *Cache) Store(symbol string, series []types.OHLCV) error {
	doc := cacheDocument{LastUpdated: time.Now().UTC(), Data: make([]cachedCandle, len(series))}
	for i, bar := range series {
		doc.Data[i] = cachedCandle{Open: bar.Open, High: bar.High, Low: bar.Low, Close: bar.Close, Volume: bar.Volume, Timestamp: bar.Timestamp}
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal cache for %s: %w", symbol, err)
	}

	tmp := c.path(symbol) + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write temp cache for %s: %w", symbol, err)
	}
	if err := os.Rename(tmp, c.path(symbol)); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("commit cache for %s: %w", symbol, err)
	}
	return nil
}
