// Package datasource implements the historical-data collaborator of spec
// §6: fetch(symbol, days) -> OHLCV, backed by a local on-disk JSON cache.
//
// Grounded in the teacher's internal/exchange/bybit/{client,market}.go:
// the same bybit.go.api ServerResponse/NewUtaBybitServiceWithParams
// plumbing, narrowed from multi-interval futures klines to the daily spot
// candles spec §3's OHLCV series requires.
package datasource

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	bybit_api "github.com/bybit-exchange/bybit.go.api"

	"github.com/bvantuan/dca-signal-engine/pkg/types"
)

// BybitClient wraps the raw Bybit HTTP client for daily spot kline
// retrieval only — the one shape the signal engine's core needs.
type BybitClient struct {
	http *bybit_api.Client
}

// NewBybitClient builds a client against the given base URL (mainnet,
// testnet, or the demo host), matching the teacher's Config.Demo/Testnet
// selection.
func NewBybitClient(apiKey, apiSecret, baseURL string) *BybitClient {
	return &BybitClient{
		http: bybit_api.NewBybitHttpClient(apiKey, apiSecret, bybit_api.WithBaseURL(baseURL)),
	}
}

// FetchDailyKlines retrieves up to `days` most recent daily spot candles
// for symbol, oldest first.
func (c *BybitClient) FetchDailyKlines(ctx context.Context, symbol string, days int) ([]types.OHLCV, error) {
	limit := days
	if limit > 1000 {
		limit = 1000
	}
	params := map[string]interface{}{
		"category": "spot",
		"symbol":   symbol,
		"interval": "D",
		"limit":    limit,
	}

	result, err := c.http.NewUtaBybitServiceWithParams(params).GetMarketKline(ctx)
	if err != nil {
		return nil, fmt.Errorf("get market kline for %s: %w", symbol, err)
	}

	serverResp, ok := result.(*bybit_api.ServerResponse)
	if !ok {
		return nil, fmt.Errorf("unexpected kline response type for %s", symbol)
	}
	if serverResp.RetCode != 0 {
		return nil, fmt.Errorf("bybit error for %s: %s (code %d)", symbol, serverResp.RetMsg, serverResp.RetCode)
	}

	resultBytes, err := json.Marshal(serverResp.Result)
	if err != nil {
		return nil, fmt.Errorf("marshal kline result for %s: %w", symbol, err)
	}

	var klineResult struct {
		List [][]string `json:"list"`
	}
	if err := json.Unmarshal(resultBytes, &klineResult); err != nil {
		return nil, fmt.Errorf("unmarshal kline result for %s: %w", symbol, err)
	}

	// Bybit returns newest-first; the core requires ascending order.
	out := make([]types.OHLCV, 0, len(klineResult.List))
	for _, row := range klineResult.List {
		if len(row) < 6 {
			continue
		}
		out = append(out, types.OHLCV{
			Timestamp: time.UnixMilli(parseInt64(row[0])).UTC(),
			Open:      parseFloat(row[1]),
			High:      parseFloat(row[2]),
			Low:       parseFloat(row[3]),
			Close:     parseFloat(row[4]),
			Volume:    parseFloat(row[5]),
		})
	}
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out, nil
}

func parseFloat(s string) float64 {
	v, _ := strconv.ParseFloat(s, 64)
	return v
}

func parseInt64(s string) int64 {
	v, _ := strconv.ParseInt(s, 10, 64)
	return v
}
