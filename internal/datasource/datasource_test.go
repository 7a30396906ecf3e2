package datasource

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	coreerrors "github.com/bvantuan/dca-signal-engine/internal/errors"
	"github.com/bvantuan/dca-signal-engine/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeCacheStale(t *testing.T, path string) {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &doc))
	doc["last_updated"] = time.Now().Add(-48 * time.Hour).UTC().Format(time.RFC3339Nano)
	rewritten, err := json.Marshal(doc)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, rewritten, 0o644))
}

type fakeFetcher struct {
	series []types.OHLCV
	err    error
	calls  int
}

func (f *fakeFetcher) FetchDailyKlines(ctx context.Context, symbol string, days int) ([]types.OHLCV, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.series, nil
}

func sampleSeries() []types.OHLCV {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return []types.OHLCV{
		{Open: 100, High: 101, Low: 99, Close: 100, Volume: 10, Timestamp: start},
		{Open: 100, High: 102, Low: 100, Close: 101, Volume: 11, Timestamp: start.AddDate(0, 0, 1)},
	}
}

func TestFetch_CachesSuccessfulFetch(t *testing.T) {
	fetcher := &fakeFetcher{series: sampleSeries()}
	src, err := NewSource(fetcher, t.TempDir())
	require.NoError(t, err)

	series, err := src.Fetch(context.Background(), "BTCUSDT", 30)
	require.NoError(t, err)
	assert.Len(t, series, 2)
	assert.Equal(t, 1, fetcher.calls)

	// Second call should be served from the fresh cache, not the network.
	series2, err := src.Fetch(context.Background(), "BTCUSDT", 30)
	require.NoError(t, err)
	assert.Equal(t, series, series2)
	assert.Equal(t, 1, fetcher.calls, "fresh cache hit must not call the exchange again")
}

func TestFetch_FallsBackToStaleCacheOnPersistentFailure(t *testing.T) {
	dir := t.TempDir()
	goodFetcher := &fakeFetcher{series: sampleSeries()}
	src, err := NewSource(goodFetcher, dir)
	require.NoError(t, err)
	_, err = src.Fetch(context.Background(), "ETHUSDT", 30)
	require.NoError(t, err)

	// Force the cache stale by rewinding its timestamp via a fresh Source
	// pointed at the same directory, backed by a failing fetcher.
	stalePath := filepath.Join(dir, "ETHUSDT.json")
	require.FileExists(t, stalePath)
	makeCacheStale(t, stalePath)

	failingFetcher := &fakeFetcher{err: errors.New("network down")}
	src2, err := NewSource(failingFetcher, dir)
	require.NoError(t, err)

	series, err := src2.Fetch(context.Background(), "ETHUSDT", 30)
	require.NoError(t, err, "stale cache should be served rather than erroring")
	assert.Len(t, series, 2)
}

func TestFetch_ReturnsExternalUnavailableWhenNoCacheAndFetchFails(t *testing.T) {
	fetcher := &fakeFetcher{err: errors.New("network down")}
	src, err := NewSource(fetcher, t.TempDir())
	require.NoError(t, err)

	_, err = src.Fetch(context.Background(), "SOLUSDT", 30)
	require.Error(t, err)
	var coreErr *coreerrors.CoreError
	require.True(t, errors.As(err, &coreErr))
	assert.Equal(t, coreerrors.CategoryExternalUnavailable, coreErr.Category)
}
