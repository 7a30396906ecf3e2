package datasource

import (
	"context"
	"time"

	coreerrors "github.com/bvantuan/dca-signal-engine/internal/errors"
	"github.com/bvantuan/dca-signal-engine/pkg/types"
)

const (
	maxRetries  = 3
	backoffBase = 500 * time.Millisecond
)

// KlineFetcher is the minimal surface datasource.Source needs from an
// exchange client, letting tests substitute a fake.
type KlineFetcher interface {
	FetchDailyKlines(ctx context.Context, symbol string, days int) ([]types.OHLCV, error)
}

// Source implements spec §6's historical-data boundary: fetch(symbol,
// days) -> OHLCV, with retry/backoff against the exchange and a
// 1-day-fresh on-disk cache the core never sees.
type Source struct {
	client KlineFetcher
	cache  *Cache
}

// NewSource wires an exchange client to a cache rooted at cacheDir.
func NewSource(client KlineFetcher, cacheDir string) (*Source, error) {
	cache, err := NewCache(cacheDir)
	if err != nil {
		return nil, err
	}
	return &Source{client: client, cache: cache}, nil
}

// Fetch returns an ascending, UTC-daily OHLCV series for symbol. It
// serves a fresh cache hit without touching the network; otherwise it
// retries the exchange with exponential backoff and falls back to a
// stale cache if every attempt fails, per spec §6/§7's ExternalUnavailable
// policy.
func (s *Source) Fetch(ctx context.Context, symbol string, days int) ([]types.OHLCV, error) {
	if cached, fresh := s.cache.Load(symbol); fresh {
		return cached, nil
	}

	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoffBase * time.Duration(1<<uint(attempt-1))):
			}
		}

		series, err := s.client.FetchDailyKlines(ctx, symbol, days)
		if err == nil {
			if storeErr := s.cache.Store(symbol, series); storeErr != nil {
				return series, nil //nolint:nilerr // a cache-write failure does not invalidate a good fetch
			}
			return series, nil
		}
		lastErr = err
	}

	if stale, _ := s.cache.Load(symbol); len(stale) > 0 {
		return stale, nil
	}
	return nil, coreerrors.WrapExternalUnavailable(lastErr, "datasource", "Fetch")
}
