// Package sentiment implements the Fear-and-Greed collaborator boundary
// of spec §6: a 0-100 market-sentiment scalar with a five-bucket
// classification, plus the engine's own default-when-unavailable policy.
//
// Grounded in original_source/crates/seyeon_rapidapi/src/fgi.rs: the same
// now/previous_close/one_week_ago/one_month_ago/one_year_ago response
// shape, narrowed to the single "now" value the scorer reads.
package sentiment

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Classification buckets the Fear-and-Greed value per spec §6.
type Classification string

const (
	ExtremeFear  Classification = "ExtremeFear"
	Fear         Classification = "Fear"
	Neutral      Classification = "Neutral"
	Greed        Classification = "Greed"
	ExtremeGreed Classification = "ExtremeGreed"
)

// Classify maps a 0-100 index value to its bucket.
func Classify(value int) Classification {
	switch {
	case value <= 20:
		return ExtremeFear
	case value <= 40:
		return Fear
	case value <= 60:
		return Neutral
	case value <= 80:
		return Greed
	default:
		return ExtremeGreed
	}
}

// Snapshot is one observation of the index.
type Snapshot struct {
	Value          int
	Classification Classification
	Timestamp      time.Time
}

// DefaultValue is the scorer's fallback when sentiment is unavailable.
const DefaultValue = 50

// Source fetches the current index. A nil snapshot with a nil error means
// "unavailable" — callers apply DefaultValue.
type Source interface {
	CurrentIndex(ctx context.Context) (*Snapshot, error)
}

// RapidAPIClient is a thin HTTP adapter over the fear-and-greed-index
// RapidAPI endpoint. There is no domain SDK for this API in the reference
// stack, so it speaks raw net/http+encoding/json rather than borrowing an
// unrelated ecosystem client.
type RapidAPIClient struct {
	HTTPClient *http.Client
	APIKey     string
	Host       string
}

// NewRapidAPIClient constructs a client with a bounded-timeout default
// http.Client if none is supplied.
func NewRapidAPIClient(apiKey string) *RapidAPIClient {
	return &RapidAPIClient{
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
		APIKey:     apiKey,
		Host:       "fear-and-greed-index.p.rapidapi.com",
	}
}

type fgiResponse struct {
	LastUpdated struct {
		EpochUnixSeconds int64 `json:"epochUnixSeconds"`
	} `json:"lastUpdated"`
	Fgi struct {
		Now struct {
			Value int `json:"value"`
		} `json:"now"`
	} `json:"fgi"`
}

// CurrentIndex fetches and parses the current index value.
func (c *RapidAPIClient) CurrentIndex(ctx context.Context) (*Snapshot, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, "https://fear-and-greed-index.p.rapidapi.com/v1/fgi", nil)
	if err != nil {
		return nil, fmt.Errorf("build fgi request: %w", err)
	}
	req.Header.Set("x-rapidapi-key", c.APIKey)
	req.Header.Set("x-rapidapi-host", c.Host)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch fgi: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fgi request failed with status %d", resp.StatusCode)
	}

	var parsed fgiResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode fgi response: %w", err)
	}

	value := parsed.Fgi.Now.Value
	return &Snapshot{
		Value:          value,
		Classification: Classify(value),
		Timestamp:      time.Unix(parsed.LastUpdated.EpochUnixSeconds, 0).UTC(),
	}, nil
}

// ValueOrDefault returns snap.Value, or DefaultValue when snap is nil
// (the collaborator could not produce a reading).
func ValueOrDefault(snap *Snapshot) int {
	if snap == nil {
		return DefaultValue
	}
	return snap.Value
}
