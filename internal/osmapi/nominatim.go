package osmapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/cenkalti/backoff/v5"

	"osmgt/internal/config"
	"osmgt/internal/errs"
)

// NominatimMatch is one Nominatim search result, grounded on spec.md §6:
// "each has osm_id and geojson (a Polygon describing the administrative
// boundary)".
type NominatimMatch struct {
	OsmID   int64 `json:"osm_id"`
	GeoJSON struct {
		Type        string          `json:"type"`
		Coordinates json.RawMessage `json:"coordinates"`
	} `json:"geojson"`
}

// NominatimClient resolves a free-text location query to its administrative
// boundary. Specified at the interface per spec.md §1.
type NominatimClient interface {
	Search(ctx context.Context, query string, limit int) ([]NominatimMatch, error)
}

// HTTPNominatimClient is the default NominatimClient.
type HTTPNominatimClient struct {
	Endpoint string
	Client   *http.Client
	Retry    config.Config
}

func NewHTTPNominatimClient(endpoint string, cfg config.Config) *HTTPNominatimClient {
	return &HTTPNominatimClient{
		Endpoint: endpoint,
		Client:   &http.Client{Timeout: 30 * time.Second},
		Retry:    cfg,
	}
}

func (c *HTTPNominatimClient) Search(ctx context.Context, query string, limit int) ([]NominatimMatch, error) {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = c.Retry.RetryInitialWait
	bo.Multiplier = c.Retry.RetryFactor
	bo.Reset()

	var lastErr error
	for attempt := 1; attempt <= c.Retry.RetryMaxAttempts; attempt++ {
		matches, err := c.once(ctx, query, limit)
		if err == nil {
			return matches, nil
		}
		lastErr = err
		if attempt == c.Retry.RetryMaxAttempts {
			break
		}
		timer := time.NewTimer(bo.NextBackOff())
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
	return nil, &errs.HttpFailure{URL: c.Endpoint, Cause: lastErr}
}

func (c *HTTPNominatimClient) once(ctx context.Context, query string, limit int) ([]NominatimMatch, error) {
	q := url.Values{}
	q.Set("q", query)
	q.Set("limit", fmt.Sprint(limit))
	q.Set("format", "json")
	q.Set("polygon", "1")
	q.Set("polygon_geojson", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.Endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests {
		return nil, fmt.Errorf("nominatim: transient status %d", resp.StatusCode)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("nominatim: status %d", resp.StatusCode)
	}

	var matches []NominatimMatch
	if err := json.NewDecoder(resp.Body).Decode(&matches); err != nil {
		return nil, err
	}
	return matches, nil
}
