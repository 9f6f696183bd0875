package osmapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"

	"osmgt/internal/config"
	"osmgt/internal/errs"
)

// LonLat is one point of an Overpass "geometry" array.
type LonLat struct {
	Lon float64 `json:"lon"`
	Lat float64 `json:"lat"`
}

// Member is one member of an Overpass relation element.
type Member struct {
	Type string  `json:"type"`
	Ref  int64   `json:"ref"`
	Role string  `json:"role"`
	Geom []LonLat `json:"geometry,omitempty"`
}

// Element is a single OSM node/way/relation as returned by Overpass,
// grounded on spec.md §6: "each element has type ∈ {node, way, relation},
// an id, a tags map, and either lon/lat (node) or a geometry array of
// {lon, lat} (way) or members (relation)".
type Element struct {
	Type     string            `json:"type"`
	ID       int64             `json:"id"`
	Tags     map[string]string `json:"tags"`
	Lon      float64           `json:"lon,omitempty"`
	Lat      float64           `json:"lat,omitempty"`
	Geometry []LonLat          `json:"geometry,omitempty"`
	Members  []Member          `json:"members,omitempty"`
}

// Response is the decoded Overpass JSON response body.
type Response struct {
	Elements []Element `json:"elements"`
}

// OverpassClient queries the OSM Overpass API. Specified at the interface
// per spec.md §1; the HTTP implementation is ambient glue, not a domain
// component (see DESIGN.md).
type OverpassClient interface {
	Query(ctx context.Context, overpassQL string) (Response, error)
}

// HTTPOverpassClient is the default OverpassClient, retrying transient
// failures per spec.md §5's policy (exponential backoff, up to 4 attempts,
// initial delay 3s, factor 2), implemented with cenkalti/backoff/v5.
type HTTPOverpassClient struct {
	Endpoint string
	Client   *http.Client
	Retry    config.Config
}

func NewHTTPOverpassClient(endpoint string, cfg config.Config) *HTTPOverpassClient {
	return &HTTPOverpassClient{
		Endpoint: endpoint,
		Client:   &http.Client{Timeout: 60 * time.Second},
		Retry:    cfg,
	}
}

func (c *HTTPOverpassClient) Query(ctx context.Context, overpassQL string) (Response, error) {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = c.Retry.RetryInitialWait
	bo.Multiplier = c.Retry.RetryFactor
	bo.Reset()

	var lastErr error
	for attempt := 1; attempt <= c.Retry.RetryMaxAttempts; attempt++ {
		resp, err := c.once(ctx, overpassQL)
		if err == nil {
			return resp, nil
		}
		lastErr = err
		if attempt == c.Retry.RetryMaxAttempts {
			break
		}
		wait := bo.NextBackOff()
		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return Response{}, ctx.Err()
		case <-timer.C:
		}
	}
	return Response{}, &errs.HttpFailure{URL: c.Endpoint, Cause: lastErr}
}

func (c *HTTPOverpassClient) once(ctx context.Context, overpassQL string) (Response, error) {
	form := url.Values{"data": {overpassQL}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return Response{}, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.Client.Do(req)
	if err != nil {
		return Response{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests {
		return Response{}, fmt.Errorf("overpass: transient status %d", resp.StatusCode)
	}
	if resp.StatusCode != http.StatusOK {
		return Response{}, fmt.Errorf("overpass: status %d", resp.StatusCode)
	}

	var out Response
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return Response{}, err
	}
	return out, nil
}
