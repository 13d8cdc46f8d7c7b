// Package openaq provides a client for the OpenAQ v2 API, used by the
// polling worker for tracked cities.
package openaq

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/vayudrishti/vayudrishti/internal/aqi"
	"github.com/vayudrishti/vayudrishti/internal/measurement"
	"github.com/vayudrishti/vayudrishti/internal/provider/resilience"
)

const (
	// DefaultBaseURL is the base URL for the OpenAQ API.
	DefaultBaseURL = "https://api.openaq.org/v2"

	// ProviderName identifies this provider.
	ProviderName = "openaq"

	// searchRadiusMeters bounds the nearest-station lookup.
	searchRadiusMeters = 10000
)

// HTTPDoer abstracts HTTP request execution.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// ClientConfig holds configuration for the OpenAQ client.
type ClientConfig struct {
	// BaseURL is the API base URL (defaults to DefaultBaseURL).
	BaseURL string

	// HTTPClient is the HTTP client to use. If nil, a default resilient
	// client is created.
	HTTPClient HTTPDoer

	// Timeout for individual API requests (default: 10s).
	Timeout time.Duration
}

// Client is an OpenAQ API client.
type Client struct {
	baseURL    string
	httpClient HTTPDoer
}

// NewClient creates a new OpenAQ client.
func NewClient(cfg ClientConfig) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = resilience.NewClient(resilience.ClientConfig{
			Name:    ProviderName,
			Timeout: cfg.Timeout,
		})
	}

	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: httpClient,
	}
}

// API response types (from the OpenAQ /latest endpoint).

type latestResponse struct {
	Results []latestResult `json:"results"`
}

type latestResult struct {
	Location     string            `json:"location"`
	Measurements []measurementData `json:"measurements"`
}

type measurementData struct {
	Parameter   string  `json:"parameter"`
	Value       float64 `json:"value"`
	Unit        string  `json:"unit"`
	LastUpdated string  `json:"lastUpdated"`
}

// FetchReading fetches the latest measurements near the given point and
// normalizes them into a Reading. OpenAQ reports raw concentrations
// only, so the composite AQI stays unknown.
func (c *Client) FetchReading(ctx context.Context, lat, lon float64) (*measurement.Reading, error) {
	url := fmt.Sprintf("%s/latest?coordinates=%f,%f&radius=%d&limit=1",
		c.baseURL, lat, lon, searchRadiusMeters)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch latest measurements: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: unexpected status %d from latest endpoint", measurement.ErrUnavailable, resp.StatusCode)
	}

	var result latestResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode latest response: %w", err)
	}

	if len(result.Results) == 0 {
		return nil, measurement.ErrNoData
	}

	return toReading(&result.Results[0], lat, lon), nil
}

// toReading converts an OpenAQ result to the normalized Reading. This
// is the only place the OpenAQ schema is interpreted.
func toReading(res *latestResult, lat, lon float64) *measurement.Reading {
	reading := &measurement.Reading{
		Location:   res.Location,
		Latitude:   lat,
		Longitude:  lon,
		Pollutants: make(map[aqi.PollutantKey]*float64),
	}

	for _, m := range res.Measurements {
		key := aqi.PollutantKey(strings.ToLower(m.Parameter))
		switch key {
		case aqi.PollutantPM25, aqi.PollutantPM10, aqi.PollutantNO2,
			aqi.PollutantSO2, aqi.PollutantCO, aqi.PollutantO3:
		default:
			continue // unsupported parameter
		}

		value := m.Value
		reading.Pollutants[key] = &value

		// Measurements update per-parameter; the newest one is the
		// snapshot time.
		if observedAt, err := time.Parse(time.RFC3339, m.LastUpdated); err == nil {
			if observedAt.After(reading.ObservedAt) {
				reading.ObservedAt = observedAt
			}
		}
	}

	if reading.ObservedAt.IsZero() {
		reading.ObservedAt = time.Now()
	}

	return reading
}
