// Package waqi provides a client for the World Air Quality Index feed.
package waqi

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
	// DefaultBaseURL is the base URL for the WAQI API.
	DefaultBaseURL = "https://api.waqi.info"

	// ProviderName identifies this provider.
	ProviderName = "waqi"
)

// HTTPDoer abstracts HTTP request execution.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// ClientConfig holds configuration for the WAQI client.
type ClientConfig struct {
	// Token is the WAQI API token (required). It stays server-side;
	// clients never see it.
	Token string

	// BaseURL is the API base URL (defaults to DefaultBaseURL).
	BaseURL string

	// HTTPClient is the HTTP client to use. If nil, a default resilient
	// client is created.
	HTTPClient HTTPDoer

	// Timeout for individual API requests (default: 10s).
	Timeout time.Duration
}

// Client is a WAQI API client.
type Client struct {
	token      string
	baseURL    string
	httpClient HTTPDoer
}

// NewClient creates a new WAQI client.
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
		token:      cfg.Token,
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: httpClient,
	}
}

// API response types (from the WAQI geo feed).

type feedResponse struct {
	Status string   `json:"status"`
	Data   feedData `json:"data"`
}

type feedData struct {
	// AQI is a number for live stations but the string "-" for stations
	// with no composite index, so it is decoded lazily.
	AQI  json.RawMessage     `json:"aqi"`
	City cityData            `json:"city"`
	IAQI map[string]iaqiItem `json:"iaqi"`
	Time timeData            `json:"time"`
}

type cityData struct {
	Name string    `json:"name"`
	Geo  []float64 `json:"geo"`
}

type iaqiItem struct {
	V float64 `json:"v"`
}

type timeData struct {
	ISO string `json:"iso"`
}

// FetchReading fetches the nearest station feed for the given point and
// normalizes it into a Reading.
func (c *Client) FetchReading(ctx context.Context, lat, lon float64) (*measurement.Reading, error) {
	url := fmt.Sprintf("%s/feed/geo:%f;%f/?token=%s", c.baseURL, lat, lon, c.token)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch waqi feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: unexpected status %d from waqi feed", measurement.ErrUnavailable, resp.StatusCode)
	}

	var result feedResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode waqi feed: %w", err)
	}

	if result.Status != "ok" {
		return nil, fmt.Errorf("%w: waqi status %q", measurement.ErrUnavailable, result.Status)
	}

	return toReading(&result.Data, lat, lon), nil
}

// toReading converts a WAQI feed payload to the normalized Reading.
// This is the only place the WAQI schema is interpreted.
func toReading(d *feedData, lat, lon float64) *measurement.Reading {
	reading := &measurement.Reading{
		Location:   d.City.Name,
		Latitude:   lat,
		Longitude:  lon,
		Pollutants: make(map[aqi.PollutantKey]*float64),
	}

	if len(d.City.Geo) == 2 {
		reading.Latitude = d.City.Geo[0]
		reading.Longitude = d.City.Geo[1]
	}

	var composite float64
	if err := json.Unmarshal(d.AQI, &composite); err == nil {
		value := int(composite)
		reading.AQI = &value
	}

	if observedAt, err := time.Parse("2006-01-02T15:04:05-07:00", d.Time.ISO); err == nil {
		reading.ObservedAt = observedAt
	} else {
		reading.ObservedAt = time.Now()
	}

	for _, key := range aqi.AllPollutants() {
		if item, ok := d.IAQI[string(key)]; ok {
			value := item.V
			reading.Pollutants[key] = &value
		}
	}

	return reading
}
