// Package forecast proxies the AQI prediction model service.
package forecast

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/vayudrishti/vayudrishti/internal/provider/resilience"
)

const (
	// ProviderName identifies the prediction service.
	ProviderName = "forecast"

	// DefaultBaseURL is where the model service listens in local setups.
	DefaultBaseURL = "http://localhost:8000"
)

// Forecast errors.
var (
	// ErrModelUnavailable indicates the model service has no model loaded
	// or is unreachable.
	ErrModelUnavailable = errors.New("forecast model unavailable")
)

// HTTPDoer abstracts HTTP request execution.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// ClientConfig holds configuration for the prediction service client.
type ClientConfig struct {
	// BaseURL is the model service base URL (defaults to DefaultBaseURL).
	BaseURL string

	// HTTPClient is the HTTP client to use. If nil, a default resilient
	// client is created.
	HTTPClient HTTPDoer

	// Timeout for individual requests (default: 10s).
	Timeout time.Duration
}

// Client calls the external AQI prediction model service.
type Client struct {
	baseURL    string
	httpClient HTTPDoer
}

// NewClient creates a new prediction service client.
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
		baseURL:    baseURL,
		httpClient: httpClient,
	}
}

type predictRequest struct {
	Features []float64 `json:"features"`
}

type predictResponse struct {
	Prediction float64 `json:"prediction"`
}

// Predict sends a feature vector to the model and returns the predicted
// AQI value.
func (c *Client) Predict(ctx context.Context, features []float64) (float64, error) {
	body, err := json.Marshal(predictRequest{Features: features})
	if err != nil {
		return 0, fmt.Errorf("encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/predict", bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", ErrModelUnavailable, err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusServiceUnavailable {
		return 0, ErrModelUnavailable
	}
	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("%w: unexpected status code %d", ErrModelUnavailable, resp.StatusCode)
	}

	var predResp predictResponse
	if err := json.NewDecoder(resp.Body).Decode(&predResp); err != nil {
		return 0, fmt.Errorf("decoding response: %w", err)
	}

	return predResp.Prediction, nil
}
