package openaq_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vayudrishti/vayudrishti/internal/aqi"
	"github.com/vayudrishti/vayudrishti/internal/measurement"
	"github.com/vayudrishti/vayudrishti/internal/measurement/openaq"
)

const latestBody = `{
	"results": [{
		"location": "Anand Vihar, Delhi",
		"measurements": [
			{"parameter": "pm25", "value": 91.2, "unit": "µg/m³", "lastUpdated": "2026-08-30T05:00:00+00:00"},
			{"parameter": "pm10", "value": 160.0, "unit": "µg/m³", "lastUpdated": "2026-08-30T05:00:00+00:00"},
			{"parameter": "bc", "value": 2.1, "unit": "µg/m³", "lastUpdated": "2026-08-30T05:00:00+00:00"}
		]
	}]
}`

func TestClient_FetchReading(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/latest", r.URL.Path)
		assert.Equal(t, "10000", r.URL.Query().Get("radius"))
		assert.Equal(t, "1", r.URL.Query().Get("limit"))
		_, _ = w.Write([]byte(latestBody))
	}))
	defer server.Close()

	client := openaq.NewClient(openaq.ClientConfig{
		BaseURL:    server.URL,
		HTTPClient: http.DefaultClient,
	})

	reading, err := client.FetchReading(context.Background(), 28.6139, 77.209)
	require.NoError(t, err)

	assert.Equal(t, "Anand Vihar, Delhi", reading.Location)
	assert.False(t, reading.HasAQI(), "OpenAQ has no composite index")

	pm25, ok := reading.Pollutant(aqi.PollutantPM25)
	require.True(t, ok)
	assert.InDelta(t, 91.2, pm25, 0.01)

	// Black carbon is outside the tracked set.
	assert.Len(t, reading.Pollutants, 2)
}

func TestClient_FetchReading_ObservedAtIsNewestMeasurement(t *testing.T) {
	body := `{
		"results": [{
			"location": "Anand Vihar, Delhi",
			"measurements": [
				{"parameter": "pm25", "value": 91.2, "unit": "µg/m³", "lastUpdated": "2026-08-30T03:00:00+00:00"},
				{"parameter": "no2", "value": 54.0, "unit": "µg/m³", "lastUpdated": "2026-08-30T05:00:00+00:00"},
				{"parameter": "pm10", "value": 160.0, "unit": "µg/m³", "lastUpdated": "2026-08-30T04:00:00+00:00"}
			]
		}]
	}`
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(body))
	}))
	defer server.Close()

	client := openaq.NewClient(openaq.ClientConfig{
		BaseURL:    server.URL,
		HTTPClient: http.DefaultClient,
	})

	reading, err := client.FetchReading(context.Background(), 28.6139, 77.209)
	require.NoError(t, err)

	expected, err := time.Parse(time.RFC3339, "2026-08-30T05:00:00+00:00")
	require.NoError(t, err)
	assert.True(t, reading.ObservedAt.Equal(expected),
		"snapshot time should be the newest measurement, got %s", reading.ObservedAt)
}

func TestClient_FetchReading_NoResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"results":[]}`))
	}))
	defer server.Close()

	client := openaq.NewClient(openaq.ClientConfig{
		BaseURL:    server.URL,
		HTTPClient: http.DefaultClient,
	})

	_, err := client.FetchReading(context.Background(), 0, 0)
	require.Error(t, err)
	assert.ErrorIs(t, err, measurement.ErrNoData)
}
