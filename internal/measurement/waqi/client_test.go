package waqi_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vayudrishti/vayudrishti/internal/aqi"
	"github.com/vayudrishti/vayudrishti/internal/measurement"
	"github.com/vayudrishti/vayudrishti/internal/measurement/waqi"
)

const feedBody = `{
	"status": "ok",
	"data": {
		"aqi": 78,
		"city": {"name": "Delhi US Embassy", "geo": [28.5983, 77.1892]},
		"iaqi": {
			"pm25": {"v": 45},
			"pm10": {"v": 72},
			"no2": {"v": 28},
			"co": {"v": 1.2},
			"t": {"v": 31.5}
		},
		"time": {"iso": "2026-08-30T06:00:00+05:30"}
	}
}`

func TestClient_FetchReading(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.Path, "/feed/geo:")
		assert.Equal(t, "secret", r.URL.Query().Get("token"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(feedBody))
	}))
	defer server.Close()

	client := waqi.NewClient(waqi.ClientConfig{
		Token:      "secret",
		BaseURL:    server.URL,
		HTTPClient: http.DefaultClient,
	})

	reading, err := client.FetchReading(context.Background(), 28.6139, 77.209)
	require.NoError(t, err)

	assert.Equal(t, "Delhi US Embassy", reading.Location)
	assert.InDelta(t, 28.5983, reading.Latitude, 0.0001)

	require.True(t, reading.HasAQI())
	assert.Equal(t, 78, *reading.AQI)

	pm25, ok := reading.Pollutant(aqi.PollutantPM25)
	require.True(t, ok)
	assert.InDelta(t, 45, pm25, 0.01)

	co, ok := reading.Pollutant(aqi.PollutantCO)
	require.True(t, ok)
	assert.InDelta(t, 1.2, co, 0.01)

	// Temperature ("t") is not a tracked pollutant; so2/o3 were not reported.
	_, ok = reading.Pollutant(aqi.PollutantSO2)
	assert.False(t, ok)
	_, ok = reading.Pollutant(aqi.PollutantO3)
	assert.False(t, ok)
}

func TestClient_FetchReading_NoCompositeAQI(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"status":"ok","data":{"aqi":"-","city":{"name":"X","geo":[1,2]},"iaqi":{},"time":{"iso":""}}}`))
	}))
	defer server.Close()

	client := waqi.NewClient(waqi.ClientConfig{
		Token:      "secret",
		BaseURL:    server.URL,
		HTTPClient: http.DefaultClient,
	})

	reading, err := client.FetchReading(context.Background(), 1, 2)
	require.NoError(t, err)
	assert.False(t, reading.HasAQI())
}

func TestClient_FetchReading_ErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"status":"error","data":{}}`))
	}))
	defer server.Close()

	client := waqi.NewClient(waqi.ClientConfig{
		Token:      "secret",
		BaseURL:    server.URL,
		HTTPClient: http.DefaultClient,
	})

	_, err := client.FetchReading(context.Background(), 1, 2)
	require.Error(t, err)
	assert.ErrorIs(t, err, measurement.ErrUnavailable)
}
