package forecast_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vayudrishti/vayudrishti/internal/forecast"
	"github.com/vayudrishti/vayudrishti/internal/history"
)

func TestClient_Predict(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/predict", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"features": [100, 110, 120]}`, string(body))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"prediction": 131.5}`))
	}))
	defer server.Close()

	client := forecast.NewClient(forecast.ClientConfig{
		BaseURL:    server.URL,
		HTTPClient: server.Client(),
	})

	prediction, err := client.Predict(context.Background(), []float64{100, 110, 120})
	require.NoError(t, err)
	assert.Equal(t, 131.5, prediction)
}

func TestClient_Predict_ModelNotLoaded(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := forecast.NewClient(forecast.ClientConfig{
		BaseURL:    server.URL,
		HTTPClient: server.Client(),
	})

	_, err := client.Predict(context.Background(), []float64{100})
	assert.ErrorIs(t, err, forecast.ErrModelUnavailable)
}

type stubPredictor struct {
	calls int
}

func (p *stubPredictor) Predict(_ context.Context, features []float64) (float64, error) {
	p.calls++
	// Echo the last feature plus one, so feedback is observable.
	return features[len(features)-1] + 1, nil
}

func seededHistory(t *testing.T, location string, values ...int) history.Repository {
	t.Helper()
	repo := history.NewInMemoryRepository()
	base := time.Now().Add(-time.Duration(len(values)) * time.Hour)
	for i, v := range values {
		value := v
		err := repo.Insert(context.Background(), &history.Record{
			ID:         location + string(rune('a'+i)),
			Location:   location,
			AQI:        &value,
			RecordedAt: base.Add(time.Duration(i) * time.Hour),
		})
		require.NoError(t, err)
	}
	return repo
}

func TestService_Forecast(t *testing.T) {
	predictor := &stubPredictor{}
	svc := forecast.NewService(forecast.ServiceConfig{
		Predictor: predictor,
		History:   seededHistory(t, "Delhi", 100, 110, 120),
		Logger:    zerolog.New(io.Discard),
	})

	points, err := svc.Forecast(context.Background(), "Delhi")
	require.NoError(t, err)

	require.Len(t, points, 12, "72 hours at 6-hour steps")
	assert.Equal(t, 12, predictor.calls)

	// Predictions feed back: each step sees the previous one.
	assert.Equal(t, 121.0, points[0].AQI)
	assert.Equal(t, 122.0, points[1].AQI)

	// Points are in chronological order.
	for i := 1; i < len(points); i++ {
		assert.True(t, points[i].Time.After(points[i-1].Time))
	}
}

func TestService_Forecast_NoHistory(t *testing.T) {
	svc := forecast.NewService(forecast.ServiceConfig{
		Predictor: &stubPredictor{},
		History:   history.NewInMemoryRepository(),
		Logger:    zerolog.New(io.Discard),
	})

	_, err := svc.Forecast(context.Background(), "Nowhere")
	assert.ErrorIs(t, err, history.ErrNotFound)
}
