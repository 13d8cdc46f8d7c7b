package weather_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vayudrishti/vayudrishti/internal/weather"
)

func TestInMemoryRepository_Latest(t *testing.T) {
	repo := weather.NewInMemoryRepository()
	ctx := context.Background()

	now := time.Now()
	older := &weather.Record{ID: "a", Location: "Delhi", Temperature: 28, RecordedAt: now.Add(-time.Hour)}
	newer := &weather.Record{ID: "b", Location: "Delhi", Temperature: 33, RecordedAt: now}
	other := &weather.Record{ID: "c", Location: "Chennai", Temperature: 30, RecordedAt: now}

	require.NoError(t, repo.Insert(ctx, older))
	require.NoError(t, repo.Insert(ctx, newer))
	require.NoError(t, repo.Insert(ctx, other))

	latest, err := repo.Latest(ctx, "delhi")
	require.NoError(t, err)
	assert.Equal(t, "b", latest.ID)
	assert.InDelta(t, 33, latest.Temperature, 0.01)
}

func TestInMemoryRepository_Latest_NoRecords(t *testing.T) {
	repo := weather.NewInMemoryRepository()

	_, err := repo.Latest(context.Background(), "Hyderabad")
	assert.ErrorIs(t, err, weather.ErrNoRecords)
}

func TestFromObservation(t *testing.T) {
	now := time.Now()
	obs := &weather.Observation{
		Lat:         28.6139,
		Lon:         77.2090,
		Temperature: 34.2,
		Humidity:    48,
		WindSpeed:   1.8,
		Pressure:    1004,
		Condition:   weather.ConditionClear,
		ObservedAt:  now,
	}

	record := weather.FromObservation(obs, "Delhi", now)

	assert.NotEmpty(t, record.ID)
	assert.Equal(t, "Delhi", record.Location)
	assert.InDelta(t, 28.6139, record.Latitude, 0.0001)
	assert.InDelta(t, 34.2, record.Temperature, 0.01)
	assert.Equal(t, weather.ConditionClear, record.Condition)
	assert.Equal(t, now, record.RecordedAt)
}
