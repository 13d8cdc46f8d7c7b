package worker_test

import (
	"context"
	"io"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vayudrishti/vayudrishti/internal/history"
	"github.com/vayudrishti/vayudrishti/internal/measurement"
	"github.com/vayudrishti/vayudrishti/internal/weather"
	"github.com/vayudrishti/vayudrishti/internal/worker"
)

type stubWeather struct {
	fetches atomic.Int32
}

func (p *stubWeather) GetCurrentWeather(_ context.Context, lat, lon float64) (*weather.Observation, error) {
	p.fetches.Add(1)
	return &weather.Observation{
		Lat:         lat,
		Lon:         lon,
		Temperature: 31.5,
		Humidity:    62,
		WindSpeed:   2.4,
		Pressure:    1008,
		Condition:   weather.ConditionHaze,
		ObservedAt:  time.Now(),
	}, nil
}

type stubProvider struct {
	fetches atomic.Int32
	err     error
}

func (p *stubProvider) FetchReading(_ context.Context, lat, lon float64) (*measurement.Reading, error) {
	p.fetches.Add(1)
	if p.err != nil {
		return nil, p.err
	}
	aqiValue := 180
	return &measurement.Reading{
		Location:   "station near query point",
		Latitude:   lat,
		Longitude:  lon,
		AQI:        &aqiValue,
		ObservedAt: time.Now(),
	}, nil
}

func testCities() []worker.City {
	return []worker.City{
		{Name: "Hyderabad", Lat: 17.385044, Lon: 78.486671},
		{Name: "Delhi", Lat: 28.6139, Lon: 77.2090},
		{Name: "Chennai", Lat: 13.0827, Lon: 80.2707},
	}
}

func TestPollJob_Run(t *testing.T) {
	provider := &stubProvider{}
	store := history.NewInMemoryRepository()

	job := worker.NewPollJob(worker.PollJobConfig{
		Config: worker.PollConfig{
			Cities:       testCities(),
			Concurrency:  2,
			Timeout:      5 * time.Second,
			StoreHistory: true,
		},
		Logger:   zerolog.New(io.Discard),
		Provider: provider,
		History:  store,
	})

	result := job.Run(context.Background())

	assert.Equal(t, 3, result.TotalCities)
	assert.Equal(t, 3, result.Successful)
	assert.Equal(t, 0, result.Failed)
	assert.Equal(t, 3, result.StoredRecords)
	assert.Empty(t, result.Errors)
	assert.Equal(t, int32(3), provider.fetches.Load())

	// Records are stored under the tracked city name.
	latest, err := store.Latest(context.Background(), "Delhi")
	require.NoError(t, err)
	assert.Equal(t, "Delhi", latest.Location)
	require.NotNil(t, latest.AQI)
	assert.Equal(t, 180, *latest.AQI)
}

func TestPollJob_Run_StoresWeather(t *testing.T) {
	provider := &stubProvider{}
	weatherProvider := &stubWeather{}
	weatherStore := weather.NewInMemoryRepository()

	job := worker.NewPollJob(worker.PollJobConfig{
		Config: worker.PollConfig{
			Cities:       testCities(),
			Concurrency:  2,
			Timeout:      5 * time.Second,
			FetchWeather: true,
		},
		Logger:         zerolog.New(io.Discard),
		Provider:       provider,
		Weather:        weatherProvider,
		WeatherHistory: weatherStore,
	})

	result := job.Run(context.Background())

	assert.Equal(t, 3, result.Successful)
	assert.Equal(t, int32(3), weatherProvider.fetches.Load())

	latest, err := weatherStore.Latest(context.Background(), "Chennai")
	require.NoError(t, err)
	assert.Equal(t, "Chennai", latest.Location)
	assert.Equal(t, weather.ConditionHaze, latest.Condition)
	assert.InDelta(t, 31.5, latest.Temperature, 0.01)
}

func TestPollJob_Run_ProviderFailure(t *testing.T) {
	provider := &stubProvider{err: measurement.ErrUnavailable}

	job := worker.NewPollJob(worker.PollJobConfig{
		Config: worker.PollConfig{
			Cities:      testCities(),
			Concurrency: 3,
			Timeout:     time.Second,
		},
		Logger:   zerolog.New(io.Discard),
		Provider: provider,
	})

	result := job.Run(context.Background())

	assert.Equal(t, 0, result.Successful)
	assert.Equal(t, 3, result.Failed)
	assert.Len(t, result.Errors, 3)
}

func TestPollJob_Metrics(t *testing.T) {
	provider := &stubProvider{}

	job := worker.NewPollJob(worker.PollJobConfig{
		Config: worker.PollConfig{
			Cities:      testCities()[:1],
			Concurrency: 1,
			Timeout:     time.Second,
		},
		Logger:   zerolog.New(io.Discard),
		Provider: provider,
	})

	job.Run(context.Background())
	job.Run(context.Background())

	metrics := job.GetMetrics()
	assert.Equal(t, int64(2), metrics.TotalCycles)
	assert.Equal(t, int64(2), metrics.SuccessfulPolls)
	assert.Equal(t, int64(0), metrics.FailedPolls)
	assert.False(t, metrics.LastCycleAt.IsZero())

	snapshot := job.MetricsSnapshot()
	assert.Equal(t, int64(2), snapshot["total_cycles"])
}

func TestDefaultCities(t *testing.T) {
	cities := worker.DefaultPollConfig().Cities
	require.Len(t, cities, 3)

	names := make([]string, 0, len(cities))
	for _, c := range cities {
		names = append(names, c.Name)
	}
	assert.ElementsMatch(t, []string{"Hyderabad", "Delhi", "Chennai"}, names)
}
