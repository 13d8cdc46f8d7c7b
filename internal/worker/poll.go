package worker

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/vayudrishti/vayudrishti/internal/alert"
	"github.com/vayudrishti/vayudrishti/internal/history"
	"github.com/vayudrishti/vayudrishti/internal/measurement"
	"github.com/vayudrishti/vayudrishti/internal/weather"
)

// PollJob fetches fresh readings for every tracked city, stores them,
// and triggers alert evaluation.
type PollJob struct {
	config PollConfig
	logger zerolog.Logger

	// Collaborators (optional except Provider, nil disables the step)
	provider  measurement.Provider
	historyDB history.Repository
	weather   weather.Provider
	weatherDB weather.Repository
	alerts    *alert.Evaluator

	metrics *PollMetrics
}

// PollMetrics tracks polling statistics.
type PollMetrics struct {
	mu sync.RWMutex

	TotalCycles      int64
	SuccessfulPolls  int64
	FailedPolls      int64
	StoredRecords    int64
	AlertsPublished  int64
	LastCycleAt      time.Time
	LastCycleElapsed time.Duration
}

// PollJobConfig holds configuration for creating a PollJob.
type PollJobConfig struct {
	Config         PollConfig
	Logger         zerolog.Logger
	Provider       measurement.Provider
	History        history.Repository
	Weather        weather.Provider
	WeatherHistory weather.Repository
	Alerts         *alert.Evaluator
}

// NewPollJob creates a new polling job.
func NewPollJob(cfg PollJobConfig) *PollJob {
	config := cfg.Config
	if len(config.Cities) == 0 {
		config = DefaultPollConfig()
	}
	if config.Concurrency <= 0 {
		config.Concurrency = 3
	}
	if config.Timeout == 0 {
		config.Timeout = 10 * time.Second
	}

	return &PollJob{
		config:    config,
		logger:    cfg.Logger,
		provider:  cfg.Provider,
		historyDB: cfg.History,
		weather:   cfg.Weather,
		weatherDB: cfg.WeatherHistory,
		alerts:    cfg.Alerts,
		metrics:   &PollMetrics{},
	}
}

// PollResult contains the result of one polling cycle.
type PollResult struct {
	StartTime       time.Time
	EndTime         time.Time
	Duration        time.Duration
	TotalCities     int
	Successful      int
	Failed          int
	StoredRecords   int
	AlertsPublished int
	Errors          []PollError
}

// PollError represents an error while polling one city.
type PollError struct {
	City  string
	Error string
}

// Run executes one polling cycle over all configured cities.
func (j *PollJob) Run(ctx context.Context) *PollResult {
	startTime := time.Now()
	result := &PollResult{
		StartTime:   startTime,
		TotalCities: len(j.config.Cities),
	}

	j.logger.Info().
		Int("cities", result.TotalCities).
		Int("concurrency", j.config.Concurrency).
		Msg("starting poll cycle")

	citiesChan := make(chan City, len(j.config.Cities))
	resultsChan := make(chan cityResult, len(j.config.Cities))

	var wg sync.WaitGroup
	for i := 0; i < j.config.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			j.pollWorker(ctx, citiesChan, resultsChan)
		}()
	}

	for _, city := range j.config.Cities {
		citiesChan <- city
	}
	close(citiesChan)

	go func() {
		wg.Wait()
		close(resultsChan)
	}()

	for cr := range resultsChan {
		if cr.success {
			result.Successful++
		} else {
			result.Failed++
		}
		result.StoredRecords += cr.stored
		result.AlertsPublished += cr.alerts
		result.Errors = append(result.Errors, cr.errors...)
	}

	result.EndTime = time.Now()
	result.Duration = result.EndTime.Sub(startTime)

	j.updateMetrics(result)

	j.logger.Info().
		Dur("duration", result.Duration).
		Int("successful", result.Successful).
		Int("failed", result.Failed).
		Int("stored", result.StoredRecords).
		Int("alerts", result.AlertsPublished).
		Msg("poll cycle completed")

	return result
}

type cityResult struct {
	city    City
	success bool
	stored  int
	alerts  int
	errors  []PollError
}

func (j *PollJob) pollWorker(ctx context.Context, cities <-chan City, results chan<- cityResult) {
	for city := range cities {
		select {
		case <-ctx.Done():
			return
		default:
			results <- j.pollCity(ctx, city)
		}
	}
}

func (j *PollJob) pollCity(ctx context.Context, city City) cityResult {
	result := cityResult{city: city, success: true}

	cityCtx, cancel := context.WithTimeout(ctx, j.config.Timeout)
	defer cancel()

	reading, err := j.provider.FetchReading(cityCtx, city.Lat, city.Lon)
	if err != nil {
		result.errors = append(result.errors, PollError{City: city.Name, Error: err.Error()})
		result.success = false
		return result
	}

	// Store under the tracked city name, not the station label, so
	// history queries line up with the polling schedule.
	reading.Location = city.Name

	if j.config.StoreHistory && j.historyDB != nil {
		record := history.FromReading(reading, time.Now())
		if err := j.historyDB.Insert(cityCtx, record); err != nil {
			result.errors = append(result.errors, PollError{City: city.Name, Error: err.Error()})
			result.success = false
		} else {
			result.stored++
		}
	}

	if j.config.EvaluateAlerts && j.alerts != nil && reading.HasAQI() {
		published, err := j.alerts.Evaluate(cityCtx, city.Name, *reading.AQI)
		if err != nil {
			// Alert failures don't fail the poll; the reading is stored.
			j.logger.Warn().Err(err).Str("city", city.Name).Msg("alert evaluation failed")
		} else {
			result.alerts += published
		}
	}

	if j.config.FetchWeather && j.weather != nil {
		obs, err := j.weather.GetCurrentWeather(cityCtx, city.Lat, city.Lon)
		if err != nil {
			// Weather failures don't fail the poll either.
			j.logger.Warn().Err(err).Str("city", city.Name).Msg("weather fetch failed")
		} else if j.weatherDB != nil {
			record := weather.FromObservation(obs, city.Name, time.Now())
			if err := j.weatherDB.Insert(cityCtx, record); err != nil {
				j.logger.Warn().Err(err).Str("city", city.Name).Msg("weather store failed")
			}
		}
	}

	return result
}

func (j *PollJob) updateMetrics(result *PollResult) {
	j.metrics.mu.Lock()
	defer j.metrics.mu.Unlock()

	j.metrics.TotalCycles++
	j.metrics.SuccessfulPolls += int64(result.Successful)
	j.metrics.FailedPolls += int64(result.Failed)
	j.metrics.StoredRecords += int64(result.StoredRecords)
	j.metrics.AlertsPublished += int64(result.AlertsPublished)
	j.metrics.LastCycleAt = result.EndTime
	j.metrics.LastCycleElapsed = result.Duration
}

// GetMetrics returns a copy of the current metrics.
func (j *PollJob) GetMetrics() PollMetrics {
	j.metrics.mu.RLock()
	defer j.metrics.mu.RUnlock()

	return PollMetrics{
		TotalCycles:      j.metrics.TotalCycles,
		SuccessfulPolls:  j.metrics.SuccessfulPolls,
		FailedPolls:      j.metrics.FailedPolls,
		StoredRecords:    j.metrics.StoredRecords,
		AlertsPublished:  j.metrics.AlertsPublished,
		LastCycleAt:      j.metrics.LastCycleAt,
		LastCycleElapsed: j.metrics.LastCycleElapsed,
	}
}

// MetricsSnapshot returns a snapshot of the current metrics as a map.
func (j *PollJob) MetricsSnapshot() map[string]interface{} {
	m := j.GetMetrics()
	return map[string]interface{}{
		"total_cycles":       m.TotalCycles,
		"successful_polls":   m.SuccessfulPolls,
		"failed_polls":       m.FailedPolls,
		"stored_records":     m.StoredRecords,
		"alerts_published":   m.AlertsPublished,
		"last_cycle_at":      m.LastCycleAt,
		"last_cycle_elapsed": m.LastCycleElapsed.String(),
	}
}
