package forecast

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/vayudrishti/vayudrishti/internal/history"
)

const (
	// featureWindow is how far back observations feed the model.
	featureWindow = 7 * 24 * time.Hour

	// featureCount is the fixed feature vector length the model expects.
	featureCount = 24

	// horizonHours is how many hourly points a forecast covers.
	horizonHours = 72
)

// Point is a single predicted AQI value.
type Point struct {
	Time time.Time
	AQI  float64
}

// Predictor produces one AQI prediction from a feature vector.
type Predictor interface {
	Predict(ctx context.Context, features []float64) (float64, error)
}

// ServiceConfig holds configuration for the forecast service.
type ServiceConfig struct {
	Predictor Predictor
	History   history.Repository
	Logger    zerolog.Logger
}

// Service builds model inputs from stored observations and returns
// predicted AQI trajectories.
type Service struct {
	predictor Predictor
	history   history.Repository
	logger    zerolog.Logger
}

// NewService creates a new forecast service.
func NewService(cfg ServiceConfig) *Service {
	return &Service{
		predictor: cfg.Predictor,
		history:   cfg.History,
		logger:    cfg.Logger,
	}
}

// Forecast predicts AQI for a location over the next three days, one
// point every six hours. The feature vector is the most recent stored
// AQI values, oldest first, padded by repeating the oldest value when
// history is thin.
func (s *Service) Forecast(ctx context.Context, location string) ([]Point, error) {
	features, err := s.buildFeatures(ctx, location)
	if err != nil {
		return nil, err
	}

	now := time.Now().Truncate(time.Hour)

	points := make([]Point, 0, horizonHours/6)
	for h := 6; h <= horizonHours; h += 6 {
		prediction, err := s.predictor.Predict(ctx, features)
		if err != nil {
			return nil, err
		}

		points = append(points, Point{Time: now.Add(time.Duration(h) * time.Hour), AQI: prediction})

		// Feed the prediction back so later horizons see it.
		features = append(features[1:], prediction)
	}

	return points, nil
}

func (s *Service) buildFeatures(ctx context.Context, location string) ([]float64, error) {
	now := time.Now()
	records, err := s.history.Range(ctx, location, now.Add(-featureWindow), now, featureCount)
	if err != nil {
		return nil, fmt.Errorf("loading observations: %w", err)
	}

	// Range returns newest first; the model expects oldest first.
	var values []float64
	for i := len(records) - 1; i >= 0; i-- {
		if records[i].AQI == nil {
			continue
		}
		values = append(values, float64(*records[i].AQI))
	}

	if len(values) == 0 {
		return nil, fmt.Errorf("%w: no observations for %q", history.ErrNotFound, location)
	}

	for len(values) < featureCount {
		values = append([]float64{values[0]}, values...)
	}

	return values, nil
}
