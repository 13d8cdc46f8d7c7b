package alert

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/vayudrishti/vayudrishti/internal/aqi"
)

// EvaluatorConfig holds configuration for the evaluator.
type EvaluatorConfig struct {
	Subscriptions SubscriptionSource
	Publisher     Publisher
	Logger        zerolog.Logger
}

// Evaluator matches readings against subscriptions and publishes events
// for every crossed threshold.
type Evaluator struct {
	subscriptions SubscriptionSource
	publisher     Publisher
	logger        zerolog.Logger
}

// NewEvaluator creates a new evaluator.
func NewEvaluator(cfg EvaluatorConfig) *Evaluator {
	return &Evaluator{
		subscriptions: cfg.Subscriptions,
		publisher:     cfg.Publisher,
		logger:        cfg.Logger,
	}
}

// Evaluate publishes an event for each subscription at the location
// whose threshold the AQI value meets or exceeds. A failed publish is
// logged and does not block the remaining subscriptions.
func (e *Evaluator) Evaluate(ctx context.Context, location string, aqiValue int) (int, error) {
	subs, err := e.subscriptions.ActiveSubscriptions(ctx, location)
	if err != nil {
		return 0, err
	}

	published := 0
	for _, sub := range subs {
		threshold := sub.EffectiveThreshold()
		if aqiValue < threshold {
			continue
		}

		event := Event{
			UserID:      sub.UserID,
			Location:    location,
			AQI:         aqiValue,
			Threshold:   threshold,
			Category:    aqi.Categorize(aqiValue).String(),
			TriggeredAt: time.Now(),
		}

		if err := e.publisher.Publish(ctx, event); err != nil {
			e.logger.Error().
				Err(err).
				Str("user_id", sub.UserID).
				Str("location", location).
				Msg("failed to publish alert")
			continue
		}
		published++
	}

	return published, nil
}
