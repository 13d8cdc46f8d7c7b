package alert_test

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vayudrishti/vayudrishti/internal/alert"
)

type staticSource struct {
	subs []alert.Subscription
	err  error
}

func (s *staticSource) ActiveSubscriptions(_ context.Context, _ string) ([]alert.Subscription, error) {
	return s.subs, s.err
}

type capturePublisher struct {
	events  []alert.Event
	failFor string
}

func (p *capturePublisher) Publish(_ context.Context, event alert.Event) error {
	if event.UserID == p.failFor {
		return errors.New("publish failed")
	}
	p.events = append(p.events, event)
	return nil
}

func intPtr(v int) *int { return &v }

func newEvaluator(source alert.SubscriptionSource, publisher alert.Publisher) *alert.Evaluator {
	return alert.NewEvaluator(alert.EvaluatorConfig{
		Subscriptions: source,
		Publisher:     publisher,
		Logger:        zerolog.New(io.Discard),
	})
}

func TestEvaluator_ThresholdCrossing(t *testing.T) {
	publisher := &capturePublisher{}
	evaluator := newEvaluator(&staticSource{subs: []alert.Subscription{
		{UserID: "usr_1", Location: "Delhi", Threshold: intPtr(150)},
		{UserID: "usr_2", Location: "Delhi", Threshold: intPtr(300)},
	}}, publisher)

	published, err := evaluator.Evaluate(context.Background(), "Delhi", 180)
	require.NoError(t, err)
	assert.Equal(t, 1, published)

	require.Len(t, publisher.events, 1)
	event := publisher.events[0]
	assert.Equal(t, "usr_1", event.UserID)
	assert.Equal(t, 180, event.AQI)
	assert.Equal(t, 150, event.Threshold)
	assert.Equal(t, "Unhealthy", event.Category)
}

func TestEvaluator_ThresholdIsInclusive(t *testing.T) {
	publisher := &capturePublisher{}
	evaluator := newEvaluator(&staticSource{subs: []alert.Subscription{
		{UserID: "usr_1", Location: "Delhi", Threshold: intPtr(150)},
	}}, publisher)

	published, err := evaluator.Evaluate(context.Background(), "Delhi", 150)
	require.NoError(t, err)
	assert.Equal(t, 1, published)
}

func TestEvaluator_DefaultThreshold(t *testing.T) {
	publisher := &capturePublisher{}
	evaluator := newEvaluator(&staticSource{subs: []alert.Subscription{
		{UserID: "usr_1", Location: "Delhi"},
	}}, publisher)

	published, err := evaluator.Evaluate(context.Background(), "Delhi", 199)
	require.NoError(t, err)
	assert.Zero(t, published, "below the default threshold of 200")

	published, err = evaluator.Evaluate(context.Background(), "Delhi", 240)
	require.NoError(t, err)
	assert.Equal(t, 1, published)
	assert.Equal(t, alert.DefaultThreshold, publisher.events[0].Threshold)
}

func TestEvaluator_PublishFailureDoesNotBlockOthers(t *testing.T) {
	publisher := &capturePublisher{failFor: "usr_1"}
	evaluator := newEvaluator(&staticSource{subs: []alert.Subscription{
		{UserID: "usr_1", Location: "Delhi", Threshold: intPtr(100)},
		{UserID: "usr_2", Location: "Delhi", Threshold: intPtr(100)},
	}}, publisher)

	published, err := evaluator.Evaluate(context.Background(), "Delhi", 180)
	require.NoError(t, err)
	assert.Equal(t, 1, published)
	require.Len(t, publisher.events, 1)
	assert.Equal(t, "usr_2", publisher.events[0].UserID)
}

func TestEvaluator_SourceError(t *testing.T) {
	evaluator := newEvaluator(&staticSource{err: errors.New("db down")}, &capturePublisher{})

	_, err := evaluator.Evaluate(context.Background(), "Delhi", 180)
	assert.Error(t, err)
}
