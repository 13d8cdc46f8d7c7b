// Package alert evaluates air quality readings against user thresholds
// and publishes notification events.
package alert

import (
	"context"
	"time"
)

// DefaultThreshold applies when a subscription has no explicit threshold.
// 200 is the boundary above which the Indian AQI scale turns severe.
const DefaultThreshold = 200

// Subscription is a user's standing request to be alerted when AQI at
// their location crosses a threshold.
type Subscription struct {
	UserID    string
	Location  string
	Threshold *int
}

// EffectiveThreshold returns the subscription's threshold or the default.
func (s Subscription) EffectiveThreshold() int {
	if s.Threshold != nil {
		return *s.Threshold
	}
	return DefaultThreshold
}

// Event is a threshold crossing to be delivered to a user.
type Event struct {
	UserID      string    `json:"userId"`
	Location    string    `json:"location"`
	AQI         int       `json:"aqi"`
	Threshold   int       `json:"threshold"`
	Category    string    `json:"category"`
	TriggeredAt time.Time `json:"triggeredAt"`
}

// Publisher delivers alert events to the notification pipeline.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// SubscriptionSource lists the active subscriptions for a location.
type SubscriptionSource interface {
	ActiveSubscriptions(ctx context.Context, location string) ([]Subscription, error)
}
